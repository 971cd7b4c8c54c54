package engine

import (
	"math"

	"github.com/lab1702/rtype-server/internal/domain"
	"github.com/lab1702/rtype-server/internal/ecs"
)

const (
	bossSpawnX       = 1700
	bossSpawnY       = 540
	bossMovementAmpl = 120.0
	bossMovementFreq = 0.5
)

// spawnBoss creates the boss's ECS entity and state machine, reusing the
// player count and this room's prior defeat count to scale its health.
func (w *GameWorld) spawnBoss() {
	boss := newBoss(w.rule, len(w.players), w.bossDefeatCount)
	id := w.store.CreateEntity(ecs.GroupBosses)
	boss.Entity = id
	ecs.AddComponent(w.store, id, ecs.Position{X: boss.X, Y: boss.Y})
	ecs.AddComponent(w.store, id, ecs.Velocity{})
	ecs.AddComponent(w.store, id, ecs.Hitbox{W: bossEntityWidth, H: bossEntityHeight})
	ecs.AddComponent(w.store, id, ecs.Health{Current: boss.HP, Max: boss.MaxHP})
	w.boss = boss
}

// tickBoss advances the boss's movement and attack-selection FSM, spawns
// missiles when an attack fires, and handles defeat.
func (w *GameWorld) tickBoss(dt float64) {
	b := w.boss
	hp, ok := ecs.GetComponent[ecs.Health](w.store, b.Entity)
	if !ok {
		// Entity vanished unexpectedly (shouldn't happen outside tests);
		// drop the fight cleanly rather than operate on stale state.
		w.boss = nil
		return
	}
	b.HP = hp.Current
	if b.HP <= 0 {
		w.defeatBoss()
		return
	}

	pos, _ := ecs.GetComponent[ecs.Position](w.store, b.Entity)
	if pos != nil {
		switch b.Movement {
		case BossMovementDash:
			b.DashTimer -= dt
			if b.DashTimer <= 0 {
				b.Movement = BossMovementSinusoidal
			}
		default:
			b.Y = bossSpawnY + bossMovementAmpl*math.Sin(float64(w.tick)*dt*bossMovementFreq)
		}
		pos.X, pos.Y = b.X, b.Y
	}

	attackFired := b.tick(dt, w.rule, w.rng)
	if !attackFired {
		return
	}
	switch b.CurrentAttack {
	case BossAttackLinearShots:
		w.fireBossMissile(b.X, b.Y, 0)
	case BossAttackSpreadShot:
		for _, dy := range []float64{-150, 0, 150} {
			w.fireBossMissile(b.X, b.Y, dy)
		}
	case BossAttackCircularBarrage:
		const n = 8
		for i := 0; i < n; i++ {
			angle := 2 * math.Pi * float64(i) / n
			w.fireBossMissileVector(b.X, b.Y, math.Cos(angle)*250, math.Sin(angle)*250)
		}
	case BossAttackHomingSwarm:
		targetY := w.nearestPlayerY(b.X, b.Y)
		for i := 0; i < 4; i++ {
			w.fireBossMissile(b.X, b.Y-60+float64(i)*40, targetY-(b.Y-60+float64(i)*40))
		}
	case BossAttackLaser:
		w.fireBossLaser(b.X, b.Y)
	case BossAttackDash:
		b.Movement = BossMovementDash
		b.DashTimer = 0.6
	case BossAttackSpawnMinions:
		if b.MinionTimer <= 0 {
			w.spawnBossMinions(b)
			b.MinionTimer = bossMinionCooldown
		}
	case BossAttackTeleport:
		b.X = bossSpawnX - 100 + randRange(w.rng, -80, 80)
		b.Y = randRange(w.rng, 150, 900)
	}
}

func (w *GameWorld) fireBossMissile(x, y, dy float64) {
	w.fireBossMissileVector(x, y, enemyMissileSpeed, dy)
}

func (w *GameWorld) fireBossMissileVector(x, y, vx, vy float64) {
	id := w.store.CreateEntity(ecs.GroupEnemyMissiles)
	ecs.AddComponent(w.store, id, ecs.Position{X: x - 80, Y: y})
	ecs.AddComponent(w.store, id, ecs.Velocity{VX: vx, VY: vy})
	ecs.AddComponent(w.store, id, ecs.Hitbox{W: 16, H: 10})
	ecs.AddComponent(w.store, id, ecs.Lifetime{Remaining: 8, Total: 8})
	ecs.AddComponent(w.store, id, ecs.MissileTag{BaseDamage: enemyMissileDamage * 1.5})
}

// fireBossLaser models the Laser attack as a fast, wide, short-lived
// missile sweeping the full screen height at the boss's X.
func (w *GameWorld) fireBossLaser(x, y float64) {
	id := w.store.CreateEntity(ecs.GroupEnemyMissiles)
	ecs.AddComponent(w.store, id, ecs.Position{X: x - 80, Y: 0})
	ecs.AddComponent(w.store, id, ecs.Velocity{})
	ecs.AddComponent(w.store, id, ecs.Hitbox{W: 20, H: domain.ScreenHeight})
	ecs.AddComponent(w.store, id, ecs.Lifetime{Remaining: 0.4, Total: 0.4})
	ecs.AddComponent(w.store, id, ecs.MissileTag{BaseDamage: enemyMissileDamage * 2})
}

func (w *GameWorld) spawnBossMinions(b *Boss) {
	minionCap := bossMinionCap[b.Phase]
	toSpawn := minionCap - b.MinionCount
	if toSpawn <= 0 {
		return
	}
	if toSpawn > 2 {
		toSpawn = 2
	}
	for i := 0; i < toSpawn; i++ {
		w.spawnEnemy(waveSpawnEntry{
			Y:    b.Y - 100 + float64(i)*200,
			Type: domain.EnemyFast,
		})
		b.MinionCount++
	}
}

// defeatBoss clears the fight, awards a wave-clear bonus to every player
// and records the defeat so a subsequent boss spawns with more health. The
// wave count restarts so the next boss appears only after bossSpawnWave
// further waves.
func (w *GameWorld) defeatBoss() {
	w.store.DeleteEntity(w.boss.Entity)
	w.store.FlushDeletions()
	for id := range w.players {
		w.scoreSys.AddBonusPoints(id, waveBonusPerWave*5)
	}
	w.bossDefeatCount++
	w.boss = nil
	w.wave.waveNumber = 0
}
