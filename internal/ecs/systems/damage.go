package systems

import "github.com/lab1702/rtype-server/internal/ecs"

const forcePodContactDamage = 30

// KillEvent is emitted whenever DamageSystem kills an entity, consumed by
// ScoreSystem and the orchestrator.
type KillEvent struct {
	Killer         ecs.EntityID
	Killed         ecs.EntityID
	KillerPlayerID int
	KilledType     int // domain.EnemyType, kept as int to avoid a domain import here
	BasePoints     int
	X, Y           float64 // enemy's position at the moment of death
}

// DamageSystem consumes CollisionSystem's event list from this same tick
// and resolves damage/kills per entity-pair rules. Priority 500.
type DamageSystem struct {
	Bridge    *ecs.DomainBridge
	Collision *CollisionSystem
	Kills     []KillEvent
}

func NewDamageSystem(bridge *ecs.DomainBridge, collision *CollisionSystem) *DamageSystem {
	return &DamageSystem{Bridge: bridge, Collision: collision}
}

func (s *DamageSystem) Name() string  { return "DamageSystem" }
func (s *DamageSystem) Priority() int { return 500 }

func (s *DamageSystem) Update(store *ecs.Store, dt float64) {
	s.Kills = s.Kills[:0]

	for _, ev := range s.Collision.Events {
		switch {
		case ev.GroupA == ecs.GroupMissiles && ev.GroupB == ecs.GroupEnemies:
			s.missileVsEnemy(store, ev.EntityA, ev.EntityB)
		case ev.GroupA == ecs.GroupWaveCannons && ev.GroupB == ecs.GroupEnemies:
			s.waveCannonVsEnemy(store, ev.EntityA, ev.EntityB)
		case ev.GroupA == ecs.GroupPlayers && ev.GroupB == ecs.GroupEnemyMissiles:
			s.playerVsEnemyMissile(store, ev.EntityA, ev.EntityB)
		case ev.GroupA == ecs.GroupForcePods && ev.GroupB == ecs.GroupEnemies:
			s.forcePodVsEnemy(store, ev.EntityB)
			// ForcePod (ev.EntityA) is never deleted here.
		case ev.GroupA == ecs.GroupPlayers && ev.GroupB == ecs.GroupPowerUps:
			// Handled by the orchestrator, not here.
		case ev.GroupA == ecs.GroupMissiles && ev.GroupB == ecs.GroupBosses:
			s.missileVsBoss(store, ev.EntityA, ev.EntityB)
		case ev.GroupA == ecs.GroupWaveCannons && ev.GroupB == ecs.GroupBosses:
			s.waveCannonVsBoss(store, ev.EntityA, ev.EntityB)
		}
	}
}

// missileVsBoss applies a missile's damage to the boss's Health component.
// Boss death is detected and handled by the orchestrator (defeat count,
// bonus points, despawn), not here: DamageSystem has no notion of a boss.
func (s *DamageSystem) missileVsBoss(store *ecs.Store, missile, boss ecs.EntityID) {
	mt, ok := ecs.GetComponent[ecs.MissileTag](store, missile)
	if !ok {
		return
	}
	if hp, ok := ecs.GetComponent[ecs.Health](store, boss); ok && !hp.Invulnerable {
		hp.Current = s.Bridge.ApplyDamage(hp.Current, int(mt.BaseDamage))
	}
	store.DeleteEntity(missile)
}

func (s *DamageSystem) waveCannonVsBoss(store *ecs.Store, cannon, boss ecs.EntityID) {
	wc, ok := ecs.GetComponent[ecs.WaveCannonTag](store, cannon)
	if !ok {
		return
	}
	hp, ok := ecs.GetComponent[ecs.Health](store, boss)
	if !ok || hp.Invulnerable {
		return
	}
	hp.Current = s.Bridge.ApplyDamage(hp.Current, s.Bridge.WaveCannonDamage(wc.ChargeLevel))
	// WaveCannon pierces: never deleted here.
}

func (s *DamageSystem) killEnemy(store *ecs.Store, killer, enemy ecs.EntityID) {
	tag, ok := ecs.GetComponent[ecs.EnemyTag](store, enemy)
	if !ok {
		return
	}
	killerPlayerID := 0
	if owner, ok := ecs.GetComponent[ecs.Owner](store, killer); ok && owner.IsPlayerOwned {
		if pt, ok := ecs.GetComponent[ecs.PlayerTag](store, owner.EntityID); ok {
			killerPlayerID = pt.PlayerID
		}
	}
	var x, y float64
	if pos, ok := ecs.GetComponent[ecs.Position](store, enemy); ok {
		x, y = pos.X, pos.Y
	}
	s.Kills = append(s.Kills, KillEvent{
		Killer: killer, Killed: enemy, KillerPlayerID: killerPlayerID,
		KilledType: int(tag.Type), BasePoints: tag.Points, X: x, Y: y,
	})
	store.DeleteEntity(enemy)
}

func (s *DamageSystem) missileVsEnemy(store *ecs.Store, missile, enemy ecs.EntityID) {
	mt, ok := ecs.GetComponent[ecs.MissileTag](store, missile)
	if !ok {
		return
	}
	hp, ok := ecs.GetComponent[ecs.Health](store, enemy)
	if ok && !hp.Invulnerable {
		hp.Current = s.Bridge.ApplyDamage(hp.Current, int(mt.BaseDamage))
		if hp.Current == 0 {
			s.killEnemy(store, missile, enemy)
		}
	}
	store.DeleteEntity(missile) // consumed unconditionally
}

func (s *DamageSystem) waveCannonVsEnemy(store *ecs.Store, cannon, enemy ecs.EntityID) {
	wc, ok := ecs.GetComponent[ecs.WaveCannonTag](store, cannon)
	if !ok {
		return
	}
	hp, ok := ecs.GetComponent[ecs.Health](store, enemy)
	if !ok || hp.Invulnerable {
		return
	}
	dmg := s.Bridge.WaveCannonDamage(wc.ChargeLevel)
	hp.Current = s.Bridge.ApplyDamage(hp.Current, dmg)
	if hp.Current == 0 {
		s.killEnemy(store, cannon, enemy)
	}
	// WaveCannon pierces: never deleted here.
}

func (s *DamageSystem) playerVsEnemyMissile(store *ecs.Store, player, missile ecs.EntityID) {
	hp, ok := ecs.GetComponent[ecs.Health](store, player)
	if !ok {
		store.DeleteEntity(missile)
		return
	}
	if !hp.Invulnerable {
		mt, ok := ecs.GetComponent[ecs.MissileTag](store, missile)
		if ok {
			hp.Current = s.Bridge.ApplyDamage(hp.Current, int(mt.BaseDamage))
		}
	}
	store.DeleteEntity(missile)
}

func (s *DamageSystem) forcePodVsEnemy(store *ecs.Store, enemy ecs.EntityID) {
	hp, ok := ecs.GetComponent[ecs.Health](store, enemy)
	if !ok || hp.Invulnerable {
		return
	}
	hp.Current = s.Bridge.ApplyDamage(hp.Current, forcePodContactDamage)
	if hp.Current == 0 {
		// ForcePod kills don't attribute to a specific player missile; use
		// the enemy itself as the nominal killer entity.
		s.killEnemy(store, enemy, enemy)
	}
}
