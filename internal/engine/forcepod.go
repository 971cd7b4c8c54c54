package engine

import (
	"github.com/lab1702/rtype-server/internal/ecs"
)

const (
	forcePodOffsetX      = -50.0
	forcePodShootCadence = 0.35
	forcePodMaxLevel     = 3
)

// giveForceToPlayer grants a Force Pod on first pickup, or upgrades an
// existing one's level (capped), as the Force Pod power-up's effect.
func (w *GameWorld) giveForceToPlayer(playerID int) {
	cp, ok := w.players[playerID]
	if !ok {
		return
	}
	if cp.HasForce {
		if cp.ForceLevel < forcePodMaxLevel {
			cp.ForceLevel++
		}
		return
	}
	cp.HasForce = true
	cp.ForceLevel = 1

	fp := newForcePod()
	fp.Level = 1
	fp.IsAttached = true

	ppos, _ := ecs.GetComponent[ecs.Position](w.store, cp.Entity)
	if ppos != nil {
		fp.X, fp.Y = ppos.X+forcePodOffsetX, ppos.Y
	}

	id := w.store.CreateEntity(ecs.GroupForcePods)
	fp.Entity = id
	ecs.AddComponent(w.store, id, ecs.Position{X: fp.X, Y: fp.Y})
	ecs.AddComponent(w.store, id, ecs.Velocity{})
	ecs.AddComponent(w.store, id, ecs.Hitbox{W: 24, H: 24})
	ecs.AddComponent(w.store, id, ecs.Owner{EntityID: cp.Entity, IsPlayerOwned: true})

	w.forcePods[playerID] = fp
}

// updateForcePods runs each tick: tracks attached pods to their owner and
// decays per-enemy hit cooldowns and the pod's own shoot cooldown. Firing
// itself is triggered by spawnForceMissiles, called whenever the owning
// player fires.
func (w *GameWorld) updateForcePods(dt float64) {
	for playerID, fp := range w.forcePods {
		cp, ok := w.players[playerID]
		if !ok {
			w.store.DeleteEntity(fp.Entity)
			delete(w.forcePods, playerID)
			continue
		}

		if fp.IsAttached {
			if ppos, ok := ecs.GetComponent[ecs.Position](w.store, cp.Entity); ok {
				fp.X, fp.Y = ppos.X+forcePodOffsetX, ppos.Y
			}
		}
		if pos, ok := ecs.GetComponent[ecs.Position](w.store, fp.Entity); ok {
			pos.X, pos.Y = fp.X, fp.Y
		}

		for enemy, cd := range fp.HitCooldowns {
			cd -= dt
			if cd <= 0 {
				delete(fp.HitCooldowns, enemy)
			} else {
				fp.HitCooldowns[enemy] = cd
			}
		}

		if fp.ShootCooldown > 0 {
			fp.ShootCooldown -= dt
		}
	}
}

// spawnForceMissiles fires the player's Force Pod in lockstep with the
// player's own shot: a reduced-damage missile at the pod's current
// position, gated by the pod's own shootCooldown so a rapid-firing player
// doesn't make the pod fire faster than forcePodShootCadence.
func (w *GameWorld) spawnForceMissiles(playerID int) {
	fp, ok := w.forcePods[playerID]
	if !ok || fp.ShootCooldown > 0 {
		return
	}
	cp, ok := w.players[playerID]
	if !ok {
		return
	}
	wp, ok := ecs.GetComponent[ecs.Weapon](w.store, cp.Entity)
	if !ok {
		return
	}

	fp.ShootCooldown = forcePodShootCadence
	dmg := forcePodMissileDamage(w.rule, wp.CurrentType, wp.Levels[wp.CurrentType])
	mid := w.store.CreateEntity(ecs.GroupMissiles)
	ecs.AddComponent(w.store, mid, ecs.Position{X: fp.X + 40, Y: fp.Y})
	ecs.AddComponent(w.store, mid, ecs.Velocity{VX: w.bridge.MissileSpeed(wp.CurrentType, wp.Levels[wp.CurrentType])})
	ecs.AddComponent(w.store, mid, ecs.Hitbox{W: 16, H: 8})
	ecs.AddComponent(w.store, mid, ecs.Owner{EntityID: cp.Entity, IsPlayerOwned: true})
	ecs.AddComponent(w.store, mid, ecs.Lifetime{Remaining: 10, Total: 10})
	ecs.AddComponent(w.store, mid, ecs.MissileTag{WeaponType: wp.CurrentType, BaseDamage: dmg})
}
