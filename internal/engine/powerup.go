package engine

import "github.com/lab1702/rtype-server/internal/ecs"

const (
	powerUpDropChanceRegular = 0.08
	powerUpDropChanceArmored = 0.50
	armoredPowerUpInterval   = 25.0
	powerUpLifetimeSeconds   = 12.0
)

// spawnPowerUp creates a power-up entity of a random type at (x, y).
func (w *GameWorld) spawnPowerUp(x, y float64) {
	ptypes := []ecs.PowerUpType{
		ecs.PowerUpHealth, ecs.PowerUpSpeedUp, ecs.PowerUpWeaponCrystal,
		ecs.PowerUpForcePod, ecs.PowerUpBitDevice,
	}
	t := ptypes[w.rng.Intn(len(ptypes))]
	id := w.store.CreateEntity(ecs.GroupPowerUps)
	ecs.AddComponent(w.store, id, ecs.Position{X: x, Y: y})
	ecs.AddComponent(w.store, id, ecs.Velocity{VX: -40})
	ecs.AddComponent(w.store, id, ecs.Hitbox{W: 24, H: 24})
	ecs.AddComponent(w.store, id, ecs.Lifetime{Remaining: powerUpLifetimeSeconds, Total: powerUpLifetimeSeconds})
	ecs.AddComponent(w.store, id, ecs.PowerUpTag{Type: t})
}

// rollPowerUpDrop is called by the orchestrator after a kill event, at the
// documented drop chances.
func (w *GameWorld) rollPowerUpDrop(x, y float64, armored bool) {
	chance := powerUpDropChanceRegular
	if armored {
		chance = powerUpDropChanceArmored
	}
	if w.rng.Float64() < chance {
		w.spawnPowerUp(x, y)
	}
}

// applyPowerUp applies a collected power-up's effect to playerID's state.
func (w *GameWorld) applyPowerUp(playerID int, t ecs.PowerUpType) {
	cp, ok := w.players[playerID]
	if !ok {
		return
	}
	switch t {
	case ecs.PowerUpHealth:
		if hp, ok := ecs.GetComponent[ecs.Health](w.store, cp.Entity); ok {
			hp.Current = hp.Max
		}
	case ecs.PowerUpSpeedUp:
		if sl, ok := ecs.GetComponent[ecs.SpeedLevel](w.store, cp.Entity); ok {
			if sl.Level < 3 {
				sl.Level++
			}
			cp.SpeedLevel = sl.Level
		}
	case ecs.PowerUpWeaponCrystal:
		if wp, ok := ecs.GetComponent[ecs.Weapon](w.store, cp.Entity); ok {
			lvl := &wp.Levels[wp.CurrentType]
			if *lvl < 3 {
				*lvl++
			}
			cp.WeaponLevels = wp.Levels
		}
	case ecs.PowerUpForcePod:
		w.giveForceToPlayer(playerID)
	case ecs.PowerUpBitDevice:
		w.giveBitDevicesToPlayer(playerID)
	}
}

// checkPowerUpCollisions processes Player x PowerUp collision events, which
// CollisionSystem finds but DamageSystem deliberately does not resolve:
// pickup is an orchestrator-level effect (health, speed, weapon level,
// Force Pod, Bit Devices),
// not damage, so it's applied here instead.
func (w *GameWorld) checkPowerUpCollisions(events []powerUpPickup) {
	for _, ev := range events {
		tag, ok := ecs.GetComponent[ecs.PowerUpTag](w.store, ev.powerUp)
		if !ok {
			continue
		}
		w.applyPowerUp(ev.playerID, tag.Type)
		w.store.DeleteEntity(ev.powerUp)
	}
}

type powerUpPickup struct {
	playerID int
	powerUp  ecs.EntityID
}
