package engine

import (
	"math"

	"github.com/lab1702/rtype-server/internal/domain"
	"github.com/lab1702/rtype-server/internal/ecs"
)

const (
	bitOrbitRadius    = 45.0
	bitOrbitSpeed     = 3.2 // rad/s
	bitContactRange   = 20.0
	bitHitCooldown    = 0.4
)

// giveBitDevicesToPlayer grants the pair of orbiting Bit Devices on first
// pickup; a second BitDevice power-up is a no-op (the player already has
// both slots filled), as the Bit Device power-up's effect.
func (w *GameWorld) giveBitDevicesToPlayer(playerID int) {
	cp, ok := w.players[playerID]
	if !ok || cp.HasBits {
		return
	}
	cp.HasBits = true
	a := newBitDevice()
	b := newBitDevice()
	b.OrbitAngle = math.Pi
	w.bitDevices[playerID] = [2]*BitDevice{a, b}
}

// updateBitDevices orbits each player's bit devices and applies contact
// damage to any enemy within range, on a small per-enemy cooldown so a
// stationary enemy isn't instantly deleted in a single tick.
func (w *GameWorld) updateBitDevices(dt float64) {
	for playerID, pair := range w.bitDevices {
		cp, ok := w.players[playerID]
		if !ok {
			delete(w.bitDevices, playerID)
			continue
		}
		ppos, ok := ecs.GetComponent[ecs.Position](w.store, cp.Entity)
		if !ok {
			continue
		}
		for _, bit := range pair {
			bit.OrbitAngle += bitOrbitSpeed * dt
			bx := ppos.X + bitOrbitRadius*math.Cos(bit.OrbitAngle)
			by := ppos.Y + bitOrbitRadius*math.Sin(bit.OrbitAngle)

			for enemy, cd := range bit.HitCooldowns {
				cd -= dt
				if cd <= 0 {
					delete(bit.HitCooldowns, enemy)
				} else {
					bit.HitCooldowns[enemy] = cd
				}
			}

			for _, enemy := range w.store.EntitiesInGroup(ecs.GroupEnemies) {
				if _, onCooldown := bit.HitCooldowns[enemy]; onCooldown {
					continue
				}
				epos, ok := ecs.GetComponent[ecs.Position](w.store, enemy)
				if !ok {
					continue
				}
				dx, dy := epos.X-bx, epos.Y-by
				if dx*dx+dy*dy > bitContactRange*bitContactRange {
					continue
				}
				hp, ok := ecs.GetComponent[ecs.Health](w.store, enemy)
				if !ok || hp.Invulnerable {
					continue
				}
				hp.Current = w.rule.ApplyDamage(hp.Current, bitDeviceContactDamage)
				bit.HitCooldowns[enemy] = bitHitCooldown
				if hp.Current == 0 {
					w.killEnemyDirect(playerID, enemy)
				}
			}
		}
	}
}

// killEnemyDirect removes an enemy killed by companion fire (Force Pod/Bit
// Device contact) and awards its point value as a bonus, bypassing the
// combo system since it wasn't a tracked missile/wave-cannon kill.
func (w *GameWorld) killEnemyDirect(playerID int, enemy ecs.EntityID) {
	tag, ok := ecs.GetComponent[ecs.EnemyTag](w.store, enemy)
	if ok {
		w.scoreSys.AddBonusPoints(playerID, w.bridge.EnemyPointValue(tag.Type))
		armored := tag.Type == domain.EnemyArmored
		if epos, ok := ecs.GetComponent[ecs.Position](w.store, enemy); ok {
			w.rollPowerUpDrop(epos.X, epos.Y, armored)
		}
	}
	w.store.DeleteEntity(enemy)
}
