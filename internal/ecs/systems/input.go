// Package systems implements the nine fixed-priority ECS systems: player
// input, enemy AI, weapons, movement, collision, damage, lifetime, cleanup
// and score. Each system is a small struct registered once with the
// scheduler; systems that need to hand data to the orchestrator (kill
// events, spawn requests) expose it through their own queue fields, drained
// by the engine between ticks.
package systems

import (
	"github.com/lab1702/rtype-server/internal/ecs"
)

// Input bitfield flags, matching the wire protocol's PlayerInput.inputKeys.
const (
	KeyUp          uint8 = 0x01
	KeyDown        uint8 = 0x02
	KeyLeft        uint8 = 0x04
	KeyRight       uint8 = 0x08
	KeyShoot       uint8 = 0x10 // held = charge wave cannon; tapped = standard shot
	KeySwitchNext  uint8 = 0x20
	KeySwitchPrev  uint8 = 0x40
)

// InputCommand is one queued (playerId, keys, sequence) input sample.
type InputCommand struct {
	PlayerID int
	Keys     uint8
	Seq      uint32
}

// PlayerByID resolves a playerID to its entity id; supplied by the engine,
// which is the only place that knows the player-id -> entity mapping.
type PlayerByID func(playerID int) (ecs.EntityID, bool)

// PlayerInputSystem drains the per-tick input queue and sets player
// velocity and, optionally, clamps position to screen. Priority 0.
type PlayerInputSystem struct {
	Bridge        *ecs.DomainBridge
	Queue         []InputCommand
	Resolve       PlayerByID
	ClampEnabled  bool
}

func NewPlayerInputSystem(bridge *ecs.DomainBridge, resolve PlayerByID) *PlayerInputSystem {
	return &PlayerInputSystem{Bridge: bridge, Resolve: resolve, ClampEnabled: true}
}

func (s *PlayerInputSystem) Name() string { return "PlayerInputSystem" }
func (s *PlayerInputSystem) Priority() int { return 0 }

func (s *PlayerInputSystem) Update(store *ecs.Store, dt float64) {
	queue := s.Queue
	s.Queue = nil

	for _, cmd := range queue {
		id, ok := s.Resolve(cmd.PlayerID)
		if !ok {
			continue // unknown playerId: silently ignored
		}
		speedLevel, _ := ecs.GetComponent[ecs.SpeedLevel](store, id)
		level := 0
		if speedLevel != nil {
			level = speedLevel.Level
		}
		speed := s.Bridge.BasePlayerSpeed() * s.Bridge.PlayerSpeedMultiplier(level)

		var vx, vy float64
		if cmd.Keys&KeyUp != 0 {
			vy -= 1
		}
		if cmd.Keys&KeyDown != 0 {
			vy += 1
		}
		if cmd.Keys&KeyLeft != 0 {
			vx -= 1
		}
		if cmd.Keys&KeyRight != 0 {
			vx += 1
		}
		if vx != 0 && vy != 0 {
			const invSqrt2 = 0.70710678118654752440
			vx *= invSqrt2
			vy *= invSqrt2
		}

		vel, ok := ecs.GetComponent[ecs.Velocity](store, id)
		if !ok {
			continue
		}
		vel.VX = vx * speed
		vel.VY = vy * speed
	}

	if !s.ClampEnabled {
		return
	}
	for _, id := range store.EntitiesInGroup(ecs.GroupPlayers) {
		pos, hasPos := ecs.GetComponent[ecs.Position](store, id)
		hb, hasHB := ecs.GetComponent[ecs.Hitbox](store, id)
		if !hasPos || !hasHB {
			continue
		}
		cx, cy := s.Bridge.ClampToScreen(pos.X+hb.OffX, pos.Y+hb.OffY, hb.W, hb.H)
		pos.X = cx - hb.OffX
		pos.Y = cy - hb.OffY
	}
}
