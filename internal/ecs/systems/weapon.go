package systems

import (
	"math"

	"github.com/lab1702/rtype-server/internal/domain"
	"github.com/lab1702/rtype-server/internal/ecs"
)

// Wave-cannon charge thresholds, in seconds held.
const (
	ChargeLevel1Seconds = 0.6
	ChargeLevel2Seconds = 1.3
	ChargeLevel3Seconds = 2.2

	spreadAngleDegrees = 15.0
)

// ShootRequest asks WeaponSystem to fire playerID's current weapon.
type ShootRequest struct{ PlayerID int }

// ChargeStartRequest asks WeaponSystem to begin charging a wave cannon.
type ChargeStartRequest struct{ PlayerID int }

// ChargeReleaseRequest asks WeaponSystem to release a held charge.
type ChargeReleaseRequest struct{ PlayerID int }

// SwitchWeaponRequest asks WeaponSystem to cycle the current weapon by dir
// (+1 or -1).
type SwitchWeaponRequest struct {
	PlayerID int
	Dir      int
}

// WeaponSystem decrements cooldowns/charge timers and drains the four
// per-tick request queues in order: shoot, charge-start, charge-release,
// switch-weapon. Priority 200.
type WeaponSystem struct {
	Bridge *ecs.DomainBridge

	ShootRequests         []ShootRequest
	ChargeStartRequests   []ChargeStartRequest
	ChargeReleaseRequests []ChargeReleaseRequest
	SwitchRequests        []SwitchWeaponRequest

	Resolve PlayerByID
}

func NewWeaponSystem(bridge *ecs.DomainBridge, resolve PlayerByID) *WeaponSystem {
	return &WeaponSystem{Bridge: bridge, Resolve: resolve}
}

func (s *WeaponSystem) Name() string  { return "WeaponSystem" }
func (s *WeaponSystem) Priority() int { return 200 }

func (s *WeaponSystem) Update(store *ecs.Store, dt float64) {
	for _, id := range store.EntitiesInGroup(ecs.GroupPlayers) {
		w, ok := ecs.GetComponent[ecs.Weapon](store, id)
		if !ok {
			continue
		}
		if w.ShootCooldown > 0 {
			w.ShootCooldown -= dt
		}
		if w.IsCharging {
			w.ChargeTime += dt
		}
	}

	shootReqs, chargeStart, chargeRelease, switchReqs := s.ShootRequests, s.ChargeStartRequests, s.ChargeReleaseRequests, s.SwitchRequests
	s.ShootRequests, s.ChargeStartRequests, s.ChargeReleaseRequests, s.SwitchRequests = nil, nil, nil, nil

	for _, req := range shootReqs {
		s.handleShoot(store, req.PlayerID)
	}
	for _, req := range chargeStart {
		id, ok := s.Resolve(req.PlayerID)
		if !ok {
			continue
		}
		w, ok := ecs.GetComponent[ecs.Weapon](store, id)
		if !ok {
			continue
		}
		w.IsCharging = true
		w.ChargeTime = 0
	}
	for _, req := range chargeRelease {
		s.handleChargeRelease(store, req.PlayerID)
	}
	for _, req := range switchReqs {
		id, ok := s.Resolve(req.PlayerID)
		if !ok {
			continue
		}
		w, ok := ecs.GetComponent[ecs.Weapon](store, id)
		if !ok {
			continue
		}
		w.CurrentType = domain.WeaponType(mod(int(w.CurrentType)+req.Dir, 4))
	}
}

func (s *WeaponSystem) handleShoot(store *ecs.Store, playerID int) {
	id, ok := s.Resolve(playerID)
	if !ok {
		return
	}
	w, ok := ecs.GetComponent[ecs.Weapon](store, id)
	if !ok || w.IsCharging || w.ShootCooldown > 0 {
		return
	}
	pos, hasPos := ecs.GetComponent[ecs.Position](store, id)
	if !hasPos {
		return
	}
	level := w.Levels[w.CurrentType]
	speed := s.Bridge.MissileSpeed(w.CurrentType, level)
	damage := s.Bridge.MissileDamage(w.CurrentType, level)
	spawnX, spawnY := pos.X+50, pos.Y

	spawn := func(vy float64) {
		mid := store.CreateEntity(ecs.GroupMissiles)
		ecs.AddComponent(store, mid, ecs.Position{X: spawnX, Y: spawnY})
		ecs.AddComponent(store, mid, ecs.Velocity{VX: speed, VY: vy})
		ecs.AddComponent(store, mid, ecs.Hitbox{W: 16, H: 8})
		ecs.AddComponent(store, mid, ecs.Owner{EntityID: id, IsPlayerOwned: true})
		ecs.AddComponent(store, mid, ecs.Lifetime{Remaining: 10, Total: 10})
		ecs.AddComponent(store, mid, ecs.MissileTag{
			WeaponType: w.CurrentType,
			BaseDamage: damage,
			IsHoming:   w.CurrentType == domain.WeaponHoming,
		})
	}

	if w.CurrentType == domain.WeaponSpread {
		theta := spreadAngleDegrees * math.Pi / 180
		spawn(-math.Sin(theta) * speed)
		spawn(0)
		spawn(math.Sin(theta) * speed)
	} else {
		spawn(0)
	}

	w.ShootCooldown = s.Bridge.WeaponCooldown(w.CurrentType, level)
}

func (s *WeaponSystem) handleChargeRelease(store *ecs.Store, playerID int) {
	id, ok := s.Resolve(playerID)
	if !ok {
		return
	}
	w, ok := ecs.GetComponent[ecs.Weapon](store, id)
	if !ok {
		return
	}
	defer func() {
		w.IsCharging = false
		w.ChargeTime = 0
	}()

	level := 0
	switch {
	case w.ChargeTime >= ChargeLevel3Seconds:
		level = 3
	case w.ChargeTime >= ChargeLevel2Seconds:
		level = 2
	case w.ChargeTime >= ChargeLevel1Seconds:
		level = 1
	default:
		return // below Lv1 threshold: no wave cannon (tap-fire is handled by the caller)
	}

	pos, hasPos := ecs.GetComponent[ecs.Position](store, id)
	if !hasPos {
		return
	}
	width := float64(s.Bridge.WaveCannonWidth(level))
	wcID := store.CreateEntity(ecs.GroupWaveCannons)
	ecs.AddComponent(store, wcID, ecs.Position{X: pos.X + 50, Y: pos.Y})
	ecs.AddComponent(store, wcID, ecs.Velocity{VX: 900, VY: 0})
	ecs.AddComponent(store, wcID, ecs.Hitbox{W: 100, H: width, OffY: -width / 2})
	ecs.AddComponent(store, wcID, ecs.Owner{EntityID: id, IsPlayerOwned: true})
	ecs.AddComponent(store, wcID, ecs.Lifetime{Remaining: 2, Total: 2})
	ecs.AddComponent(store, wcID, ecs.WaveCannonTag{ChargeLevel: level, Width: width})
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
