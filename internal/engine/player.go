package engine

import (
	"net"
	"time"

	"github.com/lab1702/rtype-server/internal/domain"
	"github.com/lab1702/rtype-server/internal/ecs"
)

// ConnectedPlayer is the non-ECS, orchestrator-owned state for one occupied
// player slot. It lives alongside the ECS PlayerTag/Weapon/SpeedLevel
// components and is what the network layer actually addresses.
type ConnectedPlayer struct {
	Entity       ecs.EntityID
	Endpoint     net.Addr
	WeaponLevels [4]int
	SpeedLevel   int
	ChargeTimer  float64
	ChargeLevel  int
	IsCharging   bool
	GodMode      bool
	HasForce     bool
	ForceLevel   int
	HasBits      bool
	LastActivity time.Time
	LastInputSeq uint32
	FireWasDown  bool
}

// ForcePod is a companion satellite that can be attached (orbiting the
// owner) or detached (free-floating), dealing contact damage to enemies it
// touches. Referenced by owner id only, never by pointer, since the owning
// player's slot can be recycled independently of the pod.
type ForcePod struct {
	Entity       ecs.EntityID
	X, Y         float64
	IsAttached   bool
	Level        int
	ShootCooldown float64
	HitCooldowns map[ecs.EntityID]float64
}

// BitDevice is one of a pair of orbiting companion satellites granted by a
// BitDevice power-up.
type BitDevice struct {
	Entity       ecs.EntityID
	OrbitAngle   float64
	ShootCooldown float64
	HitCooldowns map[ecs.EntityID]float64
}

const bitDeviceContactDamage = 15 // half of ForcePod's 30 contact damage

func newForcePod() *ForcePod {
	return &ForcePod{HitCooldowns: make(map[ecs.EntityID]float64)}
}

func newBitDevice() *BitDevice {
	return &BitDevice{HitCooldowns: make(map[ecs.EntityID]float64)}
}

// forcePodMissileDamageFraction is the reduced damage fraction a Force Pod
// fires at relative to the owning player's current weapon damage.
const forcePodMissileDamageFraction = 0.70

func forcePodMissileDamage(rule domain.GameRule, wt domain.WeaponType, level int) float64 {
	return rule.MissileDamage(wt, level) * forcePodMissileDamageFraction
}
