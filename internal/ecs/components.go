package ecs

import "github.com/lab1702/rtype-server/internal/domain"

// Position is the entity's world-space location.
type Position struct {
	X, Y float64
}

// Velocity is the entity's linear speed in px/s.
type Velocity struct {
	VX, VY float64
}

// Hitbox is the entity's AABB collision extent, offset from Position.
type Hitbox struct {
	W, H, OffX, OffY float64
}

// AABB returns the entity's world-space collision box given its position.
func (h Hitbox) AABB(pos Position) domain.AABB {
	return domain.AABB{X: pos.X + h.OffX, Y: pos.Y + h.OffY, W: h.W, H: h.H}
}

// Health tracks current/max hit points and god-mode invulnerability.
type Health struct {
	Current, Max int
	Invulnerable bool
}

// Lifetime decrements Remaining each tick; the entity is destroyed at <=0.
type Lifetime struct {
	Remaining, Total float64
}

// Owner records who spawned an entity (a missile, a wave cannon).
type Owner struct {
	EntityID      EntityID
	IsPlayerOwned bool
}

// PlayerTag marks an entity as one of the (up to 4) player ships.
type PlayerTag struct {
	PlayerID  int
	ShipSkin  int
	IsAlive   bool
}

// EnemyTag marks an entity as an enemy of a fixed type.
type EnemyTag struct {
	Type   domain.EnemyType
	Points int
}

// EnemyAI carries the per-enemy behavior/shooting timers.
type EnemyAI struct {
	ShootCooldown  float64
	ShootInterval  float64
	PatternTimer   float64
	BaseY          float64
	AliveTime      float64
	PhaseOffset    float64
	TargetY        float64
	ZigzagTimer    float64
	ZigzagUp       bool
}

// MissileTag marks a player- or force-pod-fired projectile.
type MissileTag struct {
	WeaponType domain.WeaponType
	BaseDamage float64
	IsHoming   bool
	TargetID   EntityID
}

// PowerUpTag marks a collectible power-up drop.
type PowerUpTag struct {
	Type PowerUpType
}

// PowerUpType enumerates the power-up kinds.
type PowerUpType int

const (
	PowerUpHealth PowerUpType = iota
	PowerUpSpeedUp
	PowerUpWeaponCrystal
	PowerUpForcePod
	PowerUpBitDevice
)

// WaveCannonTag marks a charged beam-weapon projectile.
type WaveCannonTag struct {
	ChargeLevel int
	Width       float64
}

// Weapon is a player's current weapon loadout and charge state.
type Weapon struct {
	CurrentType domain.WeaponType
	ShootCooldown float64
	IsCharging    bool
	ChargeTime    float64
	Levels        [4]int // index by domain.WeaponType
}

// SpeedLevel is a player's current speed upgrade tier, [0,3].
type SpeedLevel struct {
	Level int
}

// Score is a player's running score and combo state.
type Score struct {
	Total       int
	Kills       int
	ComboMult   float64
	ComboTimer  float64
	MaxCombo    float64
	Deaths      int
}
