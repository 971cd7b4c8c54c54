package domain

import "math"

// Weapon curves indexed by level [0..3]: per-level damage, cooldown, and
// projectile speed multiplier tables.
var (
	weaponDamageMult   = [4]float64{1.00, 1.15, 1.30, 1.50}
	weaponCooldownMult = [4]float64{1.00, 0.95, 0.90, 0.85}
	weaponSpeedMult    = [4]float64{1.00, 1.00, 1.00, 1.10}

	playerSpeedMults = [4]float64{1.0, 1.3, 1.6, 1.9}

	waveCannonDamageByLevel = [4]int{0, 50, 100, 250}
	waveCannonWidthByLevel  = [4]int{0, 20, 35, 55}
)

// Base per-weapon-type stats at level 0.
var baseWeaponDamage = map[WeaponType]float64{
	WeaponStandard: 20,
	WeaponSpread:   8,
	WeaponLaser:    12,
	WeaponHoming:   50,
}

var baseWeaponSpeed = map[WeaponType]float64{
	WeaponStandard: 600,
	WeaponSpread:   550,
	WeaponLaser:    900,
	WeaponHoming:   350,
}

var baseWeaponCooldown = map[WeaponType]float64{
	WeaponStandard: 0.3,
	WeaponSpread:   0.4,
	WeaponLaser:    0.18,
	WeaponHoming:   0.7,
}

var enemyBaseHealth = map[EnemyType]int{
	EnemyBasic:   40,
	EnemyTracker: 35,
	EnemyZigzag:  30,
	EnemyFast:    25,
	EnemyBomber:  80,
	EnemyArmored: 60,
}

var enemyBaseSpeed = map[EnemyType]float64{
	EnemyBasic:   -120,
	EnemyTracker: -100,
	EnemyZigzag:  -140,
	EnemyFast:    -220,
	EnemyBomber:  -80,
	EnemyArmored: -90,
}

var enemyBaseShootInterval = map[EnemyType]float64{
	EnemyBasic:   2.5,
	EnemyTracker: 2.0,
	EnemyZigzag:  3.0,
	EnemyFast:    1.5,
	EnemyBomber:  1.0,
	EnemyArmored: 4.0,
}

var enemyPoints = map[EnemyType]int{
	EnemyBasic:   100,
	EnemyTracker: 150,
	EnemyZigzag:  120,
	EnemyFast:    180,
	EnemyBomber:  250,
	EnemyArmored: 200,
}

// GameRule is the pure damage/score/enemy-stat rules service. It carries
// no state; every method is deterministic given its arguments.
type GameRule struct{}

// MissileDamage returns the damage of a weapon's missile at the given level.
func (GameRule) MissileDamage(t WeaponType, level int) float64 {
	return baseWeaponDamage[t] * weaponDamageMult[clampLevel(level)]
}

// MissileSpeed returns the missile travel speed for a weapon/level.
func (GameRule) MissileSpeed(t WeaponType, level int) float64 {
	return baseWeaponSpeed[t] * weaponSpeedMult[clampLevel(level)]
}

// WeaponCooldown returns the reload cooldown, in seconds, for a weapon/level.
func (GameRule) WeaponCooldown(t WeaponType, level int) float64 {
	return baseWeaponCooldown[t] * weaponCooldownMult[clampLevel(level)]
}

// EnemyPointValue returns the base score awarded for killing an enemy type.
func (GameRule) EnemyPointValue(t EnemyType) int {
	return enemyPoints[t]
}

// EnemyHealth returns the max HP for an enemy type.
func (GameRule) EnemyHealth(t EnemyType) int {
	return enemyBaseHealth[t]
}

// EnemySpeed returns the base horizontal drift speed (px/s, negative = left).
func (GameRule) EnemySpeed(t EnemyType) float64 {
	return enemyBaseSpeed[t]
}

// EnemyShootInterval returns the seconds between an enemy type's shots.
func (GameRule) EnemyShootInterval(t EnemyType) float64 {
	return enemyBaseShootInterval[t]
}

// ApplyComboBonus rounds base*mult to the nearest integer point award.
func (GameRule) ApplyComboBonus(base int, mult float64) int {
	return int(math.Round(float64(base) * mult))
}

// IncrementCombo advances the combo multiplier by one step, capped at comboMax.
func (GameRule) IncrementCombo(c float64) float64 {
	return math.Min(c+comboStep, comboMax)
}

// DecayCombo decays the combo toward comboMin once timeSinceKill exceeds the
// grace period; within the grace period the combo is unchanged.
func (GameRule) DecayCombo(c, dt, timeSinceKill float64) float64 {
	if timeSinceKill < comboGraceSeconds {
		return c
	}
	return math.Max(c-comboDecayPerSec*dt, comboMin)
}

// ShouldEntityDie reports whether dmg is lethal against hp.
func (GameRule) ShouldEntityDie(hp, dmg int) bool {
	return dmg >= hp
}

// ApplyDamage subtracts dmg from hp, floored at zero.
func (GameRule) ApplyDamage(hp, dmg int) int {
	if dmg >= hp {
		return 0
	}
	return hp - dmg
}

// PlayerSpeedMultiplier returns the ship-speed multiplier for a speed level
// in [0,3].
func (GameRule) PlayerSpeedMultiplier(level int) float64 {
	return playerSpeedMults[clampLevel(level)]
}

// BasePlayerSpeed returns the level-0 player speed in px/s.
func (GameRule) BasePlayerSpeed() float64 {
	return basePlayerSpeed
}

// WaveCannonDamage returns the damage of a charged wave-cannon shot by level.
func (GameRule) WaveCannonDamage(level int) int {
	return waveCannonDamageByLevel[clampWaveLevel(level)]
}

// WaveCannonWidth returns the beam width of a charged wave-cannon shot by level.
func (GameRule) WaveCannonWidth(level int) int {
	return waveCannonWidthByLevel[clampWaveLevel(level)]
}

// BossMaxHealth scales boss HP with player count and prior defeats.
func (GameRule) BossMaxHealth(playerCount, defeatCount int) int {
	extra := playerCount - 1
	if extra < 0 {
		extra = 0
	}
	return 1500 + 500*defeatCount + 1000*extra
}

// ShouldBossChangePhase reports whether the boss's current HP ratio crosses
// the threshold for transitioning into toPhase.
func (GameRule) ShouldBossChangePhase(hp, maxHP int, toPhase BossPhase) bool {
	if maxHP <= 0 {
		return false
	}
	ratio := float64(hp) / float64(maxHP)
	switch toPhase {
	case BossPhase2:
		return ratio <= 0.65
	case BossPhase3:
		return ratio <= 0.30
	default:
		return false
	}
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > 3 {
		return 3
	}
	return level
}

func clampWaveLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 3 {
		return 3
	}
	return level
}
