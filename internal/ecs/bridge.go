package ecs

import "github.com/lab1702/rtype-server/internal/domain"

// DomainBridge is the sole path by which systems reach the pure Domain
// services. Systems hold a *DomainBridge, never a domain.GameRule/
// CollisionRule/EnemyBehavior directly, so the inner->outer dependency
// stays one-way: domain has no idea ecs exists.
type DomainBridge struct {
	rule      domain.GameRule
	collision domain.CollisionRule
	behavior  domain.EnemyBehavior
}

// NewDomainBridge wires the three stateless Domain services behind one
// handle.
func NewDomainBridge() *DomainBridge {
	return &DomainBridge{}
}

func (b *DomainBridge) MissileDamage(t domain.WeaponType, level int) float64 {
	return b.rule.MissileDamage(t, level)
}

func (b *DomainBridge) MissileSpeed(t domain.WeaponType, level int) float64 {
	return b.rule.MissileSpeed(t, level)
}

func (b *DomainBridge) WeaponCooldown(t domain.WeaponType, level int) float64 {
	return b.rule.WeaponCooldown(t, level)
}

func (b *DomainBridge) EnemyPointValue(t domain.EnemyType) int {
	return b.rule.EnemyPointValue(t)
}

func (b *DomainBridge) EnemyHealth(t domain.EnemyType) int {
	return b.rule.EnemyHealth(t)
}

func (b *DomainBridge) EnemySpeed(t domain.EnemyType) float64 {
	return b.rule.EnemySpeed(t)
}

func (b *DomainBridge) EnemyShootInterval(t domain.EnemyType) float64 {
	return b.rule.EnemyShootInterval(t)
}

func (b *DomainBridge) ApplyComboBonus(base int, mult float64) int {
	return b.rule.ApplyComboBonus(base, mult)
}

func (b *DomainBridge) IncrementCombo(c float64) float64 {
	return b.rule.IncrementCombo(c)
}

func (b *DomainBridge) DecayCombo(c, dt, timeSinceKill float64) float64 {
	return b.rule.DecayCombo(c, dt, timeSinceKill)
}

func (b *DomainBridge) ShouldEntityDie(hp, dmg int) bool {
	return b.rule.ShouldEntityDie(hp, dmg)
}

func (b *DomainBridge) ApplyDamage(hp, dmg int) int {
	return b.rule.ApplyDamage(hp, dmg)
}

func (b *DomainBridge) PlayerSpeedMultiplier(level int) float64 {
	return b.rule.PlayerSpeedMultiplier(level)
}

func (b *DomainBridge) BasePlayerSpeed() float64 {
	return b.rule.BasePlayerSpeed()
}

func (b *DomainBridge) WaveCannonDamage(level int) int {
	return b.rule.WaveCannonDamage(level)
}

func (b *DomainBridge) WaveCannonWidth(level int) int {
	return b.rule.WaveCannonWidth(level)
}

func (b *DomainBridge) AABBOverlap(a, c domain.AABB) bool {
	return b.collision.AABBOverlap(a, c)
}

func (b *DomainBridge) IsOutOfBounds(hb domain.AABB) bool {
	return b.collision.IsOutOfBounds(hb)
}

func (b *DomainBridge) ClampToScreen(x, y, w, h float64) (float64, float64) {
	return b.collision.ClampToScreen(x, y, w, h)
}

func (b *DomainBridge) StepEnemy(in domain.EnemyMoveInput, speedX float64) domain.EnemyMoveResult {
	return b.behavior.Step(in, speedX)
}
