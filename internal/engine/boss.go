package engine

import (
	"math/rand"

	"github.com/lab1702/rtype-server/internal/domain"
	"github.com/lab1702/rtype-server/internal/ecs"
)

// BossAttack enumerates the boss's attack repertoire.
type BossAttack int

const (
	BossAttackIdle BossAttack = iota
	BossAttackLinearShots
	BossAttackSpreadShot
	BossAttackCircularBarrage
	BossAttackHomingSwarm
	BossAttackLaser
	BossAttackDash
	BossAttackSpawnMinions
	BossAttackTeleport
)

// BossMovement enumerates the boss's movement patterns.
type BossMovement int

const (
	BossMovementSinusoidal BossMovement = iota
	BossMovementTracking
	BossMovementDash
	BossMovementStationary
)

var bossAttackRotation = []BossAttack{
	BossAttackLinearShots, BossAttackSpreadShot, BossAttackCircularBarrage,
	BossAttackLaser, BossAttackDash, BossAttackSpawnMinions,
	BossAttackTeleport, BossAttackHomingSwarm,
}

const (
	bossCadenceP1 = 2.0
	bossCadenceP2 = 1.5
	bossCadenceP3 = 1.0

	bossMinionCooldown = 5.0
)

var bossMinionCap = map[domain.BossPhase]int{
	domain.BossPhase2: 4,
	domain.BossPhase3: 8,
}

// Boss is the boss fight's full state machine, one per room, present only
// once waveNumber reaches bossSpawnWave.
type Boss struct {
	Entity ecs.EntityID
	HP, MaxHP       int
	Phase           domain.BossPhase
	Movement        BossMovement
	CurrentAttack   BossAttack
	AttackIndex     int
	AttackTimer     float64
	MinionTimer     float64
	MinionCount     int
	DashTimer       float64
	X, Y            float64
}

func newBoss(rule domain.GameRule, playerCount, defeatCount int) *Boss {
	maxHP := rule.BossMaxHealth(playerCount, defeatCount)
	return &Boss{
		HP: maxHP, MaxHP: maxHP,
		Phase:    domain.BossPhase1,
		Movement: BossMovementSinusoidal,
		X:        bossSpawnX, Y: bossSpawnY,
	}
}

// cadence returns the current phase's attack-selection interval.
func (b *Boss) cadence() float64 {
	switch b.Phase {
	case domain.BossPhase2:
		return bossCadenceP2
	case domain.BossPhase3:
		return bossCadenceP3
	default:
		return bossCadenceP1
	}
}

// updatePhase advances the boss's phase based on its current HP ratio.
func (b *Boss) updatePhase(rule domain.GameRule) {
	if b.Phase < domain.BossPhase3 && rule.ShouldBossChangePhase(b.HP, b.MaxHP, domain.BossPhase3) {
		logBossPhase(int(b.Phase), int(domain.BossPhase3))
		b.Phase = domain.BossPhase3
	} else if b.Phase < domain.BossPhase2 && rule.ShouldBossChangePhase(b.HP, b.MaxHP, domain.BossPhase2) {
		logBossPhase(int(b.Phase), int(domain.BossPhase2))
		b.Phase = domain.BossPhase2
	}
}

// selectNextAttack rotates the attack pattern index with the phase's cadence.
func (b *Boss) selectNextAttack(rng *rand.Rand) {
	b.AttackIndex = (b.AttackIndex + 1) % len(bossAttackRotation)
	b.CurrentAttack = bossAttackRotation[b.AttackIndex]
	if b.CurrentAttack == BossAttackSpawnMinions && b.MinionCount >= bossMinionCap[b.Phase] {
		// Skip minion spawns once the phase cap is reached; fall through
		// to the next attack in rotation instead of stalling on a no-op.
		b.AttackIndex = (b.AttackIndex + 1) % len(bossAttackRotation)
		b.CurrentAttack = bossAttackRotation[b.AttackIndex]
	}
}

// tick advances the boss's attack-selection timer, picking a new attack
// whenever the phase cadence elapses.
func (b *Boss) tick(dt float64, rule domain.GameRule, rng *rand.Rand) (attackFired bool) {
	b.updatePhase(rule)
	b.AttackTimer += dt
	if b.AttackTimer >= b.cadence() {
		b.AttackTimer = 0
		b.selectNextAttack(rng)
		attackFired = true
	}
	if b.MinionTimer > 0 {
		b.MinionTimer -= dt
	}
	return attackFired
}
