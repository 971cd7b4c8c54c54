package domain

import "math"

// EnemyMoveInput bundles the per-tick inputs EnemyBehavior needs to compute
// one enemy's movement step.
type EnemyMoveInput struct {
	Type         EnemyType
	CurrentX, CurrentY float64
	BaseY        float64
	AliveTime    float64
	PhaseOffset  float64
	DT           float64
	TargetY      float64
	ZigzagTimer  float64
	ZigzagUp     bool
}

// EnemyMoveResult is what EnemyBehavior computes for one tick.
type EnemyMoveResult struct {
	NewX, NewY     float64
	NewBaseY       float64
	ZigzagTimer    float64
	ZigzagUp       bool
}

const (
	zigzagFlipSeconds = 0.8
	zigzagSpeed       = 300.0
	trackerMaxStep    = 150.0
)

// EnemyBehavior computes per-type enemy movement integration. Pure: given
// the same EnemyMoveInput it always returns the same EnemyMoveResult.
type EnemyBehavior struct{}

// Step advances one enemy's position by dt according to its type's pattern.
func (EnemyBehavior) Step(in EnemyMoveInput, speedX float64) EnemyMoveResult {
	res := EnemyMoveResult{
		NewBaseY:    in.BaseY,
		ZigzagTimer: in.ZigzagTimer,
		ZigzagUp:    in.ZigzagUp,
	}

	res.NewX = in.CurrentX + speedX*in.DT

	switch in.Type {
	case EnemyBasic, EnemyArmored:
		res.NewY = in.BaseY + 80*math.Sin(1.8*in.AliveTime+in.PhaseOffset)
	case EnemyFast:
		res.NewY = in.BaseY + (80*0.6)*math.Sin((1.8*2.5)*in.AliveTime+in.PhaseOffset)
	case EnemyBomber:
		res.NewBaseY = in.BaseY + 10*in.DT
		res.NewY = res.NewBaseY + (80*0.3)*math.Sin((1.8*0.5)*in.AliveTime+in.PhaseOffset)
	case EnemyTracker:
		dy := in.TargetY - in.CurrentY
		step := trackerMaxStep * in.DT
		if dy > step {
			dy = step
		} else if dy < -step {
			dy = -step
		}
		res.NewY = in.CurrentY + dy
	case EnemyZigzag:
		res.ZigzagTimer += in.DT
		if res.ZigzagTimer >= zigzagFlipSeconds {
			res.ZigzagTimer = 0
			res.ZigzagUp = !res.ZigzagUp
		}
		dir := -1.0
		if res.ZigzagUp {
			dir = 1.0
		}
		res.NewY = in.CurrentY + dir*zigzagSpeed*in.DT
	default:
		res.NewY = in.CurrentY
	}

	res.NewY = clamp(res.NewY, 0, ScreenHeight-40)
	res.NewBaseY = clamp(res.NewBaseY, 100, 900)

	return res
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
