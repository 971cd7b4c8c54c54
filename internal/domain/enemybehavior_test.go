package domain

import "testing"

func TestZigzagFlipsDirectionAfterInterval(t *testing.T) {
	b := EnemyBehavior{}
	in := EnemyMoveInput{
		Type: EnemyZigzag, CurrentX: 500, CurrentY: 500, BaseY: 500,
		DT: 0.9, ZigzagTimer: 0, ZigzagUp: false,
	}
	res := b.Step(in, -140)
	if !res.ZigzagUp {
		t.Error("expected zigzag to flip direction after exceeding 0.8s")
	}
	if res.ZigzagTimer != 0 {
		t.Errorf("expected timer reset to 0 after flip, got %v", res.ZigzagTimer)
	}
}

func TestTrackerStepClampedBySpeedLimit(t *testing.T) {
	b := EnemyBehavior{}
	in := EnemyMoveInput{
		Type: EnemyTracker, CurrentX: 500, CurrentY: 100, TargetY: 900, DT: 1.0,
	}
	res := b.Step(in, -100)
	maxStep := 150.0
	if res.NewY > in.CurrentY+maxStep+1e-9 {
		t.Errorf("tracker moved further than max step: %v", res.NewY-in.CurrentY)
	}
}

func TestBomberBaseYDrifts(t *testing.T) {
	b := EnemyBehavior{}
	in := EnemyMoveInput{Type: EnemyBomber, BaseY: 500, DT: 1.0}
	res := b.Step(in, -70)
	if res.NewBaseY <= in.BaseY {
		t.Errorf("expected bomber baseY to drift downward, got %v from %v", res.NewBaseY, in.BaseY)
	}
}

func TestYClampedToScreen(t *testing.T) {
	b := EnemyBehavior{}
	in := EnemyMoveInput{Type: EnemyBasic, CurrentY: 5000, BaseY: 5000, DT: 0}
	res := b.Step(in, 0)
	if res.NewY < 0 || res.NewY > ScreenHeight-40 {
		t.Errorf("Y not clamped: %v", res.NewY)
	}
}
