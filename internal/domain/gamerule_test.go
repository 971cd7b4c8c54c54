package domain

import (
	"math"
	"testing"
)

func TestMissileDamageMonotoneInLevel(t *testing.T) {
	r := GameRule{}
	for _, wt := range []WeaponType{WeaponStandard, WeaponSpread, WeaponLaser, WeaponHoming} {
		for level := 0; level < 3; level++ {
			if r.MissileDamage(wt, level+1) < r.MissileDamage(wt, level) {
				t.Errorf("weapon %v: damage not monotone at level %d->%d", wt, level, level+1)
			}
		}
	}
}

func TestIncrementComboIdempotentAtCap(t *testing.T) {
	r := GameRule{}
	cases := []float64{3.0, 3.1, 5.0}
	for _, c := range cases {
		if got := r.IncrementCombo(c); got != comboMax {
			t.Errorf("IncrementCombo(%v) = %v, want %v", c, got, comboMax)
		}
	}
}

func TestApplyDamageNeverNegative(t *testing.T) {
	r := GameRule{}
	tests := []struct{ hp, dmg int }{
		{100, 30}, {10, 50}, {0, 0}, {5, 5},
	}
	for _, tc := range tests {
		got := r.ApplyDamage(tc.hp, tc.dmg)
		if got < 0 {
			t.Errorf("ApplyDamage(%d,%d) = %d, want >= 0", tc.hp, tc.dmg, got)
		}
		died := r.ShouldEntityDie(tc.hp, tc.dmg)
		if died != (got == 0) {
			t.Errorf("ApplyDamage(%d,%d)=%d but ShouldEntityDie=%v", tc.hp, tc.dmg, got, died)
		}
	}
}

func TestDecayComboGrace(t *testing.T) {
	r := GameRule{}
	if got := r.DecayCombo(2.0, 0.1, 1.0); got != 2.0 {
		t.Errorf("combo decayed within grace period: got %v", got)
	}
	got := r.DecayCombo(2.0, 1.0, 4.0)
	want := 1.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("DecayCombo past grace = %v, want %v", got, want)
	}
	// Clamped at comboMin.
	if got := r.DecayCombo(1.0, 10.0, 10.0); got != comboMin {
		t.Errorf("DecayCombo did not clamp at min: got %v", got)
	}
}

func TestBossMaxHealthScaling(t *testing.T) {
	r := GameRule{}
	if got := r.BossMaxHealth(1, 0); got != 1500 {
		t.Errorf("BossMaxHealth(1,0) = %d, want 1500", got)
	}
	if got := r.BossMaxHealth(4, 1); got != 1500+500+3000 {
		t.Errorf("BossMaxHealth(4,1) = %d, want %d", got, 1500+500+3000)
	}
}

func TestShouldBossChangePhase(t *testing.T) {
	r := GameRule{}
	if !r.ShouldBossChangePhase(650, 1000, BossPhase2) {
		t.Error("expected phase2 transition at 65%")
	}
	if r.ShouldBossChangePhase(660, 1000, BossPhase2) {
		t.Error("did not expect phase2 transition above 65%")
	}
	if !r.ShouldBossChangePhase(300, 1000, BossPhase3) {
		t.Error("expected phase3 transition at 30%")
	}
}

