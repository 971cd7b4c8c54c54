package domain

import "testing"

func TestAABBOverlapTouchingEdgesDoNotCollide(t *testing.T) {
	c := CollisionRule{}
	a := AABB{X: 0, Y: 0, W: 10, H: 10}
	b := AABB{X: 10, Y: 0, W: 10, H: 10} // touches a's right edge exactly
	if c.AABBOverlap(a, b) {
		t.Error("touching edges should not count as overlap")
	}
	b.X = 9.999
	if !c.AABBOverlap(a, b) {
		t.Error("expected overlap when edges cross")
	}
}

func TestClampToScreenKeepsBoxInBounds(t *testing.T) {
	c := CollisionRule{}
	cases := []struct{ x, y, w, h float64 }{
		{-50, -50, 20, 20},
		{ScreenWidth + 10, ScreenHeight + 10, 16, 8},
		{100, 100, 64, 30},
	}
	for _, tc := range cases {
		cx, cy := c.ClampToScreen(tc.x, tc.y, tc.w, tc.h)
		if cx < 0 || cx+tc.w > ScreenWidth {
			t.Errorf("ClampToScreen(%v,%v,%v,%v): x out of bounds: %v", tc.x, tc.y, tc.w, tc.h, cx)
		}
		if cy < 0 || cy+tc.h > ScreenHeight {
			t.Errorf("ClampToScreen(%v,%v,%v,%v): y out of bounds: %v", tc.x, tc.y, tc.w, tc.h, cy)
		}
	}
}

func TestIsOutOfBoundsRequiresFullyOffscreen(t *testing.T) {
	c := CollisionRule{}
	partial := AABB{X: -5, Y: 0, W: 20, H: 20}
	if c.IsOutOfBounds(partial) {
		t.Error("partially onscreen box should not be fully out of bounds")
	}
	if !c.IsPartiallyOutOfBounds(partial) {
		t.Error("expected partially-out-of-bounds to be true")
	}
	full := AABB{X: -100, Y: 0, W: 20, H: 20}
	if !c.IsOutOfBounds(full) {
		t.Error("expected fully offscreen box to be out of bounds")
	}
}
