package domain

// AABB is an axis-aligned bounding box in world coordinates.
type AABB struct {
	X, Y, W, H float64
}

// CollisionRule is the pure AABB/screen-bounds test service.
type CollisionRule struct{}

// AABBOverlap reports whether a and b overlap. Touching edges (equal
// right/bottom to the other's left/top) do not count as collision.
func (CollisionRule) AABBOverlap(a, b AABB) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W &&
		a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// IsOutOfBounds reports whether hb is fully outside the screen rect.
func (CollisionRule) IsOutOfBounds(hb AABB) bool {
	return hb.X+hb.W < 0 || hb.X > ScreenWidth ||
		hb.Y+hb.H < 0 || hb.Y > ScreenHeight
}

// IsPartiallyOutOfBounds reports whether any edge of hb crosses the screen
// boundary.
func (CollisionRule) IsPartiallyOutOfBounds(hb AABB) bool {
	return hb.X < 0 || hb.X+hb.W > ScreenWidth ||
		hb.Y < 0 || hb.Y+hb.H > ScreenHeight
}

// ClampToScreen returns a position such that [x,x+w] subset of [0,ScreenWidth]
// and [y,y+h] subset of [0,ScreenHeight].
func (CollisionRule) ClampToScreen(x, y, w, h float64) (cx, cy float64) {
	cx, cy = x, y
	if cx < 0 {
		cx = 0
	}
	if cx+w > ScreenWidth {
		cx = ScreenWidth - w
	}
	if cy < 0 {
		cy = 0
	}
	if cy+h > ScreenHeight {
		cy = ScreenHeight - h
	}
	return cx, cy
}
