package geometry

// TileOrientation is the 4-bit openness of a tile, indexed by Side:
// [top, right, bottom, left].
type TileOrientation [4]bool

// Canonical shapes before rotation. Rotating one of these generates all 11
// observable variants named in spec.md §3.
var (
	FourSide        = TileOrientation{true, true, true, true}
	ThreeSide       = TileOrientation{true, true, true, false} // one closed side (left)
	TwoSideStraight = TileOrientation{true, false, true, false}
	TwoSideCorner   = TileOrientation{true, true, false, false}
)

// IsOpen reports whether the given side is open.
func (o TileOrientation) IsOpen(s Side) bool {
	return o[s]
}

// OpenSides lists every side that is open, in clockwise order.
func (o TileOrientation) OpenSides() []Side {
	var sides []Side
	for _, s := range AllSides {
		if o[s] {
			sides = append(sides, s)
		}
	}
	return sides
}

// RotateClockwise rotates the orientation by the given number of 90-degree
// clockwise steps. Rotating to put side s on top is a left-shift of the
// 4-tuple by s, matching spec.md §3's "rotating to put side s on top".
func (o TileOrientation) RotateClockwise(steps int) TileOrientation {
	steps = ((steps % 4) + 4) % 4
	var out TileOrientation
	for i := 0; i < 4; i++ {
		out[i] = o[(i+steps)%4]
	}
	return out
}

// RotationQuad returns the four rotations of o starting at 0 degrees and
// proceeding clockwise: [0, 90, 180, 270].
func (o TileOrientation) RotationQuad() [4]TileOrientation {
	return [4]TileOrientation{
		o.RotateClockwise(0),
		o.RotateClockwise(1),
		o.RotateClockwise(2),
		o.RotateClockwise(3),
	}
}

// RotateToOpen tries rotations 0,1,2,3 (clockwise, i.e. 0,-90,-180,-270 per
// spec.md §4.1) and returns the first orientation with requiredSide open.
// If none match, the original orientation is returned unchanged.
func (o TileOrientation) RotateToOpen(requiredSide Side) TileOrientation {
	for _, rotated := range o.RotationQuad() {
		if rotated.IsOpen(requiredSide) {
			return rotated
		}
	}
	return o
}

// RotateTowardTop rotates o, starting at topSide and going clockwise, until
// the first rotation with requiredOpenSide open; if none match, rotates to
// topSide regardless. Used by Field's RotateTile operation (spec.md §4.1).
func (o TileOrientation) RotateTowardTop(topSide, requiredOpenSide Side) TileOrientation {
	base := o.RotateClockwise(int(topSide))
	for i := 0; i < 4; i++ {
		candidate := base.RotateClockwise(i)
		if candidate.IsOpen(requiredOpenSide) {
			return candidate
		}
	}
	return base
}
