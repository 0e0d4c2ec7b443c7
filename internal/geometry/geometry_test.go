package geometry

import "testing"

func TestOppositeSide(t *testing.T) {
	cases := map[Side]Side{
		Top:    Bottom,
		Right:  Left,
		Bottom: Top,
		Left:   Right,
	}
	for side, want := range cases {
		if got := side.Opposite(); got != want {
			t.Errorf("Opposite(%v) = %v, want %v", side, got, want)
		}
	}
}

func TestSiblingRoundTrip(t *testing.T) {
	p := FieldPlace{X: 2, Y: -1}
	for _, s := range AllSides {
		q := p.Sibling(s)
		back := q.Sibling(s.Opposite())
		if back != p {
			t.Errorf("Sibling(%v) then Sibling(opposite) = %v, want %v", s, back, p)
		}
	}
}

func TestSideFacing(t *testing.T) {
	p := FieldPlace{X: 0, Y: 0}
	q := FieldPlace{X: 1, Y: 0}
	side, ok := SideFacing(p, q)
	if !ok || side != Right {
		t.Errorf("SideFacing(%v,%v) = %v,%v want RIGHT,true", p, q, side, ok)
	}
	if _, ok := SideFacing(p, FieldPlace{X: 5, Y: 5}); ok {
		t.Errorf("SideFacing should report false for non-adjacent places")
	}
}

// TestRotationIdempotence checks that consecutive rotations by
// TOP,RIGHT,BOTTOM,LEFT equal one rotation by their summed steps, and that
// four 90-degree steps return the original orientation.
func TestRotationIdempotence(t *testing.T) {
	o := ThreeSide
	got := o.RotateClockwise(int(Top)).RotateClockwise(int(Right)).RotateClockwise(int(Bottom)).RotateClockwise(int(Left))
	want := o.RotateClockwise(int(Top) + int(Right) + int(Bottom) + int(Left))
	if got != want {
		t.Errorf("cumulative rotation mismatch: got %v want %v", got, want)
	}
	if full := o.RotateClockwise(4); full != o {
		t.Errorf("RotateClockwise(4) = %v, want identity %v", full, o)
	}
}

func TestRotateToOpen(t *testing.T) {
	o := ThreeSide // closed on Left
	rotated := o.RotateToOpen(Left)
	if !rotated.IsOpen(Left) {
		t.Errorf("RotateToOpen(Left) = %v, Left still closed", rotated)
	}

	full := FourSide
	if rotated := full.RotateToOpen(Top); rotated != full {
		t.Errorf("RotateToOpen on an all-open tile should be a no-op, got %v", rotated)
	}
}

func TestRotateTowardTop(t *testing.T) {
	o := TwoSideCorner // open Top,Right
	result := o.RotateTowardTop(Bottom, Left)
	if !result.IsOpen(Left) {
		t.Errorf("RotateTowardTop(Bottom, Left) = %v, Left still closed", result)
	}
}

func TestParseSideRoundTrip(t *testing.T) {
	for _, s := range AllSides {
		parsed, err := ParseSide(s.String())
		if err != nil || parsed != s {
			t.Errorf("ParseSide(%q) = %v,%v want %v,nil", s.String(), parsed, err, s)
		}
	}
	if _, err := ParseSide("NORTH"); err == nil {
		t.Errorf("expected an error parsing an unknown side")
	}
}
