package movement

import (
	"testing"

	"github.com/duskvale/dungeonengine/internal/deck"
	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/field"
	"github.com/duskvale/dungeonengine/internal/geometry"
)

func sequentialID(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + string(rune('0'+n))
	}
}

func newAdjacentField(t *testing.T) (*field.Field, geometry.FieldPlace) {
	t.Helper()
	d := deck.NewTestDeck([]deck.TileSpec{
		{Orientation: geometry.FourSide, Room: true},
		{Orientation: geometry.FourSide, Room: true},
	}, sequentialID("tile-"))
	b := deck.NewTestBag(nil, sequentialID("item-"))
	f := field.New(d, b, nil)
	if _, err := f.Create(); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := f.PickTile(geometry.Top); err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	target := geometry.FieldPlace{X: 0, Y: -1}
	if _, err := f.PlaceTile(target, field.Start); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	return f, target
}

func TestMoveUpdatesPosition(t *testing.T) {
	f, target := newAdjacentField(t)
	m := New()
	m.InitializePlayer("p1")

	res, err := m.Move(f, "p1", target, false)
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if res.To != target || m.PositionOf("p1") != target {
		t.Errorf("expected player at %v, got %v", target, m.PositionOf("p1"))
	}
}

func TestMoveRejectsUnreachable(t *testing.T) {
	f, _ := newAdjacentField(t)
	m := New()
	m.InitializePlayer("p1")

	_, err := m.Move(f, "p1", geometry.FieldPlace{X: 50, Y: 50}, false)
	if !engineerr.As(err, engineerr.PositionUnreachable) {
		t.Fatalf("expected PositionUnreachable, got %v", err)
	}
}

func TestPostBattleLockBlocksNonBattleReturnMoves(t *testing.T) {
	f, target := newAdjacentField(t)
	m := New()
	m.InitializePlayer("p1")
	m.LockAfterBattle("p1")

	_, err := m.Move(f, "p1", target, false)
	if !engineerr.As(err, engineerr.CannotMoveAfterBattle) {
		t.Fatalf("expected CannotMoveAfterBattle, got %v", err)
	}

	// Battle-return moves bypass the lock.
	if _, err := m.Move(f, "p1", target, true); err != nil {
		t.Fatalf("battle-return move should bypass the lock: %v", err)
	}

	m.ClearLock("p1")
	if m.IsLocked("p1") {
		t.Errorf("lock should be cleared")
	}
}
