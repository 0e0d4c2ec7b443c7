package field

import (
	"testing"

	"github.com/duskvale/dungeonengine/internal/deck"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/tile"
)

func sequentialID(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + string(rune('0'+n))
	}
}

func newTestField(t *testing.T, tiles []deck.TileSpec, items []deck.ItemSpec) *Field {
	t.Helper()
	d := deck.NewTestDeck(tiles, sequentialID("tile-"))
	b := deck.NewTestBag(items, sequentialID("item-"))
	f := New(d, b, nil)
	if _, err := f.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return f
}

func TestCreateTagsStartAsHealingFountain(t *testing.T) {
	f := newTestField(t, []deck.TileSpec{{Orientation: geometry.FourSide, Room: true}}, nil)
	if !f.IsHealingFountain(Start) {
		t.Errorf("start tile should be a healing fountain")
	}
	moveTo, placeTile := f.AvailablePlaces(Start, true)
	if len(moveTo) != 4 || len(placeTile) != 4 {
		t.Errorf("fourSide start should expose 4 available places, got moveTo=%d placeTile=%d", len(moveTo), len(placeTile))
	}
}

func TestPickRotatePlaceLifecycle(t *testing.T) {
	f := newTestField(t, []deck.TileSpec{
		{Orientation: geometry.FourSide, Room: true},
		{Orientation: geometry.ThreeSide, Room: true}, // closed on Left pre-rotation
	}, nil)

	picked, err := f.PickTile(geometry.Left)
	if err != nil {
		t.Fatalf("PickTile failed: %v", err)
	}
	if !picked.Orientation.IsOpen(geometry.Left) {
		t.Fatalf("picked tile should have been rotated so Left is open, got %v", picked.Orientation)
	}

	target := geometry.FieldPlace{X: 1, Y: 0} // RIGHT sibling of start, faced by the tile's open Left
	placed, err := f.PlaceTile(target, Start)
	if err != nil {
		t.Fatalf("PlaceTile failed: %v", err)
	}
	if f.UnplacedTile() != nil {
		t.Errorf("unplacedTile should be cleared after a successful placement")
	}
	if got, ok := f.Tile(target); !ok || got.TileID != placed.TileID {
		t.Errorf("placed tile not recorded at target")
	}
	if !f.CanReach(Start, target) || !f.CanReach(target, Start) {
		t.Errorf("transitions should be bidirectional between start and target")
	}
}

func TestPlaceTileRejectsUnavailableTarget(t *testing.T) {
	f := newTestField(t, []deck.TileSpec{
		{Orientation: geometry.FourSide, Room: true},
		{Orientation: geometry.FourSide, Room: true},
	}, nil)
	if _, err := f.PickTile(geometry.Top); err != nil {
		t.Fatalf("PickTile failed: %v", err)
	}
	far := geometry.FieldPlace{X: 9, Y: 9}
	if _, err := f.PlaceTile(far, Start); err == nil {
		t.Fatalf("expected FieldPlaceIsNotAvailable error")
	}
}

func TestPickTileBeforePlacingPreviousFails(t *testing.T) {
	f := newTestField(t, []deck.TileSpec{
		{Orientation: geometry.FourSide, Room: true},
		{Orientation: geometry.FourSide, Room: true},
	}, nil)
	if _, err := f.PickTile(geometry.Top); err != nil {
		t.Fatalf("first pick failed: %v", err)
	}
	if _, err := f.PickTile(geometry.Top); err == nil {
		t.Fatalf("expected an error picking a second tile before placing the first")
	}
}

func TestDrawItemForRoomPlacesItemOnRoomTile(t *testing.T) {
	f := newTestField(t, []deck.TileSpec{
		{Orientation: geometry.FourSide, Room: true},
		{Orientation: geometry.FourSide, Room: true},
	}, []deck.ItemSpec{{MonsterName: "giant_rat", Type: ""}})

	if _, err := f.PickTile(geometry.Top); err != nil {
		t.Fatalf("pick failed: %v", err)
	}
	target := geometry.FieldPlace{X: 0, Y: -1}
	placed, err := f.PlaceTile(target, Start)
	if err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if !placed.Room {
		t.Fatalf("expected a room tile")
	}
	item, err := f.DrawItemForRoom(target)
	if err != nil {
		t.Fatalf("DrawItemForRoom failed: %v", err)
	}
	if item.Name != "giant_rat" {
		t.Errorf("expected giant_rat item, got %+v", item)
	}
	if got, ok := f.ItemAt(target); !ok || got.ItemID != item.ItemID {
		t.Errorf("item should be recorded on the field")
	}
}

func TestTeleportGateMesh(t *testing.T) {
	f := newTestField(t, []deck.TileSpec{
		{Orientation: geometry.FourSide, Room: false},
		{Orientation: geometry.FourSide, Room: false, Features: []tile.Feature{tile.TeleportationGate}},
		{Orientation: geometry.FourSide, Room: false, Features: []tile.Feature{tile.TeleportationGate}},
	}, nil)

	top := geometry.FieldPlace{X: 0, Y: -1}
	right := geometry.FieldPlace{X: 1, Y: 0}

	if _, err := f.PickTile(geometry.Top); err != nil {
		t.Fatalf("pick 1 failed: %v", err)
	}
	if _, err := f.PlaceTile(top, Start); err != nil {
		t.Fatalf("place 1 failed: %v", err)
	}

	if _, err := f.PickTile(geometry.Top); err != nil {
		t.Fatalf("pick 2 failed: %v", err)
	}
	if _, err := f.PlaceTile(right, Start); err != nil {
		t.Fatalf("place 2 failed: %v", err)
	}

	if !f.CanReach(top, right) || !f.CanReach(right, top) {
		t.Errorf("two teleportation gates should be mutually reachable regardless of grid distance")
	}
}
