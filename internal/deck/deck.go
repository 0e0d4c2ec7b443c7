// Package deck implements the ordered, finite tile Deck and item Bag from
// spec.md §4.5: a mutex-guarded slice consumed front-to-back, with a
// deterministic test-mode override. Grounded on the teacher's
// cmd/server/treasure_deck.go TreasureDeckManager (mutex + slice + draw),
// simplified because this engine's decks never reshuffle a discard pile —
// they are drawn down to empty, at which point the client falls back to
// movement-only mode per spec.md §7.
package deck

import (
	"math/rand"
	"sync"

	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/tile"
)

// TileSpec is one queued-but-not-yet-materialized tile. NamedOrientation
// identifies one of the canonical shapes in geometry (fourSideRoom,
// twoSideStraight, ...); Orientation is used directly when a test fixture
// supplies an explicit shape instead.
type TileSpec struct {
	NamedOrientation string
	Orientation      geometry.TileOrientation
	Room             bool
	Features         []tile.Feature
}

func namedOrientation(name string) (geometry.TileOrientation, bool) {
	switch name {
	case "fourSide", "fourSideRoom", "fourSideCorridor":
		return geometry.FourSide, true
	case "threeSide", "threeSideRoom", "threeSideCorridor":
		return geometry.ThreeSide, true
	case "twoSideStraight":
		return geometry.TwoSideStraight, true
	case "twoSideCorner":
		return geometry.TwoSideCorner, true
	default:
		return geometry.TileOrientation{}, false
	}
}

func (s TileSpec) resolve() geometry.TileOrientation {
	if s.NamedOrientation != "" {
		if o, ok := namedOrientation(s.NamedOrientation); ok {
			return o
		}
	}
	return s.Orientation
}

// Deck is a finite, ordered sequence of tiles. Not safe for concurrent use
// across goroutines outside of the owning GameBus worker, which already
// serializes access per spec.md §5; the mutex exists so tests and the
// transport's read-only GET handler can inspect remaining/total safely.
type Deck struct {
	mu        sync.Mutex
	remaining []TileSpec
	total     int
	placed    int
	nextID    func() string
}

// NewClassicDeck builds the default randomized deck of n tiles mixing room
// and corridor shapes, used when no test tileSequence is supplied.
func NewClassicDeck(n int, nextID func() string, rng *rand.Rand) *Deck {
	specs := make([]TileSpec, 0, n)
	shapes := []string{"fourSide", "threeSide", "twoSideStraight", "twoSideCorner"}
	for i := 0; i < n; i++ {
		specs = append(specs, TileSpec{
			NamedOrientation: shapes[rng.Intn(len(shapes))],
			Room:             rng.Intn(2) == 0,
		})
	}
	return &Deck{remaining: specs, total: n, nextID: nextID}
}

// NewTestDeck builds a deck from an explicit, ordered test tileSequence.
func NewTestDeck(sequence []TileSpec, nextID func() string) *Deck {
	cp := make([]TileSpec, len(sequence))
	copy(cp, sequence)
	return &Deck{remaining: cp, total: len(cp), nextID: nextID}
}

// Total returns the deck's starting size.
func (d *Deck) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.total
}

// Remaining returns how many tiles have not yet been drawn.
func (d *Deck) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.remaining)
}

// IsEmpty reports whether the deck has no tiles left to draw.
func (d *Deck) IsEmpty() bool {
	return d.Remaining() == 0
}

// PlacedCount returns how many drawn tiles have since been placed.
func (d *Deck) PlacedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.placed
}

// ReadyToPick enforces spec.md §4.5's invariant: a new pick is only valid
// when placedCount == totalCount - remaining, i.e. no previously-picked
// tile is still sitting unplaced.
func (d *Deck) ReadyToPick() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.placed == d.total-len(d.remaining)
}

// GetNextTile draws the next tile, returning engineerr.NoTilesLeftInDeck
// when the deck is exhausted.
func (d *Deck) GetNextTile() (tile.Tile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.remaining) == 0 {
		return tile.Tile{}, engineerr.New(engineerr.NoTilesLeftInDeck, "deck is empty")
	}
	spec := d.remaining[0]
	d.remaining = d.remaining[1:]
	features := make(map[tile.Feature]bool, len(spec.Features))
	for _, f := range spec.Features {
		features[f] = true
	}
	return tile.Tile{
		TileID:      d.nextID(),
		Orientation: spec.resolve(),
		Room:        spec.Room,
		Features:    features,
	}, nil
}

// MarkPlaced records that a previously-drawn tile has been placed,
// advancing placedCount for the ReadyToPick invariant.
func (d *Deck) MarkPlaced() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.placed++
}
