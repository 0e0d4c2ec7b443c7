// Package field implements the Field aggregate from spec.md §4.1: the
// dungeon grid, tile orientations, item placement, reachability
// transitions, teleport/healing features, and the at-most-one unplaced
// tile. Grounded on the teacher's cmd/server/gamestate.go GameState
// (mutex-guarded maps built up incrementally as tiles are placed) and
// visibility.go's traversal style, adapted from a static loaded segment to
// a dynamically grown deck-fed grid.
package field

import (
	"sync"

	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/deck"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/tile"
)

// Start is always the field's origin, tagged HEALING_FOUNTAIN per
// spec.md §4.1.
var Start = geometry.FieldPlace{X: 0, Y: 0}

// UnplacedTile is the single tile picked this turn but not yet placed.
type UnplacedTile struct {
	TileID      string
	Orientation geometry.TileOrientation
	Room        bool
	Features    map[tile.Feature]bool
}

// BattleInfo is the snapshot of the most recent battle, cleared on
// TurnStarted (spec.md §3 lastBattleInfo).
type BattleInfo struct {
	BattleID              string
	Position              geometry.FieldPlace
	MonsterType           string
	MonsterHP             int
	Dice                  [2]int
	TotalDamage           int
	Result                string
	AvailableConsumables  []catalogdata.Item
	Reward                *RewardInfo
}

// RewardInfo describes the item at stake or won in the last battle.
type RewardInfo struct {
	Item            catalogdata.Item
	IsPotentialReward bool
	AutoCollected   bool
}

// Field is the per-game dungeon grid aggregate.
type Field struct {
	mu sync.Mutex

	deck *deck.Deck
	bag  *deck.Bag

	tiles                          map[geometry.FieldPlace]tile.Tile
	roomFieldPlaces                map[geometry.FieldPlace]bool
	availableFieldPlaces            map[geometry.FieldPlace]bool
	availableFieldPlacesOrientation map[geometry.FieldPlace]geometry.TileOrientation
	items                          map[geometry.FieldPlace]catalogdata.Item
	transitions                    map[geometry.FieldPlace]map[geometry.FieldPlace]bool
	teleportationGatePositions     map[geometry.FieldPlace]bool
	healingFountainPositions       map[geometry.FieldPlace]bool
	consumedItemIDs                map[string]bool

	unplacedTile *UnplacedTile
	lastBattle   *BattleInfo
	testDice     []int
}

// New creates an empty field wired to the game's deck and bag. Call
// Create to install the starting tile once the deck/bag are populated.
func New(d *deck.Deck, b *deck.Bag, testDiceRolls []int) *Field {
	return &Field{
		deck:                            d,
		bag:                             b,
		tiles:                           make(map[geometry.FieldPlace]tile.Tile),
		roomFieldPlaces:                 make(map[geometry.FieldPlace]bool),
		availableFieldPlaces:            make(map[geometry.FieldPlace]bool),
		availableFieldPlacesOrientation: make(map[geometry.FieldPlace]geometry.TileOrientation),
		items:                           make(map[geometry.FieldPlace]catalogdata.Item),
		transitions:                     make(map[geometry.FieldPlace]map[geometry.FieldPlace]bool),
		teleportationGatePositions:      make(map[geometry.FieldPlace]bool),
		healingFountainPositions:        make(map[geometry.FieldPlace]bool),
		consumedItemIDs:                 make(map[string]bool),
		testDice:                        append([]int(nil), testDiceRolls...),
	}
}

// Create installs the starting tile at (0,0) drawn from the deck, tags it
// HEALING_FOUNTAIN, and seeds every sibling facing one of its open sides
// as an available place, per
// spec.md §4.1 "Create".
func (f *Field) Create() (tile.Tile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	start, err := f.deck.GetNextTile()
	if err != nil {
		return tile.Tile{}, err
	}
	start = start.WithFeature(tile.HealingFountain)

	f.tiles[Start] = start
	f.deck.MarkPlaced()
	if start.Room {
		f.roomFieldPlaces[Start] = true
	}
	f.healingFountainPositions[Start] = true

	for _, side := range geometry.AllSides {
		if !start.Orientation.IsOpen(side) {
			continue
		}
		sibling := Start.Sibling(side)
		f.availableFieldPlaces[sibling] = true
		f.addRequiredOpening(sibling, side.Opposite())
	}
	f.rebuildTransitionsForPlacement(Start, start.Orientation)

	return start, nil
}

// addRequiredOpening merges the opening a neighbor demands of whatever
// tile eventually occupies place, building up the constraint mask in
// availableFieldPlacesOrientation.
func (f *Field) addRequiredOpening(place geometry.FieldPlace, requiredSide geometry.Side) {
	mask := f.availableFieldPlacesOrientation[place]
	mask[requiredSide] = true
	f.availableFieldPlacesOrientation[place] = mask
}

// Tile returns the placed tile at p, if any.
func (f *Field) Tile(p geometry.FieldPlace) (tile.Tile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tiles[p]
	return t, ok
}

// UnplacedTile returns a copy of the currently unplaced tile, if any.
func (f *Field) UnplacedTile() *UnplacedTile {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unplacedTile == nil {
		return nil
	}
	cp := *f.unplacedTile
	return &cp
}

// LastBattleInfo returns the most recent battle snapshot, if any.
func (f *Field) LastBattleInfo() *BattleInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastBattle == nil {
		return nil
	}
	cp := *f.lastBattle
	return &cp
}

// ClearLastBattleInfo clears lastBattleInfo, called on TurnStarted per
// spec.md §3.
func (f *Field) ClearLastBattleInfo() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastBattle = nil
}

// DeckRemaining reports how many tiles are left to draw.
func (f *Field) DeckRemaining() int {
	return f.deck.Remaining()
}

// DeckIsEmpty reports whether the deck has been drawn down to empty.
func (f *Field) DeckIsEmpty() bool {
	return f.deck.IsEmpty()
}

// IsHealingFountain reports whether p carries the healing fountain feature.
func (f *Field) IsHealingFountain(p geometry.FieldPlace) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.healingFountainPositions[p]
}

// IsTeleportGate reports whether p carries the teleportation gate feature.
func (f *Field) IsTeleportGate(p geometry.FieldPlace) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.teleportationGatePositions[p]
}

// AvailablePlaces describes what a player standing at pos can do next, per
// spec.md §4.1 "Available places for player". alive must be false when the
// player is defeated or at 0 HP, in which case both lists are empty.
func (f *Field) AvailablePlaces(pos geometry.FieldPlace, alive bool) (moveTo []geometry.FieldPlace, placeTile []geometry.FieldPlace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !alive {
		return nil, nil
	}
	for q := range f.transitions[pos] {
		moveTo = append(moveTo, q)
		if _, placed := f.tiles[q]; !placed {
			placeTile = append(placeTile, q)
		}
	}
	return moveTo, placeTile
}

// Transitions returns the reachable neighbors of p (a copy, safe to range
// over without holding the lock).
func (f *Field) Transitions(p geometry.FieldPlace) []geometry.FieldPlace {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]geometry.FieldPlace, 0, len(f.transitions[p]))
	for q := range f.transitions[p] {
		out = append(out, q)
	}
	return out
}

// CanReach reports whether to is directly reachable from from via
// transitions (including teleport mesh edges).
func (f *Field) CanReach(from, to geometry.FieldPlace) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.transitions[from][to]
}

// ItemAt returns the field item at p, if any.
func (f *Field) ItemAt(p geometry.FieldPlace) (catalogdata.Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[p]
	return it, ok
}

// Snapshot fields below are read by the httpapi/protocol layer to build
// the GET /api/game/{gameId} response (spec.md §6).

func (f *Field) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		Tiles:            make(map[geometry.FieldPlace]tile.Tile, len(f.tiles)),
		RoomFieldPlaces:  make([]geometry.FieldPlace, 0, len(f.roomFieldPlaces)),
		AvailablePlaces:  make([]geometry.FieldPlace, 0, len(f.availableFieldPlaces)),
		Items:            make(map[geometry.FieldPlace]catalogdata.Item, len(f.items)),
		HealingFountains: make([]geometry.FieldPlace, 0, len(f.healingFountainPositions)),
	}
	for p, t := range f.tiles {
		s.Tiles[p] = t
	}
	for p := range f.roomFieldPlaces {
		s.RoomFieldPlaces = append(s.RoomFieldPlaces, p)
	}
	for p := range f.availableFieldPlaces {
		s.AvailablePlaces = append(s.AvailablePlaces, p)
	}
	for p, it := range f.items {
		s.Items[p] = it
	}
	for p := range f.healingFountainPositions {
		s.HealingFountains = append(s.HealingFountains, p)
	}
	return s
}

// Snapshot is the read-only view of Field used by the transport layer.
type Snapshot struct {
	Tiles            map[geometry.FieldPlace]tile.Tile
	RoomFieldPlaces  []geometry.FieldPlace
	AvailablePlaces  []geometry.FieldPlace
	Items            map[geometry.FieldPlace]catalogdata.Item
	HealingFountains []geometry.FieldPlace
}
