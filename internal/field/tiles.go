package field

import (
	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/tile"
)

// PickTile draws the next deck tile, rotates it so requiredOpenSide is
// open (trying 0,-90,-180,-270 clockwise, keeping the first match or the
// original orientation), and stores it as the unplaced tile. Per
// spec.md §4.1, the deck must have no previously-picked-but-unplaced tile.
func (f *Field) PickTile(requiredOpenSide geometry.Side) (tile.Tile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unplacedTile != nil {
		return tile.Tile{}, engineerr.New(engineerr.CannotPlaceTileUntilPrevIsPlaced, "previous tile has not been placed yet")
	}
	if !f.deck.ReadyToPick() {
		return tile.Tile{}, engineerr.New(engineerr.CannotPlaceTileUntilPrevIsPlaced, "deck has an unplaced tile outstanding")
	}

	drawn, err := f.deck.GetNextTile()
	if err != nil {
		return tile.Tile{}, err
	}

	rotated := drawn.Orientation.RotateToOpen(requiredOpenSide)
	drawn = drawn.Rotated(rotated)

	f.unplacedTile = &UnplacedTile{
		TileID:      drawn.TileID,
		Orientation: drawn.Orientation,
		Room:        drawn.Room,
		Features:    drawn.Features,
	}
	return drawn, nil
}

// RotateTile rotates the currently unplaced tile, iterating rotations
// starting at topSide and going clockwise until requiredOpenSide is open;
// if none match, rotates to topSide regardless (spec.md §4.1).
func (f *Field) RotateTile(topSide, requiredOpenSide geometry.Side) (geometry.TileOrientation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unplacedTile == nil {
		return geometry.TileOrientation{}, engineerr.New(engineerr.TileCannotBeFound, "no unplaced tile to rotate")
	}
	rotated := f.unplacedTile.Orientation.RotateTowardTop(topSide, requiredOpenSide)
	f.unplacedTile.Orientation = rotated
	return rotated, nil
}

// PlaceTile places the unplaced tile at target, validating reachability
// from playerPos, updating every field index, and clearing unplacedTile.
// It does not draw a field item for room tiles — callers trigger that via
// DrawItemForRoom once the placement succeeds, matching spec.md §4.1's
// split between "Place tile" and "Field item placement on TilePlaced".
func (f *Field) PlaceTile(target, playerPos geometry.FieldPlace) (tile.Tile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.unplacedTile == nil {
		return tile.Tile{}, engineerr.New(engineerr.TileCannotBeFound, "no unplaced tile to place")
	}
	if !f.availableFieldPlaces[target] {
		return tile.Tile{}, engineerr.New(engineerr.FieldPlaceIsNotAvailable, "target is not an available field place")
	}

	unplaced := f.unplacedTile
	features := make(map[tile.Feature]bool, len(unplaced.Features))
	for k, v := range unplaced.Features {
		features[k] = v
	}
	placed := tile.Tile{TileID: unplaced.TileID, Orientation: unplaced.Orientation, Room: unplaced.Room, Features: features}

	reachable := f.placementIsReachable(target, playerPos, placed.Orientation)
	if !reachable {
		return tile.Tile{}, engineerr.New(engineerr.TileCannotBePlacedHere, "target is not reachable with matching open sides")
	}

	f.tiles[target] = placed
	f.deck.MarkPlaced()
	if placed.Room {
		f.roomFieldPlaces[target] = true
	}
	if placed.HasFeature(tile.TeleportationGate) {
		f.teleportationGatePositions[target] = true
	}
	if placed.HasFeature(tile.HealingFountain) {
		f.healingFountainPositions[target] = true
	}

	delete(f.availableFieldPlaces, target)
	delete(f.availableFieldPlacesOrientation, target)

	f.rebuildTransitionsForPlacement(target, placed.Orientation)

	for _, s := range geometry.AllSides {
		if !placed.Orientation.IsOpen(s) {
			continue
		}
		sibling := target.Sibling(s)
		if _, already := f.tiles[sibling]; already {
			continue
		}
		f.availableFieldPlaces[sibling] = true
		f.addRequiredOpening(sibling, s.Opposite())
		f.rebuildTransitionsForPlacement(sibling, geometry.TileOrientation{})
	}

	f.unplacedTile = nil
	return placed, nil
}

// placementIsReachable validates that target can be reached from the
// player's current position: either directly adjacent with matching open
// sides on both tiles, or already connected via existing transitions
// (teleport mesh included).
func (f *Field) placementIsReachable(target, playerPos geometry.FieldPlace, orientation geometry.TileOrientation) bool {
	if f.transitions[playerPos][target] {
		return true
	}
	side, adjacent := geometry.SideFacing(playerPos, target)
	if !adjacent {
		return false
	}
	playerTile, ok := f.tiles[playerPos]
	if !ok {
		return false
	}
	return playerTile.Orientation.IsOpen(side) && orientation.IsOpen(side.Opposite())
}
