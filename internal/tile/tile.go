// Package tile defines the dungeon Tile entity: identity, orientation, and
// features. Orientation is mutable only before placement (during the
// pick/rotate commands of a single turn); Field owns that lifecycle.
package tile

import "github.com/duskvale/dungeonengine/internal/geometry"

// Feature is a special property a tile can carry, per spec.md §3.
type Feature string

const (
	HealingFountain  Feature = "HEALING_FOUNTAIN"
	TeleportationGate Feature = "TELEPORTATION_GATE"
)

// Tile is an immutable-after-placement dungeon cell.
type Tile struct {
	TileID      string
	Orientation geometry.TileOrientation
	Room        bool
	Features    map[Feature]bool
}

// HasFeature reports whether the tile carries the given feature.
func (t Tile) HasFeature(f Feature) bool {
	return t.Features[f]
}

// WithFeature returns a copy of t with f added.
func (t Tile) WithFeature(f Feature) Tile {
	out := t.clone()
	out.Features[f] = true
	return out
}

func (t Tile) clone() Tile {
	features := make(map[Feature]bool, len(t.Features))
	for k, v := range t.Features {
		features[k] = v
	}
	return Tile{TileID: t.TileID, Orientation: t.Orientation, Room: t.Room, Features: features}
}

// Rotated returns a copy of t with its orientation replaced. Field calls
// this only while the tile is still the unplacedTile.
func (t Tile) Rotated(o geometry.TileOrientation) Tile {
	out := t.clone()
	out.Orientation = o
	return out
}
