package field

import (
	"github.com/duskvale/dungeonengine/internal/geometry"
)

// link adds a bidirectional transition edge between p and q. Assumes the
// caller holds f.mu.
func (f *Field) link(p, q geometry.FieldPlace) {
	if f.transitions[p] == nil {
		f.transitions[p] = make(map[geometry.FieldPlace]bool)
	}
	if f.transitions[q] == nil {
		f.transitions[q] = make(map[geometry.FieldPlace]bool)
	}
	f.transitions[p][q] = true
	f.transitions[q][p] = true
}

// directedPlaceholder records a one-way p->q edge used to surface
// "moveTo" candidates toward an empty, available cell (spec.md §4.1 rule
// 1's "directed placeholder").
func (f *Field) directedPlaceholder(p, q geometry.FieldPlace) {
	if f.transitions[p] == nil {
		f.transitions[p] = make(map[geometry.FieldPlace]bool)
	}
	f.transitions[p][q] = true
}

// rebuildTransitionsForPlacement applies the three transition rules from
// spec.md §4.1 for a tile newly placed at p with orientation o. Assumes
// the caller holds f.mu.
func (f *Field) rebuildTransitionsForPlacement(p geometry.FieldPlace, o geometry.TileOrientation) {
	// Rule 1: open sides toward placed neighbors with a matching open
	// side become bidirectional edges; toward available-but-empty cells,
	// a directed placeholder.
	for _, s := range geometry.AllSides {
		if !o.IsOpen(s) {
			continue
		}
		q := p.Sibling(s)
		if neighborTile, placed := f.tiles[q]; placed {
			if neighborTile.Orientation.IsOpen(s.Opposite()) {
				f.link(p, q)
			}
		} else if f.availableFieldPlaces[q] {
			f.directedPlaceholder(p, q)
		}
	}

	// Rule 2: teleportation gates form a complete mesh.
	if f.teleportationGatePositions[p] {
		for g := range f.teleportationGatePositions {
			if g != p {
				f.link(p, g)
			}
		}
	}

	// Rule 3: a newly available empty cell also picks up reverse edges
	// from any already-placed, facing-open occupied siblings.
	for _, s := range geometry.AllSides {
		q := p.Sibling(s)
		if _, placed := f.tiles[q]; placed {
			continue
		}
		if !f.availableFieldPlaces[q] {
			continue
		}
		for _, qs := range geometry.AllSides {
			occupant := q.Sibling(qs)
			occupantTile, ok := f.tiles[occupant]
			if !ok {
				continue
			}
			if occupantTile.Orientation.IsOpen(qs.Opposite()) {
				f.directedPlaceholder(occupant, q)
			}
		}
	}
}
