package config

import (
	"github.com/duskvale/dungeonengine/internal/deck"
)

// PlayerOverride overrides a single player's starting stats.
type PlayerOverride struct {
	MaxHP int
}

// TestSetup is per-game deterministic seeding supplied by
// POST /api/test/setup-game before GameCreated. It is always threaded
// explicitly through game creation — spec.md §9 is explicit that
// test-mode dice/tile/item sequences are per-game state, never a
// package-level singleton, so this struct carries no receiver methods
// that could be shared across games.
type TestSetup struct {
	Enabled         bool
	DiceRolls       []int
	TileSequence    []deck.TileSpec
	ItemSequence    []deck.ItemSpec
	PlayerOverrides map[string]PlayerOverride
}
