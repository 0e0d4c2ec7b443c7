// Package protocol defines the wire-level command/event/snapshot types
// exchanged between the httpapi transport and the MessageBus. Grounded on
// the teacher's internal/protocol/intent.go IntentEnvelope pattern, with
// the door-toggle-specific request types replaced by this engine's own
// command vocabulary from spec.md §6 (this domain has no doors).
package protocol

import "github.com/duskvale/dungeonengine/internal/geometry"

// ToggleTestMode flips process-wide test switches for new games only.
type ToggleTestMode struct {
	Enabled bool `json:"enabled"`
}

// TileSpecWire is the wire form of a deterministic tile-sequence entry:
// either a named orientation shorthand or an explicit shape.
type TileSpecWire struct {
	Named       string                    `json:"named,omitempty"`
	Orientation *geometry.TileOrientation `json:"orientation,omitempty"`
	Room        bool                      `json:"room,omitempty"`
	Features    []string                  `json:"features,omitempty"`
}

// ItemSpecWire is the wire form of a deterministic item-sequence entry.
type ItemSpecWire struct {
	MonsterName   string `json:"monsterName"`
	Type          string `json:"type"`
	TreasureValue int    `json:"treasureValue,omitempty"`
}

// PlayerConfigWire overrides a single player's starting stats for a
// seeded test game.
type PlayerConfigWire struct {
	MaxHP int `json:"maxHp,omitempty"`
}

// SetupGame pre-seeds a game's deterministic state before GameCreated.
type SetupGame struct {
	GameID        string                      `json:"gameId"`
	DiceRolls     []int                       `json:"diceRolls,omitempty"`
	TileSequence  []TileSpecWire              `json:"tileSequence,omitempty"`
	ItemSequence  []ItemSpecWire              `json:"itemSequence,omitempty"`
	PlayerConfigs map[string]PlayerConfigWire `json:"playerConfigs,omitempty"`
	PlayerIDs     []string                    `json:"playerIds"`
}

// PickTile draws the next tile from the deck, pre-rotated so
// requiredOpenSide faces the target.
type PickTile struct {
	GameID           string `json:"gameId"`
	PlayerID         string `json:"playerId"`
	TurnID           string `json:"turnId"`
	RequiredOpenSide string `json:"requiredOpenSide"`
}

// RotateTile rotates the currently unplaced tile, starting from topSide
// and advancing clockwise until requiredOpenSide is open.
type RotateTile struct {
	GameID           string `json:"gameId"`
	PlayerID         string `json:"playerId"`
	TurnID           string `json:"turnId"`
	TopSide          string `json:"topSide"`
	RequiredOpenSide string `json:"requiredOpenSide"`
}

// PlaceTile commits the unplaced tile at fieldPlace.
type PlaceTile struct {
	GameID     string               `json:"gameId"`
	TileID     string               `json:"tileId"`
	FieldPlace geometry.FieldPlace  `json:"fieldPlace"`
	PlayerID   string               `json:"playerId"`
	TurnID     string               `json:"turnId"`
}

// MovePlayer requests a position change for playerId, or triggers
// StartBattle if an undefeated monster guards the destination.
type MovePlayer struct {
	GameID               string              `json:"gameId"`
	PlayerID             string              `json:"playerId"`
	TurnID               string              `json:"turnId"`
	FromPosition         geometry.FieldPlace `json:"fromPosition"`
	ToPosition           geometry.FieldPlace `json:"toPosition"`
	IgnoreMonster        bool                `json:"ignoreMonster,omitempty"`
	IsTilePlacementMove  bool                `json:"isTilePlacementMove,omitempty"`
}

// FinalizeBattle confirms (or declines) consumable use for a battle
// paused with needsConsumableConfirmation=true.
type FinalizeBattle struct {
	BattleID              string   `json:"battleId"`
	GameID                string   `json:"gameId"`
	PlayerID              string   `json:"playerId"`
	TurnID                string   `json:"turnId"`
	SelectedConsumableIDs []string `json:"selectedConsumableIds,omitempty"`
	PickupItem            bool     `json:"pickupItem,omitempty"`
}

// PickItem collects the item at the player's current position.
type PickItem struct {
	GameID          string  `json:"gameId"`
	PlayerID        string  `json:"playerId"`
	TurnID          string  `json:"turnId"`
	Position        geometry.FieldPlace `json:"position"`
	ItemIDToReplace *string `json:"itemIdToReplace,omitempty"`
}

// InventoryAction performs a non-pickup inventory mutation, currently
// just the explicit replace path surfaced at the transport.
type InventoryAction struct {
	GameID          string `json:"gameId"`
	PlayerID        string `json:"playerId"`
	Action          string `json:"action"`
	ItemID          string `json:"itemId"`
	ItemIDToReplace string `json:"itemIdToReplace"`
}

// UseSpell activates a carried spell item outside of battle: a teleport
// charm resets the caster's position to TargetPosition, which must be a
// healing fountain. Fireballs are never used this way — they are
// selected as battle consumables via FinalizeBattle, per spec.md §4.4.
type UseSpell struct {
	GameID         string              `json:"gameId"`
	PlayerID       string              `json:"playerId"`
	TurnID         string              `json:"turnId"`
	ItemID         string              `json:"itemId"`
	TargetPosition geometry.FieldPlace `json:"targetPosition"`
}

// EndTurn explicitly closes the caller's turn.
type EndTurn struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	TurnID   string `json:"turnId"`
}
