package protocol

import (
	"fmt"

	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/tile"
)

// TileWire is the wire form of a Tile, encoding orientation as spec.md
// §6's "t,r,b,l" string of true|false slots.
type TileWire struct {
	TileID      string   `json:"tileId"`
	Orientation string   `json:"orientation"`
	Room        bool     `json:"room"`
	Features    []string `json:"features,omitempty"`
}

func encodeOrientation(o geometry.TileOrientation) string {
	return fmt.Sprintf("%t,%t,%t,%t", o[geometry.Top], o[geometry.Right], o[geometry.Bottom], o[geometry.Left])
}

// NewTileWire converts a domain Tile into its wire representation.
func NewTileWire(t tile.Tile) TileWire {
	return NewTileWireParts(t.TileID, t.Orientation, t.Room, t.Features)
}

// NewTileWireParts builds a TileWire from a tile's constituent fields,
// used for the still-unplaced tile (which has no tile.Tile of its own
// until PlaceTile commits it).
func NewTileWireParts(tileID string, o geometry.TileOrientation, room bool, features map[tile.Feature]bool) TileWire {
	w := TileWire{TileID: tileID, Orientation: encodeOrientation(o), Room: room}
	if features[tile.HealingFountain] {
		w.Features = append(w.Features, string(tile.HealingFountain))
	}
	if features[tile.TeleportationGate] {
		w.Features = append(w.Features, string(tile.TeleportationGate))
	}
	return w
}

// AvailablePlacesWire is the "moveTo"/"placeTile" split surfaced to
// clients (spec.md §6 GET /api/game/{gameId}).
type AvailablePlacesWire struct {
	MoveTo    []geometry.FieldPlace `json:"moveTo"`
	PlaceTile []geometry.FieldPlace `json:"placeTile"`
}

// DeckStateWire is the deck summary surfaced on the game snapshot.
type DeckStateWire struct {
	RemainingTiles int  `json:"remainingTiles"`
	IsEmpty        bool `json:"isEmpty"`
}

// InventoryWire is a player's four category slots.
type InventoryWire struct {
	Keys      []catalogdata.Item `json:"keys"`
	Weapons   []catalogdata.Item `json:"weapons"`
	Spells    []catalogdata.Item `json:"spells"`
	Treasures []catalogdata.Item `json:"treasures"`
}

// PlayerWire is one player's public state.
type PlayerWire struct {
	ID        string        `json:"id"`
	HP        int           `json:"hp"`
	Defeated  bool          `json:"defeated"`
	Inventory InventoryWire `json:"inventory"`
}

// FieldSizeWire is the field's current bounding box.
type FieldSizeWire struct {
	MinX int `json:"minX"`
	MaxX int `json:"maxX"`
	MinY int `json:"minY"`
	MaxY int `json:"maxY"`
}

// FieldWire is the field section of the game snapshot.
type FieldWire struct {
	Tiles                    []TileWire                            `json:"tiles"`
	PlayerPositions          map[string]geometry.FieldPlace         `json:"playerPositions"`
	AvailablePlaces          []geometry.FieldPlace                  `json:"availablePlaces"`
	Size                     FieldSizeWire                          `json:"size"`
	TileOrientations         map[string]string                      `json:"tileOrientations"`
	RoomFieldPlaces          []geometry.FieldPlace                  `json:"roomFieldPlaces"`
	Items                    map[string]catalogdata.Item            `json:"items"`
	HealingFountainPositions []geometry.FieldPlace                  `json:"healingFountainPositions"`
}

// GameStateWire is the state section of the game snapshot.
type GameStateWire struct {
	Status          string                `json:"status"`
	Turn            int                   `json:"turn"`
	CurrentPlayerID string                `json:"currentPlayerId"`
	CurrentTurnID   string                `json:"currentTurnId"`
	AvailablePlaces AvailablePlacesWire   `json:"availablePlaces"`
	LastBattleInfo  *BattleCompleted      `json:"lastBattleInfo,omitempty"`
	Deck            DeckStateWire         `json:"deck"`
}

// GameSnapshot is the full response body for GET /api/game/{gameId}.
type GameSnapshot struct {
	GameID string        `json:"gameId"`
	State  GameStateWire `json:"state"`
	Players []PlayerWire `json:"players"`
	Field   FieldWire    `json:"field"`
}

// TurnRecordWire is one entry in the GET /api/game/{gameId}/turns list.
type TurnRecordWire struct {
	TurnID     string         `json:"turnId"`
	TurnNumber int            `json:"turnNumber"`
	PlayerID   string         `json:"playerId"`
	Actions    []ActionWire   `json:"actions"`
	StartTime  string         `json:"startTime"`
	EndTime    *string        `json:"endTime,omitempty"`
}

// ActionWire is one logged turn action on the wire.
type ActionWire struct {
	Action         string         `json:"action"`
	TileID         string         `json:"tileId,omitempty"`
	AdditionalData map[string]any `json:"additionalData,omitempty"`
	At             string         `json:"at"`
}
