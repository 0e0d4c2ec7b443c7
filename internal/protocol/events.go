package protocol

import (
	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/geometry"
)

// Event type-name constants used as PatchEnvelope.Type, per spec.md §4's
// named events and the ordering guarantees in §4.7/§5.
const (
	EventGameCreated           = "GameCreated"
	EventGameStarted           = "GameStarted"
	EventTilePicked            = "TilePicked"
	EventTileRotated           = "TileRotated"
	EventTilePlaced            = "TilePlaced"
	EventPlayerMoved           = "PlayerMoved"
	EventStartBattle           = "StartBattle"
	EventBattleCompleted       = "BattleCompleted"
	EventMonsterDefeated       = "MonsterDefeated"
	EventItemPickedUp          = "ItemPickedUp"
	EventItemRemovedFromInventory = "ItemRemovedFromInventory"
	EventPlayerHealedAtFountain = "PlayerHealedAtFountain"
	EventTurnStarted           = "TurnStarted"
	EventTurnEnded             = "TurnEnded"
	EventGameFinished          = "GameFinished"
)

// AllEventTypes lists every event type constant above, used to subscribe
// a single fan-out handler (e.g. the realtime broadcaster) to the whole
// event vocabulary at once.
func AllEventTypes() []string {
	return []string{
		EventGameCreated, EventGameStarted, EventTilePicked, EventTileRotated,
		EventTilePlaced, EventPlayerMoved, EventStartBattle, EventBattleCompleted,
		EventMonsterDefeated, EventItemPickedUp, EventItemRemovedFromInventory,
		EventPlayerHealedAtFountain, EventTurnStarted, EventTurnEnded, EventGameFinished,
	}
}

type GameCreated struct {
	GameID    string   `json:"gameId"`
	PlayerIDs []string `json:"playerIds"`
}

type GameStarted struct {
	GameID          string `json:"gameId"`
	CurrentPlayerID string `json:"currentPlayerId"`
	CurrentTurnID   string `json:"currentTurnId"`
}

type TilePicked struct {
	GameID string             `json:"gameId"`
	TileID string             `json:"tileId"`
	Tile   TileWire            `json:"tile"`
}

type TileRotated struct {
	GameID string   `json:"gameId"`
	TileID string   `json:"tileId"`
	Tile   TileWire `json:"tile"`
}

type TilePlaced struct {
	GameID     string              `json:"gameId"`
	TileID     string              `json:"tileId"`
	FieldPlace geometry.FieldPlace `json:"fieldPlace"`
	Tile       TileWire            `json:"tile"`
}

type PlayerMoved struct {
	GameID         string              `json:"gameId"`
	PlayerID       string              `json:"playerId"`
	From           geometry.FieldPlace `json:"from"`
	To             geometry.FieldPlace `json:"to"`
	IsBattleReturn bool                `json:"isBattleReturn"`
}

type StartBattle struct {
	GameID      string              `json:"gameId"`
	PlayerID    string              `json:"playerId"`
	Position    geometry.FieldPlace `json:"position"`
	MonsterName string              `json:"monsterName"`
	MonsterHP   int                 `json:"monsterHp"`
}

type BattleCompleted struct {
	GameID                string              `json:"gameId"`
	BattleID              string              `json:"battleId"`
	PlayerID              string              `json:"playerId"`
	Position              geometry.FieldPlace `json:"position"`
	MonsterType           string              `json:"monsterType"`
	Dice                  [2]int              `json:"dice"`
	TotalDamage           int                 `json:"totalDamage"`
	Result                string              `json:"result"`
	AvailableConsumables  []catalogdata.Item  `json:"availableConsumables,omitempty"`
	NeedsConfirmation     bool                `json:"needsConsumableConfirmation"`
}

type MonsterDefeated struct {
	GameID      string              `json:"gameId"`
	Position    geometry.FieldPlace `json:"position"`
	MonsterName string              `json:"monsterName"`
}

type ItemPickedUp struct {
	GameID   string            `json:"gameId"`
	PlayerID string            `json:"playerId"`
	Item     catalogdata.Item  `json:"item"`
}

type ItemRemovedFromInventory struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	ItemID   string `json:"itemId"`
}

type PlayerHealedAtFountain struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type TurnStarted struct {
	GameID     string `json:"gameId"`
	TurnID     string `json:"turnId"`
	PlayerID   string `json:"playerId"`
	TurnNumber int    `json:"turnNumber"`
}

type TurnEnded struct {
	GameID   string `json:"gameId"`
	TurnID   string `json:"turnId"`
	PlayerID string `json:"playerId"`
}

type GameFinished struct {
	GameID   string `json:"gameId"`
	WinnerID string `json:"winnerId"`
}
