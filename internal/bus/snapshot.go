package bus

import (
	"time"

	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/protocol"
	"github.com/duskvale/dungeonengine/internal/turn"
)

// Snapshot builds the read-only GET /api/game/{gameId} response from
// every aggregate's current state, per spec.md §6.
func (gb *GameBus) Snapshot() (protocol.GameSnapshot, error) {
	return submit(gb, func() (protocol.GameSnapshot, error) {
		fs := gb.field.Snapshot()

		tiles := make([]protocol.TileWire, 0, len(fs.Tiles))
		orientations := make(map[string]string, len(fs.Tiles))
		for _, t := range fs.Tiles {
			wire := protocol.NewTileWire(t)
			tiles = append(tiles, wire)
			orientations[t.TileID] = wire.Orientation
		}

		minX, maxX, minY, maxY := 0, 0, 0, 0
		for p := range fs.Tiles {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}

		items := make(map[string]catalogdata.Item, len(fs.Items))
		for p, it := range fs.Items {
			items[p.String()] = it
		}

		positions := make(map[string]geometry.FieldPlace, len(gb.players))
		players := make([]protocol.PlayerWire, 0, len(gb.players))
		for playerID, p := range gb.players {
			positions[playerID] = gb.movement.PositionOf(playerID)
			players = append(players, protocol.PlayerWire{
				ID:       playerID,
				HP:       p.HP,
				Defeated: p.Defeated,
				Inventory: protocol.InventoryWire{
					Keys:      p.Inventory.Keys,
					Weapons:   p.Inventory.Weapons,
					Spells:    p.Inventory.Spells,
					Treasures: p.Inventory.Treasures,
				},
			})
		}

		var availablePlaces protocol.AvailablePlacesWire
		if current := gb.game.CurrentPlayerID(); current != "" {
			alive := true
			if p, ok := gb.players[current]; ok {
				alive = !p.IsStunned()
			}
			moveTo, placeTile := gb.field.AvailablePlaces(gb.movement.PositionOf(current), alive)
			availablePlaces = protocol.AvailablePlacesWire{MoveTo: moveTo, PlaceTile: placeTile}
		}

		var lastBattle *protocol.BattleCompleted
		if info := gb.field.LastBattleInfo(); info != nil {
			lastBattle = &protocol.BattleCompleted{
				GameID: gb.gameID, BattleID: info.BattleID, Position: info.Position,
				MonsterType: info.MonsterType, Dice: info.Dice, TotalDamage: info.TotalDamage,
				Result: info.Result, AvailableConsumables: info.AvailableConsumables,
			}
		}

		turnID := ""
		if gb.turn != nil {
			turnID = gb.turn.TurnID
		}

		return protocol.GameSnapshot{
			GameID: gb.gameID,
			State: protocol.GameStateWire{
				Status:          string(gb.game.Status),
				Turn:            gb.turnNo,
				CurrentPlayerID: gb.game.CurrentPlayerID(),
				CurrentTurnID:   turnID,
				AvailablePlaces: availablePlaces,
				LastBattleInfo:  lastBattle,
				Deck:            protocol.DeckStateWire{RemainingTiles: gb.field.DeckRemaining(), IsEmpty: gb.field.DeckIsEmpty()},
			},
			Players: players,
			Field: protocol.FieldWire{
				Tiles:                    tiles,
				PlayerPositions:          positions,
				AvailablePlaces:          append(append([]geometry.FieldPlace{}, availablePlaces.MoveTo...), availablePlaces.PlaceTile...),
				Size:                     protocol.FieldSizeWire{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY},
				TileOrientations:         orientations,
				RoomFieldPlaces:          fs.RoomFieldPlaces,
				Items:                    items,
				HealingFountainPositions: fs.HealingFountains,
			},
		}, nil
	})
}

// Turns returns every recorded turn (including the still-open current
// one) with TurnNumber >= sinceTurnNumber, for GET /api/game/{gameId}/turns'
// optional since cursor (a supplemented feature for replay scrollback,
// see SPEC_FULL.md).
func (gb *GameBus) Turns(sinceTurnNumber int) ([]protocol.TurnRecordWire, error) {
	return submit(gb, func() ([]protocol.TurnRecordWire, error) {
		out := make([]protocol.TurnRecordWire, 0, len(gb.history)+1)
		for _, t := range gb.history {
			if t.TurnNumber >= sinceTurnNumber {
				out = append(out, wireTurn(t))
			}
		}
		if gb.turn != nil && gb.turn.TurnNumber >= sinceTurnNumber {
			out = append(out, wireTurn(gb.turn))
		}
		return out, nil
	})
}

func wireTurn(t *turn.GameTurn) protocol.TurnRecordWire {
	actions := make([]protocol.ActionWire, 0, len(t.Actions))
	for _, a := range t.Actions {
		actions = append(actions, protocol.ActionWire{
			Action:         string(a.Action),
			TileID:         a.TileID,
			AdditionalData: a.AdditionalData,
			At:             a.At.Format(time.RFC3339),
		})
	}
	wire := protocol.TurnRecordWire{
		TurnID:     t.TurnID,
		TurnNumber: t.TurnNumber,
		PlayerID:   t.PlayerID,
		Actions:    actions,
		StartTime:  t.StartTime.Format(time.RFC3339),
	}
	if t.EndTime != nil {
		end := t.EndTime.Format(time.RFC3339)
		wire.EndTime = &end
	}
	return wire
}
