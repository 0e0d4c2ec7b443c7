package bus

import (
	"time"

	"github.com/duskvale/dungeonengine/internal/protocol"
	"github.com/duskvale/dungeonengine/internal/turn"
)

// StartGame transitions the game from WAITING to ACTIVE, seats the first
// player, and opens their first turn, emitting GameStarted then
// TurnStarted (spec.md §4.6/§4.3).
func (gb *GameBus) StartGame(now time.Time) (protocol.GameStarted, error) {
	return submit(gb, func() (protocol.GameStarted, error) {
		if err := gb.game.Start(); err != nil {
			return protocol.GameStarted{}, err
		}
		if _, err := gb.field.Create(); err != nil {
			return protocol.GameStarted{}, err
		}
		turnStarted := gb.openTurnForCurrentPlayer(now)
		evt := protocol.GameStarted{
			GameID:          gb.gameID,
			CurrentPlayerID: gb.game.CurrentPlayerID(),
			CurrentTurnID:   gb.turn.TurnID,
		}
		gb.emit(protocol.EventGameStarted, evt)
		gb.emit(protocol.EventTurnStarted, turnStarted)
		return evt, nil
	})
}

// beginTurnForCurrentPlayer opens a fresh GameTurn for the current player
// and emits TurnStarted. Must run on the worker goroutine.
func (gb *GameBus) beginTurnForCurrentPlayer(now time.Time) {
	gb.emit(protocol.EventTurnStarted, gb.openTurnForCurrentPlayer(now))
}

// openTurnForCurrentPlayer opens a fresh GameTurn for the current player
// and returns its TurnStarted event without emitting it. Must run on the
// worker goroutine.
func (gb *GameBus) openTurnForCurrentPlayer(now time.Time) protocol.TurnStarted {
	if gb.turn != nil {
		gb.history = append(gb.history, gb.turn)
	}
	gb.turnNo++
	playerID := gb.game.CurrentPlayerID()
	gb.turn = turn.New(gb.nextID(), gb.gameID, playerID, gb.turnNo, now)
	gb.movement.ClearLock(playerID)
	gb.field.ClearLastBattleInfo()
	return protocol.TurnStarted{
		GameID:     gb.gameID,
		TurnID:     gb.turn.TurnID,
		PlayerID:   playerID,
		TurnNumber: gb.turnNo,
	}
}
