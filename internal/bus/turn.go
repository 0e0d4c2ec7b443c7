package bus

import (
	"time"

	"github.com/duskvale/dungeonengine/internal/protocol"
	"github.com/duskvale/dungeonengine/internal/turn"
)

// EndTurn runs the END_TURN command: closes the caller's turn and seats
// the next player, per spec.md §4.3.
func (gb *GameBus) EndTurn(playerID, turnID string) (protocol.TurnEnded, error) {
	return submit(gb, func() (protocol.TurnEnded, error) {
		if err := gb.requireActiveTurn(playerID, turnID); err != nil {
			return protocol.TurnEnded{}, err
		}
		return gb.endTurnInternal(playerID, time.Now()), nil
	})
}

// endTurnInternal closes the current turn, advances the game to the next
// player, and opens their turn. Must run on the worker goroutine.
//
// Stunned players (HP=0) have their turn skipped automatically after an
// immediate heal, whether or not they stand on a fountain, per spec.md §4.6.
func (gb *GameBus) endTurnInternal(playerID string, now time.Time) protocol.TurnEnded {
	gb.healAtFountainIfNeeded(playerID)

	endTurnID := ""
	if gb.turn != nil {
		gb.turn.End(now)
		endTurnID = gb.turn.TurnID
	}
	evt := protocol.TurnEnded{GameID: gb.gameID, TurnID: endTurnID, PlayerID: playerID}
	gb.emit(protocol.EventTurnEnded, evt)

	gb.game.AdvanceToNextPlayer(func(string) bool { return false })
	gb.beginTurnForCurrentPlayer(now)
	gb.autoResolveStunnedTurn(now)
	return evt
}

// autoResolveStunnedTurn implements spec.md §4.6's stun rule: a player
// seated at 0 HP is healed to max at their TurnStarted and their turn is
// immediately ended again without consuming any action, whether or not
// they happen to be standing on a healing fountain; only the recorded
// action and emitted events differ between the two cases.
func (gb *GameBus) autoResolveStunnedTurn(now time.Time) {
	playerID := gb.game.CurrentPlayerID()
	p, err := gb.playerOrError(playerID)
	if err != nil || !p.IsStunned() {
		return
	}
	pos := gb.movement.PositionOf(playerID)
	p.HealToMax()
	if gb.field.IsHealingFountain(pos) {
		if gb.turn != nil {
			if err := gb.turn.Record(turn.HealAtFountain, "", nil, now); err != nil {
				gb.logger.Warnw("could not record HEAL_AT_FOUNTAIN action", "error", err)
			}
		}
		gb.emit(protocol.EventPlayerHealedAtFountain, protocol.PlayerHealedAtFountain{GameID: gb.gameID, PlayerID: playerID})
	}
	gb.endTurnInternal(playerID, now)
}
