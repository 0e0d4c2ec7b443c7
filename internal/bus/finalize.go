package bus

import (
	"github.com/duskvale/dungeonengine/internal/battle"
	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/protocol"
)

// FinalizeBattle runs the FINALIZE_BATTLE command: applies the player's
// chosen consumables to a battle paused with needsConsumableConfirmation,
// per spec.md §4.4 "Finalize".
func (gb *GameBus) FinalizeBattle(playerID, turnID, battleID string, selectedConsumableIDs []string) (protocol.BattleCompleted, error) {
	return submit(gb, func() (protocol.BattleCompleted, error) {
		if err := gb.requireActiveTurn(playerID, turnID); err != nil {
			return protocol.BattleCompleted{}, err
		}
		pending, ok := gb.pending[battleID]
		if !ok {
			return protocol.BattleCompleted{}, engineerr.New(engineerr.EngineInvariant, "no battle pending finalization with that id")
		}
		delete(gb.pending, battleID)

		p, err := gb.playerOrError(playerID)
		if err != nil {
			return protocol.BattleCompleted{}, err
		}

		final, err := battle.Finalize(pending.resolution, pending.monsterHP, selectedConsumableIDs)
		if err != nil {
			return protocol.BattleCompleted{}, err
		}
		for _, itemID := range final.ConsumedItemIDs {
			if _, ok := p.Inventory.RemoveItem(itemID); ok {
				gb.field.MarkConsumed(itemID)
				gb.emit(protocol.EventItemRemovedFromInventory, protocol.ItemRemovedFromInventory{GameID: gb.gameID, PlayerID: playerID, ItemID: itemID})
			}
		}

		evt := gb.finishBattle(playerID, pending.position, pending.fromPosition, pending.monsterName, final)
		return evt, nil
	})
}
