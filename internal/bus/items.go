package bus

import (
	"time"

	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/protocol"
	"github.com/duskvale/dungeonengine/internal/turn"
)

// PickItem runs the PICK_ITEM command from spec.md §4.1: collects the
// field item at the caller's position into their inventory, resolving
// the guard-defeated and chest-key rules, and checking for victory.
func (gb *GameBus) PickItem(playerID, turnID string, itemIDToReplace *string) (protocol.ItemPickedUp, error) {
	return submit(gb, func() (protocol.ItemPickedUp, error) {
		if err := gb.requireActiveTurn(playerID, turnID); err != nil {
			return protocol.ItemPickedUp{}, err
		}
		p, err := gb.playerOrError(playerID)
		if err != nil {
			return protocol.ItemPickedUp{}, err
		}
		pos := gb.movement.PositionOf(playerID)
		justWonHere := false
		if info := gb.field.LastBattleInfo(); info != nil && info.Position == pos {
			justWonHere = true
		}
		item, err := gb.field.PickItem(pos, justWonHere, p.Inventory.HasKey())
		if err != nil {
			return protocol.ItemPickedUp{}, err
		}

		if itemIDToReplace != nil {
			evicted, err := p.Inventory.ReplaceItem(*itemIDToReplace, item)
			if err != nil {
				return protocol.ItemPickedUp{}, err
			}
			gb.emit(protocol.EventItemRemovedFromInventory, protocol.ItemRemovedFromInventory{GameID: gb.gameID, PlayerID: playerID, ItemID: evicted.ItemID})
		} else if evicted, err := p.Inventory.AddItem(item); err != nil {
			return protocol.ItemPickedUp{}, err
		} else if evicted != nil {
			gb.emit(protocol.EventItemRemovedFromInventory, protocol.ItemRemovedFromInventory{GameID: gb.gameID, PlayerID: playerID, ItemID: evicted.ItemID})
		}

		gb.field.RemoveItemIfStillPresent(pos, item.ItemID)
		if err := gb.turn.Record(turn.PickItem, "", nil, time.Now()); err != nil {
			return protocol.ItemPickedUp{}, err
		}
		evt := protocol.ItemPickedUp{GameID: gb.gameID, PlayerID: playerID, Item: item}
		gb.emit(protocol.EventItemPickedUp, evt)

		if catalogdata.EndsGame(item.Type) {
			gb.game.Finish(playerID)
			gb.emit(protocol.EventGameFinished, protocol.GameFinished{GameID: gb.gameID, WinnerID: playerID})
		}
		return evt, nil
	})
}

// InventoryAction runs an explicit inventory mutation outside of pickup,
// currently the replace path (spec.md §4.6 ReplaceInventoryItem).
func (gb *GameBus) InventoryAction(playerID, action, itemID, itemIDToReplace string) error {
	_, err := submit(gb, func() (struct{}, error) {
		p, err := gb.playerOrError(playerID)
		if err != nil {
			return struct{}{}, err
		}
		switch action {
		case "replace":
			item, _, ok := p.Inventory.Find(itemID)
			if !ok {
				return struct{}{}, engineerr.Newf(engineerr.EngineInvariant, "item %s not held", itemID)
			}
			evicted, err := p.Inventory.ReplaceItem(itemIDToReplace, item)
			if err != nil {
				return struct{}{}, err
			}
			gb.emit(protocol.EventItemRemovedFromInventory, protocol.ItemRemovedFromInventory{GameID: gb.gameID, PlayerID: playerID, ItemID: evicted.ItemID})
			return struct{}{}, nil
		default:
			return struct{}{}, engineerr.Newf(engineerr.EngineInvariant, "unknown inventory action %q", action)
		}
	})
	return err
}

// UseSpell runs the TELEPORT operation from spec.md §4.1: validates
// ownership of a teleport charm and that target is a healing fountain,
// marks the spell consumed, resets the caster's position, and ends the
// turn.
func (gb *GameBus) UseSpell(playerID, turnID, itemID string, target geometry.FieldPlace) (protocol.PlayerMoved, error) {
	return submit(gb, func() (protocol.PlayerMoved, error) {
		if err := gb.requireActiveTurn(playerID, turnID); err != nil {
			return protocol.PlayerMoved{}, err
		}
		p, err := gb.playerOrError(playerID)
		if err != nil {
			return protocol.PlayerMoved{}, err
		}
		item, _, ok := p.Inventory.Find(itemID)
		if !ok {
			return protocol.PlayerMoved{}, engineerr.Newf(engineerr.EngineInvariant, "item %s not held", itemID)
		}
		if item.Type != catalogdata.ItemTeleport {
			return protocol.PlayerMoved{}, engineerr.Newf(engineerr.EngineInvariant, "item %s cannot be used outside of battle", itemID)
		}
		if !gb.field.IsHealingFountain(target) {
			return protocol.PlayerMoved{}, engineerr.Newf(engineerr.PositionUnreachable, "teleport target %v is not a healing fountain", target)
		}

		from := gb.movement.PositionOf(playerID)
		gb.movement.ResetPosition(playerID, target)
		p.Inventory.RemoveItem(itemID)

		if err := gb.turn.Record(turn.UseTeleport, "", map[string]any{"itemId": itemID}, time.Now()); err != nil {
			return protocol.PlayerMoved{}, err
		}
		gb.emit(protocol.EventItemRemovedFromInventory, protocol.ItemRemovedFromInventory{GameID: gb.gameID, PlayerID: playerID, ItemID: itemID})
		evt := protocol.PlayerMoved{GameID: gb.gameID, PlayerID: playerID, From: from, To: target}
		gb.emit(protocol.EventPlayerMoved, evt)
		gb.endTurnInternal(playerID, time.Now())
		return evt, nil
	})
}
