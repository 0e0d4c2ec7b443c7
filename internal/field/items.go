package field

import (
	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/geometry"
)

// DrawItemForRoom draws the next bag item onto a freshly placed room
// tile, per spec.md §4.1 "Field item placement on TilePlaced". Corridors
// never get an item (caller should only invoke this when placed.Room).
func (f *Field) DrawItemForRoom(at geometry.FieldPlace) (catalogdata.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, err := f.bag.GetNextItem()
	if err != nil {
		return catalogdata.Item{}, err
	}
	f.items[at] = item
	return item, nil
}

// ResolveBattleWin applies a BattleCompleted WIN at position: it replaces
// the field item with its defeated form and returns it (spec.md §4.1). If
// the result wasn't a win but consumables could still have lifted total
// damage above monster HP, ResolveBattlePotentialReward attaches the
// pending reward note instead, and the monster stays undefeated.
func (f *Field) ResolveBattleWin(position geometry.FieldPlace) (catalogdata.Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	it, exists := f.items[position]
	if !exists {
		return catalogdata.Item{}, false
	}
	defeated := it.DefeatMonster()
	f.items[position] = defeated
	return defeated, true
}

// ResolveBattlePotentialReward attaches a pending, not-yet-earned reward
// note to lastBattleInfo for a DRAW/LOSE whose consumables could have
// tipped the total over the monster's HP (spec.md §4.1).
func (f *Field) ResolveBattlePotentialReward(position geometry.FieldPlace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, exists := f.items[position]
	if !exists || f.lastBattle == nil {
		return
	}
	f.lastBattle.Reward = &RewardInfo{Item: it, IsPotentialReward: true}
}

// AutoCollectChest removes a defeated chest-type item from the field
// after combat, for the "chest rewards are auto-collected" rule in
// spec.md §4.1 (no key required when earned via combat).
func (f *Field) AutoCollectChest(position geometry.FieldPlace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, position)
}

// PickItem implements spec.md §4.1's PickItem command: the field item at
// playerPos is collected into the caller's inventory, enforcing the
// guard-defeated and chest-key rules. It returns the item to add (already
// resolved against lastBattleInfo/guard state) so the caller (the bus,
// which owns Player) can apply it to the player's inventory.
func (f *Field) PickItem(playerPos geometry.FieldPlace, justWonHere bool, hasKey bool) (catalogdata.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	it, exists := f.items[playerPos]
	if !exists {
		return catalogdata.Item{}, engineerr.New(engineerr.TileCannotBeFound, "no item at this position")
	}

	if it.GuardHP > 0 && !it.GuardDefeated {
		if justWonHere {
			it = it.DefeatMonster()
			f.items[playerPos] = it
		} else {
			return catalogdata.Item{}, engineerr.New(engineerr.TileCannotBeFound, "item is still guarded")
		}
	}

	if it.Locked() && !hasKey {
		return catalogdata.Item{}, engineerr.New(engineerr.MissingKey, "a key is required to open this chest").WithDetail(map[string]any{
			"chestType": string(it.Type),
		})
	}

	return it, nil
}

// RemoveItemIfStillPresent removes itemID from the field at p only if it
// is still the item stored there, per spec.md §4.1 "On success remove
// from field only if the stored item still matches itemId".
func (f *Field) RemoveItemIfStillPresent(p geometry.FieldPlace, itemID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[p]
	if !ok || it.ItemID != itemID {
		return false
	}
	delete(f.items, p)
	return true
}

// MarkConsumed records itemID as burned in battle so it is never
// re-placed on the field by ItemRemovedFromInventory handling (spec.md §3
// consumedItemIds).
func (f *Field) MarkConsumed(itemID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consumedItemIDs[itemID] = true
}

// PlaceRemovedItem handles the ItemRemovedFromInventory reaction from
// spec.md §4.1: if itemID was consumed in battle, drop the record and do
// nothing; otherwise place it back at pos and report that a
// ItemPlacedOnField event should be emitted.
func (f *Field) PlaceRemovedItem(itemID string, item catalogdata.Item, pos geometry.FieldPlace) (placed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.consumedItemIDs[itemID] {
		delete(f.consumedItemIDs, itemID)
		return false
	}
	f.items[pos] = item
	return true
}

// SetLastBattleInfo records the most recent battle's outcome for
// lastBattleInfo and the transport snapshot.
func (f *Field) SetLastBattleInfo(info BattleInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastBattle = &info
}
