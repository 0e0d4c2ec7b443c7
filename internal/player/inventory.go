// Package player implements the Player aggregate from spec.md §4.6: HP,
// category-capped inventory, stun, and the key/chest rules. Grounded on
// the teacher's cmd/server/inventory.go InventoryManager (per-entity
// category slots with capacity checks), collapsed from a manager-of-many
// into a single aggregate owned per player by the bus.
package player

import (
	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/engineerr"
)

// Capacity limits per spec.md §3. Keys functionally cap at 1 (duplicate
// triggers auto-replace rather than a full-inventory error).
const (
	MaxKeys      = 1
	MaxWeapons   = 2
	MaxSpells    = 3
	MaxTreasures = -1 // unbounded
)

// Inventory holds a player's four item categories.
type Inventory struct {
	Keys      []catalogdata.Item
	Weapons   []catalogdata.Item
	Spells    []catalogdata.Item
	Treasures []catalogdata.Item
}

func (inv *Inventory) categorySlice(cat catalogdata.InventoryCategory) *[]catalogdata.Item {
	switch cat {
	case catalogdata.CategoryKey:
		return &inv.Keys
	case catalogdata.CategoryWeapon:
		return &inv.Weapons
	case catalogdata.CategorySpell:
		return &inv.Spells
	default:
		return &inv.Treasures
	}
}

func capacityFor(cat catalogdata.InventoryCategory) int {
	switch cat {
	case catalogdata.CategoryKey:
		return MaxKeys
	case catalogdata.CategoryWeapon:
		return MaxWeapons
	case catalogdata.CategorySpell:
		return MaxSpells
	default:
		return MaxTreasures
	}
}

// Find returns the item with the given id and the category slice it lives
// in, or ok=false if it isn't carried.
func (inv *Inventory) Find(itemID string) (catalogdata.Item, catalogdata.InventoryCategory, bool) {
	for _, cat := range []catalogdata.InventoryCategory{catalogdata.CategoryKey, catalogdata.CategoryWeapon, catalogdata.CategorySpell, catalogdata.CategoryTreasure} {
		for _, it := range *inv.categorySlice(cat) {
			if it.ItemID == itemID {
				return it, cat, true
			}
		}
	}
	return catalogdata.Item{}, "", false
}

// HasKey reports whether the player currently carries a key.
func (inv *Inventory) HasKey() bool {
	return len(inv.Keys) > 0
}

// Consumables returns the inventory items usable as a one-shot battle
// damage bonus (spec.md §4.4 availableConsumables).
func (inv *Inventory) Consumables() []catalogdata.Item {
	var out []catalogdata.Item
	for _, it := range inv.Spells {
		if catalogdata.IsConsumable(it.Type) {
			out = append(out, it)
		}
	}
	return out
}

// WeaponDamageBonus sums the auto-applied damage bonus of every carried
// weapon, per spec.md §4.4 itemDamage.
func (inv *Inventory) WeaponDamageBonus() int {
	total := 0
	for _, it := range inv.Weapons {
		total += catalogdata.DamageBonus(it.Type)
	}
	return total
}

// AddItem adds an item to its category, auto-replacing a held key (keys
// are functionally identical per spec.md §4.6) or failing with
// engineerr.InventoryFull when the category is at capacity. The evicted
// key, if any, is returned so the caller can emit ItemRemovedFromInventory.
func (inv *Inventory) AddItem(item catalogdata.Item) (evicted *catalogdata.Item, err error) {
	cat := catalogdata.CategoryOf(item.Type)
	slice := inv.categorySlice(cat)
	maxItems := capacityFor(cat)

	if cat == catalogdata.CategoryKey && len(*slice) >= MaxKeys {
		old := (*slice)[0]
		(*slice)[0] = item
		return &old, nil
	}

	if maxItems >= 0 && len(*slice) >= maxItems {
		return nil, engineerr.New(engineerr.InventoryFull, "inventory category full").WithDetail(map[string]any{
			"category":     string(cat),
			"currentItems": append([]catalogdata.Item(nil), (*slice)...),
			"maxItems":     maxItems,
		})
	}

	*slice = append(*slice, item)
	return nil, nil
}

// ReplaceItem evicts itemIDToReplace from its category and adds newItem in
// its place, per spec.md §4.6 ReplaceInventoryItem. The evicted item is
// returned for the caller to emit ItemRemovedFromInventory.
func (inv *Inventory) ReplaceItem(itemIDToReplace string, newItem catalogdata.Item) (catalogdata.Item, error) {
	_, cat, ok := inv.Find(itemIDToReplace)
	if !ok {
		return catalogdata.Item{}, engineerr.Newf(engineerr.EngineInvariant, "item %s not held, cannot replace", itemIDToReplace)
	}
	slice := inv.categorySlice(cat)
	var evicted catalogdata.Item
	out := (*slice)[:0:0]
	for _, it := range *slice {
		if it.ItemID == itemIDToReplace {
			evicted = it
			continue
		}
		out = append(out, it)
	}
	out = append(out, newItem)
	*slice = out
	return evicted, nil
}

// RemoveItem removes itemID from inventory (e.g. a consumed fireball or a
// spent key), returning the removed item.
func (inv *Inventory) RemoveItem(itemID string) (catalogdata.Item, bool) {
	item, cat, ok := inv.Find(itemID)
	if !ok {
		return catalogdata.Item{}, false
	}
	slice := inv.categorySlice(cat)
	out := (*slice)[:0:0]
	for _, it := range *slice {
		if it.ItemID != itemID {
			out = append(out, it)
		}
	}
	*slice = out
	return item, true
}
