// Package catalogdata holds the fixed item/monster data tables referenced
// by spec.md §3: item types, their damage bonuses, and canonical monster
// guard HP. Modeled as small enums with a lookup table, matching the
// teacher's ItemCard/TreasureCard style (cmd/server/content_types.go) but
// collapsed into Go consts since this engine's item set is closed, not
// content-authored JSON.
package catalogdata

// ItemType is the fixed discriminant for a field/inventory item.
type ItemType string

const (
	ItemKey          ItemType = "key"
	ItemDagger       ItemType = "dagger"
	ItemSword        ItemType = "sword"
	ItemAxe          ItemType = "axe"
	ItemFireball     ItemType = "fireball"
	ItemTeleport     ItemType = "teleport"
	ItemChest        ItemType = "chest"
	ItemRubyChest    ItemType = "ruby_chest"
)

// InventoryCategory groups item types into the four capacity-limited
// inventory slots from spec.md §3.
type InventoryCategory string

const (
	CategoryKey      InventoryCategory = "keys"
	CategoryWeapon   InventoryCategory = "weapons"
	CategorySpell    InventoryCategory = "spells"
	CategoryTreasure InventoryCategory = "treasures"
)

// CategoryOf returns which inventory category an item type belongs to.
// Chests (ordinary and ruby) are carried in CategoryTreasure, like every
// type not listed above.
func CategoryOf(t ItemType) InventoryCategory {
	switch t {
	case ItemKey:
		return CategoryKey
	case ItemDagger, ItemSword, ItemAxe:
		return CategoryWeapon
	case ItemFireball, ItemTeleport:
		return CategorySpell
	default:
		return CategoryTreasure
	}
}

// DamageBonus is the combat damage an inventory item of this type
// contributes. Weapons apply automatically every battle; fireball is a
// consumable the player must select during battle finalization.
//
// FireballDamageBonus is the resolved value for spec.md §9's Open
// Question #1 (engine table vs narrative scenario): this engine uses the
// damage-table value of +1, not the scenario's implied +9.
const FireballDamageBonus = 1

func DamageBonus(t ItemType) int {
	switch t {
	case ItemDagger:
		return 1
	case ItemSword:
		return 2
	case ItemAxe:
		return 3
	case ItemFireball:
		return FireballDamageBonus
	default:
		return 0
	}
}

// IsConsumable reports whether the item is spent (once) to add damage
// during battle finalization rather than applying automatically.
func IsConsumable(t ItemType) bool {
	return t == ItemFireball
}

// IsWeapon reports whether the item type auto-applies its damage bonus to
// every battle the carrying player fights.
func IsWeapon(t ItemType) bool {
	switch t {
	case ItemDagger, ItemSword, ItemAxe:
		return true
	default:
		return false
	}
}

// EndsGame reports whether collecting an item of this type wins the game,
// per spec.md §4.6 Victory.
func EndsGame(t ItemType) bool {
	return t == ItemRubyChest
}

// MonsterGuardHP is the canonical guard HP table from spec.md §3.
var MonsterGuardHP = map[string]int{
	"dragon":           15,
	"fallen":           12,
	"skeleton_king":    10,
	"skeleton_warrior": 9,
	"skeleton_turnkey": 8,
	"mummy":            7,
	"giant_spider":     6,
	"giant_rat":        5,
	"treasure_chest":   0,
}

// GuardHPFor looks up the canonical HP for a monster name, defaulting to 0
// (unguarded) for names outside the table — e.g. treasure/key drops that
// are not monsters at all.
func GuardHPFor(monsterName string) int {
	return MonsterGuardHP[monsterName]
}
