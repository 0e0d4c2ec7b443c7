package deck

import (
	"math/rand"
	"sync"

	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/engineerr"
)

// ItemSpec describes a queued item before it is materialized with a fresh
// itemId, mirroring TileSpec.
type ItemSpec struct {
	MonsterName   string
	Type          catalogdata.ItemType
	TreasureValue int
}

// Bag is a finite, ordered sequence of items drawn onto room tiles as they
// are placed, per spec.md §4.1/§4.5.
type Bag struct {
	mu        sync.Mutex
	remaining []ItemSpec
	nextID    func() string
}

// classicBagComposition is the default ~88-item HeroQuest-style bag: one
// Dragon, a handful of each lesser monster, and a tail of plain loot.
// The table totals 78; teleport charms pad it to exactly 88, matching
// spec.md §4.5.
func classicBagComposition() []ItemSpec {
	monsterCounts := []struct {
		name  string
		itype catalogdata.ItemType
		value int
		count int
	}{
		{"dragon", catalogdata.ItemRubyChest, 100, 1},
		{"fallen", catalogdata.ItemSword, 0, 4},
		{"skeleton_king", catalogdata.ItemAxe, 0, 5},
		{"skeleton_warrior", catalogdata.ItemSword, 0, 6},
		{"skeleton_turnkey", catalogdata.ItemKey, 0, 8},
		{"mummy", catalogdata.ItemChest, 10, 8},
		{"giant_spider", catalogdata.ItemFireball, 0, 10},
		{"giant_rat", catalogdata.ItemDagger, 0, 12},
		{"treasure_chest", catalogdata.ItemChest, 15, 24},
	}
	specs := make([]ItemSpec, 0, 88)
	for _, mc := range monsterCounts {
		for i := 0; i < mc.count; i++ {
			specs = append(specs, ItemSpec{MonsterName: mc.name, Type: mc.itype, TreasureValue: mc.value})
		}
	}
	// Pad/trim to exactly 88 with teleport charms, keeping the table
	// declarative above instead of hand-tuning every count to the total.
	const bagTotal = 88
	for len(specs) < bagTotal {
		specs = append(specs, ItemSpec{MonsterName: "", Type: catalogdata.ItemTeleport})
	}
	return specs[:bagTotal]
}

// NewClassicBag builds the default bag, shuffled with rng, guaranteeing
// exactly one Dragon per spec.md §4.5.
func NewClassicBag(nextID func() string, rng *rand.Rand) *Bag {
	specs := classicBagComposition()
	rng.Shuffle(len(specs), func(i, j int) { specs[i], specs[j] = specs[j], specs[i] })
	return &Bag{remaining: specs, nextID: nextID}
}

// NewTestBag builds a bag from an explicit, ordered test itemSequence.
func NewTestBag(sequence []ItemSpec, nextID func() string) *Bag {
	cp := make([]ItemSpec, len(sequence))
	copy(cp, sequence)
	return &Bag{remaining: cp, nextID: nextID}
}

// Remaining returns how many items are left to draw.
func (b *Bag) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.remaining)
}

// IsEmpty reports whether the bag has no items left to draw.
func (b *Bag) IsEmpty() bool {
	return b.Remaining() == 0
}

// GetNextItem draws the next item, materializing it with a fresh itemId.
func (b *Bag) GetNextItem() (catalogdata.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.remaining) == 0 {
		return catalogdata.Item{}, engineerr.New(engineerr.NoItemsLeftInBag, "bag is empty")
	}
	spec := b.remaining[0]
	b.remaining = b.remaining[1:]
	id := b.nextID()
	if spec.MonsterName == "" {
		return catalogdata.Item{ItemID: id, Type: spec.Type, TreasureValue: spec.TreasureValue}, nil
	}
	return catalogdata.NewMonsterItem(id, spec.MonsterName, spec.Type, spec.TreasureValue), nil
}
