// Package battle implements the Battle aggregate from spec.md §4.4: dice
// plus item damage resolution, the WIN/DRAW/LOSE comparison against
// monster HP, consumable confirmation, and finalization. Grounded on the
// teacher's cmd/server/engine.go ProcessBattle/resolveBattle flow (roll,
// compare, apply loss damage), adapted from HeroQuest's attack/defense
// dice split into this engine's single dice-pool-plus-item-bonus model.
package battle

import (
	"math/rand"

	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/field"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/player"
)

// Result is the outcome comparison from spec.md §4.4.
type Result string

const (
	Win  Result = "WIN"
	Draw Result = "DRAW"
	Lose Result = "LOSE"
)

func compare(totalDamage, monsterHP int) Result {
	switch {
	case totalDamage > monsterHP:
		return Win
	case totalDamage == monsterHP:
		return Draw
	default:
		return Lose
	}
}

// Pending describes an in-progress battle awaiting FinalizeBattle. No
// function in this package returns it; the bus keeps its own pendingBattle
// record (holding a Resolution) between the StartBattle and FinalizeBattle
// commands.
type Pending struct {
	BattleID             string
	GameID               string
	PlayerID             string
	Position             geometry.FieldPlace
	FromPosition         geometry.FieldPlace
	MonsterName          string
	MonsterHP            int
	Dice                 [2]int
	BaseDamage           int
	Result               Result
	AvailableConsumables []catalogdata.Item
}

// Resolution is the outcome of Resolve or Finalize: what BattleCompleted
// carries and what the bus must apply to Field/Movement/Player.
type Resolution struct {
	BattleID           string
	Dice               [2]int
	TotalDamage         int
	Result              Result
	NeedsConfirmation   bool
	AvailableConsumables []catalogdata.Item
	ConsumedItemIDs     []string
}

// Resolve runs the automatic dice+weapon resolution for a just-started
// battle against a monster with the given guard HP, per spec.md §4.4
// "Resolve on StartBattle".
func Resolve(battleID string, rng *rand.Rand, f *field.Field, inv *player.Inventory, monsterHP int) Resolution {
	d1 := f.NextDiceRoll(rng)
	d2 := f.NextDiceRoll(rng)
	diceRollDamage := d1 + d2
	itemDamage := inv.WeaponDamageBonus()
	totalDamage := diceRollDamage + itemDamage

	result := compare(totalDamage, monsterHP)
	if result == Win {
		return Resolution{BattleID: battleID, Dice: [2]int{d1, d2}, TotalDamage: totalDamage, Result: Win}
	}

	consumables := inv.Consumables()
	var consumableSum int
	for _, c := range consumables {
		consumableSum += catalogdata.DamageBonus(c.Type)
	}
	if len(consumables) > 0 && totalDamage+consumableSum > monsterHP {
		return Resolution{
			BattleID:             battleID,
			Dice:                 [2]int{d1, d2},
			TotalDamage:          totalDamage,
			Result:               result,
			NeedsConfirmation:    true,
			AvailableConsumables: consumables,
		}
	}
	return Resolution{BattleID: battleID, Dice: [2]int{d1, d2}, TotalDamage: totalDamage, Result: result}
}

// Finalize recomputes the outcome after applying the player's chosen
// consumables to a NeedsConfirmation resolution, per spec.md §4.4
// "Finalize". Only ids listed in pending's AvailableConsumables add
// damage; any other selected id is ignored. Finalize does not consult the
// live inventory; the caller removes the consumed items afterwards.
func Finalize(pending Resolution, monsterHP int, selectedItemIDs []string) (Resolution, error) {
	if !pending.NeedsConfirmation {
		return Resolution{}, engineerr.New(engineerr.EngineInvariant, "battle does not need finalization")
	}
	selected := map[string]bool{}
	for _, id := range selectedItemIDs {
		selected[id] = true
	}
	bonus := 0
	var consumed []string
	for _, c := range pending.AvailableConsumables {
		if selected[c.ItemID] {
			bonus += catalogdata.DamageBonus(c.Type)
			consumed = append(consumed, c.ItemID)
		}
	}
	total := pending.TotalDamage + bonus
	return Resolution{
		BattleID:        pending.BattleID,
		Dice:            pending.Dice,
		TotalDamage:     total,
		Result:          compare(total, monsterHP),
		ConsumedItemIDs: consumed,
	}, nil
}

// ApplyLossDamage is the 1 HP penalty a DRAW or LOSE inflicts after
// finalization, per spec.md §4.4. It returns whether the player became
// stunned.
func ApplyLossDamage(p *player.Player) (stunned bool) {
	p.TakeDamage(1)
	return p.IsStunned()
}
