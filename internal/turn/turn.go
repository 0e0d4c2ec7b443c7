// Package turn implements the GameTurn aggregate from spec.md §4.3: the
// per-turn action log, the allowed-next-action matrix, and the action
// budget. Grounded on the teacher's cmd/server/turn_system.go TurnState/
// TurnManager (turn number, action counters, movement tracking), adapted
// from HeroQuest's movement-dice phases to this engine's pick/rotate/
// place/move/battle action vocabulary.
package turn

import (
	"time"

	"github.com/duskvale/dungeonengine/internal/engineerr"
)

// Action is one of the turn actions named in spec.md §4.3.
type Action string

const (
	Move            Action = "MOVE"
	DiscoverTile    Action = "DISCOVER_TILE"
	UseTeleport     Action = "USE_TELEPORT"
	PickTile        Action = "PICK_TILE"
	RotateTile      Action = "ROTATE_TILE"
	PlaceTile       Action = "PLACE_TILE"
	PickItem        Action = "PICK_ITEM"
	FightMonster    Action = "FIGHT_MONSTER"
	PickUpEquipment Action = "PICK_UP_EQUIPMENT"
	UnlockChest     Action = "UNLOCK_CHEST"
	HealAtFountain  Action = "HEAL_AT_FOUNTAIN"
	UseSpell        Action = "USE_SPELL"
	UseHeroAbility  Action = "USE_HERO_ABILITY"
	EndTurnAction   Action = "END_TURN"
)

// MaxActionsPerTurn is the per-turn action budget; only Move and
// UseTeleport consume it (spec.md §4.3).
const MaxActionsPerTurn = 4

// ActionRecord is one logged turn action.
type ActionRecord struct {
	Action         Action
	TileID         string
	AdditionalData map[string]any
	At             time.Time
}

// GameTurn is one player's turn: its action log and budget.
type GameTurn struct {
	TurnID        string
	GameID        string
	PlayerID      string
	TurnNumber    int
	StartTime     time.Time
	EndTime       *time.Time
	Actions       []ActionRecord
	actionCounter int
}

// New starts a fresh turn for playerID.
func New(turnID, gameID, playerID string, turnNumber int, now time.Time) *GameTurn {
	return &GameTurn{
		TurnID:     turnID,
		GameID:     gameID,
		PlayerID:   playerID,
		TurnNumber: turnNumber,
		StartTime:  now,
	}
}

// lastAction returns the most recently recorded action, or nil at turn
// start.
func (t *GameTurn) lastAction() *Action {
	if len(t.Actions) == 0 {
		return nil
	}
	a := t.Actions[len(t.Actions)-1].Action
	return &a
}

// allowedNext is the matrix from spec.md §4.3: which actions may follow
// prev (nil means turn start).
func allowedNext(prev *Action) map[Action]bool {
	allowAllExcept := func(excluded ...Action) map[Action]bool {
		all := map[Action]bool{
			Move: true, DiscoverTile: true, UseTeleport: true, PickTile: true,
			RotateTile: true, PlaceTile: true, PickItem: true, FightMonster: true,
			PickUpEquipment: true, UnlockChest: true, HealAtFountain: true,
			UseSpell: true, UseHeroAbility: true, EndTurnAction: true,
		}
		for _, e := range excluded {
			delete(all, e)
		}
		return all
	}

	if prev == nil {
		return map[Action]bool{
			Move: true, DiscoverTile: true, UseTeleport: true,
			PickTile: true, PickItem: true, HealAtFountain: true, EndTurnAction: true,
		}
	}
	switch *prev {
	case PickTile:
		return map[Action]bool{PlaceTile: true, RotateTile: true}
	case RotateTile:
		return map[Action]bool{PlaceTile: true, RotateTile: true}
	case FightMonster:
		return map[Action]bool{PickItem: true, EndTurnAction: true}
	case PickUpEquipment, UnlockChest, HealAtFountain:
		return map[Action]bool{} // auto-terminal
	case Move, DiscoverTile, UseTeleport:
		return allowAllExcept(PlaceTile, RotateTile)
	case UseSpell, UseHeroAbility:
		return allowAllExcept(UseSpell, UseHeroAbility)
	default:
		return allowAllExcept()
	}
}

// CanRecord reports whether action is a legal follow-on to the turn's most
// recently recorded action.
func (t *GameTurn) CanRecord(action Action) bool {
	return allowedNext(t.lastAction())[action]
}

// Record appends an action to the log after validating the
// allowed-next-action matrix, and advances the action budget for MOVE and
// USE_TELEPORT only (spec.md §4.3).
func (t *GameTurn) Record(action Action, tileID string, additionalData map[string]any, now time.Time) error {
	if t.EndTime != nil {
		return engineerr.New(engineerr.InvalidTurnId, "turn has already ended")
	}
	if !t.CanRecord(action) {
		return engineerr.Newf(engineerr.InvalidTurnId, "action %s cannot follow %v", action, t.lastAction())
	}
	if action == Move || action == UseTeleport {
		t.actionCounter++
	}
	t.Actions = append(t.Actions, ActionRecord{Action: action, TileID: tileID, AdditionalData: additionalData, At: now})
	return nil
}

// BudgetExhausted reports whether the turn has used its full movement
// action budget and must end at the next opportunity.
func (t *GameTurn) BudgetExhausted() bool {
	return t.actionCounter >= MaxActionsPerTurn
}

// HasBattleInTurn reports whether FIGHT_MONSTER appears anywhere in this
// turn's action log (spec.md §3 "hasBattleInTurn is derived").
func (t *GameTurn) HasBattleInTurn() bool {
	for _, rec := range t.Actions {
		if rec.Action == FightMonster {
			return true
		}
	}
	return false
}

// End closes the turn.
func (t *GameTurn) End(now time.Time) {
	if t.EndTime == nil {
		t.EndTime = &now
	}
}

// Ended reports whether End has already been called.
func (t *GameTurn) Ended() bool {
	return t.EndTime != nil
}
