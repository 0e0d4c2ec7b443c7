package turn

import (
	"testing"
	"time"

	"github.com/duskvale/dungeonengine/internal/engineerr"
)

func TestTurnStartAllowsOnlyOpeningActions(t *testing.T) {
	tr := New("turn-1", "game-1", "p1", 1, time.Unix(0, 0))
	if tr.CanRecord(PlaceTile) {
		t.Errorf("PLACE_TILE should not be allowed at turn start")
	}
	if !tr.CanRecord(Move) {
		t.Errorf("MOVE should be allowed at turn start")
	}
}

func TestPickTileMustBeFollowedByRotateOrPlace(t *testing.T) {
	tr := New("turn-1", "game-1", "p1", 1, time.Unix(0, 0))
	if err := tr.Record(PickTile, "tile-1", nil, time.Unix(1, 0)); err != nil {
		t.Fatalf("PICK_TILE failed: %v", err)
	}
	if err := tr.Record(Move, "", nil, time.Unix(2, 0)); !engineerr.As(err, engineerr.InvalidTurnId) {
		t.Fatalf("expected MOVE to be rejected after PICK_TILE, got %v", err)
	}
	if err := tr.Record(RotateTile, "tile-1", nil, time.Unix(2, 0)); err != nil {
		t.Fatalf("ROTATE_TILE after PICK_TILE failed: %v", err)
	}
	if err := tr.Record(PlaceTile, "tile-1", nil, time.Unix(3, 0)); err != nil {
		t.Fatalf("PLACE_TILE after ROTATE_TILE failed: %v", err)
	}
}

func TestActionBudgetCountsOnlyMoveAndTeleport(t *testing.T) {
	tr := New("turn-1", "game-1", "p1", 1, time.Unix(0, 0))
	for i := 0; i < MaxActionsPerTurn; i++ {
		if err := tr.Record(Move, "", nil, time.Unix(int64(i+1), 0)); err != nil {
			t.Fatalf("move %d failed: %v", i, err)
		}
	}
	if !tr.BudgetExhausted() {
		t.Errorf("budget should be exhausted after %d moves", MaxActionsPerTurn)
	}
}

func TestFightMonsterMustBeFollowedByPickItemOrEndTurn(t *testing.T) {
	tr := New("turn-1", "game-1", "p1", 1, time.Unix(0, 0))
	if err := tr.Record(Move, "", nil, time.Unix(1, 0)); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if err := tr.Record(FightMonster, "", nil, time.Unix(2, 0)); err != nil {
		t.Fatalf("fight failed: %v", err)
	}
	if tr.CanRecord(Move) {
		t.Errorf("MOVE should not be allowed directly after FIGHT_MONSTER")
	}
	if !tr.CanRecord(PickItem) || !tr.CanRecord(EndTurnAction) {
		t.Errorf("PICK_ITEM and END_TURN should be allowed after FIGHT_MONSTER")
	}
	if !tr.HasBattleInTurn() {
		t.Errorf("HasBattleInTurn should be true once FIGHT_MONSTER is logged")
	}
}

func TestRecordAfterEndFails(t *testing.T) {
	tr := New("turn-1", "game-1", "p1", 1, time.Unix(0, 0))
	tr.End(time.Unix(5, 0))
	if err := tr.Record(Move, "", nil, time.Unix(6, 0)); !engineerr.As(err, engineerr.InvalidTurnId) {
		t.Fatalf("expected InvalidTurnId after End, got %v", err)
	}
}
