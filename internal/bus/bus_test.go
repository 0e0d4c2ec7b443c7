package bus

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/config"
	"github.com/duskvale/dungeonengine/internal/deck"
	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/field"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/protocol"
)

func sequentialID(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + string(rune('0'+n))
	}
}

// recorder collects every event a GameBus emits, in order, for assertions
// on fan-out ordering (spec.md §5).
type recorder struct {
	types []string
}

func (r *recorder) handler() EventHandler {
	return func(eventType string, payload any) {
		r.types = append(r.types, eventType)
	}
}

func newTestBus(t *testing.T, setup *config.TestSetup) *GameBus {
	t.Helper()
	gb := New("game-1", []string{"p1", "p2"}, sequentialID("id-"), zap.NewNop().Sugar(), setup, 16)
	gb.Run()
	t.Cleanup(gb.Stop)
	return gb
}

func TestStartGameSeatsFirstPlayerAndOpensTurn(t *testing.T) {
	setup := &config.TestSetup{
		Enabled:      true,
		TileSequence: []deck.TileSpec{{Orientation: geometry.FourSide, Room: true}},
	}
	gb := newTestBus(t, setup)
	rec := &recorder{}
	gb.SubscribeAll(rec.handler())

	evt, err := gb.StartGame(time.Now())
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if evt.CurrentPlayerID != "p1" {
		t.Errorf("expected p1 seated first, got %s", evt.CurrentPlayerID)
	}
	if evt.CurrentTurnID == "" {
		t.Errorf("expected a non-empty turn id")
	}
	if len(rec.types) != 2 || rec.types[0] != protocol.EventGameStarted || rec.types[1] != protocol.EventTurnStarted {
		t.Errorf("expected [GameStarted, TurnStarted] in order, got %v", rec.types)
	}

	snap, err := gb.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Field.Tiles) != 1 {
		t.Errorf("expected the start tile to be created, got %d tiles", len(snap.Field.Tiles))
	}
	foundFountain := false
	for _, p := range snap.Field.HealingFountainPositions {
		if p == (geometry.FieldPlace{X: 0, Y: 0}) {
			foundFountain = true
		}
	}
	if !foundFountain {
		t.Errorf("expected the start tile to be tagged as a healing fountain")
	}
}

func TestStartGameTwiceFails(t *testing.T) {
	gb := newTestBus(t, &config.TestSetup{Enabled: true, TileSequence: []deck.TileSpec{{Orientation: geometry.FourSide, Room: true}}})
	if _, err := gb.StartGame(time.Now()); err != nil {
		t.Fatalf("first StartGame failed: %v", err)
	}
	if _, err := gb.StartGame(time.Now()); err == nil {
		t.Errorf("expected an error starting an already-active game")
	}
}

func TestPickRotatePlaceTileFlow(t *testing.T) {
	setup := &config.TestSetup{
		Enabled: true,
		TileSequence: []deck.TileSpec{
			{Orientation: geometry.FourSide, Room: true}, // start
			{Orientation: geometry.FourSide, Room: true}, // placed by this test
		},
	}
	gb := newTestBus(t, setup)
	started, err := gb.StartGame(time.Now())
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	turnID := started.CurrentTurnID

	wantOrientation := "true,true,true,true" // FourSide stays fully open through any rotation
	picked, err := gb.PickTile("p1", turnID, geometry.Top)
	if err != nil {
		t.Fatalf("PickTile failed: %v", err)
	}
	if picked.Tile.Orientation != wantOrientation {
		t.Errorf("expected a fully-open tile, got orientation %q", picked.Tile.Orientation)
	}

	rotated, err := gb.RotateTile("p1", turnID, geometry.Top, geometry.Top)
	if err != nil {
		t.Fatalf("RotateTile failed: %v", err)
	}
	if rotated.Tile.Orientation != wantOrientation {
		t.Errorf("expected a fully-open tile after rotation, got orientation %q", rotated.Tile.Orientation)
	}

	target := geometry.FieldPlace{X: 0, Y: -1}
	placed, err := gb.PlaceTile("p1", turnID, picked.TileID, target)
	if err != nil {
		t.Fatalf("PlaceTile failed: %v", err)
	}
	if placed.FieldPlace != target {
		t.Errorf("expected tile placed at %v, got %v", target, placed.FieldPlace)
	}

	turns, err := gb.Turns(0)
	if err != nil {
		t.Fatalf("Turns failed: %v", err)
	}
	if len(turns) != 1 || len(turns[0].Actions) != 3 {
		t.Fatalf("expected 1 turn with 3 recorded actions (pick, rotate, place), got %+v", turns)
	}
}

func TestPickTileWrongTurnIdFails(t *testing.T) {
	setup := &config.TestSetup{Enabled: true, TileSequence: []deck.TileSpec{{Orientation: geometry.FourSide, Room: true}}}
	gb := newTestBus(t, setup)
	if _, err := gb.StartGame(time.Now()); err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if _, err := gb.PickTile("p1", "bogus-turn-id", geometry.Top); !engineerr.As(err, engineerr.InvalidTurnId) {
		t.Fatalf("expected InvalidTurnId, got %v", err)
	}
}

func TestPickTileNotYourTurnFails(t *testing.T) {
	setup := &config.TestSetup{Enabled: true, TileSequence: []deck.TileSpec{{Orientation: geometry.FourSide, Room: true}}}
	gb := newTestBus(t, setup)
	started, err := gb.StartGame(time.Now())
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if _, err := gb.PickTile("p2", started.CurrentTurnID, geometry.Top); !engineerr.As(err, engineerr.NotYourTurn) {
		t.Fatalf("expected NotYourTurn, got %v", err)
	}
}

// winningBattleSetup builds a game with a room placed at the start tile's
// Top sibling holding a guarded giant_rat (5 guard HP), ready for a move
// there to trigger a battle.
func winningBattleSetup() *config.TestSetup {
	return &config.TestSetup{
		Enabled: true,
		TileSequence: []deck.TileSpec{
			{Orientation: geometry.FourSide, Room: true}, // start
			{Orientation: geometry.FourSide, Room: true}, // monster room
		},
		ItemSequence: []deck.ItemSpec{
			{MonsterName: "giant_rat", Type: catalogdata.ItemChest},
		},
		DiceRolls: []int{5, 5}, // totalDamage=10 > giant_rat guardHP=5 => WIN
	}
}

func placeMonsterRoom(t *testing.T, gb *GameBus, turnID string) geometry.FieldPlace {
	t.Helper()
	target := geometry.FieldPlace{X: 0, Y: -1}
	if _, err := gb.PickTile("p1", turnID, geometry.Top); err != nil {
		t.Fatalf("PickTile failed: %v", err)
	}
	if _, err := gb.PlaceTile("p1", turnID, "", target); err != nil {
		t.Fatalf("PlaceTile failed: %v", err)
	}
	return target
}

func TestMoveOntoGuardedRoomStartsAndWinsBattle(t *testing.T) {
	gb := newTestBus(t, winningBattleSetup())
	started, err := gb.StartGame(time.Now())
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	turnID := started.CurrentTurnID
	target := placeMonsterRoom(t, gb, turnID)

	rec := &recorder{}
	gb.SubscribeAll(rec.handler())

	res, err := gb.MovePlayer("p1", turnID, geometry.FieldPlace{X: 0, Y: 0}, target, false, false)
	if err != nil {
		t.Fatalf("MovePlayer failed: %v", err)
	}
	if res.Battle == nil || res.Completed == nil {
		t.Fatalf("expected a battle to start and resolve immediately, got %+v", res)
	}
	if res.Completed.Result != "WIN" {
		t.Fatalf("expected WIN with dice [5,5] vs guardHP 5, got %s", res.Completed.Result)
	}

	snap, err := gb.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.Field.PlayerPositions["p1"] != target {
		t.Errorf("expected the winning player to remain on the monster tile, got %v", snap.Field.PlayerPositions["p1"])
	}

	foundStart, foundCompleted, foundDefeated := false, false, false
	for _, et := range rec.types {
		switch et {
		case protocol.EventStartBattle:
			foundStart = true
		case protocol.EventBattleCompleted:
			foundCompleted = true
		case protocol.EventMonsterDefeated:
			foundDefeated = true
		}
	}
	if !foundStart || !foundCompleted || !foundDefeated {
		t.Errorf("expected StartBattle, BattleCompleted and MonsterDefeated events, got %v", rec.types)
	}

	if _, err := gb.MovePlayer("p1", turnID, target, geometry.FieldPlace{X: 0, Y: 0}, false, false); !engineerr.As(err, engineerr.CannotMoveAfterBattle) {
		t.Errorf("expected CannotMoveAfterBattle after winning, got %v", err)
	}
}

func TestFinalizeBattleWithoutConsumableEndsTurnOnDraw(t *testing.T) {
	setup := &config.TestSetup{
		Enabled: true,
		TileSequence: []deck.TileSpec{
			{Orientation: geometry.FourSide, Room: true},
			{Orientation: geometry.FourSide, Room: true},
		},
		ItemSequence: []deck.ItemSpec{
			{MonsterName: "skeleton_turnkey", Type: catalogdata.ItemChest}, // guardHP=8
		},
		DiceRolls: []int{4, 4}, // totalDamage=8 == guardHP => DRAW, needs confirmation if a consumable could win it
	}
	gb := newTestBus(t, setup)
	started, err := gb.StartGame(time.Now())
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	turnID := started.CurrentTurnID
	target := placeMonsterRoom(t, gb, turnID)

	p := gb.players["p1"]
	fireball := catalogdata.Item{ItemID: "fireball-1", Name: "fireball", Type: catalogdata.ItemFireball}
	if _, err := p.Inventory.AddItem(fireball); err != nil {
		t.Fatalf("seeding fireball failed: %v", err)
	}

	res, err := gb.MovePlayer("p1", turnID, geometry.FieldPlace{X: 0, Y: 0}, target, false, false)
	if err != nil {
		t.Fatalf("MovePlayer failed: %v", err)
	}
	if res.Completed == nil || !res.Completed.NeedsConfirmation {
		t.Fatalf("expected a pending battle awaiting confirmation, got %+v", res)
	}

	rec := &recorder{}
	gb.SubscribeAll(rec.handler())

	final, err := gb.FinalizeBattle("p1", turnID, res.Completed.BattleID, nil)
	if err != nil {
		t.Fatalf("FinalizeBattle failed: %v", err)
	}
	if final.Result != "DRAW" {
		t.Fatalf("expected DRAW with no consumables selected, got %s", final.Result)
	}
	// The battle-return step-back lands p1 back on the start tile, which is
	// always a healing fountain, so the 1 HP loss is immediately undone.
	if p.HP != p.MaxHP {
		t.Errorf("expected the fountain at start to heal the loss damage, HP=%d maxHP=%d", p.HP, p.MaxHP)
	}

	foundEnded, foundHealed := false, false
	for _, et := range rec.types {
		switch et {
		case protocol.EventTurnEnded:
			foundEnded = true
		case protocol.EventPlayerHealedAtFountain:
			foundHealed = true
		}
	}
	if !foundEnded {
		t.Errorf("expected TurnEnded to fire after a non-WIN battle resolution, got %v", rec.types)
	}
	if !foundHealed {
		t.Errorf("expected PlayerHealedAtFountain after the battle-return step-back onto the start fountain, got %v", rec.types)
	}
	if gb.game.CurrentPlayerID() != "p2" {
		t.Errorf("expected the turn to advance to p2, got %s", gb.game.CurrentPlayerID())
	}
}

func TestPickItemAfterWinAndVictory(t *testing.T) {
	setup := &config.TestSetup{
		Enabled: true,
		TileSequence: []deck.TileSpec{
			{Orientation: geometry.FourSide, Room: true},
			{Orientation: geometry.FourSide, Room: true},
		},
		ItemSequence: []deck.ItemSpec{
			{MonsterName: "giant_rat", Type: catalogdata.ItemRubyChest},
		},
		DiceRolls: []int{5, 5}, // totalDamage=10 > guardHP 5 => WIN
	}
	gb := newTestBus(t, setup)
	started, err := gb.StartGame(time.Now())
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	turnID := started.CurrentTurnID
	target := placeMonsterRoom(t, gb, turnID)

	if _, err := gb.MovePlayer("p1", turnID, geometry.FieldPlace{X: 0, Y: 0}, target, false, false); err != nil {
		t.Fatalf("MovePlayer failed: %v", err)
	}

	rec := &recorder{}
	gb.SubscribeAll(rec.handler())

	picked, err := gb.PickItem("p1", turnID, nil)
	if err != nil {
		t.Fatalf("PickItem failed: %v", err)
	}
	if picked.Item.Type != catalogdata.ItemRubyChest {
		t.Fatalf("expected to pick up the ruby chest, got %+v", picked.Item)
	}

	foundFinished := false
	for _, et := range rec.types {
		if et == protocol.EventGameFinished {
			foundFinished = true
		}
	}
	if !foundFinished {
		t.Errorf("expected GameFinished after collecting the ruby chest, got %v", rec.types)
	}
	if !gb.game.IsFinished() || gb.game.WinnerID != "p1" {
		t.Errorf("expected the game finished with p1 as winner, got status=%s winner=%s", gb.game.Status, gb.game.WinnerID)
	}
}

func TestUseSpellTeleportsToStart(t *testing.T) {
	setup := &config.TestSetup{
		Enabled: true,
		TileSequence: []deck.TileSpec{
			{Orientation: geometry.FourSide, Room: true},
			{Orientation: geometry.FourSide, Room: true},
		},
	}
	gb := newTestBus(t, setup)
	started, err := gb.StartGame(time.Now())
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	turnID := started.CurrentTurnID
	awayFromStart := placeMonsterRoom(t, gb, turnID)

	p := gb.players["p1"]
	teleport := catalogdata.Item{ItemID: "teleport-1", Name: "teleport", Type: catalogdata.ItemTeleport}
	if _, err := p.Inventory.AddItem(teleport); err != nil {
		t.Fatalf("seeding teleport charm failed: %v", err)
	}
	gb.movement.ResetPosition("p1", awayFromStart)

	evt, err := gb.UseSpell("p1", turnID, "teleport-1", field.Start)
	if err != nil {
		t.Fatalf("UseSpell failed: %v", err)
	}
	if evt.To != field.Start {
		t.Errorf("expected the player to teleport back to start, got %v", evt.To)
	}
	if _, _, ok := p.Inventory.Find("teleport-1"); ok {
		t.Errorf("expected the teleport charm to be consumed")
	}
	if gb.game.CurrentPlayerID() != "p2" {
		t.Errorf("expected teleport to end the caster's turn, got current player %s", gb.game.CurrentPlayerID())
	}
}

func TestEndTurnStunSkipHealsWithoutConsumingATurn(t *testing.T) {
	setup := &config.TestSetup{
		Enabled:         true,
		TileSequence:    []deck.TileSpec{{Orientation: geometry.FourSide, Room: true}},
		PlayerOverrides: map[string]config.PlayerOverride{"p2": {MaxHP: 5}},
	}
	gb := newTestBus(t, setup)
	started, err := gb.StartGame(time.Now())
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	gb.players["p2"].HP = 0
	gb.players["p2"].StunnedAtZero = true
	// Move p2 off the start tile's healing fountain so the stun-skip (not
	// the stun-on-fountain) branch of spec.md §4.6 applies.
	gb.movement.ResetPosition("p2", geometry.FieldPlace{X: 5, Y: 5})

	rec := &recorder{}
	gb.SubscribeAll(rec.handler())

	if _, err := gb.EndTurn("p1", started.CurrentTurnID); err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}

	if gb.players["p2"].HP != gb.players["p2"].MaxHP {
		t.Errorf("expected p2 healed to max HP, got %d/%d", gb.players["p2"].HP, gb.players["p2"].MaxHP)
	}
	if gb.game.CurrentPlayerID() != "p1" {
		t.Errorf("expected play to skip back to p1 since p2 is stunned off a fountain, got %s", gb.game.CurrentPlayerID())
	}

	endedCount := 0
	for _, et := range rec.types {
		if et == protocol.EventTurnEnded {
			endedCount++
		}
	}
	if endedCount != 2 {
		t.Errorf("expected two TurnEnded events (p1's explicit end, then p2's auto-skip), got %d", endedCount)
	}
}

func TestEndTurnStunOnFountainHealsAndStillEndsTurn(t *testing.T) {
	setup := &config.TestSetup{
		Enabled:      true,
		TileSequence: []deck.TileSpec{{Orientation: geometry.FourSide, Room: true}},
	}
	gb := newTestBus(t, setup)
	started, err := gb.StartGame(time.Now())
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}

	gb.players["p2"].HP = 0
	gb.players["p2"].StunnedAtZero = true

	if _, err := gb.EndTurn("p1", started.CurrentTurnID); err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}

	if gb.players["p2"].HP != gb.players["p2"].MaxHP {
		t.Errorf("expected p2 healed to max HP, got %d/%d", gb.players["p2"].HP, gb.players["p2"].MaxHP)
	}
	if gb.game.CurrentPlayerID() != "p1" {
		t.Errorf("expected p2's stunned turn to end immediately even while healing at the fountain, got current player %s", gb.game.CurrentPlayerID())
	}
}
