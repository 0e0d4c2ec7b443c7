// Package bus implements the MessageBus from spec.md §4.7/§5: one worker
// goroutine per active game, serializing commands through a bounded
// inbox and fanning out events synchronously to registered handlers in
// registration order before the next command starts. Grounded on the
// teacher's cmd/server/game_manager.go GameManager (a root object owning
// every subsystem) combined with implementations.go's Broadcaster/Logger/
// SequenceGenerator trio, generalized from a single fixed handler into a
// registry so the realtime and httpapi layers can both subscribe.
package bus

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/duskvale/dungeonengine/internal/battle"
	"github.com/duskvale/dungeonengine/internal/config"
	"github.com/duskvale/dungeonengine/internal/deck"
	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/field"
	"github.com/duskvale/dungeonengine/internal/gamelifecycle"
	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/movement"
	"github.com/duskvale/dungeonengine/internal/player"
	"github.com/duskvale/dungeonengine/internal/protocol"
	"github.com/duskvale/dungeonengine/internal/turn"
)

// EventHandler receives a fanned-out bus event. eventType matches one of
// the protocol.Event* constants; payload is the corresponding struct.
type EventHandler func(eventType string, payload any)

// pendingBattle is a StartBattle awaiting FinalizeBattle when the
// automatic resolution set needsConsumableConfirmation.
type pendingBattle struct {
	playerID     string
	position     geometry.FieldPlace
	fromPosition geometry.FieldPlace
	monsterName  string
	monsterHP    int
	resolution   battle.Resolution
}

// GameBus owns every aggregate for one game and serializes all mutation
// through its worker loop (started by Run). Never access its aggregates
// directly from outside a command closure — that would violate the
// single-writer guarantee from spec.md §5.
type GameBus struct {
	gameID string
	logger *zap.SugaredLogger
	rng    *rand.Rand
	nextID func() string

	game      *gamelifecycle.Game
	field     *field.Field
	movement  *movement.Movement
	players   map[string]*player.Player
	turn      *turn.GameTurn
	turnNo    int
	history   []*turn.GameTurn
	pending   map[string]*pendingBattle
	handlers  map[string][]EventHandler

	inbox chan func()
	done  chan struct{}
}

// New constructs a GameBus for gameID with the given player order. testSetup
// seeds deterministic dice/tile/item sequences and per-player HP overrides
// when non-nil with Enabled set; it is consumed once here and never stored as shared state,
// per spec.md §9's "never process-global" rule for test seeding.
func New(gameID string, playerIDs []string, nextID func() string, logger *zap.SugaredLogger, testSetup *config.TestSetup, inboxSize int) *GameBus {
	var rng *rand.Rand

	var dice []int
	var d *deck.Deck
	var b *deck.Bag
	players := make(map[string]*player.Player, len(playerIDs))

	if testSetup != nil && testSetup.Enabled {
		rng = rand.New(rand.NewSource(1))
		dice = testSetup.DiceRolls
		d = deck.NewTestDeck(testSetup.TileSequence, nextID)
		b = deck.NewTestBag(testSetup.ItemSequence, nextID)
		for _, pid := range playerIDs {
			maxHP := 0
			if o, ok := testSetup.PlayerOverrides[pid]; ok {
				maxHP = o.MaxHP
			}
			players[pid] = player.New(pid, maxHP)
		}
	} else {
		rng = rand.New(rand.NewSource(cryptoSeed()))
		d = deck.NewClassicDeck(60, nextID, rng)
		b = deck.NewClassicBag(nextID, rng)
		for _, pid := range playerIDs {
			players[pid] = player.New(pid, 0)
		}
	}

	gb := &GameBus{
		gameID:   gameID,
		logger:   logger.With("game_id", gameID),
		rng:      rng,
		nextID:   nextID,
		game:     gamelifecycle.New(gameID, playerIDs),
		field:    field.New(d, b, dice),
		movement: movement.New(),
		players:  players,
		pending:  make(map[string]*pendingBattle),
		handlers: make(map[string][]EventHandler),
		inbox:    make(chan func(), inboxSize),
		done:     make(chan struct{}),
	}
	for _, pid := range playerIDs {
		gb.movement.InitializePlayer(pid)
	}
	return gb
}

// Run starts the single worker goroutine that drains the inbox. Call once
// per GameBus; Stop ends it.
func (gb *GameBus) Run() {
	go func() {
		for {
			select {
			case fn := <-gb.inbox:
				fn()
			case <-gb.done:
				return
			}
		}
	}()
}

// Stop ends the worker loop after any in-flight command completes.
func (gb *GameBus) Stop() {
	close(gb.done)
}

// submit enqueues fn on the inbox and blocks until it has run to
// completion, giving callers a synchronous reply per spec.md §4.7 while
// preserving single-writer serialization.
func submit[T any](gb *GameBus, fn func() (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}
	reply := make(chan result, 1)
	gb.inbox <- func() {
		v, err := fn()
		reply <- result{val: v, err: err}
	}
	r := <-reply
	return r.val, r.err
}

// Subscribe registers handler for eventType, called in registration order
// (spec.md §4.7 "events may be handled by multiple subscribers in
// registration order").
func (gb *GameBus) Subscribe(eventType string, handler EventHandler) {
	gb.handlers[eventType] = append(gb.handlers[eventType], handler)
}

// SubscribeAll registers handler for every known event type, for
// fan-out consumers (e.g. the realtime broadcaster) that forward
// everything rather than a curated subset.
func (gb *GameBus) SubscribeAll(handler EventHandler) {
	for _, eventType := range protocol.AllEventTypes() {
		gb.Subscribe(eventType, handler)
	}
}

// emit fans eventType out to every registered handler synchronously,
// before the command that produced it returns — preserving the ordering
// guarantees in spec.md §5 ("BattleCompleted observed before TurnEnded",
// etc. — all a consequence of strictly sequential emission here).
func (gb *GameBus) emit(eventType string, payload any) {
	for _, h := range gb.handlers[eventType] {
		h(eventType, payload)
	}
}

// cryptoSeed draws an int64 seed from crypto/rand for a non-test game's
// dice and shuffles, so separate production games don't replay identical
// rolls; math/rand is still fine as the actual generator since dice
// fairness, not unpredictability, is what spec.md §4.4 cares about.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

func (gb *GameBus) playerOrError(playerID string) (*player.Player, error) {
	p, ok := gb.players[playerID]
	if !ok {
		return nil, engineerr.Newf(engineerr.EngineInvariant, "unknown player %s", playerID)
	}
	return p, nil
}

func (gb *GameBus) requireActiveTurn(playerID, turnID string) error {
	if gb.game.IsFinished() {
		return engineerr.New(engineerr.GameAlreadyFinished, "game has already finished")
	}
	if gb.game.CurrentPlayerID() != playerID {
		return engineerr.New(engineerr.NotYourTurn, "it is not this player's turn")
	}
	if gb.turn == nil || gb.turn.PlayerID != playerID || gb.turn.TurnID != turnID || gb.turn.Ended() {
		return engineerr.New(engineerr.InvalidTurnId, "turnId does not match the active turn")
	}
	return nil
}
