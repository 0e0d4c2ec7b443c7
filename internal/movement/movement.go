// Package movement implements the Movement aggregate from spec.md §4.2:
// per-player positions, transition validation, and the post-battle move
// lock. Grounded on the teacher's cmd/server/engine.go ProcessMove and the
// MovementValidator interface in cmd/server/interfaces.go, adapted from a
// single shared-board position update to per-player position tracking.
package movement

import (
	"sync"

	"github.com/duskvale/dungeonengine/internal/engineerr"
	"github.com/duskvale/dungeonengine/internal/field"
	"github.com/duskvale/dungeonengine/internal/geometry"
)

// Movement tracks every player's current position and whether they are
// locked out of further moves this turn by a just-completed battle.
type Movement struct {
	mu               sync.Mutex
	positions        map[string]geometry.FieldPlace
	postBattleLocked map[string]bool
}

// New creates a Movement aggregate with no players registered yet.
func New() *Movement {
	return &Movement{
		positions:        make(map[string]geometry.FieldPlace),
		postBattleLocked: make(map[string]bool),
	}
}

// InitializePlayer places playerID at field.Start, per spec.md §4.2
// "Initialize at GameStarted: every player at (0,0)".
func (m *Movement) InitializePlayer(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[playerID] = field.Start
}

// PositionOf returns playerID's current field position.
func (m *Movement) PositionOf(playerID string) geometry.FieldPlace {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.positions[playerID]
}

// IsLocked reports whether playerID is barred from moving this turn by a
// post-battle lock.
func (m *Movement) IsLocked(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.postBattleLocked[playerID]
}

// LockAfterBattle sets the post-battle move lock for playerID, called
// when a BattleCompleted event arrives (spec.md §4.4).
func (m *Movement) LockAfterBattle(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postBattleLocked[playerID] = true
}

// ClearLock clears the post-battle lock, called at TurnStarted.
func (m *Movement) ClearLock(playerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.postBattleLocked, playerID)
}

// Result describes the outcome of a successful move.
type Result struct {
	From          geometry.FieldPlace
	To            geometry.FieldPlace
	IsBattleReturn bool
}

// Move validates and applies a player move to destination, per
// spec.md §4.2. f is used only to check reachability; the caller is
// responsible for detecting an undefeated monster at destination and
// routing to StartBattle instead of calling Move.
func (m *Movement) Move(f *field.Field, playerID string, destination geometry.FieldPlace, isBattleReturn bool) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.positions[playerID]

	if !isBattleReturn && m.postBattleLocked[playerID] {
		return Result{}, engineerr.New(engineerr.CannotMoveAfterBattle, "cannot move again after a battle this turn")
	}
	if !f.CanReach(from, destination) {
		return Result{}, engineerr.New(engineerr.PositionUnreachable, "destination is not reachable from the current position")
	}
	if _, placed := f.Tile(destination); !placed {
		return Result{}, engineerr.New(engineerr.PositionUnreachable, "destination has no tile placed yet")
	}

	m.positions[playerID] = destination
	return Result{From: from, To: destination, IsBattleReturn: isBattleReturn}, nil
}

// ResetPosition unconditionally sets playerID's position, used by spell
// teleports and tests (spec.md §4.2 "Reset position").
func (m *Movement) ResetPosition(playerID string, to geometry.FieldPlace) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[playerID] = to
}
