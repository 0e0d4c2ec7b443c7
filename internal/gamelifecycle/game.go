// Package gamelifecycle implements the Game aggregate from spec.md §4.6's
// Victory rule and §4.3's turn rotation: player order, the currently
// active player, and the finished/winner transition. Grounded on the
// teacher's cmd/server/game_manager.go GameManager (the root object owning
// every subsystem), collapsed to just the lifecycle fields a generalized
// MessageBus needs — subsystem ownership itself moves to internal/bus.
package gamelifecycle

import "github.com/duskvale/dungeonengine/internal/engineerr"

// Status is the game's lifecycle phase.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
)

// Game is the lifecycle root: player order, current turn holder, and the
// finished/winner transition.
type Game struct {
	GameID           string
	Status           Status
	PlayerIDs        []string
	CurrentPlayerIdx int
	WinnerID         string
}

// New creates a waiting game with the given player order.
func New(gameID string, playerIDs []string) *Game {
	return &Game{GameID: gameID, Status: StatusWaiting, PlayerIDs: append([]string(nil), playerIDs...)}
}

// Start transitions a waiting game to active, seating the first player.
func (g *Game) Start() error {
	if g.Status != StatusWaiting {
		return engineerr.New(engineerr.EngineInvariant, "game has already started")
	}
	g.Status = StatusActive
	g.CurrentPlayerIdx = 0
	return nil
}

// CurrentPlayerID returns the player whose turn it currently is.
func (g *Game) CurrentPlayerID() string {
	if len(g.PlayerIDs) == 0 {
		return ""
	}
	return g.PlayerIDs[g.CurrentPlayerIdx]
}

// AdvanceToNextPlayer rotates to the next player in order, skipping any
// marked defeated, per spec.md §4.3 End Turn "rotate to the next
// non-defeated player". defeated reports whether a given playerID is out.
func (g *Game) AdvanceToNextPlayer(defeated func(playerID string) bool) {
	n := len(g.PlayerIDs)
	if n == 0 {
		return
	}
	for i := 1; i <= n; i++ {
		next := (g.CurrentPlayerIdx + i) % n
		if !defeated(g.PlayerIDs[next]) {
			g.CurrentPlayerIdx = next
			return
		}
	}
}

// Finish ends the game with winnerID as the victor, per spec.md §4.6
// Victory: "no further commands modify state".
func (g *Game) Finish(winnerID string) {
	g.Status = StatusFinished
	g.WinnerID = winnerID
}

// IsFinished reports whether the game has ended.
func (g *Game) IsFinished() bool {
	return g.Status == StatusFinished
}
