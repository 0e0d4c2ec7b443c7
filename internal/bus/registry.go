package bus

import (
	"sync"

	"go.uber.org/zap"

	"github.com/duskvale/dungeonengine/internal/config"
	"github.com/duskvale/dungeonengine/internal/engineerr"
)

// Registry holds one GameBus per active game, keyed by gameId, per
// spec.md §5's "concurrent games are independent goroutines registered
// in a registry". Grounded on the teacher's cmd/server/lobby_manager.go
// LobbyManager map-of-games pattern, generalized to hold running buses
// instead of static game state.
type Registry struct {
	mu     sync.RWMutex
	logger *zap.SugaredLogger
	nextID func() string
	games  map[string]*GameBus
}

// NewRegistry constructs an empty Registry. nextID mints every ID used
// inside a game (turns, tiles, items, battles) so tests can inject a
// deterministic sequence.
func NewRegistry(logger *zap.SugaredLogger, nextID func() string) *Registry {
	return &Registry{logger: logger, nextID: nextID, games: make(map[string]*GameBus)}
}

// Create starts a new GameBus for gameID, registers it, and launches its
// worker goroutine.
func (r *Registry) Create(gameID string, playerIDs []string, testSetup *config.TestSetup, inboxSize int) *GameBus {
	gb := New(gameID, playerIDs, r.nextID, r.logger, testSetup, inboxSize)
	gb.Run()

	r.mu.Lock()
	r.games[gameID] = gb
	r.mu.Unlock()
	return gb
}

// Get looks up a registered GameBus by id.
func (r *Registry) Get(gameID string) (*GameBus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gb, ok := r.games[gameID]
	if !ok {
		return nil, engineerr.Newf(engineerr.EngineInvariant, "no game with id %s", gameID)
	}
	return gb, nil
}

// Remove stops and unregisters a game's bus, e.g. once it finishes and
// its snapshot has been persisted by the caller.
func (r *Registry) Remove(gameID string) {
	r.mu.Lock()
	gb, ok := r.games[gameID]
	delete(r.games, gameID)
	r.mu.Unlock()
	if ok {
		gb.Stop()
	}
}
