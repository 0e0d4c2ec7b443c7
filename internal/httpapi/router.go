// Package httpapi translates spec.md §6's JSON-over-HTTP contract into
// MessageBus commands and marshals results back to JSON. Grounded on
// LuKev/tm_server's internal/api (gorilla/mux Subrouter-per-concern,
// json.NewDecoder/NewEncoder at the handler boundary) combined with the
// teacher's cmd/server/handlers.go response-shaping conventions.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/duskvale/dungeonengine/internal/bus"
	"github.com/duskvale/dungeonengine/internal/config"
	"github.com/duskvale/dungeonengine/internal/realtime"
)

// Handler wires a bus.Registry and a realtime.Registry into an HTTP
// router. One Handler serves every game both registries own.
type Handler struct {
	registry *bus.Registry
	streams  *realtime.Registry
	cfg      *config.Config
	logger   *zap.SugaredLogger
	nextID   func() string
}

// New constructs a Handler.
func New(registry *bus.Registry, streams *realtime.Registry, cfg *config.Config, logger *zap.SugaredLogger, nextID func() string) *Handler {
	return &Handler{registry: registry, streams: streams, cfg: cfg, logger: logger, nextID: nextID}
}

// RegisterRoutes installs every spec.md §6 endpoint onto router, grouped
// under /api/test and /api/game subrouters per LuKev/tm_server's style.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	test := router.PathPrefix("/api/test").Subrouter()
	test.HandleFunc("/toggle-mode", h.handleToggleTestMode).Methods(http.MethodPost)
	test.HandleFunc("/setup-game", h.handleSetupGame).Methods(http.MethodPost)

	game := router.PathPrefix("/api/game").Subrouter()
	game.HandleFunc("/{gameId}", h.handleGetSnapshot).Methods(http.MethodGet)
	game.HandleFunc("/{gameId}/turns", h.handleGetTurns).Methods(http.MethodGet)
	game.HandleFunc("/{gameId}/stream", h.handleStream).Methods(http.MethodGet)
	game.HandleFunc("/pick-tile", h.handlePickTile).Methods(http.MethodPost)
	game.HandleFunc("/rotate-tile", h.handleRotateTile).Methods(http.MethodPost)
	game.HandleFunc("/place-tile", h.handlePlaceTile).Methods(http.MethodPost)
	game.HandleFunc("/move-player", h.handleMovePlayer).Methods(http.MethodPost)
	game.HandleFunc("/finalize-battle", h.handleFinalizeBattle).Methods(http.MethodPost)
	game.HandleFunc("/pick-item", h.handlePickItem).Methods(http.MethodPost)
	game.HandleFunc("/inventory-action", h.handleInventoryAction).Methods(http.MethodPost)
	game.HandleFunc("/use-spell", h.handleUseSpell).Methods(http.MethodPost)
	game.HandleFunc("/end-turn", h.handleEndTurn).Methods(http.MethodPost)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
