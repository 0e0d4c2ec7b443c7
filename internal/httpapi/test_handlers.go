package httpapi

import (
	"net/http"
	"time"

	"github.com/duskvale/dungeonengine/internal/catalogdata"
	"github.com/duskvale/dungeonengine/internal/config"
	"github.com/duskvale/dungeonengine/internal/deck"
	"github.com/duskvale/dungeonengine/internal/protocol"
	"github.com/duskvale/dungeonengine/internal/tile"
)

func (h *Handler) handleToggleTestMode(w http.ResponseWriter, r *http.Request) {
	var req protocol.ToggleTestMode
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	h.cfg.Engine.TestModeEnabled = req.Enabled
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) handleSetupGame(w http.ResponseWriter, r *http.Request) {
	var req protocol.SetupGame
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}

	setup := &config.TestSetup{
		Enabled:         true,
		DiceRolls:       req.DiceRolls,
		TileSequence:    make([]deck.TileSpec, 0, len(req.TileSequence)),
		ItemSequence:    make([]deck.ItemSpec, 0, len(req.ItemSequence)),
		PlayerOverrides: make(map[string]config.PlayerOverride, len(req.PlayerConfigs)),
	}
	for _, t := range req.TileSequence {
		spec := deck.TileSpec{NamedOrientation: t.Named, Room: t.Room}
		if t.Orientation != nil {
			spec.Orientation = *t.Orientation
		}
		for _, f := range t.Features {
			spec.Features = append(spec.Features, tile.Feature(f))
		}
		setup.TileSequence = append(setup.TileSequence, spec)
	}
	for _, it := range req.ItemSequence {
		setup.ItemSequence = append(setup.ItemSequence, deck.ItemSpec{
			MonsterName:   it.MonsterName,
			Type:          catalogdata.ItemType(it.Type),
			TreasureValue: it.TreasureValue,
		})
	}
	for playerID, c := range req.PlayerConfigs {
		setup.PlayerOverrides[playerID] = config.PlayerOverride{MaxHP: c.MaxHP}
	}

	gb := h.registry.Create(req.GameID, req.PlayerIDs, setup, h.cfg.Engine.CommandInboxSize)
	gb.SubscribeAll(h.streams.BroadcasterFor(req.GameID).Handler())
	evt, err := gb.StartGame(time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}
