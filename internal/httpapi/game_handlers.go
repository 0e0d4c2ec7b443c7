package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/duskvale/dungeonengine/internal/geometry"
	"github.com/duskvale/dungeonengine/internal/protocol"
)

func (h *Handler) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]
	gb, err := h.registry.Get(gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	snapshot, err := gb.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) handleGetTurns(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameId"]
	gb, err := h.registry.Get(gameID)
	if err != nil {
		writeError(w, err)
		return
	}
	since := 0
	if raw := r.URL.Query().Get("since"); raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			since = n
		}
	}
	turns, err := gb.Turns(since)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, turns)
}

func (h *Handler) handlePickTile(w http.ResponseWriter, r *http.Request) {
	var req protocol.PickTile
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	gb, err := h.registry.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	side, err := geometry.ParseSide(req.RequiredOpenSide)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	evt, err := gb.PickTile(req.PlayerID, req.TurnID, side)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}

func (h *Handler) handleRotateTile(w http.ResponseWriter, r *http.Request) {
	var req protocol.RotateTile
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	gb, err := h.registry.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	top, err := geometry.ParseSide(req.TopSide)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	required, err := geometry.ParseSide(req.RequiredOpenSide)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	evt, err := gb.RotateTile(req.PlayerID, req.TurnID, top, required)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}

func (h *Handler) handlePlaceTile(w http.ResponseWriter, r *http.Request) {
	var req protocol.PlaceTile
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	gb, err := h.registry.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	evt, err := gb.PlaceTile(req.PlayerID, req.TurnID, req.TileID, req.FieldPlace)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}

func (h *Handler) handleMovePlayer(w http.ResponseWriter, r *http.Request) {
	var req protocol.MovePlayer
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	gb, err := h.registry.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := gb.MovePlayer(req.PlayerID, req.TurnID, req.FromPosition, req.ToPosition, req.IgnoreMonster, false)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleFinalizeBattle(w http.ResponseWriter, r *http.Request) {
	var req protocol.FinalizeBattle
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	gb, err := h.registry.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	evt, err := gb.FinalizeBattle(req.PlayerID, req.TurnID, req.BattleID, req.SelectedConsumableIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}

func (h *Handler) handlePickItem(w http.ResponseWriter, r *http.Request) {
	var req protocol.PickItem
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	gb, err := h.registry.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	evt, err := gb.PickItem(req.PlayerID, req.TurnID, req.ItemIDToReplace)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}

func (h *Handler) handleInventoryAction(w http.ResponseWriter, r *http.Request) {
	var req protocol.InventoryAction
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	gb, err := h.registry.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := gb.InventoryAction(req.PlayerID, req.Action, req.ItemID, req.ItemIDToReplace); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) handleUseSpell(w http.ResponseWriter, r *http.Request) {
	var req protocol.UseSpell
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	gb, err := h.registry.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	evt, err := gb.UseSpell(req.PlayerID, req.TurnID, req.ItemID, req.TargetPosition)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}

func (h *Handler) handleEndTurn(w http.ResponseWriter, r *http.Request) {
	var req protocol.EndTurn
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BadRequest", Message: err.Error()})
		return
	}
	gb, err := h.registry.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	evt, err := gb.EndTurn(req.PlayerID, req.TurnID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evt)
}
