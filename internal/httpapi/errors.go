package httpapi

import (
	"errors"
	"net/http"

	"github.com/duskvale/dungeonengine/internal/engineerr"
)

// errorBody is the JSON shape returned for any failed command, per
// spec.md §6.
type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// writeError classifies err per spec.md §7 and writes the matching HTTP
// status and body. Rule-conflict errors (e.g. a chest needing a key) are
// reported with a 200 and a structured payload, since they are an
// expected game-rule outcome rather than a transport failure.
func writeError(w http.ResponseWriter, err error) {
	var engErr *engineerr.Error
	if !errors.As(err, &engErr) {
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: string(engineerr.EngineInvariant), Message: err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch engErr.Code.Class() {
	case engineerr.ClassValidation, engineerr.ClassResourceExhaustion:
		status = http.StatusConflict
	case engineerr.ClassRuleConflict:
		status = http.StatusOK
	case engineerr.ClassEngineInvariant:
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorBody{Code: string(engErr.Code), Message: engErr.Message, Detail: engErr.Detail})
}
