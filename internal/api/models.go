package api

import (
	"encoding/json"
	"net/http"

	apperrors "smartparking/internal/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError serializes err with its stable code so front ends can branch
// on the failure kind.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.StatusOf(err), errorEnvelope{
		Error: errorBody{
			Code:    apperrors.CodeOf(err),
			Message: err.Error(),
		},
	})
}
