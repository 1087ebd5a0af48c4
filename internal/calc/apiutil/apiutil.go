// Package apiutil holds the JSON plumbing shared by the calculation handlers.
package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"Cabina/internal/calc/calcerr"
)

func WriteJSON(w http.ResponseWriter, log zerolog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteError maps invalid input to 400 with the offending field and
// anything else to 500.
func WriteError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var ie *calcerr.InvalidInputError
	if errors.As(err, &ie) {
		log.Debug().Str("field", ie.Field).Msg(ie.Reason)
		WriteJSON(w, log, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
			"field": ie.Field,
		})
		return
	}
	log.Error().Err(err).Msg("Calculation failed")
	WriteJSON(w, log, http.StatusInternalServerError, map[string]string{"error": "Calculation error"})
}

// Decode reads a JSON body into v, answering 400 itself on failure.
func Decode(w http.ResponseWriter, r *http.Request, log zerolog.Logger, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteJSON(w, log, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return false
	}
	return true
}
