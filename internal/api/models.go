package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"reservasport/internal/db"
	apperrors "reservasport/internal/errors"
)

type CreateReservationResponse struct {
	Message     string         `json:"message"`
	Reservation db.Reservation `json:"reservation"`
}

type CancelReservationResponse struct {
	Message string         `json:"message"`
	Removed db.Reservation `json:"removed"`
}

type HealthResponse struct {
	OK   bool   `json:"ok"`
	Time string `json:"time"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps service errors onto the JSON {error} envelope. Anything
// that is not an HTTPError (store IO/parse failures) becomes a 500.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
		return
	}
	log.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
