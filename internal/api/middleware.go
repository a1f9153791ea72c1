package api

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID tags every response with an X-Request-ID so log lines and
// client reports can be correlated. Incoming ids are passed through.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
