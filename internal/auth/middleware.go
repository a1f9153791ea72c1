package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"reservasport/internal/service"
)

// AdminAuthMiddleware gates admin routes behind a bearer token validated
// against the token store.
func AdminAuthMiddleware(authSvc service.AdminAuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if err := authSvc.Validate(token); err != nil {
				unauthorized(w, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
