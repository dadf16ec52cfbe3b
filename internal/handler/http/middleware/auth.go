package middleware

import (
	"errors"
	"net/http"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/auth"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token carrying a
// user_id claim. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		switch {
		case errors.Is(err, jwtauth.ErrNoTokenFound):
			response.HandleError(w, auth.ErrMissingToken)
			return
		case errors.Is(err, jwtauth.ErrExpired):
			response.HandleError(w, auth.ErrTokenExpired)
			return
		case err != nil, token == nil:
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		// Only access tokens may call the API.
		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if userID, _ := claims["user_id"].(string); userID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
