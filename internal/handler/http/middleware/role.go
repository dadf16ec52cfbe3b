package middleware

import (
	"net/http"
	"slices"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/user"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireRole lets the request through when the token's role is one of roles.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrManagerAccessRequired)
				return
			}

			role, _ := claims["role"].(string)
			if !slices.Contains(roles, user.Role(role)) {
				response.HandleError(w, user.ErrManagerAccessRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager requires manager role
var RequireManager = RequireRole(user.RoleManager)
