package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/vtc-hr/attendance-backend-go/internal/domain/auth"
	"github.com/vtc-hr/attendance-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose context carries no valid access
// token. It runs after jwtauth.Verifier, which decodes the token from
// the Authorization header into the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// Refresh tokens must not be usable against API endpoints.
			if tokenType, _ := claims["type"].(string); tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
