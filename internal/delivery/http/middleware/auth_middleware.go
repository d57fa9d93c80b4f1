package middleware

import (
	"net/http"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/utils"
)

// NewAuthMiddleware validates the bearer token and places the operator's
// Session in the request context. The session comes from the token claims
// only; there is no database lookup per request.
func NewAuthMiddleware(jwtManager *utils.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := utils.TokenFromRequest(r)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				logger.WithContext(r.Context()).Debug().Err(err).Msg("Rejected token")
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
				return
			}

			session := &domain.Session{
				UserID: claims.UserID,
				Email:  claims.Email,
				Role:   claims.Role,
			}
			ctx := domain.NewSessionContext(r.Context(), session)
			ctx = logger.WithUserID(ctx, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when the session carries one of
// the roles. It must run after the auth middleware.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := domain.SessionFromContext(r.Context())
			if !ok {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized: No session")
				return
			}
			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.WriteError(w, http.StatusForbidden, "Forbidden: operators only")
		})
	}
}
