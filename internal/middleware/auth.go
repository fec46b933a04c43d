package middleware

import (
	"context"
	"net/http"

	"vyaha-be/internal/auth"
	"vyaha-be/internal/logger"
	"vyaha-be/internal/utils"

	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(token string) (auth.Identity, error)
}

// AuthMiddleware attaches the caller's identity to the request context when a
// valid token is present. It never rejects; route guards decide that.
func AuthMiddleware(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractAccessToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := a.Authenticate(token)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), id.UserID, id.Email, string(id.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom reads the identity AuthMiddleware stored.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return auth.Identity{}, false
	}
	return auth.Identity{
		UserID: userID,
		Email:  utils.GetUserEmailFromContext(ctx),
		Role:   auth.Role(utils.GetUserRoleFromContext(ctx)),
	}, true
}
