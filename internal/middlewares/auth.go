package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-user-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

const (
	msgUnauthorized      = "Unauthorized Request"
	msgTokenVerification = "Error in verifying token"
)

// Tokener extracts the raw access token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authenticator resolves an access token to the identity of its user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.Identity, error)
}

// AuthMiddleware returns a middleware that rejects requests without a valid,
// unrevoked access token and attaches the caller's identity to the context.
func AuthMiddleware(tokener Tokener, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.FromContext(ctx).Infow("authorization failed", "err", err)
				writeEnvelope(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			identity, err := auth.Authenticate(ctx, tokenString)
			if err != nil {
				logger.FromContext(ctx).Infow("authorization failed", "err", err)
				message := msgTokenVerification
				if appErr, ok := apperrors.As(err); ok {
					message = appErr.Message
				}
				writeEnvelope(w, apperrors.Status(err), message)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
		})
	}
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity stored by AuthMiddleware.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*models.Identity)
	return identity, ok && identity != nil
}

func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.Response{Success: false, Message: message})
}
