package handlers

//go:generate mockgen -source=refresh.go -destination=refresh_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// Refresher defines the interface that the token refresh service must implement.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
}

// NewRefreshHandler returns an HTTP handler that rotates the session tokens.
// The refreshToken cookie takes precedence over the body.
// @Summary Refresh access token
// @Description Exchanges the current refresh token for a new access/refresh pair.
// @Tags users
// @Accept json
// @Produce json
// @Param refreshRequest body models.RefreshRequest false "Refresh token, when not sent as a cookie"
// @Success 200 {object} models.RefreshResponse "Access token refreshed"
// @Failure 401 {object} models.Response "Missing, invalid or reused refresh token"
// @Router /users/refresh-token [post]
func NewRefreshHandler(svc Refresher, cookies CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(refreshTokenCookie); err == nil {
			token = c.Value
		}
		if token == "" {
			var req models.RefreshRequest
			if err := decodeJSON(r, &req); err == nil {
				token = req.RefreshToken
			}
		}

		tokens, err := svc.Refresh(r.Context(), token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		setSessionCookies(w, cookies, tokens)
		writeJSON(w, http.StatusOK, models.RefreshResponse{
			Response:     models.Response{Success: true, Message: "Access token refreshed"},
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		})
	}
}

// RegisterRefreshHandler registers the token refresh route.
func RegisterRefreshHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/refresh-token", h)
}
