package handlers

//go:generate mockgen -source=logout.go -destination=logout_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, identity *models.Identity) error
}

// NewLogoutHandler returns an HTTP handler that ends the caller's session.
// @Summary User logout
// @Description Clears the stored refresh token, revokes the access token and clears both cookies.
// @Tags users
// @Produce json
// @Success 200 {object} models.Response "Logout Successful"
// @Failure 401 {object} models.Response "Unauthorized Request"
// @Router /users/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter, cookies CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		if err := svc.Logout(r.Context(), identity); err != nil {
			writeError(w, r, err)
			return
		}

		clearSessionCookies(w, cookies)
		writeMessage(w, http.StatusOK, "Logout Successful")
	}
}

// RegisterLogoutHandler registers the logout route.
func RegisterLogoutHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/logout", h)
}
