package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// NewCurrentUserHandler returns the user resolved by the auth middleware.
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} models.UserResponse "Current user"
// @Failure 401 {object} models.Response "Unauthorized Request"
// @Router /users/current-user [get]
// @Security BearerAuth
func NewCurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, models.UserResponse{
			Response: models.Response{Success: true, Message: "User fetched successfully"},
			User:     identity.User,
		})
	}
}

// RegisterCurrentUserHandler registers the current user route.
func RegisterCurrentUserHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/current-user", h)
}
