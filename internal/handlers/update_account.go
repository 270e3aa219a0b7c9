package handlers

//go:generate mockgen -source=update_account.go -destination=update_account_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// AccountUpdater defines the interface that the account service must implement.
type AccountUpdater interface {
	UpdateAccount(ctx context.Context, userID uuid.UUID, req models.UpdateAccountRequest) (*models.User, error)
}

// NewUpdateAccountHandler returns an HTTP handler that updates full name and email.
// @Summary Update account details
// @Tags users
// @Accept json
// @Produce json
// @Param updateAccountRequest body models.UpdateAccountRequest true "New full name and email"
// @Success 200 {object} models.UserResponse "Account Details Updated Successfully"
// @Failure 400 {object} models.Response "Missing or invalid fields"
// @Failure 409 {object} models.Response "Email already in use"
// @Router /users/update-account-details [post]
// @Security BearerAuth
func NewUpdateAccountHandler(svc AccountUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		var req models.UpdateAccountRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		user, err := svc.UpdateAccount(r.Context(), identity.UserID(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.UserResponse{
			Response: models.Response{Success: true, Message: "Account Details Updated Successfully"},
			User:     user,
		})
	}
}

// RegisterUpdateAccountHandler registers the account update route.
func RegisterUpdateAccountHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/update-account-details", h)
}
