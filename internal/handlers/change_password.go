package handlers

//go:generate mockgen -source=change_password.go -destination=change_password_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// PasswordChanger defines the interface that the password service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, req models.ChangePasswordRequest) error
}

// NewChangePasswordHandler returns an HTTP handler that changes the caller's password.
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param changePasswordRequest body models.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} models.Response "Password Changed Successfully"
// @Failure 400 {object} models.Response "Old and New Password are Required"
// @Failure 401 {object} models.Response "Invalid Old Password"
// @Router /users/change-password [post]
// @Security BearerAuth
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		var req models.ChangePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		if err := svc.ChangePassword(r.Context(), identity.UserID(), req); err != nil {
			writeError(w, r, err)
			return
		}

		writeMessage(w, http.StatusOK, "Password Changed Successfully")
	}
}

// RegisterChangePasswordHandler registers the change password route.
func RegisterChangePasswordHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/change-password", h)
}
