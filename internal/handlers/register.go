package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a user account. The avatar is required, the cover image is optional. Both are uploaded to the media store.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param username formData string true "Username"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param fullName formData string true "Full name"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} models.UserResponse "Registered Successfully"
// @Failure 400 {object} models.Response "Missing or invalid fields"
// @Failure 409 {object} models.Response "Username or email already registered"
// @Failure 500 {object} models.Response "Upload or creation failure"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer, uploads UploadOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseMultipart(r, uploads); err != nil {
			logger.FromContext(r.Context()).Infow("invalid registration form", "err", err)
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		defer cleanupForm(r)

		avatar, err := spoolFile(r, "avatar", uploads)
		if err != nil {
			writeError(w, r, err)
			return
		}
		cover, err := spoolFile(r, "coverImage", uploads)
		if err != nil {
			removeSpooled(avatar)
			writeError(w, r, err)
			return
		}
		defer removeSpooled(avatar, cover)

		user, err := svc.Register(r.Context(), models.RegisterRequest{
			Username:   r.FormValue("username"),
			Email:      r.FormValue("email"),
			Password:   r.FormValue("password"),
			FullName:   r.FormValue("fullName"),
			Avatar:     avatar,
			CoverImage: cover,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, models.UserResponse{
			Response: models.Response{Success: true, Message: "Registered Successfully"},
			User:     user,
		})
	}
}

// RegisterRegisterHandler registers the registration route.
func RegisterRegisterHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/register", h)
}
