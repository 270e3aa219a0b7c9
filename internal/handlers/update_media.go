package handlers

//go:generate mockgen -source=update_media.go -destination=update_media_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// AvatarUpdater defines the interface that the avatar service must implement.
type AvatarUpdater interface {
	UpdateAvatar(ctx context.Context, userID uuid.UUID, file *models.UploadedFile) (*models.User, error)
}

// CoverImageUpdater defines the interface that the cover image service must implement.
type CoverImageUpdater interface {
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *models.UploadedFile) (*models.User, error)
}

type mediaUpdateFunc func(ctx context.Context, userID uuid.UUID, file *models.UploadedFile) (*models.User, error)

// NewUpdateAvatarHandler returns an HTTP handler that replaces the caller's avatar.
// @Summary Update avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} models.UserResponse "Avatar Updated Successfully"
// @Failure 400 {object} models.Response "Avatar File is Missing / Error while uploading avatar"
// @Router /users/update-user-avatar [post]
// @Security BearerAuth
func NewUpdateAvatarHandler(svc AvatarUpdater, uploads UploadOptions) http.HandlerFunc {
	return newMediaHandler("avatar", "Avatar Updated Successfully", svc.UpdateAvatar, uploads)
}

// NewUpdateCoverImageHandler returns an HTTP handler that replaces the caller's cover image.
// @Summary Update cover image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} models.UserResponse "Cover Image Updated Successfully"
// @Failure 400 {object} models.Response "Cover Image File is Missing / Error while uploading cover image"
// @Router /users/update-user-coverimage [post]
// @Security BearerAuth
func NewUpdateCoverImageHandler(svc CoverImageUpdater, uploads UploadOptions) http.HandlerFunc {
	return newMediaHandler("coverImage", "Cover Image Updated Successfully", svc.UpdateCoverImage, uploads)
}

func newMediaHandler(field, successMsg string, update mediaUpdateFunc, uploads UploadOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		if err := parseMultipart(r, uploads); err != nil {
			logger.FromContext(r.Context()).Infow("invalid media form", "field", field, "err", err)
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		defer cleanupForm(r)

		file, err := spoolFile(r, field, uploads)
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer removeSpooled(file)

		user, err := update(r.Context(), identity.UserID(), file)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.UserResponse{
			Response: models.Response{Success: true, Message: successMsg},
			User:     user,
		})
	}
}

// RegisterUpdateAvatarHandler registers the avatar update route.
func RegisterUpdateAvatarHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/update-user-avatar", h)
}

// RegisterUpdateCoverImageHandler registers the cover image update route.
func RegisterUpdateCoverImageHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/update-user-coverimage", h)
}
