package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-user-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-user-accounts/internal/hasher"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/repositories"
)

// ChangePassword replaces the password of userID after verifying the old one.
func (svc *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req models.ChangePasswordRequest) error {
	if missingRequired(models.ChangePasswordRequest{
		OldPassword: strings.TrimSpace(req.OldPassword),
		NewPassword: strings.TrimSpace(req.NewPassword),
	}) {
		return apperrors.Validation(MsgPasswordsRequired)
	}
	if len(req.NewPassword) > hasher.MaxPasswordBytes {
		return apperrors.Validation(MsgPasswordTooLong)
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "user_id", userID, "err", err)
		return apperrors.Upstream(MsgInternal, err)
	}
	if user == nil {
		return apperrors.Auth(MsgInvalidAccessToken, nil)
	}

	if err := svc.hasher.Compare(user.Password, req.OldPassword); err != nil {
		if errors.Is(err, hasher.ErrMismatch) {
			return apperrors.Auth(MsgInvalidOldPassword, nil)
		}
		return apperrors.Upstream(MsgInternal, err)
	}

	hashed, err := svc.hasher.Hash(req.NewPassword)
	if errors.Is(err, hasher.ErrPasswordTooLong) {
		return apperrors.Validation(MsgPasswordTooLong)
	}
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to hash password", "user_id", userID, "err", err)
		return apperrors.Upstream(MsgInternal, err)
	}

	if err := svc.writer.UpdatePassword(ctx, userID, hashed); err != nil {
		logger.FromContext(ctx).Errorw("failed to update password", "user_id", userID, "err", err)
		return apperrors.Upstream(MsgInternal, err)
	}

	svc.publishEvent(ctx, models.EventPasswordChanged, userID, user.Username)
	return nil
}

// UpdateAccount replaces full name and email of userID.
func (svc *AuthService) UpdateAccount(ctx context.Context, userID uuid.UUID, req models.UpdateAccountRequest) (*models.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)

	if missingRequired(models.UpdateAccountRequest{FullName: fullName, Email: email}) {
		return nil, apperrors.Validation(MsgAccountFieldsRequired)
	}

	if !ValidEmail(email) {
		return nil, apperrors.Validation(MsgInvalidEmail)
	}

	taken, err := svc.reader.EmailTakenByOther(ctx, email, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to check email", "user_id", userID, "err", err)
		return nil, apperrors.Upstream(MsgInternal, err)
	}
	if taken {
		return nil, apperrors.Conflict(MsgEmailInUse)
	}

	updated, err := svc.writer.UpdateAccount(ctx, userID, fullName, email)
	switch {
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return nil, apperrors.Conflict(MsgEmailInUse)
	case errors.Is(err, repositories.ErrUserNotFound):
		return nil, apperrors.NotFound(MsgNoSuchUser)
	case err != nil:
		logger.FromContext(ctx).Errorw("failed to update account", "user_id", userID, "err", err)
		return nil, apperrors.Upstream(MsgInternal, err)
	}

	svc.publishEvent(ctx, models.EventAccountUpdated, userID, updated.Username)
	return updated.Public(), nil
}

// UpdateAvatar uploads file as the new avatar of userID and deletes the old one.
func (svc *AuthService) UpdateAvatar(ctx context.Context, userID uuid.UUID, file *models.UploadedFile) (*models.User, error) {
	return svc.replaceMedia(ctx, userID, file, avatarSlot)
}

// UpdateCoverImage uploads file as the new cover image of userID and deletes the old one.
func (svc *AuthService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, file *models.UploadedFile) (*models.User, error) {
	return svc.replaceMedia(ctx, userID, file, coverSlot)
}

// mediaSlot describes one replaceable media field of a user.
type mediaSlot struct {
	name          string
	missingMsg    string
	uploadFailMsg string
	event         string
	current       func(u *models.UserDB) string
	store         func(w UserWriter, ctx context.Context, id uuid.UUID, url string) (*models.UserDB, error)
}

var (
	avatarSlot = mediaSlot{
		name:          "avatar",
		missingMsg:    MsgAvatarMissing,
		uploadFailMsg: MsgAvatarUploadFailed,
		event:         models.EventAvatarUpdated,
		current:       func(u *models.UserDB) string { return u.Avatar },
		store:         UserWriter.UpdateAvatar,
	}
	coverSlot = mediaSlot{
		name:          "cover image",
		missingMsg:    MsgCoverMissing,
		uploadFailMsg: MsgCoverUploadFailed,
		event:         models.EventCoverUpdated,
		current:       func(u *models.UserDB) string { return u.CoverImage },
		store:         UserWriter.UpdateCoverImage,
	}
)

func (svc *AuthService) replaceMedia(ctx context.Context, userID uuid.UUID, file *models.UploadedFile, slot mediaSlot) (*models.User, error) {
	if file == nil || file.Path == "" {
		return nil, apperrors.Validation(slot.missingMsg)
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, apperrors.Upstream(MsgInternal, err)
	}
	if user == nil {
		return nil, apperrors.NotFound(MsgNoSuchUser)
	}
	oldURL := slot.current(user)

	url, err := svc.media.Upload(ctx, file.Path)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to upload media", "slot", slot.name, "user_id", userID, "err", err)
		return nil, apperrors.Validation(slot.uploadFailMsg)
	}

	updated, err := slot.store(svc.writer, ctx, userID, url)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.NotFound(MsgNoSuchUser)
	}
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to store media url", "slot", slot.name, "user_id", userID, "err", err)
		return nil, apperrors.Upstream(MsgInternal, err)
	}

	if oldURL != "" && oldURL != url {
		if err := svc.media.Delete(ctx, oldURL); err != nil {
			logger.FromContext(ctx).Warnw("failed to delete old media", "slot", slot.name, "user_id", userID, "url", oldURL, "err", err)
		}
	}

	svc.publishEvent(ctx, slot.event, userID, updated.Username)
	return updated.Public(), nil
}
