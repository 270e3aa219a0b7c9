package services

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-user-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-user-accounts/internal/hasher"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
	"github.com/sbilibin2017/gw-user-accounts/internal/repositories"
)

// Client-facing messages.
const (
	MsgAllFieldsRequired     = "All Fields Are Required"
	MsgAlreadyRegistered     = "Already Registered, Please Login"
	MsgUsernameTaken         = "Username already taken"
	MsgInvalidEmail          = "Invalid Email Format"
	MsgAvatarRequired        = "Avatar is Required"
	MsgRegistrationFailed    = "User registration failed"
	MsgAvatarUploadFailed    = "Error while uploading avatar"
	MsgCoverUploadFailed     = "Error while uploading cover image"
	MsgIdentifierRequired    = "Email or Username is Required"
	MsgPasswordRequired      = "Password is Required"
	MsgNoSuchUser            = "No Such User Found, Please Register"
	MsgInvalidCredentials    = "Invalid Credentials"
	MsgTokenGeneration       = "Error In Generating Token"
	MsgUnauthorized          = "Unauthorized Request"
	MsgInvalidRefreshToken   = "Invalid refresh token"
	MsgRefreshTokenUsed      = "Refresh token is expired or used"
	MsgInvalidAccessToken    = "Invalid Access Token"
	MsgTokenVerification     = "Error in verifying token"
	MsgInternal              = "Internal Server Error"
	MsgPasswordTooLong       = "Password must be at most 72 bytes"
	MsgPasswordsRequired     = "Old and New Password are Required"
	MsgInvalidOldPassword    = "Invalid Old Password"
	MsgAccountFieldsRequired = "Full Name and Email are Required"
	MsgEmailInUse            = "Email already in use"
	MsgAvatarMissing         = "Avatar File is Missing"
	MsgCoverMissing          = "Cover Image File is Missing"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
	GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error)
	EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, u models.NewUser) (*models.UserDB, error)
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (*models.UserDB, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (*models.UserDB, error)
	UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (*models.UserDB, error)
}

// TokenProvider issues and verifies one class of signed tokens.
type TokenProvider interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// TokenRevoker tracks revoked access tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// MediaStore uploads local files to the media host and deletes them by URL.
type MediaStore interface {
	Upload(ctx context.Context, localPath string) (string, error)
	Delete(ctx context.Context, url string) error
}

// AuthService implements the account operations.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	access      TokenProvider
	refresh     TokenProvider
	revoker     TokenRevoker
	hasher      PasswordHasher
	media       MediaStore
	kafkaWriter KafkaWriter
	afterCommit CommitHook
}

// NewAuthService creates a new AuthService instance. kafkaWriter and afterCommit may be nil.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	access TokenProvider,
	refresh TokenProvider,
	revoker TokenRevoker,
	hasher PasswordHasher,
	media MediaStore,
	kafkaWriter KafkaWriter,
	afterCommit CommitHook,
) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		access:      access,
		refresh:     refresh,
		revoker:     revoker,
		hasher:      hasher,
		media:       media,
		kafkaWriter: kafkaWriter,
		afterCommit: afterCommit,
	}
}

// Register validates req, uploads the avatar (and the optional cover image)
// and creates the user. The returned user carries no secrets.
func (svc *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.TrimSpace(req.Email)
	fullName := strings.TrimSpace(req.FullName)

	if missingRequired(models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: strings.TrimSpace(req.Password),
		FullName: fullName,
	}) {
		return nil, apperrors.Validation(MsgAllFieldsRequired)
	}
	if len(req.Password) > hasher.MaxPasswordBytes {
		return nil, apperrors.Validation(MsgPasswordTooLong)
	}

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to check user exists", "err", err)
		return nil, apperrors.Upstream(MsgRegistrationFailed, err)
	}
	if existing != nil {
		logger.FromContext(ctx).Infow("user already exists", "username", username, "email", email)
		if existing.Email == email {
			return nil, apperrors.Conflict(MsgAlreadyRegistered)
		}
		return nil, apperrors.Conflict(MsgUsernameTaken)
	}

	if !ValidEmail(email) {
		return nil, apperrors.Validation(MsgInvalidEmail)
	}

	if req.Avatar == nil || req.Avatar.Path == "" {
		return nil, apperrors.Validation(MsgAvatarRequired)
	}

	hashedPassword, err := svc.hasher.Hash(req.Password)
	if errors.Is(err, hasher.ErrPasswordTooLong) {
		return nil, apperrors.Validation(MsgPasswordTooLong)
	}
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to hash password", "err", err)
		return nil, apperrors.Upstream(MsgRegistrationFailed, err)
	}

	avatarURL, err := svc.media.Upload(ctx, req.Avatar.Path)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to upload avatar", "username", username, "err", err)
		return nil, apperrors.Upstream(MsgAvatarUploadFailed, err)
	}

	var coverURL string
	if req.CoverImage != nil && req.CoverImage.Path != "" {
		if coverURL, err = svc.media.Upload(ctx, req.CoverImage.Path); err != nil {
			logger.FromContext(ctx).Warnw("failed to upload cover image, continuing without it", "username", username, "err", err)
			coverURL = ""
		}
	}

	created, err := svc.writer.Create(ctx, models.NewUser{
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   hashedPassword,
		Avatar:     avatarURL,
		CoverImage: coverURL,
	})
	if errors.Is(err, repositories.ErrUserAlreadyExists) {
		return nil, apperrors.Conflict(MsgAlreadyRegistered)
	}
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to save user", "err", err)
		return nil, apperrors.Upstream(MsgRegistrationFailed, err)
	}

	svc.publishEvent(ctx, models.EventUserRegistered, created.UserID, created.Username)
	logger.FromContext(ctx).Infow("user registered", "user_id", created.UserID, "username", created.Username)

	return created.Public(), nil
}

// Login verifies the credentials and starts a new session, replacing any previous one.
func (svc *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.TrimSpace(req.Email)

	if username == "" && email == "" {
		return nil, apperrors.Validation(MsgIdentifierRequired)
	}
	if req.Password == "" {
		return nil, apperrors.Validation(MsgPasswordRequired)
	}

	var usernamePtr, emailPtr *string
	if username != "" {
		usernamePtr = &username
	}
	if email != "" {
		emailPtr = &email
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, usernamePtr, emailPtr)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "err", err)
		return nil, apperrors.Upstream(MsgInternal, err)
	}
	if user == nil {
		logger.FromContext(ctx).Infow("user does not exist", "username", username, "email", email)
		return nil, apperrors.NotFound(MsgNoSuchUser)
	}

	if err := svc.hasher.Compare(user.Password, req.Password); err != nil {
		if errors.Is(err, hasher.ErrMismatch) {
			logger.FromContext(ctx).Infow("invalid credentials", "user_id", user.UserID)
			return nil, apperrors.Auth(MsgInvalidCredentials, nil)
		}
		logger.FromContext(ctx).Errorw("failed to verify password", "user_id", user.UserID, "err", err)
		return nil, apperrors.Upstream(MsgInternal, err)
	}

	tokens, err := svc.issuePair(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	svc.publishEvent(ctx, models.EventUserLoggedIn, user.UserID, user.Username)

	return &models.Session{User: user.Public(), Tokens: tokens}, nil
}

// Logout ends the session of identity: the stored refresh token is cleared
// and the presented access token is revoked until it expires.
func (svc *AuthService) Logout(ctx context.Context, identity *models.Identity) error {
	userID := identity.UserID()

	if err := svc.writer.SetRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.Auth(MsgInvalidAccessToken, err)
		}
		logger.FromContext(ctx).Errorw("failed to clear refresh token", "user_id", userID, "err", err)
		return apperrors.Upstream(MsgInternal, err)
	}

	if err := svc.revoker.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		logger.FromContext(ctx).Errorw("failed to revoke access token", "user_id", userID, "err", err)
	}

	svc.publishEvent(ctx, models.EventUserLoggedOut, userID, identity.User.Username)
	return nil
}

// Refresh exchanges a refresh token for a new pair. The presented token must
// be the one currently stored for the user; it is rotated on success.
func (svc *AuthService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if refreshToken == "" {
		return models.TokenPair{}, apperrors.Auth(MsgUnauthorized, nil)
	}

	claims, err := svc.refresh.GetClaims(ctx, refreshToken)
	if err != nil {
		logger.FromContext(ctx).Infow("refresh token rejected", "err", err)
		return models.TokenPair{}, apperrors.Auth(MsgInvalidRefreshToken, err)
	}

	user, err := svc.reader.GetByIDForUpdate(ctx, claims.UserID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "user_id", claims.UserID, "err", err)
		return models.TokenPair{}, apperrors.Upstream(MsgInternal, err)
	}
	if user == nil {
		return models.TokenPair{}, apperrors.Auth(MsgInvalidRefreshToken, nil)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		logger.FromContext(ctx).Warnw("stale refresh token presented", "user_id", user.UserID)
		return models.TokenPair{}, apperrors.Auth(MsgRefreshTokenUsed, nil)
	}

	tokens, err := svc.issuePair(ctx, user.UserID)
	if err != nil {
		return models.TokenPair{}, err
	}

	svc.publishEvent(ctx, models.EventUserTokenRefreshed, user.UserID, user.Username)
	return tokens, nil
}

// Authenticate resolves an access token to the identity of its user.
// Invalid, expired or revoked tokens and unknown users are 401; store failures are 500.
func (svc *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.Identity, error) {
	claims, err := svc.access.GetClaims(ctx, accessToken)
	if err != nil {
		return nil, apperrors.Auth(MsgInvalidAccessToken, err)
	}

	revoked, err := svc.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to check token revocation", "user_id", claims.UserID, "err", err)
		return nil, apperrors.Upstream(MsgTokenVerification, err)
	}
	if revoked {
		return nil, apperrors.Auth(MsgInvalidAccessToken, nil)
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get user", "user_id", claims.UserID, "err", err)
		return nil, apperrors.Upstream(MsgTokenVerification, err)
	}
	if user == nil {
		return nil, apperrors.Auth(MsgInvalidAccessToken, nil)
	}

	identity := &models.Identity{User: user.Public(), TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// issuePair signs a new access/refresh pair and stores the refresh token,
// overwriting the previous one. This is the single point of session rotation.
func (svc *AuthService) issuePair(ctx context.Context, userID uuid.UUID) (models.TokenPair, error) {
	accessToken, err := svc.access.Generate(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to generate access token", "user_id", userID, "err", err)
		return models.TokenPair{}, apperrors.Upstream(MsgTokenGeneration, err)
	}

	refreshToken, err := svc.refresh.Generate(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to generate refresh token", "user_id", userID, "err", err)
		return models.TokenPair{}, apperrors.Upstream(MsgTokenGeneration, err)
	}

	if err := svc.writer.SetRefreshToken(ctx, userID, &refreshToken); err != nil {
		logger.FromContext(ctx).Errorw("failed to store refresh token", "user_id", userID, "err", err)
		return models.TokenPair{}, apperrors.Upstream(MsgTokenGeneration, err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
