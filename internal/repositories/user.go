package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

var (
	// ErrUserNotFound is returned by writes that matched no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when a unique username or email constraint fires.
	ErrUserAlreadyExists = errors.New("username or email already exists")
)

const userColumns = `user_id, username, email, full_name, password_hash, avatar, cover_image, refresh_token, created_at, updated_at`

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// logQuery logs query on a single line. Callers redact secrets from args.
func logQuery(ctx context.Context, query string, args []any, result any, err error) {
	logger.FromContext(ctx).Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// UserReadRepository reads user records.
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// NewUserReadRepository creates a read repository. txGetter may be nil.
func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the user with id, or nil if there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return r.get(ctx, query, id)
}

// GetByIDForUpdate is GetByID with a row lock held until the surrounding transaction ends.
func (r *UserReadRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 FOR UPDATE`
	return r.get(ctx, query, id)
}

// GetByUsernameOrEmail returns the first user whose username equals username
// or whose email equals email. A nil argument never matches. An email match
// is preferred over a username match.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::VARCHAR IS NOT NULL AND username = $1)
		   OR ($2::VARCHAR IS NOT NULL AND email = $2)
		ORDER BY CASE WHEN email = $2 THEN 0 ELSE 1 END
		LIMIT 1
	`
	return r.get(ctx, query, username, email)
}

// EmailTakenByOther reports whether email belongs to a user other than id.
func (r *UserReadRepository) EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND user_id <> $2)`

	var taken bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &taken, query, email, id)
	logQuery(ctx, query, []any{email, id}, taken, err)
	return taken, err
}

func (r *UserReadRepository) get(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, args...)

	logQuery(ctx, query, args, user.UserID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository writes user records.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// NewUserWriteRepository creates a write repository. txGetter may be nil.
func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a user and returns the stored record.
func (r *UserWriteRepository) Create(ctx context.Context, u models.NewUser) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (username, email, full_name, password_hash, avatar, cover_image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query,
		u.Username, u.Email, u.FullName, u.Password, u.Avatar, u.CoverImage)

	logQuery(ctx, query, []any{u.Username, u.Email, u.FullName, "[redacted]", u.Avatar, u.CoverImage}, user.UserID, err)

	if isUniqueViolation(err) {
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetRefreshToken overwrites the stored refresh token. A nil token clears it.
func (r *UserWriteRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	const query = `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE user_id = $1`
	return r.exec(ctx, query, []any{id, token != nil}, id, token)
}

// UpdatePassword replaces the password hash.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE user_id = $1`
	return r.exec(ctx, query, []any{id, "[redacted]"}, id, passwordHash)
}

// UpdateAccount replaces full name and email and returns the updated record.
func (r *UserWriteRepository) UpdateAccount(ctx context.Context, id uuid.UUID, fullName, email string) (*models.UserDB, error) {
	const query = `
		UPDATE users SET full_name = $2, email = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns
	return r.returning(ctx, query, id, fullName, email)
}

// UpdateAvatar replaces the avatar URL and returns the updated record.
func (r *UserWriteRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (*models.UserDB, error) {
	const query = `
		UPDATE users SET avatar = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns
	return r.returning(ctx, query, id, url)
}

// UpdateCoverImage replaces the cover image URL and returns the updated record.
func (r *UserWriteRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (*models.UserDB, error) {
	const query = `
		UPDATE users SET cover_image = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userColumns
	return r.returning(ctx, query, id, url)
}

func (r *UserWriteRepository) exec(ctx context.Context, query string, logArgs []any, args ...any) error {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(ctx, query, logArgs, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserWriteRepository) returning(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, args...)

	logQuery(ctx, query, args, user.UserID, err)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrUserNotFound
	case isUniqueViolation(err):
		return nil, ErrUserAlreadyExists
	case err != nil:
		return nil, err
	}
	return &user, nil
}
