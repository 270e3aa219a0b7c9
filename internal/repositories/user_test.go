package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

var userRowColumns = []string{
	"user_id", "username", "email", "full_name", "password_hash",
	"avatar", "cover_image", "refresh_token", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func userRow(id uuid.UUID, username, email string, refresh any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userRowColumns).AddRow(
		id.String(), username, email, "Alice A", "$2a$hash",
		"https://cdn/avatar.png", "", refresh, now, now,
	)
}

func TestUserReadRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, nil)
	ctx := context.Background()
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = $1")).
			WithArgs(id).
			WillReturnRows(userRow(id, "alice", "alice1@test.com", "refresh"))

		user, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.UserID)
		assert.Equal(t, "alice", user.Username)
		require.NotNil(t, user.RefreshToken)
		assert.Equal(t, "refresh", *user.RefreshToken)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = $1")).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := repo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = $1")).
			WithArgs(id).
			WillReturnError(errors.New("connection reset"))

		user, err := repo.GetByID(ctx, id)
		assert.EqualError(t, err, "connection reset")
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByIDForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, nil)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(userRow(id, "alice", "alice1@test.com", nil))

	user, err := repo.GetByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, user.RefreshToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_UsesTransactionFromContext(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(userRow(id, "alice", "alice1@test.com", nil))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	repo := NewUserReadRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })
	_, err = repo.GetByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByUsernameOrEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, nil)
	id := uuid.New()
	username, email := "alice", "alice1@test.com"

	mock.ExpectQuery(regexp.QuoteMeta("OR ($2::VARCHAR IS NOT NULL AND email = $2)")).
		WithArgs(username, email).
		WillReturnRows(userRow(id, username, email, nil))

	user, err := repo.GetByUsernameOrEmail(context.Background(), &username, &email)
	require.NoError(t, err)
	assert.Equal(t, email, user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_EmailTakenByOther(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db, nil)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("bob123@test.com", id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.EmailTakenByOther(context.Background(), "bob123@test.com", id)
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()
	newUser := models.NewUser{
		Username: "alice",
		Email:    "alice1@test.com",
		FullName: "Alice A",
		Password: "$2a$hash",
		Avatar:   "https://cdn/avatar.png",
	}

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WithArgs("alice", "alice1@test.com", "Alice A", "$2a$hash", "https://cdn/avatar.png", "").
			WillReturnRows(userRow(id, "alice", "alice1@test.com", nil))

		user, err := repo.Create(ctx, newUser)
		require.NoError(t, err)
		assert.Equal(t, id, user.UserID)
	})

	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		user, err := repo.Create(ctx, newUser)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.Nil(t, user)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_SetRefreshToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()
	id := uuid.New()
	token := "new-refresh"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET refresh_token = $2")).
		WithArgs(id, token).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SetRefreshToken(ctx, id, &token))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET refresh_token = $2")).
		WithArgs(id, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SetRefreshToken(ctx, id, nil))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET refresh_token = $2")).
		WithArgs(id, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetRefreshToken(ctx, id, nil), ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $2")).
		WithArgs(id, "$2a$new").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdatePassword(context.Background(), id, "$2a$new"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UpdateAccount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET full_name = $2, email = $3")).
		WithArgs(id, "Alice B", "alice2@test.com").
		WillReturnRows(userRow(id, "alice", "alice2@test.com", nil))

	user, err := repo.UpdateAccount(ctx, id, "Alice B", "alice2@test.com")
	require.NoError(t, err)
	assert.Equal(t, "alice2@test.com", user.Email)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET full_name = $2, email = $3")).
		WithArgs(id, "Alice B", "bob123@test.com").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = repo.UpdateAccount(ctx, id, "Alice B", "bob123@test.com")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET full_name = $2, email = $3")).
		WithArgs(id, "Alice B", "alice2@test.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err = repo.UpdateAccount(ctx, id, "Alice B", "alice2@test.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_UpdateMedia(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET avatar = $2")).
		WithArgs(id, "https://cdn/new-avatar.png").
		WillReturnRows(userRow(id, "alice", "alice1@test.com", nil))

	_, err := repo.UpdateAvatar(ctx, id, "https://cdn/new-avatar.png")
	assert.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET cover_image = $2")).
		WithArgs(id, "https://cdn/cover.png").
		WillReturnRows(userRow(id, "alice", "alice1@test.com", nil))

	_, err = repo.UpdateCoverImage(ctx, id, "https://cdn/cover.png")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
