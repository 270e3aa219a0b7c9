package middlewares

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

func newTxMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestTxMiddleware_Success(t *testing.T) {
	sqlxDB, mock := newTxMock(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		assert.NotNil(t, GetTxFromContext(r.Context()))
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := TxMiddleware(sqlxDB)(next)
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.Equal(t, "yes", rr.Header().Get("X-Test"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_RollsBackOnErrorStatus(t *testing.T) {
	sqlxDB, mock := newTxMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false}`))
	})

	handler := TxMiddleware(sqlxDB)(next)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, `{"success":false}`, rr.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_BeginError(t *testing.T) {
	sqlxDB, mock := newTxMock(t)
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { nextCalled = true })

	handler := TxMiddleware(sqlxDB)(next)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestTxMiddleware_CommitError(t *testing.T) {
	sqlxDB, mock := newTxMock(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	handler := TxMiddleware(sqlxDB)(next)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp models.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxMiddleware_Panic(t *testing.T) {
	sqlxDB, mock := newTxMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	handler := TxMiddleware(sqlxDB)(next)
	rr := httptest.NewRecorder()

	assert.Panics(t, func() {
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterCommit(t *testing.T) {
	t.Run("runs after commit", func(t *testing.T) {
		sqlxDB, mock := newTxMock(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var calls []string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			AfterCommit(r.Context(), func() { calls = append(calls, "hook") })
			calls = append(calls, "handler")
			w.WriteHeader(http.StatusOK)
		})

		rr := httptest.NewRecorder()
		TxMiddleware(sqlxDB)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, []string{"handler", "hook"}, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dropped on rollback", func(t *testing.T) {
		sqlxDB, mock := newTxMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			AfterCommit(r.Context(), func() { called = true })
			w.WriteHeader(http.StatusUnauthorized)
		})

		rr := httptest.NewRecorder()
		TxMiddleware(sqlxDB)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("dropped when commit fails", func(t *testing.T) {
		sqlxDB, mock := newTxMock(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(sql.ErrConnDone)

		called := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			AfterCommit(r.Context(), func() { called = true })
			w.WriteHeader(http.StatusOK)
		})

		rr := httptest.NewRecorder()
		TxMiddleware(sqlxDB)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("runs immediately without transaction", func(t *testing.T) {
		called := false
		AfterCommit(context.Background(), func() { called = true })
		assert.True(t, called)
	})
}
