package middlewares

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
)

// TxMiddleware wraps an HTTP handler with a database transaction. The response
// is held back until the transaction is resolved: it is committed when the
// handler answers below 400 and rolled back otherwise.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.FromContext(r.Context()).Errorw("failed to begin transaction", "error", err)
				writeEnvelope(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					_ = tx.Rollback()
					panic(rec)
				}
			}()

			var hooks []func()
			ctx := setTxToContext(r.Context(), tx)
			ctx = context.WithValue(ctx, afterCommitKey{}, &hooks)

			bw := &bufferedWriter{header: http.Header{}, statusCode: http.StatusOK}
			next.ServeHTTP(bw, r.WithContext(ctx))

			if bw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.FromContext(r.Context()).Errorw("failed to rollback transaction", "error", err)
				}
				bw.flush(w)
				return
			}

			if err := tx.Commit(); err != nil {
				logger.FromContext(r.Context()).Errorw("failed to commit transaction", "error", err)
				writeEnvelope(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			bw.flush(w)

			for _, fn := range hooks {
				fn()
			}
		})
	}
}

// bufferedWriter records a response so it can be discarded if the commit fails.
type bufferedWriter struct {
	header     http.Header
	statusCode int
	body       bytes.Buffer
}

func (bw *bufferedWriter) Header() http.Header { return bw.header }

func (bw *bufferedWriter) WriteHeader(code int) { bw.statusCode = code }

func (bw *bufferedWriter) Write(b []byte) (int, error) { return bw.body.Write(b) }

func (bw *bufferedWriter) flush(w http.ResponseWriter) {
	for k, v := range bw.header {
		w.Header()[k] = v
	}
	w.WriteHeader(bw.statusCode)
	_, _ = w.Write(bw.body.Bytes())
}

type txKey struct{}

type afterCommitKey struct{}

// AfterCommit runs fn after the request transaction in ctx commits and the
// response is written. Hooks are dropped on rollback. Without a transaction
// fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(afterCommitKey{}).(*[]func()); ok {
		*hooks = append(*hooks, fn)
		return
	}
	fn()
}

func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
// It satisfies repositories.TxGetter.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}
