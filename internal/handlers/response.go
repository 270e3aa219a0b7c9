package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-user-accounts/internal/apperrors"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"

	msgInvalidBody  = "Invalid request body"
	msgInternal     = "Internal Server Error"
	msgUnauthorized = "Unauthorized Request"
)

// CookieOptions controls the session cookies set on login and refresh.
type CookieOptions struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorw("failed to encode response", "err", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.Response{Success: status < http.StatusBadRequest, Message: message})
}

// writeError maps err onto the response envelope. Only *apperrors.Error
// messages reach the client; anything else is a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		logger.FromContext(r.Context()).Errorw("internal server error", "err", err)
		writeMessage(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if appErr.Kind == apperrors.KindUpstream {
		logger.FromContext(r.Context()).Errorw("internal server error", "err", err)
	}
	writeMessage(w, appErr.Kind.Status(), appErr.Message)
}

// decodeJSON decodes an optional JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func sessionCookie(name, value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func setSessionCookies(w http.ResponseWriter, opts CookieOptions, tokens models.TokenPair) {
	http.SetCookie(w, sessionCookie(accessTokenCookie, tokens.AccessToken, int(opts.AccessTTL.Seconds()), opts.Secure))
	http.SetCookie(w, sessionCookie(refreshTokenCookie, tokens.RefreshToken, int(opts.RefreshTTL.Seconds()), opts.Secure))
}

func clearSessionCookies(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, sessionCookie(accessTokenCookie, "", -1, opts.Secure))
	http.SetCookie(w, sessionCookie(refreshTokenCookie, "", -1, opts.Secure))
}
