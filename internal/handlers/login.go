package handlers

//go:generate mockgen -source=login.go -destination=login_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.Session, error)
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates by username or email and starts a session. Tokens are returned in the body and as cookies.
// @Tags users
// @Accept json
// @Produce json
// @Param loginRequest body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse "Login Successful"
// @Failure 400 {object} models.Response "Missing credentials"
// @Failure 401 {object} models.Response "Invalid Credentials"
// @Failure 404 {object} models.Response "No Such User Found, Please Register"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer, cookies CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		session, err := svc.Login(r.Context(), req)
		if err != nil {
			writeError(w, r, err)
			return
		}

		setSessionCookies(w, cookies, session.Tokens)
		writeJSON(w, http.StatusOK, models.LoginResponse{
			Response:     models.Response{Success: true, Message: "Login Successful"},
			User:         session.User,
			AccessToken:  session.Tokens.AccessToken,
			RefreshToken: session.Tokens.RefreshToken,
		})
	}
}

// RegisterLoginHandler registers the login route.
func RegisterLoginHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/login", h)
}
