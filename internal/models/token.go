package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshRequest represents the optional JSON body of /refresh-token.
// The refreshToken cookie takes precedence over the body.
// swagger:model RefreshRequest
type RefreshRequest struct {
	// Refresh token
	// example: eyJhbGciOiJIUzI1NiIs...
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse represents a successful token refresh.
// swagger:model RefreshResponse
type RefreshResponse struct {
	Response
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Identity is the authenticated principal attached to a request context.
type Identity struct {
	User      *User
	TokenID   string    // jti of the access token
	ExpiresAt time.Time // expiry of the access token
}

// UserID returns the id of the authenticated user.
func (i *Identity) UserID() uuid.UUID {
	if i == nil || i.User == nil {
		return uuid.Nil
	}
	return i.User.ID
}
