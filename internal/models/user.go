package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the credential store.
// Password and RefreshToken never leave the service layer; use Public for responses.
type UserDB struct {
	UserID       uuid.UUID `db:"user_id"`       // Primary key
	Username     string    `db:"username"`      // Unique, lowercase username
	Email        string    `db:"email"`         // Unique email
	FullName     string    `db:"full_name"`     // Display name
	Password     string    `db:"password_hash"` // Bcrypt hash
	Avatar       string    `db:"avatar"`        // Avatar URL, required
	CoverImage   string    `db:"cover_image"`   // Cover image URL, may be empty
	RefreshToken *string   `db:"refresh_token"` // Currently valid refresh token, nil when logged out
	CreatedAt    time.Time `db:"created_at"`    // Creation timestamp
	UpdatedAt    time.Time `db:"updated_at"`    // Last update timestamp
}

// User is the client-facing view of a user record.
// swagger:model User
type User struct {
	ID         uuid.UUID `json:"_id" example:"4d0d1f3e-6f7b-4a0e-9b5f-2a8f4a1a9c11"`
	Username   string    `json:"username" example:"alice"`
	Email      string    `json:"email" example:"alice1@test.com"`
	FullName   string    `json:"fullName" example:"Alice A"`
	Avatar     string    `json:"avatar" example:"https://cdn.example.com/uploads/avatar.png"`
	CoverImage string    `json:"coverImage" example:""`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Public strips the password hash and refresh token.
func (u *UserDB) Public() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:         u.UserID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// NewUser holds the fields required to create a user record.
type NewUser struct {
	Username   string
	Email      string
	FullName   string
	Password   string // already hashed
	Avatar     string
	CoverImage string
}
