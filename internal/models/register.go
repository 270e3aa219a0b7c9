package models

// RegisterRequest represents the multipart form fields for user registration.
// The avatar and coverImage files travel as separate multipart parts.
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: alice
	Username string `json:"username" validate:"required"`

	// Email
	// required: true
	// example: alice1@test.com
	Email string `json:"email" validate:"required"`

	// Password
	// required: true
	// example: secret1
	Password string `json:"password" validate:"required"`

	// Full name
	// required: true
	// example: Alice A
	FullName string `json:"fullName" validate:"required"`

	Avatar     *UploadedFile `json:"-"`
	CoverImage *UploadedFile `json:"-"`
}
