package models

// ChangePasswordRequest represents the JSON body of /change-password.
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	// example: secret1
	OldPassword string `json:"oldPassword" validate:"required"`

	// New password
	// required: true
	// example: secret2
	NewPassword string `json:"newPassword" validate:"required"`
}

// UpdateAccountRequest represents the JSON body of /update-account-details.
// swagger:model UpdateAccountRequest
type UpdateAccountRequest struct {
	// Full name
	// required: true
	// example: Alice B
	FullName string `json:"fullName" validate:"required"`

	// Email
	// required: true
	// example: alice2@test.com
	Email string `json:"email" validate:"required"`
}
