package models

// Response is the envelope every endpoint answers with.
// Endpoint-specific payloads embed it so their fields sit next to success and message.
// swagger:model Response
type Response struct {
	// Whether the operation succeeded
	// example: false
	Success bool `json:"success"`

	// Human readable outcome
	// example: All Fields Are Required
	Message string `json:"message"`
}

// UserResponse is returned by endpoints that answer with the current user.
// swagger:model UserResponse
type UserResponse struct {
	Response
	User *User `json:"user"`
}
