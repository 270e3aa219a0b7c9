package models

// LoginRequest represents the JSON body for user login.
// Either username or email identifies the account.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// example: alice
	Username string `json:"username"`

	// Email
	// example: alice1@test.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret1
	Password string `json:"password"`
}

// LoginResponse represents a successful login response.
// swagger:model LoginResponse
type LoginResponse struct {
	Response
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is the result of a successful login.
type Session struct {
	User   *User
	Tokens TokenPair
}
