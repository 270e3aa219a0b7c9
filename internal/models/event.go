package models

// Account event types published to the event stream.
const (
	EventUserRegistered     = "user.registered"
	EventUserLoggedIn       = "user.logged_in"
	EventUserLoggedOut      = "user.logged_out"
	EventUserTokenRefreshed = "user.token_refreshed"
	EventPasswordChanged    = "user.password_changed"
	EventAccountUpdated     = "user.account_updated"
	EventAvatarUpdated      = "user.avatar_updated"
	EventCoverUpdated       = "user.cover_updated"
)

// AccountEvent describes a change to a user account.
type AccountEvent struct {
	EventID   string `json:"event_id"`  // Unique identifier of the event
	Type      string `json:"type"`      // One of the Event* constants
	UserID    string `json:"user_id"`   // Affected user
	Username  string `json:"username"`  // Username at the time of the event
	Timestamp int64  `json:"timestamp"` // Unix seconds
}
