package model

import "time"

// User is a login credential. PasswordHash is a bcrypt hash; the plaintext
// password is never stored.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Identity is the authenticated principal resolved from a session token.
// It is produced once per request by the session gate and passed explicitly
// to every handler that needs it.
type Identity struct {
	UserID    int64
	Username  string
	SessionID string
	ExpiresAt time.Time
}
