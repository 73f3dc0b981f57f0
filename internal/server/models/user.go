package models

import "time"

// User is a registered principal. PasswordHash is a bcrypt hash; the
// plaintext never leaves the request that carried it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
