package identity

import "time"

// User is an account that owns addresses and search history.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// Credentials request structure.
type Credentials struct {
	Username string
	Password string
}
