package model

import "time"

// Token is the opaque bearer credential identifying a registered user
type Token string

// User is a registered participant. Users are immutable once created.
type User struct {
	Token     Token
	Nickname  string // Trimmed, never empty
	CreatedAt time.Time
}
