package model

import (
	"errors"
	"time"
)

// Session is a server-side login record backing the JWT cookie. Expired
// rows are swept by the janitor worker.
type Session struct {
	ID        string    `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// IsExpired reports whether the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

var (
	ErrSessionNotFound = errors.New("session not found")
)
