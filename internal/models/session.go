package models

import "time"

// SessionRecord is the database-layer representation of a session row. Data is
// the raw JSONB payload; the repository marshals it to and from the domain map.
type SessionRecord struct {
	SessionID string    `db:"session_id"`
	UserID    string    `db:"user_id"`
	Data      []byte    `db:"data"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
