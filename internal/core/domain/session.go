package domain

import "time"

// SessionRecord is a server-side session persisted in the database, keyed by an
// opaque id. Unlike the signed bearer token it can be revoked at any time, which
// is why it is the primary session mechanism.
type SessionRecord struct {
	SessionID string            `json:"sessionID"` // opaque UUID
	UserID    string            `json:"userID"`
	Data      map[string]string `json:"data,omitempty"` // transient payload, e.g. flash messages
	ExpiresAt time.Time         `json:"expiresAt"`
	CreatedAt time.Time         `json:"createdAt"`
}

// IsExpired reports whether the record's expiry has passed at the given instant.
func (s *SessionRecord) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
