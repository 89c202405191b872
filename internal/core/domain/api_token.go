package domain

import "time"

// APIToken is the persisted record behind a personal access token. The bearer
// credential itself is a signed JWT whose jti claim points at this row; deleting
// the row revokes the token even though the JWT signature stays valid.
type APIToken struct {
	TokenID    string     `json:"tokenID"`
	UserID     string     `json:"userID"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"` // nil means no expiry
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}
