package domain

import "time"

// PasswordResetToken is the persisted half of a reset token. Only the SHA-256
// digest of the token is stored; the plaintext exists in memory just long enough
// to be mailed to the user. Consumption deletes the row; supersession invalidates
// it in place so it still counts against the issuance window. There is no "used"
// flag to get out of sync.
type PasswordResetToken struct {
	TokenID   string    `json:"tokenID"`
	UserID    string    `json:"userID"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsExpired reports whether the token's expiry has passed at the given instant.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
