package models

import "time"

// PasswordResetToken is the database-layer representation of a reset token row.
type PasswordResetToken struct {
	TokenID   string    `db:"token_id"`
	UserID    string    `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
