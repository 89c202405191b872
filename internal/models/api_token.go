package models

import (
	"database/sql"
	"time"
)

// APIToken is the database-layer representation of an API token row.
type APIToken struct {
	TokenID    string       `db:"token_id"`
	UserID     string       `db:"user_id"`
	Name       string       `db:"name"`
	ExpiresAt  sql.NullTime `db:"expires_at"`
	LastUsedAt sql.NullTime `db:"last_used_at"`
	CreatedAt  time.Time    `db:"created_at"`
}
