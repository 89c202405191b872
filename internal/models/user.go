package models

import (
	"database/sql"
	"time"
)

// User is the database-layer representation of a user row.
type User struct {
	UserID        string         `db:"user_id"`
	Username      string         `db:"username"`
	PasswordHash  string         `db:"password_hash"`
	EmailHash     sql.NullString `db:"email_hash"`
	CreatedAt     time.Time      `db:"created_at"`
	LastUpdatedAt time.Time      `db:"last_updated_at"`
}
