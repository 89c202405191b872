package repositories

import (
	"context"
	"time"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
)

// SessionUpdate carries the mutable fields of a session record for partial
// updates. Nil fields are left untouched.
type SessionUpdate struct {
	Data      *map[string]string
	ExpiresAt *time.Time
}

// SessionRepositoryFacade defines persistence operations for DB-backed session
// records.
type SessionRepositoryFacade interface {
	// CreateSession persists a new session record.
	CreateSession(ctx context.Context, session domain.SessionRecord) error

	// FindSessionByID retrieves a session record; apperrors.ErrNotFound if absent.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.SessionRecord, error)

	// UpdateSession applies a partial update and returns the updated record;
	// apperrors.ErrNotFound if the id is unknown.
	UpdateSession(ctx context.Context, sessionID string, update SessionUpdate) (*domain.SessionRecord, error)

	// DeleteSession removes a session record. Idempotent; reports whether a row
	// was actually removed.
	DeleteSession(ctx context.Context, sessionID string) (bool, error)

	// DeleteSessionsByUserID removes every session record of a user. Idempotent;
	// reports whether any row was removed.
	DeleteSessionsByUserID(ctx context.Context, userID string) (bool, error)

	// IsValidSession reports whether the record exists and has not expired.
	IsValidSession(ctx context.Context, sessionID string) (bool, error)

	// DeleteExpiredSessions bulk-deletes all records whose expiry has passed and
	// returns the number removed.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
