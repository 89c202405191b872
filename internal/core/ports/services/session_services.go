package services

import (
	"context"
	"time"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
	portsrepo "github.com/pinkeep/pinkeep_app/internal/core/ports/repositories"
)

// SessionSvcFacade manages DB-backed session records: creation at login,
// transient data mutation, deletion on logout, and periodic expiry sweeps.
type SessionSvcFacade interface {
	// CreateSession mints an opaque id and persists a record for the user.
	CreateSession(ctx context.Context, userID string, data map[string]string, ttl time.Duration) (*domain.SessionRecord, error)

	// GetSession retrieves a record by id; apperrors.ErrNotFound if absent.
	GetSession(ctx context.Context, sessionID string) (*domain.SessionRecord, error)

	// UpdateSession applies a partial update; apperrors.ErrNotFound if the id is unknown.
	UpdateSession(ctx context.Context, sessionID string, update portsrepo.SessionUpdate) (*domain.SessionRecord, error)

	// DeleteSession removes a record. Idempotent; reports whether a row was removed.
	DeleteSession(ctx context.Context, sessionID string) (bool, error)

	// DeleteSessionsByUserID removes all of a user's records.
	DeleteSessionsByUserID(ctx context.Context, userID string) (bool, error)

	// IsValidSession reports whether the record exists and has not expired.
	IsValidSession(ctx context.Context, sessionID string) (bool, error)

	// SweepExpired removes every expired record and returns the count. Safe to
	// run concurrently with request handling: it only touches rows that every
	// in-flight validity check has already rejected.
	SweepExpired(ctx context.Context) (int64, error)
}
