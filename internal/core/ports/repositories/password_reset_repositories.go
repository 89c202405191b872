package repositories

import (
	"context"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
)

// PasswordResetRepositoryFacade defines persistence operations for password
// reset tokens. Only token hashes ever cross this boundary.
type PasswordResetRepositoryFacade interface {
	// FindResetTokenByHash retrieves a token row by its hash; apperrors.ErrNotFound if absent.
	FindResetTokenByHash(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error)

	// FindResetTokensByUserID retrieves all token rows for a user, newest first.
	FindResetTokensByUserID(ctx context.Context, userID string) ([]domain.PasswordResetToken, error)

	// CreateResetToken persists a new token row.
	CreateResetToken(ctx context.Context, token domain.PasswordResetToken) error

	// CreateSupersedingResetToken atomically enforces the per-user issuance
	// limit, invalidates the user's prior tokens in place, and inserts the new
	// row. Superseded rows are kept (and read as missing to lookups) so they
	// still count against the issuance window. The whole sequence runs in one
	// transaction holding a row lock on the user, so concurrent requests for
	// the same user serialize instead of racing the count check. Returns
	// apperrors.ErrTooManyResetRequests when maxRecent tokens were already
	// created within the counting window.
	CreateSupersedingResetToken(ctx context.Context, token domain.PasswordResetToken, maxRecent int) error

	// DeleteResetToken removes a token row. Idempotent; reports whether a row
	// was actually removed.
	DeleteResetToken(ctx context.Context, tokenID string) (bool, error)

	// DeleteResetTokensByUserID removes every token row of a user.
	DeleteResetTokensByUserID(ctx context.Context, userID string) (bool, error)

	// IsValidResetToken reports whether a row with this hash exists and has not expired.
	IsValidResetToken(ctx context.Context, tokenHash string) (bool, error)

	// DeleteExpiredResetTokens bulk-deletes all rows whose expiry has passed and
	// returns the number removed.
	DeleteExpiredResetTokens(ctx context.Context) (int64, error)
}
