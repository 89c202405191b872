package repositories

import (
	"context"
	"time"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
)

// APITokenRepository defines persistence operations for personal access token rows.
type APITokenRepository interface {
	// Create persists a new API token row.
	Create(ctx context.Context, token *domain.APIToken) error

	// FindByID retrieves a token row by id; apperrors.ErrNotFound if absent.
	FindByID(ctx context.Context, tokenID string) (*domain.APIToken, error)

	// FindByUserID retrieves all token rows for a user.
	FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error)

	// TouchLastUsed records when the token last authenticated a request.
	TouchLastUsed(ctx context.Context, tokenID string, usedAt time.Time) error

	// Delete removes a token row, revoking the credential.
	Delete(ctx context.Context, tokenID string) error

	// DeleteByUserID removes every token row of a user.
	DeleteByUserID(ctx context.Context, userID string) error
}
