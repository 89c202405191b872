package services

import (
	"context"
	"time"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
)

// APITokenSvc manages personal access tokens: JWTs backed by a revocable row.
type APITokenSvc interface {
	// CreateToken mints a signed token for the user and persists its row.
	// Returns the plaintext JWT (only time it is available) and the row.
	CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error)

	// VerifyToken validates the JWT and checks that its backing row still
	// exists. Returns the owning user id. Revoked tokens fail even while their
	// signature remains valid.
	VerifyToken(ctx context.Context, tokenString string) (string, error)

	// ListTokens returns all API tokens for a user.
	ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error)

	// RevokeToken deletes a specific API token owned by the user.
	RevokeToken(ctx context.Context, userID, tokenID string) error

	// RevokeAllTokens deletes all API tokens for a user.
	RevokeAllTokens(ctx context.Context, userID string) error
}
