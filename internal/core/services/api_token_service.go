package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pinkeep/pinkeep_app/internal/apperrors"
	"github.com/pinkeep/pinkeep_app/internal/core/domain"
	portsrepo "github.com/pinkeep/pinkeep_app/internal/core/ports/repositories"
	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
	"github.com/pinkeep/pinkeep_app/internal/utils"
)

// apiTokenService implements the APITokenSvc interface. Tokens are JWTs whose
// jti points at a persisted row; deleting the row revokes the token.
type apiTokenService struct {
	tokenRepo portsrepo.APITokenRepository
	secret    string
	issuer    string
}

// NewAPITokenService creates a new instance of apiTokenService.
func NewAPITokenService(tokenRepo portsrepo.APITokenRepository, secret, issuer string) portssvc.APITokenSvc {
	return &apiTokenService{
		tokenRepo: tokenRepo,
		secret:    secret,
		issuer:    issuer,
	}
}

// CreateToken generates a new API token for the user.
func (s *apiTokenService) CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	if userID == "" {
		return "", nil, errors.New("user ID is required")
	}
	if name == "" {
		return "", nil, errors.New("token name is required")
	}

	var expiresAt *time.Time
	if expiresIn != nil {
		expiry := time.Now().Add(*expiresIn)
		expiresAt = &expiry
	}

	apiToken := &domain.APIToken{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		Name:      name,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	signed, err := utils.GenerateAPITokenJWT(userID, apiToken.TokenID, s.secret, s.issuer, expiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign API token: %w", err)
	}

	if err := s.tokenRepo.Create(ctx, apiToken); err != nil {
		return "", nil, fmt.Errorf("failed to save token: %w", err)
	}

	// Return the plaintext token (only time it's available) and the token details.
	return signed, apiToken, nil
}

// VerifyToken validates the JWT signature and claims, then requires the
// backing row to still exist so revocation beats statelessness.
func (s *apiTokenService) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(tokenString, s.secret)
	if err != nil {
		return "", apperrors.ErrUnauthorized
	}
	if claims.ID == "" || claims.Subject == "" {
		return "", apperrors.ErrUnauthorized
	}

	row, err := s.tokenRepo.FindByID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrUnauthorized // revoked
		}
		return "", fmt.Errorf("failed to look up API token: %w", err)
	}
	if row.UserID != claims.Subject {
		return "", apperrors.ErrUnauthorized
	}

	// Best effort; a failed touch must not fail authentication.
	_ = s.tokenRepo.TouchLastUsed(ctx, row.TokenID, time.Now())

	return row.UserID, nil
}

// ListTokens returns all API tokens for a user.
func (s *apiTokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	tokens, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}

	return tokens, nil
}

// RevokeToken deletes a specific API token for a user.
func (s *apiTokenService) RevokeToken(ctx context.Context, userID, tokenID string) error {
	if userID == "" || tokenID == "" {
		return errors.New("user ID and token ID are required")
	}

	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return fmt.Errorf("failed to find token: %w", err)
	}

	// Ownership check before delete; a foreign token looks like a missing one.
	if token.UserID != userID {
		return apperrors.ErrNotFound
	}

	if err := s.tokenRepo.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// RevokeAllTokens deletes all API tokens for a user.
func (s *apiTokenService) RevokeAllTokens(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("user ID is required")
	}

	if err := s.tokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}

	return nil
}
