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

// resetTokenBytes gives 256 bits of entropy per token.
const resetTokenBytes = 32

// passwordResetService implements the reset token lifecycle. Tokens are stored
// hashed, live for a short window, are superseded by newer requests, and are
// consumed by deletion so they can never be replayed.
type passwordResetService struct {
	resetRepo   portsrepo.PasswordResetRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	sessionRepo portsrepo.SessionRepositoryFacade
	email       portssvc.EmailSender
	tokenTTL    time.Duration
	maxPerHour  int
}

// NewPasswordResetService creates a new instance of passwordResetService.
func NewPasswordResetService(
	resetRepo portsrepo.PasswordResetRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	sessionRepo portsrepo.SessionRepositoryFacade,
	email portssvc.EmailSender,
	tokenTTL time.Duration,
	maxPerHour int,
) portssvc.PasswordResetSvcFacade {
	return &passwordResetService{
		resetRepo:   resetRepo,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		email:       email,
		tokenTTL:    tokenTTL,
		maxPerHour:  maxPerHour,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email, resetURLBase string) (string, error) {
	user, err := s.userRepo.FindUserByEmailHash(ctx, utils.HashEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Unknown email completes the same way as the success path so a
			// black-box caller cannot probe which addresses are registered.
			return "", nil
		}
		return "", fmt.Errorf("failed to look up user for password reset: %w", err)
	}

	plaintext, err := utils.GenerateSecureRandomString(resetTokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	now := time.Now()
	token := domain.PasswordResetToken{
		TokenID:   uuid.NewString(),
		UserID:    user.UserID,
		TokenHash: utils.HashResetToken(plaintext),
		ExpiresAt: now.Add(s.tokenTTL),
		CreatedAt: now,
	}

	// The rate-limit count, the supersede update, and the insert run inside a
	// single transaction holding a lock on the user row, so two concurrent
	// requests cannot both pass the count check. Superseded rows stay behind,
	// invalidated, so each issuance keeps counting for the rest of the hour.
	if err := s.resetRepo.CreateSupersedingResetToken(ctx, token, s.maxPerHour); err != nil {
		if errors.Is(err, apperrors.ErrTooManyResetRequests) {
			return "", err
		}
		return "", fmt.Errorf("failed to persist reset token: %w", err)
	}

	// Persist first, send second. If the send fails the token stays valid and
	// the user can retry; the retry goes through rate limiting as usual.
	if err := s.email.SendPasswordResetEmail(ctx, email, plaintext, resetURLBase); err != nil {
		return "", fmt.Errorf("failed to send password reset email: %w", err)
	}

	return plaintext, nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	record, err := s.resetRepo.FindResetTokenByHash(ctx, utils.HashResetToken(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Consumed, superseded, and never-issued tokens are all "invalid";
			// the distinction stays internal.
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	if record.IsExpired(time.Now()) {
		return apperrors.ErrResetTokenExpired
	}

	user, err := s.userRepo.FindUserByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("failed to resolve reset token owner: %w", err)
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, user.UserID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Single use: the row disappears, so a replay of the same token resolves
	// to "not found" above.
	if _, err := s.resetRepo.DeleteResetToken(ctx, record.TokenID); err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}

	// Whoever held the old password may hold a live session; revoke them all.
	if _, err := s.sessionRepo.DeleteSessionsByUserID(ctx, user.UserID); err != nil {
		return fmt.Errorf("failed to revoke sessions after password reset: %w", err)
	}

	return nil
}

func (s *passwordResetService) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	return s.resetRepo.IsValidResetToken(ctx, utils.HashResetToken(token))
}

func (s *passwordResetService) SweepExpired(ctx context.Context) (int64, error) {
	return s.resetRepo.DeleteExpiredResetTokens(ctx)
}
