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
	"github.com/pinkeep/pinkeep_app/internal/dto"
	"github.com/pinkeep/pinkeep_app/internal/utils"
)

// dummyPasswordHash absorbs a bcrypt comparison on the unknown-user login path
// so that path costs roughly the same as a real password check. Generated once
// from a throwaway password at package init.
var dummyPasswordHash = func() string {
	h, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		panic(fmt.Sprintf("failed to generate dummy password hash: %v", err))
	}
	return h
}()

// authService orchestrates registration, login, and credential changes. It is
// the only component exposed to callers; hashing is delegated to utils and
// persistence to the repositories.
type authService struct {
	userRepo   portsrepo.UserRepositoryFacade
	sessionSvc portssvc.SessionSvcFacade
	resetSvc   portssvc.PasswordResetSvcFacade
	codec      *utils.SessionTokenCodec
	tokenTTL   time.Duration
	sessionTTL time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	sessionSvc portssvc.SessionSvcFacade,
	resetSvc portssvc.PasswordResetSvcFacade,
	codec *utils.SessionTokenCodec,
	tokenTTL time.Duration,
	sessionTTL time.Duration,
) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:   userRepo,
		sessionSvc: sessionSvc,
		resetSvc:   resetSvc,
		codec:      codec,
		tokenTTL:   tokenTTL,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	_, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err == nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var emailHash *string
	if req.Email != "" {
		h := utils.HashEmail(req.Email)
		emailHash = &h
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		PasswordHash: passwordHash,
		EmailHash:    emailHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent registration for the same name.
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return &user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*portssvc.LoginResult, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Burn a hash comparison anyway so "no such user" and "wrong
			// password" answer in about the same time.
			utils.CheckPasswordHash(password, dummyPasswordHash)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	// The signed token carries no email plaintext: only the hash is stored, so
	// the email claim stays empty unless a caller supplies one at issuance.
	signed, err := s.codec.Issue(user.UserID, "", s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	record, err := s.sessionSvc.CreateSession(ctx, user.UserID, nil, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create session record: %w", err)
	}

	return &portssvc.LoginResult{
		User:          user,
		SignedToken:   signed,
		SessionRecord: record,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if _, err := s.sessionSvc.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	if _, err := s.sessionSvc.DeleteSessionsByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidCredentials
		}
		return fmt.Errorf("failed to look up user for password change: %w", err)
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	// Revoke every DB session; signed tokens cannot be revoked, which is why
	// the record form is the primary session mechanism.
	if _, err := s.sessionSvc.DeleteSessionsByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions after password change: %w", err)
	}

	return nil
}

func (s *authService) UpdateEmail(ctx context.Context, userID, newEmail string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to look up user for email update: %w", err)
	}
	if err := s.userRepo.UpdateEmailHash(ctx, userID, utils.HashEmail(newEmail)); err != nil {
		return fmt.Errorf("failed to update email hash: %w", err)
	}
	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email, resetURLBase string) (string, error) {
	return s.resetSvc.RequestReset(ctx, email, resetURLBase)
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.resetSvc.ResetPassword(ctx, token, newPassword)
}

func (s *authService) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	return s.resetSvc.ValidateResetToken(ctx, token)
}
