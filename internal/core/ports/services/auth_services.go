package services

import (
	"context"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
	"github.com/pinkeep/pinkeep_app/internal/dto"
)

// LoginResult carries everything a successful login produces: the stateless
// signed token for bearer clients and the revocable session record whose id is
// set as the session cookie.
type LoginResult struct {
	User          *domain.User
	SignedToken   string
	SessionRecord *domain.SessionRecord
}

// AuthSvcFacade is the single entry point for credential operations. Nothing
// else mutates users, sessions, or reset tokens.
type AuthSvcFacade interface {
	// Register creates a new account. Returns apperrors.ErrUserAlreadyExists
	// when the username is taken.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login authenticates a user and issues both session forms. Unknown user
	// and wrong password are indistinguishable to the caller: both return
	// apperrors.ErrInvalidCredentials with the same latency profile.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// Logout deletes the DB session record. The signed token cannot be revoked;
	// clients discard it.
	Logout(ctx context.Context, sessionID string) error

	// LogoutAll deletes every DB session record of the user.
	LogoutAll(ctx context.Context, userID string) error

	// ChangePassword verifies the current password and stores a new hash. A
	// wrong current password comes back as apperrors.ErrInvalidCredentials.
	// All of the user's other DB sessions are revoked.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error

	// UpdateEmail replaces the user's stored email hash.
	UpdateEmail(ctx context.Context, userID, newEmail string) error

	// RequestPasswordReset starts the reset flow. Returns the plaintext token
	// for the known-email case and "" for unknown emails; both paths complete
	// without error so callers cannot probe which addresses are registered.
	RequestPasswordReset(ctx context.Context, email, resetURLBase string) (string, error)

	// ResetPassword consumes a reset token and sets the new password.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// ValidateResetToken checks a reset token without consuming it.
	ValidateResetToken(ctx context.Context, token string) (bool, error)
}
