package services

import "context"

// PasswordResetSvcFacade manages the reset token lifecycle: issuance with
// per-user rate limiting, single-use consumption, and side-effect-free checks.
type PasswordResetSvcFacade interface {
	// RequestReset issues a token for the account registered under email and
	// mails it. Unknown emails return ("", nil) so the caller cannot tell the
	// two cases apart by error shape. apperrors.ErrTooManyResetRequests is
	// returned when the user hit the hourly limit; nothing is created or sent
	// in that case.
	RequestReset(ctx context.Context, email, resetURLBase string) (string, error)

	// ResetPassword consumes the token and stores the new password hash. The
	// token row is deleted on success; a second call with the same token fails
	// with apperrors.ErrInvalidResetToken.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// ValidateResetToken performs the same lookup and expiry check as
	// ResetPassword without consuming the token.
	ValidateResetToken(ctx context.Context, token string) (bool, error)

	// SweepExpired removes every expired token row and returns the count.
	SweepExpired(ctx context.Context) (int64, error)
}
