package services

import "context"

// EmailSender is the outbound mail collaborator. Failures surface as errors to
// the caller; the reset flow persists its token before sending, so a failed
// send never leaves a half-created token.
type EmailSender interface {
	// SendPasswordResetEmail delivers the plaintext reset token embedded in
	// resetURLBase to the given address.
	SendPasswordResetEmail(ctx context.Context, email, plaintextToken, resetURLBase string) error
}
