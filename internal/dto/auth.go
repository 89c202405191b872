package dto

import "time"

// RegisterRequest carries the fields needed to create an account. Email is
// optional; when present it is hashed before storage and the plaintext is
// discarded.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50,alphanum"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login. Token is the
// stateless signed session token; the revocable session record id travels in
// the session cookie instead of the body.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ChangePasswordRequest carries a password change for an authenticated user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=128"`
}

// UpdateEmailRequest carries an email change for an authenticated user.
type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordResetRequest starts the reset flow for the account registered
// under this email, if one exists.
type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest consumes a reset token to set a new password.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=128"`
}

// ValidateResetTokenResponse reports whether a reset token is currently usable.
type ValidateResetTokenResponse struct {
	Valid bool `json:"valid"`
}
