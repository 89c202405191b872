package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller is not authenticated for the operation.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidCredentials is returned for failed logins and failed current-password checks.
// It deliberately does not distinguish "no such user" from "wrong password" so the
// response shape leaks nothing about which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserAlreadyExists indicates a registration attempt with a taken username.
var ErrUserAlreadyExists = errors.New("user already exists")

// ErrInvalidResetToken covers every reset-token failure that must stay opaque to the
// caller: unknown token, already consumed, superseded, or owner gone.
var ErrInvalidResetToken = errors.New("invalid password reset token")

// ErrResetTokenExpired indicates a known reset token past its expiry. Safe to surface
// distinctly: the caller already holds the token, so it carries no enumeration risk.
var ErrResetTokenExpired = errors.New("password reset token expired")

// ErrTooManyResetRequests indicates the per-user reset request limit was hit.
var ErrTooManyResetRequests = errors.New("too many password reset requests")
