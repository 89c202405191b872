package middleware

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys defined in this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	sessionIDKey = contextKey("sessionID")
)

// GetLoggerFromCtx returns the request-scoped logger, or the default logger if
// none was injected.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// GetUserIDFromCtx returns the authenticated user's id, if any.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

// GetSessionIDFromCtx returns the DB session record id carried by the request,
// if authentication happened via the session cookie.
func GetSessionIDFromCtx(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	return sessionID, ok
}
