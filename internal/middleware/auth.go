package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
	"github.com/pinkeep/pinkeep_app/internal/utils"
)

// AuthMiddleware authenticates a request by any of the three credential forms,
// in order:
//
//  1. the session cookie, resolved against the DB-backed session records
//     (primary mechanism — revocable);
//  2. a signed session token in the Authorization header (stateless compat path);
//  3. an API access token (JWT) in the Authorization header.
//
// On success the user id (and session id, for the cookie path) are stored in
// the request context.
func AuthMiddleware(
	cookieName string,
	codec *utils.SessionTokenCodec,
	sessionSvc portssvc.SessionSvcFacade,
	apiTokenSvc portssvc.APITokenSvc,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if sessionID, err := c.Cookie(cookieName); err == nil && sessionID != "" {
			record, err := sessionSvc.GetSession(c.Request.Context(), sessionID)
			if err == nil && !record.IsExpired(time.Now()) {
				authenticate(c, record.UserID, sessionID)
				c.Next()
				return
			}
			// Fall through: an invalid cookie may accompany a valid bearer token.
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
		tokenString := parts[1]

		// Signed session token first; its verify is pure and cheap.
		if claims, status := codec.Verify(tokenString); status == utils.TokenValid {
			authenticate(c, claims.UserID, "")
			c.Next()
			return
		} else if status == utils.TokenExpired {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			return
		}

		// Not a session token; try it as an API access token.
		userID, err := apiTokenSvc.VerifyToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Invalid bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		authenticate(c, userID, "")
		c.Next()
	}
}

func authenticate(c *gin.Context, userID, sessionID string) {
	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	if sessionID != "" {
		ctx = context.WithValue(ctx, sessionIDKey, sessionID)
	}

	// Enrich the request logger so downstream log lines carry the user.
	enriched := GetLoggerFromCtx(ctx).With(slog.String("user_id", userID))
	ctx = context.WithValue(ctx, loggerCtxKey, enriched)

	c.Request = c.Request.WithContext(ctx)
}
