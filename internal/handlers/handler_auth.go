package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pinkeep/pinkeep_app/internal/apperrors"
	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
	"github.com/pinkeep/pinkeep_app/internal/dto"
	"github.com/pinkeep/pinkeep_app/internal/middleware"
	"github.com/pinkeep/pinkeep_app/internal/platform/config"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService portssvc.AuthSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (username exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	newUser, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "Username is already taken"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to register user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(newUser))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user, sets the session cookie, and returns a signed session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			// Same message for unknown user and wrong password.
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Login failed"})
		return
	}

	// The revocable session record travels as a cookie; the signed token in the body.
	maxAge := int(h.cfg.SessionRecordExpiryDuration.Seconds())
	c.SetCookie(h.cfg.SessionCookieName, result.SessionRecord.SessionID, maxAge, "/", "", h.cfg.IsProduction, true)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.SignedToken,
		ExpiresAt: result.SessionRecord.ExpiresAt,
		User:      dto.ToUserResponse(result.User),
	})
}

// Logout godoc
// @Summary User logout
// @Description Deletes the DB session record and clears the session cookie.
// @Tags auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.cfg.SessionCookieName); err == nil && sessionID != "" {
		if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to delete session on logout", slog.String("error", err.Error()))
		}
	}
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", "", h.cfg.IsProduction, true)
	c.Status(http.StatusNoContent)
}

// RequestPasswordReset godoc
// @Summary Request a password reset
// @Description Issues a reset token and emails it. Responds identically whether or not the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestPasswordResetRequest true "Email"
// @Success 202 {object} ErrorResponse "Accepted"
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/password-reset/request [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	_, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email, h.cfg.ResetURLBase)
	if err != nil {
		if errors.Is(err, apperrors.ErrTooManyResetRequests) {
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too many password reset requests. Please try again later."})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to request password reset", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to request password reset"})
		return
	}

	// Known and unknown emails answer the same way.
	c.JSON(http.StatusAccepted, gin.H{"message": "If that email is registered, a reset link has been sent."})
}

// ConfirmPasswordReset godoc
// @Summary Reset password with a token
// @Description Consumes a reset token and sets the new password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token and new password"
// @Success 204
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 410 {object} ErrorResponse "Token expired"
// @Router /auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrResetTokenExpired):
			c.JSON(http.StatusGone, ErrorResponse{Error: "Password reset token has expired"})
		case errors.Is(err, apperrors.ErrInvalidResetToken):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid password reset token"})
		default:
			logger := middleware.GetLoggerFromCtx(c.Request.Context())
			logger.Error("Failed to reset password", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reset password"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ValidateResetToken godoc
// @Summary Check a reset token
// @Description Reports whether a reset token is currently usable, without consuming it.
// @Tags auth
// @Produce json
// @Param token query string true "Reset token"
// @Success 200 {object} dto.ValidateResetTokenResponse
// @Router /auth/password-reset/validate [get]
func (h *AuthHandler) ValidateResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusOK, dto.ValidateResetTokenResponse{Valid: false})
		return
	}

	valid, err := h.authService.ValidateResetToken(c.Request.Context(), token)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to validate reset token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to validate reset token"})
		return
	}

	c.JSON(http.StatusOK, dto.ValidateResetTokenResponse{Valid: valid})
}
