package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pinkeep/pinkeep_app/internal/apperrors"
	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
	"github.com/pinkeep/pinkeep_app/internal/dto"
	"github.com/pinkeep/pinkeep_app/internal/middleware"
)

// APITokenHandler handles personal access token management.
type APITokenHandler struct {
	tokenService portssvc.APITokenSvc
}

// NewAPITokenHandler creates a new APITokenHandler.
func NewAPITokenHandler(tokenService portssvc.APITokenSvc) *APITokenHandler {
	return &APITokenHandler{tokenService: tokenService}
}

// CreateToken godoc
// @Summary Create API token
// @Description Mints a personal access token. The plaintext is returned exactly once.
// @Tags api-tokens
// @Accept json
// @Produce json
// @Param request body dto.CreateAPITokenRequest true "Token name and optional expiry"
// @Success 201 {object} dto.CreateAPITokenResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api-tokens [post]
func (h *APITokenHandler) CreateToken(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateAPITokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err))
		return
	}

	var expiresIn *time.Duration
	if req.ExpiresInHours > 0 {
		d := time.Duration(req.ExpiresInHours) * time.Hour
		expiresIn = &d
	}

	plaintext, token, err := h.tokenService.CreateToken(c.Request.Context(), userID, req.Name, expiresIn)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to create API token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create API token"})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateAPITokenResponse{
		Token:    plaintext,
		APIToken: dto.ToAPITokenResponse(token),
	})
}

// ListTokens godoc
// @Summary List API tokens
// @Tags api-tokens
// @Produce json
// @Success 200 {object} dto.ListAPITokensResponse
// @Router /api-tokens [get]
func (h *APITokenHandler) ListTokens(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tokens, err := h.tokenService.ListTokens(c.Request.Context(), userID)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to list API tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list API tokens"})
		return
	}

	resp := dto.ListAPITokensResponse{Tokens: make([]dto.APITokenResponse, len(tokens))}
	for i := range tokens {
		resp.Tokens[i] = dto.ToAPITokenResponse(&tokens[i])
	}
	c.JSON(http.StatusOK, resp)
}

// RevokeToken godoc
// @Summary Revoke an API token
// @Tags api-tokens
// @Produce json
// @Param tokenID path string true "Token ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api-tokens/{tokenID} [delete]
func (h *APITokenHandler) RevokeToken(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tokenID := c.Param("tokenID")
	err := h.tokenService.RevokeToken(c.Request.Context(), userID, tokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Token not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to revoke API token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to revoke API token"})
		return
	}

	c.Status(http.StatusNoContent)
}
