package dto

import (
	"time"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
)

// CreateAPITokenRequest carries the fields for minting a personal access token.
// ExpiresInHours of zero (or omitted) means the token never expires.
type CreateAPITokenRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	ExpiresInHours int    `json:"expiresInHours" binding:"omitempty,min=1"`
}

// CreateAPITokenResponse returns the plaintext token exactly once, alongside
// its metadata. The plaintext is never retrievable again.
type CreateAPITokenResponse struct {
	Token    string           `json:"token"`
	APIToken APITokenResponse `json:"apiToken"`
}

// APITokenResponse is the externally visible shape of an API token row.
type APITokenResponse struct {
	TokenID    string     `json:"tokenID"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToAPITokenResponse converts a domain.APIToken to its response DTO.
func ToAPITokenResponse(t *domain.APIToken) APITokenResponse {
	return APITokenResponse{
		TokenID:    t.TokenID,
		Name:       t.Name,
		ExpiresAt:  t.ExpiresAt,
		LastUsedAt: t.LastUsedAt,
		CreatedAt:  t.CreatedAt,
	}
}

// ListAPITokensResponse wraps the list of a user's API tokens.
type ListAPITokensResponse struct {
	Tokens []APITokenResponse `json:"tokens"`
}
