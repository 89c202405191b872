package dto

import (
	"time"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
)

// UserResponse is the externally visible shape of a user. Password and email
// hashes never leave the service layer.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	HasEmail  bool      `json:"hasEmail"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		HasEmail:  user.EmailHash != nil,
		CreatedAt: user.CreatedAt,
	}
}
