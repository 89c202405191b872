package repositories

import (
	"context"

	"github.com/pinkeep/pinkeep_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a specific user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmailHash retrieves a user by the one-way hash of their email.
	FindUserByEmailHash(ctx context.Context, emailHash string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdatePasswordHash replaces a user's stored password hash.
	UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error

	// UpdateEmailHash replaces a user's stored email hash.
	UpdateEmailHash(ctx context.Context, userID string, emailHash string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
