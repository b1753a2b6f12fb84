package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for marketplace users.
type UserRepository interface {
	// Get retrieves a user by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByToken retrieves the user owning the given access token.
	// Used by the authentication middleware to resolve the caller.
	GetByToken(ctx context.Context, token string) (*user.User, error)
}
