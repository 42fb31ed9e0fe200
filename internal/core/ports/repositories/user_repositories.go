package repositories

import (
	"context"

	"github.com/splitpal/splitpal_backend/internal/core/domain"
)

// UserReader defines read operations for identity data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUsersByIDs retrieves users for the given IDs in one query,
	// keyed by user ID. Missing IDs are simply absent from the result.
	FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
}
