package repositories

import (
	"context"

	"github.com/splitpal/splitpal_backend/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a specific group by its ID.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListGroupsByUserID retrieves all groups a user is an active member of.
	ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error)
}

// GroupMembershipReader defines read operations for group memberships
type GroupMembershipReader interface {
	// FindMembership retrieves a user's membership in a group, if any.
	FindMembership(ctx context.Context, userID, groupID string) (*domain.GroupMembership, error)
}

// GroupRepositoryFacade combines all group-related repository interfaces
// This is a facade for clients that need access to all operations
type GroupRepositoryFacade interface {
	GroupReader
	GroupMembershipReader
}
