package services

import (
	"context"

	"github.com/splitpal/splitpal_backend/internal/core/domain"
)

// GroupAuthorizerSvc defines the authorization check other services depend on
type GroupAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user holds at least the required role
	// in a group. Returns apperrors.ErrForbidden when they do not.
	AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.GroupRole) error
}

// GroupReaderSvc defines read operations for groups
type GroupReaderSvc interface {
	// GetGroupByID retrieves a group the requesting user is a member of.
	GetGroupByID(ctx context.Context, groupID string, userID string) (*domain.Group, error)

	// ListUserGroups retrieves all groups the user is an active member of.
	ListUserGroups(ctx context.Context, userID string) ([]domain.Group, error)

	// ListGroupParticipants retrieves the participant roster of a group the
	// requesting user is a member of.
	ListGroupParticipants(ctx context.Context, groupID string, userID string) ([]domain.Participant, error)
}

// GroupSvcFacade combines all group-related service interfaces
type GroupSvcFacade interface {
	GroupAuthorizerSvc
	GroupReaderSvc
}
