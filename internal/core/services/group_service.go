package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/splitpal/splitpal_backend/internal/apperrors"
	"github.com/splitpal/splitpal_backend/internal/core/domain"
	portsrepo "github.com/splitpal/splitpal_backend/internal/core/ports/repositories"
	portssvc "github.com/splitpal/splitpal_backend/internal/core/ports/services"
)

// groupService implements the GroupSvcFacade interface
type groupService struct {
	BaseService
	groupRepo       portsrepo.GroupRepositoryFacade
	participantRepo portsrepo.ParticipantRepositoryFacade
}

// NewGroupService creates a new group service with the provided dependencies
func NewGroupService(
	groupRepo portsrepo.GroupRepositoryFacade,
	participantRepo portsrepo.ParticipantRepositoryFacade,
) portssvc.GroupSvcFacade {
	return &groupService{
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
	}
}

// Ensure groupService implements the GroupSvcFacade interface
var _ portssvc.GroupSvcFacade = (*groupService)(nil)

// AuthorizeUserAction checks if a user holds at least the required role in a group.
func (s *groupService) AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.GroupRole) error {
	membership, err := s.groupRepo.FindMembership(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to look up group membership",
			slog.String("user_id", userID),
			slog.String("group_id", groupID))
		return err
	}

	if requiredRole == domain.RoleAdmin && membership.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// GetGroupByID retrieves a group after verifying the requesting user's membership
func (s *groupService) GetGroupByID(ctx context.Context, groupID string, userID string) (*domain.Group, error) {
	if err := s.AuthorizeUserAction(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find group by ID",
				slog.String("group_id", groupID))
		}
		return nil, err
	}

	return group, nil
}

// ListUserGroups retrieves all groups a user is an active member of
func (s *groupService) ListUserGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroupsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list groups for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if groups == nil {
		return []domain.Group{}, nil
	}

	s.LogDebug(ctx, "Groups listed successfully",
		slog.Int("count", len(groups)),
		slog.String("user_id", userID))
	return groups, nil
}

// ListGroupParticipants retrieves a group's full participant roster, including
// invited and former participants
func (s *groupService) ListGroupParticipants(ctx context.Context, groupID string, userID string) ([]domain.Participant, error) {
	if err := s.AuthorizeUserAction(ctx, userID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.FindParticipantsByGroupID(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list participants for group",
			slog.String("group_id", groupID))
		return nil, err
	}

	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}
