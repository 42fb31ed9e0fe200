package repositories

import (
	"context"

	"github.com/splitpal/splitpal_backend/internal/core/domain"
)

// ParticipantReader defines read operations for participant data
type ParticipantReader interface {
	// FindParticipantsByGroupID retrieves every participant of a group,
	// including invited participants without a linked account and former
	// participants that historical expenses may still reference.
	// An unknown group yields an empty slice, not an error.
	FindParticipantsByGroupID(ctx context.Context, groupID string) ([]domain.Participant, error)
}

// ParticipantRepositoryFacade combines all participant-related repository interfaces
type ParticipantRepositoryFacade interface {
	ParticipantReader
}
