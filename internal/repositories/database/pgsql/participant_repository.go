package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitpal/splitpal_backend/internal/apperrors"
	"github.com/splitpal/splitpal_backend/internal/core/domain"
	portsrepo "github.com/splitpal/splitpal_backend/internal/core/ports/repositories"
	"github.com/splitpal/splitpal_backend/internal/models"
	"github.com/splitpal/splitpal_backend/internal/utils/mapping"
)

type PgxParticipantRepository struct {
	BaseRepository
}

// newPgxParticipantRepository creates a new repository for participant data.
func newPgxParticipantRepository(pool *pgxpool.Pool) portsrepo.ParticipantRepositoryFacade {
	return &PgxParticipantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxParticipantRepository implements portsrepo.ParticipantRepositoryFacade
var _ portsrepo.ParticipantRepositoryFacade = (*PgxParticipantRepository)(nil)

// FindParticipantsByGroupID retrieves every participant of a group, including
// invited and former ones. An unknown group yields an empty slice.
func (r *PgxParticipantRepository) FindParticipantsByGroupID(ctx context.Context, groupID string) ([]domain.Participant, error) {
	query := `
		SELECT participant_id, group_id, user_id, email, full_name, status,
			created_at, created_by, last_updated_at, last_updated_by
		FROM participants
		WHERE group_id = $1
		ORDER BY created_at;
	`

	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query participants for group "+groupID, err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var m models.Participant
		if err := rows.Scan(
			&m.ParticipantID,
			&m.GroupID,
			&m.UserID,
			&m.Email,
			&m.FullName,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan participant row", err)
		}
		participants = append(participants, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate participant rows", err)
	}

	if len(participants) == 0 {
		// Unknown group: empty set, not an error
		return []domain.Participant{}, nil
	}

	return mapping.ToDomainParticipantSlice(participants), nil
}
