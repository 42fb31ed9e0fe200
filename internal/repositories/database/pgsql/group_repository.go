package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splitpal/splitpal_backend/internal/apperrors"
	"github.com/splitpal/splitpal_backend/internal/core/domain"
	portsrepo "github.com/splitpal/splitpal_backend/internal/core/ports/repositories"
	"github.com/splitpal/splitpal_backend/internal/models"
	"github.com/splitpal/splitpal_backend/internal/utils/mapping"
)

type PgxGroupRepository struct {
	BaseRepository
}

// newPgxGroupRepository creates a new repository for group and membership data.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxGroupRepository implements portsrepo.GroupRepositoryFacade
var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

// FindGroupByID retrieves a group by its ID.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `
		SELECT group_id, name, description, created_at, created_by, last_updated_at, last_updated_by
		FROM groups
		WHERE group_id = $1;
	`

	var m models.Group
	err := r.Pool.QueryRow(ctx, query, groupID).Scan(
		&m.GroupID,
		&m.Name,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find group "+groupID, err)
	}

	group := mapping.ToDomainGroup(m)
	return &group, nil
}

// ListGroupsByUserID retrieves all groups a user is an active member of.
func (r *PgxGroupRepository) ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error) {
	query := `
		SELECT g.group_id, g.name, g.description, g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.group_id
		WHERE gm.user_id = $1
		ORDER BY g.created_at, g.group_id;
	`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list groups for user "+userID, err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var m models.Group
		if err := rows.Scan(
			&m.GroupID,
			&m.Name,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan group row", err)
		}
		groups = append(groups, m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate group rows", err)
	}

	return mapping.ToDomainGroupSlice(groups), nil
}

// FindMembership retrieves a user's membership in a group, if any.
func (r *PgxGroupRepository) FindMembership(ctx context.Context, userID, groupID string) (*domain.GroupMembership, error) {
	query := `
		SELECT user_id, group_id, role, joined_at
		FROM group_members
		WHERE user_id = $1 AND group_id = $2;
	`

	var m models.GroupMembership
	err := r.Pool.QueryRow(ctx, query, userID, groupID).Scan(
		&m.UserID,
		&m.GroupID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for user "+userID, err)
	}

	membership := mapping.ToDomainGroupMembership(m)
	return &membership, nil
}
