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

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for identity data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, email, full_name, avatar_url, created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE user_id = $1;
	`

	var m models.User
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.Email,
		&m.FullName,
		&m.AvatarURL,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID, err)
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUsersByIDs retrieves users for the given IDs in one query, keyed by
// user ID. Missing IDs are simply absent from the result.
func (r *PgxUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	if len(userIDs) == 0 {
		return map[string]domain.User{}, nil
	}

	query := `
		SELECT user_id, email, full_name, avatar_url, created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE user_id = ANY($1);
	`

	rows, err := r.Pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users by IDs", err)
	}
	defer rows.Close()

	users := make(map[string]domain.User, len(userIDs))
	for rows.Next() {
		var m models.User
		if err := rows.Scan(
			&m.UserID,
			&m.Email,
			&m.FullName,
			&m.AvatarURL,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		users[m.UserID] = mapping.ToDomainUser(m)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate user rows", err)
	}

	return users, nil
}
