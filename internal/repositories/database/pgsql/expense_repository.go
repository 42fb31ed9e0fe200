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

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense, split and settlement data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

// FindExpensesByGroupID retrieves all expenses of a group with their split
// lines attached.
func (r *PgxExpenseRepository) FindExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	expenseQuery := `
		SELECT expense_id, group_id, paid_by, amount, currency_code, description, expense_date,
			created_at, created_by, last_updated_at, last_updated_by
		FROM expenses
		WHERE group_id = $1
		ORDER BY expense_date, expense_id;
	`

	rows, err := r.Pool.Query(ctx, expenseQuery, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses for group "+groupID, err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var m models.Expense
		if err := rows.Scan(
			&m.ExpenseID,
			&m.GroupID,
			&m.PaidBy,
			&m.Amount,
			&m.CurrencyCode,
			&m.Description,
			&m.ExpenseDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		expenses = append(expenses, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate expense rows", err)
	}

	if len(expenses) == 0 {
		return []domain.Expense{}, nil
	}

	splitsByExpense, err := r.findSplitsByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Expense, len(expenses))
	for i, m := range expenses {
		result[i] = mapping.ToDomainExpense(m, splitsByExpense[m.ExpenseID])
	}
	return result, nil
}

// findSplitsByGroupID loads every split line of a group's expenses in one
// query, keyed by expense ID.
func (r *PgxExpenseRepository) findSplitsByGroupID(ctx context.Context, groupID string) (map[string][]models.ExpenseSplit, error) {
	query := `
		SELECT s.split_id, s.expense_id, s.participant_id, s.amount
		FROM expense_splits s
		JOIN expenses e ON e.expense_id = s.expense_id
		WHERE e.group_id = $1
		ORDER BY s.expense_id, s.split_id;
	`

	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expense splits for group "+groupID, err)
	}
	defer rows.Close()

	splits := make(map[string][]models.ExpenseSplit)
	for rows.Next() {
		var m models.ExpenseSplit
		if err := rows.Scan(
			&m.SplitID,
			&m.ExpenseID,
			&m.ParticipantID,
			&m.Amount,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense split row", err)
		}
		splits[m.ExpenseID] = append(splits[m.ExpenseID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate expense split rows", err)
	}

	return splits, nil
}

// FindSettlementsByGroupID retrieves all settlements recorded in a group.
func (r *PgxExpenseRepository) FindSettlementsByGroupID(ctx context.Context, groupID string) ([]domain.Settlement, error) {
	query := `
		SELECT settlement_id, group_id, from_participant_id, to_participant_id, amount, currency_code, settled_at,
			created_at, created_by, last_updated_at, last_updated_by
		FROM settlements
		WHERE group_id = $1
		ORDER BY settled_at, settlement_id;
	`

	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query settlements for group "+groupID, err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var m models.Settlement
		if err := rows.Scan(
			&m.SettlementID,
			&m.GroupID,
			&m.FromParticipant,
			&m.ToParticipant,
			&m.Amount,
			&m.CurrencyCode,
			&m.SettledAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan settlement row", err)
		}
		settlements = append(settlements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate settlement rows", err)
	}

	return mapping.ToDomainSettlementSlice(settlements), nil
}
