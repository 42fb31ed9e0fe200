package repositories

import (
	"context"

	"github.com/splitpal/splitpal_backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense and settlement data
type ExpenseReader interface {
	// FindExpensesByGroupID retrieves all expenses of a group with their
	// split lines pre-joined.
	FindExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error)

	// FindSettlementsByGroupID retrieves all settlements recorded in a group.
	FindSettlementsByGroupID(ctx context.Context, groupID string) ([]domain.Settlement, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
}
