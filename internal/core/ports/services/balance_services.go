package services

import (
	"context"

	"github.com/splitpal/splitpal_backend/internal/core/domain"
)

// BalanceSvcFacade defines the balance computation operations.
// Balances are recomputed from the stored expenses, splits and settlements on
// every call; nothing is cached between requests.
type BalanceSvcFacade interface {
	// ComputeGroupBalances nets all expenses and settlements of one group
	// into a signed balance per participant per currency. A store access
	// failure for the group is returned as a hard error; malformed records
	// are skipped with a logged warning.
	ComputeGroupBalances(ctx context.Context, groupID string) ([]domain.Balance, error)

	// ComputeOverallBalances computes balances for every group the viewer
	// belongs to (or just the requested one) and folds them into the
	// viewer's overall per-currency position. Individual group failures
	// degrade to empty balance lists; only a failure of the viewer's base
	// membership query fails the call.
	ComputeOverallBalances(ctx context.Context, viewerID string, groupID *string) (*domain.BalanceSheet, error)
}
