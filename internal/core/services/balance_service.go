package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/splitpal/splitpal_backend/internal/core/domain"
	portsrepo "github.com/splitpal/splitpal_backend/internal/core/ports/repositories"
	portssvc "github.com/splitpal/splitpal_backend/internal/core/ports/services"
	"github.com/splitpal/splitpal_backend/internal/utils/netting"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentGroupComputations bounds the per-group fan-out. Group
// computations are fully independent and merged by commutative summation, so
// no ordering between them is needed.
const maxConcurrentGroupComputations = 8

// balanceService implements the BalanceSvcFacade interface.
// It is read-only and stateless across invocations: every call recomputes
// balances from the backing store, and all lookup state is request-scoped.
type balanceService struct {
	BaseService
	groupRepo       portsrepo.GroupRepositoryFacade
	participantRepo portsrepo.ParticipantRepositoryFacade
	expenseRepo     portsrepo.ExpenseRepositoryFacade
	enricher        *identityEnricher
}

// BalanceServiceOption is a functional option for configuring the balance service
type BalanceServiceOption func(*balanceService)

// WithBalanceGroupAuthorizer sets the group authorizer for the balance service.
func WithBalanceGroupAuthorizer(authorizer portssvc.GroupAuthorizerSvc) BalanceServiceOption {
	return func(s *balanceService) {
		s.GroupAuthorizer = authorizer
	}
}

// NewBalanceService creates a new balance service with the provided options
func NewBalanceService(
	groupRepo portsrepo.GroupRepositoryFacade,
	participantRepo portsrepo.ParticipantRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	options ...BalanceServiceOption,
) portssvc.BalanceSvcFacade {
	svc := &balanceService{
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		expenseRepo:     expenseRepo,
		enricher:        newIdentityEnricher(userRepo),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure balanceService implements the BalanceSvcFacade interface
var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ComputeGroupBalances nets all expenses and settlements of one group into a
// signed balance per participant per currency.
func (s *balanceService) ComputeGroupBalances(ctx context.Context, groupID string) ([]domain.Balance, error) {
	balances, _, err := s.computeGroup(ctx, groupID)
	return balances, err
}

// computeGroup runs the netting pass and also returns the resolved
// participant set so callers can reuse it for display fallbacks.
func (s *balanceService) computeGroup(ctx context.Context, groupID string) ([]domain.Balance, domain.ParticipantSet, error) {
	participants, err := s.participantRepo.FindParticipantsByGroupID(ctx, groupID)
	if err != nil {
		return nil, domain.ParticipantSet{}, fmt.Errorf("failed to load participants for group %s: %w", groupID, err)
	}
	set := domain.NewParticipantSet(participants)

	expenses, err := s.expenseRepo.FindExpensesByGroupID(ctx, groupID)
	if err != nil {
		return nil, set, fmt.Errorf("failed to load expenses for group %s: %w", groupID, err)
	}

	settlements, err := s.expenseRepo.FindSettlementsByGroupID(ctx, groupID)
	if err != nil {
		return nil, set, fmt.Errorf("failed to load settlements for group %s: %w", groupID, err)
	}

	acc := netting.NewAccumulator()

	for _, expense := range expenses {
		if !s.expenseIsNettable(ctx, expense, set) {
			continue
		}
		// Credit the payer with the full amount, debit every split line.
		acc.Credit(expense.PaidBy, expense.CurrencyCode, expense.Amount)
		for _, split := range expense.Splits {
			acc.Debit(split.ParticipantID, expense.CurrencyCode, split.Amount)
		}
	}

	for _, settlement := range settlements {
		if !s.settlementIsNettable(ctx, settlement, set) {
			continue
		}
		// The sender's debt shrinks, the receiver is owed less.
		acc.Credit(settlement.FromParticipant, settlement.CurrencyCode, settlement.Amount)
		acc.Debit(settlement.ToParticipant, settlement.CurrencyCode, settlement.Amount)
	}

	entries := acc.Collapse()
	balances := make([]domain.Balance, 0, len(entries))
	for _, e := range entries {
		balance := domain.Balance{
			ParticipantID: e.ParticipantID,
			CurrencyCode:  e.CurrencyCode,
			Amount:        e.Amount,
		}
		if p, ok := set.ByParticipantID(e.ParticipantID); ok && p.UserID != nil && *p.UserID != "" {
			balance.UserID = p.UserID
		}
		balances = append(balances, balance)
	}

	// Deterministic output for identical store state
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].CurrencyCode != balances[j].CurrencyCode {
			return balances[i].CurrencyCode < balances[j].CurrencyCode
		}
		return balances[i].ParticipantID < balances[j].ParticipantID
	})

	return balances, set, nil
}

// expenseIsNettable checks one expense record for the anomalies the ledger
// tolerates: an unresolvable payer, a missing currency, a non-positive amount
// or a bad split line. Anomalous expenses are skipped whole so every credit
// keeps its matching debits.
func (s *balanceService) expenseIsNettable(ctx context.Context, expense domain.Expense, set domain.ParticipantSet) bool {
	if expense.CurrencyCode == "" {
		s.LogWarn(ctx, "Skipping expense without currency",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("group_id", expense.GroupID))
		return false
	}
	if !expense.Amount.IsPositive() {
		s.LogWarn(ctx, "Skipping expense with non-positive amount",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("amount", expense.Amount.String()))
		return false
	}
	if _, ok := set.ByParticipantID(expense.PaidBy); !ok {
		s.LogWarn(ctx, "Skipping expense with unresolvable payer",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("payer_participant_id", expense.PaidBy))
		return false
	}
	for _, split := range expense.Splits {
		if split.Amount.IsNegative() {
			s.LogWarn(ctx, "Skipping expense with negative split amount",
				slog.String("expense_id", expense.ExpenseID),
				slog.String("split_id", split.SplitID),
				slog.String("amount", split.Amount.String()))
			return false
		}
		if _, ok := set.ByParticipantID(split.ParticipantID); !ok {
			s.LogWarn(ctx, "Skipping expense with unresolvable split participant",
				slog.String("expense_id", expense.ExpenseID),
				slog.String("split_id", split.SplitID),
				slog.String("participant_id", split.ParticipantID))
			return false
		}
	}
	return true
}

// settlementIsNettable applies the same defensive checks to a settlement.
func (s *balanceService) settlementIsNettable(ctx context.Context, settlement domain.Settlement, set domain.ParticipantSet) bool {
	if settlement.CurrencyCode == "" {
		s.LogWarn(ctx, "Skipping settlement without currency",
			slog.String("settlement_id", settlement.SettlementID),
			slog.String("group_id", settlement.GroupID))
		return false
	}
	if !settlement.Amount.IsPositive() {
		s.LogWarn(ctx, "Skipping settlement with non-positive amount",
			slog.String("settlement_id", settlement.SettlementID),
			slog.String("amount", settlement.Amount.String()))
		return false
	}
	if _, ok := set.ByParticipantID(settlement.FromParticipant); !ok {
		s.LogWarn(ctx, "Skipping settlement with unresolvable sender",
			slog.String("settlement_id", settlement.SettlementID),
			slog.String("participant_id", settlement.FromParticipant))
		return false
	}
	if _, ok := set.ByParticipantID(settlement.ToParticipant); !ok {
		s.LogWarn(ctx, "Skipping settlement with unresolvable receiver",
			slog.String("settlement_id", settlement.SettlementID),
			slog.String("participant_id", settlement.ToParticipant))
		return false
	}
	return true
}

// ComputeOverallBalances resolves the viewer's target group set, runs the
// per-group netting concurrently, merges the results into the viewer's
// overall position and decorates everything with display data.
func (s *balanceService) ComputeOverallBalances(ctx context.Context, viewerID string, groupID *string) (*domain.BalanceSheet, error) {
	groups, err := s.resolveTargetGroups(ctx, viewerID, groupID)
	if err != nil {
		return nil, err
	}

	type groupResult struct {
		balances []domain.Balance
		set      domain.ParticipantSet
	}
	results := make([]groupResult, len(groups))

	// One task per group; inside the aggregate view a failing group degrades
	// to an empty balance list instead of failing the request. A directly
	// requested single group has nothing to degrade to, so its store failure
	// propagates.
	singleGroup := groupID != nil
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentGroupComputations)
	for i, group := range groups {
		g.Go(func() error {
			balances, set, err := s.computeGroup(ctx, group.GroupID)
			if err != nil {
				if singleGroup {
					s.LogError(ctx, err, "Balance computation failed for requested group",
						slog.String("group_id", group.GroupID))
					return err
				}
				s.LogWarn(ctx, "Group balance computation failed, returning empty balances for group",
					slog.String("group_id", group.GroupID),
					slog.String("error", err.Error()))
				results[i] = groupResult{balances: []domain.Balance{}, set: set}
				return nil
			}
			results[i] = groupResult{balances: balances, set: set}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sheet := &domain.BalanceSheet{
		GroupBalances:   make([]domain.GroupBalances, len(groups)),
		OverallBalances: []domain.UserBalance{},
	}
	participantSets := make(map[string]domain.ParticipantSet, len(groups))

	overall := make(map[string]decimal.Decimal) // currency -> viewer's net position
	for i, group := range groups {
		gb := domain.GroupBalances{
			GroupID:   group.GroupID,
			GroupName: group.Name,
			Balances:  make([]domain.EnrichedBalance, len(results[i].balances)),
		}
		for bi, b := range results[i].balances {
			gb.Balances[bi] = domain.EnrichedBalance{Balance: b}
			// The overall view answers "what is my net position" only; other
			// users' cross-group positions are deliberately not exposed.
			if b.UserID != nil && *b.UserID == viewerID {
				overall[b.CurrencyCode] = overall[b.CurrencyCode].Add(b.Amount)
			}
		}
		sheet.GroupBalances[i] = gb
		participantSets[group.GroupID] = results[i].set
	}

	currencies := make([]string, 0, len(overall))
	for currency := range overall {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	for _, currency := range currencies {
		if netting.IsSettled(overall[currency]) {
			continue
		}
		sheet.OverallBalances = append(sheet.OverallBalances, domain.UserBalance{
			UserID:       viewerID,
			CurrencyCode: currency,
			Amount:       overall[currency],
		})
	}

	users := s.enricher.resolveUsers(ctx, sheet.GroupBalances)
	s.enricher.decorate(sheet.GroupBalances, users, participantSets)

	s.LogInfo(ctx, "Balances computed",
		slog.String("viewer_id", viewerID),
		slog.Int("group_count", len(groups)),
		slog.Int("overall_currencies", len(sheet.OverallBalances)))
	return sheet, nil
}

// resolveTargetGroups returns either every group the viewer belongs to, or
// just the requested one after a membership check.
func (s *balanceService) resolveTargetGroups(ctx context.Context, viewerID string, groupID *string) ([]domain.Group, error) {
	if groupID == nil {
		groups, err := s.groupRepo.ListGroupsByUserID(ctx, viewerID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list viewer's groups",
				slog.String("viewer_id", viewerID))
			return nil, err
		}
		return groups, nil
	}

	if err := s.AuthorizeUser(ctx, viewerID, *groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindGroupByID(ctx, *groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find requested group",
			slog.String("group_id", *groupID))
		return nil, err
	}
	return []domain.Group{*group}, nil
}
