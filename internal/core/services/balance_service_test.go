package services_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/splitpal/splitpal_backend/internal/apperrors"
	"github.com/splitpal/splitpal_backend/internal/core/domain"
	portsrepo "github.com/splitpal/splitpal_backend/internal/core/ports/repositories"
	portssvc "github.com/splitpal/splitpal_backend/internal/core/ports/services"
	"github.com/splitpal/splitpal_backend/internal/core/services"
	"github.com/splitpal/splitpal_backend/internal/utils/netting"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock GroupRepository ---
type MockGroupRepository struct {
	mock.Mock
}

// Ensure MockGroupRepository implements portsrepo.GroupRepositoryFacade
var _ portsrepo.GroupRepositoryFacade = (*MockGroupRepository)(nil)

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupRepository) ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Group), args.Error(1)
}

func (m *MockGroupRepository) FindMembership(ctx context.Context, userID, groupID string) (*domain.GroupMembership, error) {
	args := m.Called(ctx, userID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupMembership), args.Error(1)
}

// --- Mock ParticipantRepository ---
type MockParticipantRepository struct {
	mock.Mock
}

var _ portsrepo.ParticipantRepositoryFacade = (*MockParticipantRepository)(nil)

func (m *MockParticipantRepository) FindParticipantsByGroupID(ctx context.Context, groupID string) ([]domain.Participant, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Participant), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) FindExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindSettlementsByGroupID(ctx context.Context, groupID string) ([]domain.Settlement, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

// --- Mock GroupAuthorizer ---
type MockGroupAuthorizer struct {
	mock.Mock
}

var _ portssvc.GroupAuthorizerSvc = (*MockGroupAuthorizer)(nil)

func (m *MockGroupAuthorizer) AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.GroupRole) error {
	args := m.Called(ctx, userID, groupID, requiredRole)
	return args.Error(0)
}

// --- Test Suite ---

type BalanceServiceTestSuite struct {
	suite.Suite
	mockGroupRepo       *MockGroupRepository
	mockParticipantRepo *MockParticipantRepository
	mockExpenseRepo     *MockExpenseRepository
	mockUserRepo        *MockUserRepository
	mockAuthorizer      *MockGroupAuthorizer
	service             portssvc.BalanceSvcFacade
	ctx                 context.Context

	groupID  string
	viewerID string
	// Three participants: alice is linked to the viewer's account, bob and
	// carol are invited participants without accounts.
	alice domain.Participant
	bob   domain.Participant
	carol domain.Participant
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockParticipantRepo = new(MockParticipantRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuthorizer = new(MockGroupAuthorizer)
	suite.service = services.NewBalanceService(
		suite.mockGroupRepo,
		suite.mockParticipantRepo,
		suite.mockExpenseRepo,
		suite.mockUserRepo,
		services.WithBalanceGroupAuthorizer(suite.mockAuthorizer),
	)
	suite.ctx = context.Background()

	suite.groupID = uuid.NewString()
	suite.viewerID = uuid.NewString()
	suite.alice = domain.Participant{
		ParticipantID: "p-alice",
		GroupID:       suite.groupID,
		UserID:        ptr(suite.viewerID),
		Status:        domain.ParticipantMember,
	}
	suite.bob = domain.Participant{
		ParticipantID: "p-bob",
		GroupID:       suite.groupID,
		Email:         ptr("bob@example.com"),
		Status:        domain.ParticipantInvited,
	}
	suite.carol = domain.Participant{
		ParticipantID: "p-carol",
		GroupID:       suite.groupID,
		FullName:      ptr("Carol"),
		Status:        domain.ParticipantMember,
	}
}

func ptr(s string) *string {
	return &s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *BalanceServiceTestSuite) expectGroupData(groupID string, participants []domain.Participant, expenses []domain.Expense, settlements []domain.Settlement) {
	suite.mockParticipantRepo.On("FindParticipantsByGroupID", mock.Anything, groupID).Return(participants, nil)
	suite.mockExpenseRepo.On("FindExpensesByGroupID", mock.Anything, groupID).Return(expenses, nil)
	suite.mockExpenseRepo.On("FindSettlementsByGroupID", mock.Anything, groupID).Return(settlements, nil)
}

func (suite *BalanceServiceTestSuite) evenSplitExpense() domain.Expense {
	return domain.Expense{
		ExpenseID:    "e1",
		GroupID:      suite.groupID,
		PaidBy:       suite.alice.ParticipantID,
		Amount:       dec("30"),
		CurrencyCode: "USD",
		Splits: []domain.ExpenseSplit{
			{SplitID: "s1", ExpenseID: "e1", ParticipantID: suite.alice.ParticipantID, Amount: dec("10")},
			{SplitID: "s2", ExpenseID: "e1", ParticipantID: suite.bob.ParticipantID, Amount: dec("10")},
			{SplitID: "s3", ExpenseID: "e1", ParticipantID: suite.carol.ParticipantID, Amount: dec("10")},
		},
	}
}

func (suite *BalanceServiceTestSuite) amountFor(balances []domain.Balance, participantID, currency string) decimal.Decimal {
	for _, b := range balances {
		if b.ParticipantID == participantID && b.CurrencyCode == currency {
			return b.Amount
		}
	}
	suite.FailNowf("balance missing", "no balance for %s in %s", participantID, currency)
	return decimal.Zero
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_EvenSplit() {
	participants := []domain.Participant{suite.alice, suite.bob, suite.carol}
	suite.expectGroupData(suite.groupID, participants, []domain.Expense{suite.evenSplitExpense()}, nil)

	balances, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)

	suite.NoError(err)
	suite.Len(balances, 3)
	suite.True(suite.amountFor(balances, "p-alice", "USD").Equal(dec("20")))
	suite.True(suite.amountFor(balances, "p-bob", "USD").Equal(dec("-10")))
	suite.True(suite.amountFor(balances, "p-carol", "USD").Equal(dec("-10")))

	// The payer's linked account is attached, invited participants carry none
	suite.Require().NotNil(balances[0].UserID)
	suite.Equal(suite.viewerID, *suite.amountUser(balances, "p-alice"))
	suite.Nil(suite.amountUser(balances, "p-bob"))
}

func (suite *BalanceServiceTestSuite) amountUser(balances []domain.Balance, participantID string) *string {
	for _, b := range balances {
		if b.ParticipantID == participantID {
			return b.UserID
		}
	}
	return nil
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_SettlementClearsDebt() {
	participants := []domain.Participant{suite.alice, suite.bob, suite.carol}
	settlements := []domain.Settlement{
		{
			SettlementID:    "st1",
			GroupID:         suite.groupID,
			FromParticipant: suite.bob.ParticipantID,
			ToParticipant:   suite.alice.ParticipantID,
			Amount:          dec("10"),
			CurrencyCode:    "USD",
		},
	}
	suite.expectGroupData(suite.groupID, participants, []domain.Expense{suite.evenSplitExpense()}, settlements)

	balances, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)

	suite.NoError(err)
	// Bob settled his share in full and disappears from the result
	suite.Len(balances, 2)
	suite.True(suite.amountFor(balances, "p-alice", "USD").Equal(dec("10")))
	suite.True(suite.amountFor(balances, "p-carol", "USD").Equal(dec("-10")))
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_MultiCurrency() {
	participants := []domain.Participant{suite.alice, suite.bob, suite.carol}
	expenses := []domain.Expense{
		suite.evenSplitExpense(),
		{
			ExpenseID:    "e2",
			GroupID:      suite.groupID,
			PaidBy:       suite.bob.ParticipantID,
			Amount:       dec("3000"),
			CurrencyCode: "JPY",
			Splits: []domain.ExpenseSplit{
				{SplitID: "s4", ExpenseID: "e2", ParticipantID: suite.alice.ParticipantID, Amount: dec("1000")},
				{SplitID: "s5", ExpenseID: "e2", ParticipantID: suite.bob.ParticipantID, Amount: dec("1000")},
				{SplitID: "s6", ExpenseID: "e2", ParticipantID: suite.carol.ParticipantID, Amount: dec("1000")},
			},
		},
	}
	suite.expectGroupData(suite.groupID, participants, expenses, nil)

	balances, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)

	suite.NoError(err)
	suite.Len(balances, 6)
	// Currencies never net against each other
	suite.True(suite.amountFor(balances, "p-alice", "USD").Equal(dec("20")))
	suite.True(suite.amountFor(balances, "p-alice", "JPY").Equal(dec("-1000")))
	suite.True(suite.amountFor(balances, "p-bob", "JPY").Equal(dec("2000")))
	suite.True(suite.amountFor(balances, "p-carol", "JPY").Equal(dec("-1000")))
	// Deterministic ordering: currency first, participant second
	suite.Equal("JPY", balances[0].CurrencyCode)
	suite.Equal("p-alice", balances[0].ParticipantID)
	suite.Equal("USD", balances[3].CurrencyCode)
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_SkipsAnomalousRecords() {
	participants := []domain.Participant{suite.alice, suite.bob, suite.carol}
	expenses := []domain.Expense{
		suite.evenSplitExpense(),
		{
			// Payer no longer resolvable, skipped whole
			ExpenseID:    "e-orphan",
			GroupID:      suite.groupID,
			PaidBy:       "p-gone",
			Amount:       dec("50"),
			CurrencyCode: "USD",
			Splits: []domain.ExpenseSplit{
				{SplitID: "s7", ExpenseID: "e-orphan", ParticipantID: suite.bob.ParticipantID, Amount: dec("50")},
			},
		},
		{
			// Missing currency, skipped whole
			ExpenseID: "e-nocur",
			GroupID:   suite.groupID,
			PaidBy:    suite.alice.ParticipantID,
			Amount:    dec("40"),
			Splits: []domain.ExpenseSplit{
				{SplitID: "s8", ExpenseID: "e-nocur", ParticipantID: suite.bob.ParticipantID, Amount: dec("40")},
			},
		},
	}
	settlements := []domain.Settlement{
		{
			// Receiver unresolvable, skipped
			SettlementID:    "st-orphan",
			GroupID:         suite.groupID,
			FromParticipant: suite.bob.ParticipantID,
			ToParticipant:   "p-gone",
			Amount:          dec("5"),
			CurrencyCode:    "USD",
		},
	}
	suite.expectGroupData(suite.groupID, participants, expenses, settlements)

	balances, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)

	suite.NoError(err)
	suite.Len(balances, 3)
	suite.True(suite.amountFor(balances, "p-alice", "USD").Equal(dec("20")))
	suite.True(suite.amountFor(balances, "p-bob", "USD").Equal(dec("-10")))
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_ConservationPerCurrency() {
	participants := []domain.Participant{suite.alice, suite.bob, suite.carol}
	expenses := []domain.Expense{
		suite.evenSplitExpense(),
		{
			ExpenseID:    "e3",
			GroupID:      suite.groupID,
			PaidBy:       suite.carol.ParticipantID,
			Amount:       dec("47.50"),
			CurrencyCode: "USD",
			Splits: []domain.ExpenseSplit{
				{SplitID: "s9", ExpenseID: "e3", ParticipantID: suite.alice.ParticipantID, Amount: dec("23.75")},
				{SplitID: "s10", ExpenseID: "e3", ParticipantID: suite.bob.ParticipantID, Amount: dec("23.75")},
			},
		},
		{
			ExpenseID:    "e4",
			GroupID:      suite.groupID,
			PaidBy:       suite.bob.ParticipantID,
			Amount:       dec("12.99"),
			CurrencyCode: "USD",
			Splits: []domain.ExpenseSplit{
				{SplitID: "s11", ExpenseID: "e4", ParticipantID: suite.carol.ParticipantID, Amount: dec("12.99")},
			},
		},
	}
	settlements := []domain.Settlement{
		{
			SettlementID:    "st2",
			GroupID:         suite.groupID,
			FromParticipant: suite.carol.ParticipantID,
			ToParticipant:   suite.alice.ParticipantID,
			Amount:          dec("7.31"),
			CurrencyCode:    "USD",
		},
	}
	suite.expectGroupData(suite.groupID, participants, expenses, settlements)

	balances, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)

	suite.NoError(err)
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Amount)
	}
	suite.True(total.IsZero(), "balances should sum to zero, got %s", total.String())
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_ConservationRandomizedMix() {
	rng := rand.New(rand.NewSource(1847))
	currencies := []string{"USD", "EUR", "JPY"}

	participants := make([]domain.Participant, 8)
	for i := range participants {
		participants[i] = domain.Participant{
			ParticipantID: fmt.Sprintf("p-%02d", i),
			GroupID:       suite.groupID,
			Status:        domain.ParticipantMember,
		}
		if i%2 == 0 {
			participants[i].UserID = ptr(uuid.NewString())
		}
	}
	randomParticipant := func() string {
		return participants[rng.Intn(len(participants))].ParticipantID
	}
	// Amounts are generated in whole minor units so every value is already at
	// its currency's precision.
	minor := func(units int64, currency string) decimal.Decimal {
		return decimal.New(units, -netting.MinorUnits(currency))
	}

	var expenses []domain.Expense
	for i := 0; i < 40; i++ {
		currency := currencies[rng.Intn(len(currencies))]
		units := int64(rng.Intn(50000) + 1)
		splitCount := rng.Intn(5) + 1
		expense := domain.Expense{
			ExpenseID:    fmt.Sprintf("e-%03d", i),
			GroupID:      suite.groupID,
			PaidBy:       randomParticipant(),
			Amount:       minor(units, currency),
			CurrencyCode: currency,
		}
		base := units / int64(splitCount)
		remainder := units - base*int64(splitCount)
		for si := 0; si < splitCount; si++ {
			shareUnits := base
			if si == 0 {
				shareUnits += remainder
			}
			expense.Splits = append(expense.Splits, domain.ExpenseSplit{
				SplitID:       fmt.Sprintf("s-%03d-%d", i, si),
				ExpenseID:     expense.ExpenseID,
				ParticipantID: randomParticipant(),
				Amount:        minor(shareUnits, currency),
			})
		}
		expenses = append(expenses, expense)
	}

	// Anomalous records in the mix are skipped whole and must not unbalance
	// the surviving ledger
	expenses = append(expenses,
		domain.Expense{
			ExpenseID:    "e-ghost-payer",
			GroupID:      suite.groupID,
			PaidBy:       "p-ghost",
			Amount:       minor(5000, "USD"),
			CurrencyCode: "USD",
			Splits: []domain.ExpenseSplit{
				{SplitID: "s-ghost-0", ExpenseID: "e-ghost-payer", ParticipantID: randomParticipant(), Amount: minor(5000, "USD")},
			},
		},
		domain.Expense{
			ExpenseID: "e-no-currency",
			GroupID:   suite.groupID,
			PaidBy:    randomParticipant(),
			Amount:    minor(3000, "USD"),
			Splits: []domain.ExpenseSplit{
				{SplitID: "s-nocur-0", ExpenseID: "e-no-currency", ParticipantID: randomParticipant(), Amount: minor(3000, "USD")},
			},
		},
		domain.Expense{
			ExpenseID:    "e-negative-split",
			GroupID:      suite.groupID,
			PaidBy:       randomParticipant(),
			Amount:       minor(2000, "EUR"),
			CurrencyCode: "EUR",
			Splits: []domain.ExpenseSplit{
				{SplitID: "s-neg-0", ExpenseID: "e-negative-split", ParticipantID: randomParticipant(), Amount: minor(-2000, "EUR")},
			},
		},
	)

	var settlements []domain.Settlement
	for i := 0; i < 15; i++ {
		currency := currencies[rng.Intn(len(currencies))]
		settlements = append(settlements, domain.Settlement{
			SettlementID:    fmt.Sprintf("st-%03d", i),
			GroupID:         suite.groupID,
			FromParticipant: randomParticipant(),
			ToParticipant:   randomParticipant(),
			Amount:          minor(int64(rng.Intn(20000)+1), currency),
			CurrencyCode:    currency,
		})
	}
	settlements = append(settlements, domain.Settlement{
		SettlementID:    "st-ghost",
		GroupID:         suite.groupID,
		FromParticipant: randomParticipant(),
		ToParticipant:   "p-ghost",
		Amount:          minor(999, "USD"),
		CurrencyCode:    "USD",
	})

	suite.expectGroupData(suite.groupID, participants, expenses, settlements)

	balances, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)

	suite.Require().NoError(err)
	sums := make(map[string]decimal.Decimal)
	for _, b := range balances {
		sums[b.CurrencyCode] = sums[b.CurrencyCode].Add(b.Amount)
	}
	for _, currency := range currencies {
		suite.True(sums[currency].Abs().LessThan(netting.Epsilon),
			"balances in %s should conserve, got %s", currency, sums[currency].String())
	}
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_EpsilonFiltering() {
	participants := []domain.Participant{suite.alice, suite.bob}
	expenses := []domain.Expense{
		{
			ExpenseID:    "e-dust",
			GroupID:      suite.groupID,
			PaidBy:       suite.alice.ParticipantID,
			Amount:       dec("0.004"),
			CurrencyCode: "USD",
			Splits: []domain.ExpenseSplit{
				{SplitID: "s12", ExpenseID: "e-dust", ParticipantID: suite.bob.ParticipantID, Amount: dec("0.004")},
			},
		},
	}
	suite.expectGroupData(suite.groupID, participants, expenses, nil)

	balances, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)

	suite.NoError(err)
	suite.Empty(balances)
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_Idempotent() {
	participants := []domain.Participant{suite.alice, suite.bob, suite.carol}
	suite.expectGroupData(suite.groupID, participants, []domain.Expense{suite.evenSplitExpense()}, nil)

	first, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)
	suite.NoError(err)
	second, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)
	suite.NoError(err)

	suite.Equal(first, second)
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_UnknownGroupIsEmpty() {
	unknownGroupID := uuid.NewString()
	suite.expectGroupData(unknownGroupID, []domain.Participant{}, []domain.Expense{}, nil)

	balances, err := suite.service.ComputeGroupBalances(suite.ctx, unknownGroupID)

	suite.NoError(err)
	suite.Empty(balances)
}

func (suite *BalanceServiceTestSuite) TestComputeGroupBalances_ParticipantLoadFailure() {
	dbErr := errors.New("connection reset")
	suite.mockParticipantRepo.On("FindParticipantsByGroupID", mock.Anything, suite.groupID).Return(nil, dbErr)

	balances, err := suite.service.ComputeGroupBalances(suite.ctx, suite.groupID)

	suite.Error(err)
	suite.ErrorIs(err, dbErr)
	suite.Nil(balances)
}

func (suite *BalanceServiceTestSuite) TestComputeOverallBalances_AllGroups() {
	otherGroupID := uuid.NewString()
	groups := []domain.Group{
		{GroupID: suite.groupID, Name: "Trip"},
		{GroupID: otherGroupID, Name: "Flat"},
	}
	suite.mockGroupRepo.On("ListGroupsByUserID", mock.Anything, suite.viewerID).Return(groups, nil)

	// Group 1: viewer is owed 20 USD
	suite.expectGroupData(suite.groupID, []domain.Participant{suite.alice, suite.bob, suite.carol},
		[]domain.Expense{suite.evenSplitExpense()}, nil)

	// Group 2: viewer owes 15 USD to dave
	daveUserID := uuid.NewString()
	viewerInFlat := domain.Participant{ParticipantID: "p-alice2", GroupID: otherGroupID, UserID: ptr(suite.viewerID)}
	dave := domain.Participant{ParticipantID: "p-dave", GroupID: otherGroupID, UserID: ptr(daveUserID)}
	suite.expectGroupData(otherGroupID, []domain.Participant{viewerInFlat, dave},
		[]domain.Expense{
			{
				ExpenseID:    "e5",
				GroupID:      otherGroupID,
				PaidBy:       dave.ParticipantID,
				Amount:       dec("30"),
				CurrencyCode: "USD",
				Splits: []domain.ExpenseSplit{
					{SplitID: "s13", ExpenseID: "e5", ParticipantID: viewerInFlat.ParticipantID, Amount: dec("15")},
					{SplitID: "s14", ExpenseID: "e5", ParticipantID: dave.ParticipantID, Amount: dec("15")},
				},
			},
		}, nil)

	suite.mockUserRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(map[string]domain.User{
		suite.viewerID: {UserID: suite.viewerID, Email: "alice@example.com", FullName: "Alice", AvatarURL: "https://cdn.example.com/alice.png"},
		daveUserID:     {UserID: daveUserID, Email: "dave@example.com", FullName: "Dave"},
	}, nil)

	sheet, err := suite.service.ComputeOverallBalances(suite.ctx, suite.viewerID, nil)

	suite.Require().NoError(err)
	suite.Require().NotNil(sheet)
	suite.Len(sheet.GroupBalances, 2)
	suite.Equal(suite.groupID, sheet.GroupBalances[0].GroupID)
	suite.Equal("Trip", sheet.GroupBalances[0].GroupName)
	suite.Equal(otherGroupID, sheet.GroupBalances[1].GroupID)

	// Overall holds the viewer's net only: +20 - 15 = +5 USD
	suite.Require().Len(sheet.OverallBalances, 1)
	suite.Equal(suite.viewerID, sheet.OverallBalances[0].UserID)
	suite.Equal("USD", sheet.OverallBalances[0].CurrencyCode)
	suite.True(sheet.OverallBalances[0].Amount.Equal(dec("5")))

	// Display data: resolved accounts win, invited participants fall back
	for _, b := range sheet.GroupBalances[0].Balances {
		switch b.ParticipantID {
		case "p-alice":
			suite.Require().NotNil(b.FullName)
			suite.Equal("Alice", *b.FullName)
			suite.Require().NotNil(b.AvatarURL)
		case "p-bob":
			suite.Require().NotNil(b.Email)
			suite.Equal("bob@example.com", *b.Email)
			suite.Require().NotNil(b.FullName)
			suite.Equal("bob@example.com", *b.FullName)
		case "p-carol":
			suite.Require().NotNil(b.FullName)
			suite.Equal("Carol", *b.FullName)
		}
	}
}

func (suite *BalanceServiceTestSuite) TestComputeOverallBalances_PartialFailureIsolated() {
	brokenGroupID := uuid.NewString()
	groups := []domain.Group{
		{GroupID: suite.groupID, Name: "Trip"},
		{GroupID: brokenGroupID, Name: "Broken"},
	}
	suite.mockGroupRepo.On("ListGroupsByUserID", mock.Anything, suite.viewerID).Return(groups, nil)

	suite.expectGroupData(suite.groupID, []domain.Participant{suite.alice, suite.bob, suite.carol},
		[]domain.Expense{suite.evenSplitExpense()}, nil)
	suite.mockParticipantRepo.On("FindParticipantsByGroupID", mock.Anything, brokenGroupID).
		Return(nil, errors.New("relation does not exist"))

	suite.mockUserRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(map[string]domain.User{}, nil)

	sheet, err := suite.service.ComputeOverallBalances(suite.ctx, suite.viewerID, nil)

	suite.Require().NoError(err)
	suite.Require().Len(sheet.GroupBalances, 2)
	suite.Len(sheet.GroupBalances[0].Balances, 3)
	// The failing group degrades to an empty list instead of an error
	suite.Equal(brokenGroupID, sheet.GroupBalances[1].GroupID)
	suite.Empty(sheet.GroupBalances[1].Balances)

	// Overall reflects the healthy group only
	suite.Require().Len(sheet.OverallBalances, 1)
	suite.True(sheet.OverallBalances[0].Amount.Equal(dec("20")))
}

func (suite *BalanceServiceTestSuite) TestComputeOverallBalances_SingleGroup() {
	group := domain.Group{GroupID: suite.groupID, Name: "Trip"}
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.viewerID, suite.groupID, domain.RoleMember).Return(nil)
	suite.mockGroupRepo.On("FindGroupByID", mock.Anything, suite.groupID).Return(&group, nil)
	suite.expectGroupData(suite.groupID, []domain.Participant{suite.alice, suite.bob, suite.carol},
		[]domain.Expense{suite.evenSplitExpense()}, nil)
	suite.mockUserRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(map[string]domain.User{}, nil)

	sheet, err := suite.service.ComputeOverallBalances(suite.ctx, suite.viewerID, &suite.groupID)

	suite.Require().NoError(err)
	suite.Require().Len(sheet.GroupBalances, 1)
	suite.Equal(suite.groupID, sheet.GroupBalances[0].GroupID)
	suite.Require().Len(sheet.OverallBalances, 1)
	suite.True(sheet.OverallBalances[0].Amount.Equal(dec("20")))
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestComputeOverallBalances_SingleGroupForbidden() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.viewerID, suite.groupID, domain.RoleMember).
		Return(apperrors.ErrForbidden)

	sheet, err := suite.service.ComputeOverallBalances(suite.ctx, suite.viewerID, &suite.groupID)

	suite.Nil(sheet)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "FindGroupByID", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestComputeOverallBalances_SingleGroupStoreFailure() {
	dbErr := errors.New("connection reset")
	group := domain.Group{GroupID: suite.groupID, Name: "Trip"}
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.viewerID, suite.groupID, domain.RoleMember).Return(nil)
	suite.mockGroupRepo.On("FindGroupByID", mock.Anything, suite.groupID).Return(&group, nil)
	suite.mockParticipantRepo.On("FindParticipantsByGroupID", mock.Anything, suite.groupID).Return(nil, dbErr)

	// A directly requested group cannot degrade to an empty list; the store
	// failure must surface instead of reporting everyone as settled.
	sheet, err := suite.service.ComputeOverallBalances(suite.ctx, suite.viewerID, &suite.groupID)

	suite.Nil(sheet)
	suite.ErrorIs(err, dbErr)
}

func (suite *BalanceServiceTestSuite) TestComputeOverallBalances_MembershipQueryFailure() {
	dbErr := errors.New("connection refused")
	suite.mockGroupRepo.On("ListGroupsByUserID", mock.Anything, suite.viewerID).Return(nil, dbErr)

	sheet, err := suite.service.ComputeOverallBalances(suite.ctx, suite.viewerID, nil)

	suite.Nil(sheet)
	suite.ErrorIs(err, dbErr)
}

func (suite *BalanceServiceTestSuite) TestComputeOverallBalances_SettledOverallDropped() {
	otherGroupID := uuid.NewString()
	groups := []domain.Group{
		{GroupID: suite.groupID, Name: "Trip"},
		{GroupID: otherGroupID, Name: "Flat"},
	}
	suite.mockGroupRepo.On("ListGroupsByUserID", mock.Anything, suite.viewerID).Return(groups, nil)

	// Viewer is owed 10 in one group and owes 10 in the other
	suite.expectGroupData(suite.groupID, []domain.Participant{suite.alice, suite.bob},
		[]domain.Expense{
			{
				ExpenseID:    "e6",
				GroupID:      suite.groupID,
				PaidBy:       suite.alice.ParticipantID,
				Amount:       dec("10"),
				CurrencyCode: "USD",
				Splits: []domain.ExpenseSplit{
					{SplitID: "s15", ExpenseID: "e6", ParticipantID: suite.bob.ParticipantID, Amount: dec("10")},
				},
			},
		}, nil)

	viewerInFlat := domain.Participant{ParticipantID: "p-alice2", GroupID: otherGroupID, UserID: ptr(suite.viewerID)}
	erin := domain.Participant{ParticipantID: "p-erin", GroupID: otherGroupID}
	suite.expectGroupData(otherGroupID, []domain.Participant{viewerInFlat, erin},
		[]domain.Expense{
			{
				ExpenseID:    "e7",
				GroupID:      otherGroupID,
				PaidBy:       erin.ParticipantID,
				Amount:       dec("10"),
				CurrencyCode: "USD",
				Splits: []domain.ExpenseSplit{
					{SplitID: "s16", ExpenseID: "e7", ParticipantID: viewerInFlat.ParticipantID, Amount: dec("10")},
				},
			},
		}, nil)

	suite.mockUserRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(map[string]domain.User{}, nil)

	sheet, err := suite.service.ComputeOverallBalances(suite.ctx, suite.viewerID, nil)

	suite.Require().NoError(err)
	// Per-group balances stay visible, the netted-out overall entry does not
	suite.Len(sheet.GroupBalances[0].Balances, 2)
	suite.Len(sheet.GroupBalances[1].Balances, 2)
	suite.Empty(sheet.OverallBalances)
}

func (suite *BalanceServiceTestSuite) TestComputeOverallBalances_OverallExcludesOtherUsers() {
	daveUserID := uuid.NewString()
	groups := []domain.Group{{GroupID: suite.groupID, Name: "Trip"}}
	suite.mockGroupRepo.On("ListGroupsByUserID", mock.Anything, suite.viewerID).Return(groups, nil)

	dave := domain.Participant{ParticipantID: "p-dave", GroupID: suite.groupID, UserID: ptr(daveUserID)}
	suite.expectGroupData(suite.groupID, []domain.Participant{suite.alice, dave},
		[]domain.Expense{
			{
				ExpenseID:    "e8",
				GroupID:      suite.groupID,
				PaidBy:       suite.alice.ParticipantID,
				Amount:       dec("25"),
				CurrencyCode: "EUR",
				Splits: []domain.ExpenseSplit{
					{SplitID: "s17", ExpenseID: "e8", ParticipantID: dave.ParticipantID, Amount: dec("25")},
				},
			},
		}, nil)
	suite.mockUserRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(map[string]domain.User{}, nil)

	sheet, err := suite.service.ComputeOverallBalances(suite.ctx, suite.viewerID, nil)

	suite.Require().NoError(err)
	suite.Require().Len(sheet.OverallBalances, 1)
	for _, ub := range sheet.OverallBalances {
		suite.Equal(suite.viewerID, ub.UserID)
	}
	suite.True(sheet.OverallBalances[0].Amount.Equal(dec("25")))
}

func (suite *BalanceServiceTestSuite) TestComputeOverallBalances_EnrichmentFailureDegrades() {
	groups := []domain.Group{{GroupID: suite.groupID, Name: "Trip"}}
	suite.mockGroupRepo.On("ListGroupsByUserID", mock.Anything, suite.viewerID).Return(groups, nil)
	suite.expectGroupData(suite.groupID, []domain.Participant{suite.alice, suite.bob, suite.carol},
		[]domain.Expense{suite.evenSplitExpense()}, nil)
	suite.mockUserRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).
		Return(nil, errors.New("identity store unavailable"))

	sheet, err := suite.service.ComputeOverallBalances(suite.ctx, suite.viewerID, nil)

	suite.Require().NoError(err)
	// Numbers are untouched, display falls back to participant details
	suite.Len(sheet.GroupBalances[0].Balances, 3)
	for _, b := range sheet.GroupBalances[0].Balances {
		suite.Require().NotNil(b.FullName)
	}
}

func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
