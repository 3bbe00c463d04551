package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
)

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	var budget *domain.Budget
	if args.Get(0) != nil {
		budget = args.Get(0).(*domain.Budget)
	}
	return budget, args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error) {
	args := m.Called(ctx, limit, offset)
	var budgets []domain.Budget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]domain.Budget)
	}
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByAccount(ctx context.Context, analyticalAccountID string) ([]domain.Budget, error) {
	args := m.Called(ctx, analyticalAccountID)
	var budgets []domain.Budget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]domain.Budget)
	}
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateSpentForAccount(ctx context.Context, analyticalAccountID string, spent decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, analyticalAccountID, spent, userID, now)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeactivateBudget(ctx context.Context, budgetID string, userID string, now time.Time) error {
	args := m.Called(ctx, budgetID, userID, now)
	return args.Error(0)
}

// --- Mock AnalyticalAccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.AnalyticalAccount, error) {
	args := m.Called(ctx, accountID)
	var account *domain.AnalyticalAccount
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.AnalyticalAccount)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.AnalyticalAccount, error) {
	args := m.Called(ctx, accountIDs)
	var accounts map[string]domain.AnalyticalAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.AnalyticalAccount)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AnalyticalAccount, error) {
	args := m.Called(ctx, limit, offset)
	var accounts []domain.AnalyticalAccount
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.AnalyticalAccount)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.AnalyticalAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.AnalyticalAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite ---
type budgetServiceSuite struct {
	suite.Suite
	mockBudgetRepo  *MockBudgetRepository
	mockPaymentRepo *MockPaymentRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.BudgetSvcFacade
	userID          string
}

func (s *budgetServiceSuite) SetupTest() {
	s.mockBudgetRepo = new(MockBudgetRepository)
	s.mockPaymentRepo = new(MockPaymentRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewBudgetService(s.mockBudgetRepo, s.mockPaymentRepo, s.mockAccountRepo)
	s.userID = uuid.NewString()
}

func (s *budgetServiceSuite) TestRecomputeSpent_AppliesAggregate() {
	ctx := context.Background()
	accountID := uuid.NewString()

	// 200 + 300 + 500 completed bill payments.
	s.mockPaymentRepo.On("SumCompletedBillPaymentsByAccount", ctx, accountID).
		Return(decimal.NewFromInt(1000), nil).Once()
	s.mockBudgetRepo.On("UpdateSpentForAccount", ctx, accountID, decimal.NewFromInt(1000), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	spent, err := s.service.RecomputeSpent(ctx, accountID, s.userID)

	s.Require().NoError(err)
	s.True(spent.Equal(decimal.NewFromInt(1000)))
	s.mockBudgetRepo.AssertExpectations(s.T())
	s.mockPaymentRepo.AssertExpectations(s.T())
}

func (s *budgetServiceSuite) TestRecomputeSpent_ZeroWhenNoPayments() {
	ctx := context.Background()
	accountID := uuid.NewString()

	s.mockPaymentRepo.On("SumCompletedBillPaymentsByAccount", ctx, accountID).
		Return(decimal.Zero, nil).Once()
	s.mockBudgetRepo.On("UpdateSpentForAccount", ctx, accountID, decimal.Zero, s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	spent, err := s.service.RecomputeSpent(ctx, accountID, s.userID)

	s.Require().NoError(err)
	s.True(spent.IsZero())
}

func (s *budgetServiceSuite) TestRecomputeSpent_AggregationFailure() {
	ctx := context.Background()
	accountID := uuid.NewString()

	s.mockPaymentRepo.On("SumCompletedBillPaymentsByAccount", ctx, accountID).
		Return(nil, assert.AnError).Once()

	_, err := s.service.RecomputeSpent(ctx, accountID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrReconciliationFailed)
}

func (s *budgetServiceSuite) TestCreateBudget_SeedsSpentFromExistingPayments() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.AnalyticalAccount{AccountID: accountID, Name: "Marketing", IsActive: true}

	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	s.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.AnalyticalAccountID == accountID && b.SpentAmount.IsZero() && b.IsActive
	})).Return(nil).Once()
	s.mockPaymentRepo.On("SumCompletedBillPaymentsByAccount", ctx, accountID).
		Return(decimal.NewFromInt(250), nil).Once()
	s.mockBudgetRepo.On("UpdateSpentForAccount", ctx, accountID, decimal.NewFromInt(250), s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	budget, err := s.service.CreateBudget(ctx, dto.CreateBudgetRequest{
		Name:                "Q3 Marketing",
		AnalyticalAccountID: accountID,
		Amount:              decimal.NewFromInt(5000),
		PeriodStart:         time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:           time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		PeriodType:          domain.PeriodQuarterly,
	}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(budget)
	s.True(budget.SpentAmount.Equal(decimal.NewFromInt(250)))
	s.mockBudgetRepo.AssertExpectations(s.T())
}

func (s *budgetServiceSuite) TestCreateBudget_RejectsInvalidPeriod() {
	ctx := context.Background()

	_, err := s.service.CreateBudget(ctx, dto.CreateBudgetRequest{
		Name:                "Backwards",
		AnalyticalAccountID: uuid.NewString(),
		Amount:              decimal.NewFromInt(100),
		PeriodStart:         time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:           time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodType:          domain.PeriodQuarterly,
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *budgetServiceSuite) TestCreateBudget_RejectsInactiveAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.AnalyticalAccount{AccountID: accountID, IsActive: false}

	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	_, err := s.service.CreateBudget(ctx, dto.CreateBudgetRequest{
		Name:                "Dead account",
		AnalyticalAccountID: accountID,
		Amount:              decimal.NewFromInt(100),
		PeriodStart:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:           time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodType:          domain.PeriodYearly,
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *budgetServiceSuite) TestUpdateBudget_RevisedAmountChangesEffective() {
	ctx := context.Background()
	budgetID := uuid.NewString()
	existing := &domain.Budget{
		BudgetID:            budgetID,
		Name:                "Ops",
		AnalyticalAccountID: uuid.NewString(),
		Amount:              decimal.NewFromInt(1000),
		PeriodStart:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:           time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodType:          domain.PeriodYearly,
		SpentAmount:         decimal.NewFromInt(300),
		IsActive:            true,
	}
	revised := decimal.NewFromInt(1500)

	s.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(existing, nil).Once()
	s.mockBudgetRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.RevisedAmount != nil && b.RevisedAmount.Equal(revised) &&
			b.SpentAmount.Equal(decimal.NewFromInt(300))
	})).Return(nil).Once()

	budget, err := s.service.UpdateBudget(ctx, budgetID, dto.UpdateBudgetRequest{
		RevisedAmount: &revised,
	}, s.userID)

	s.Require().NoError(err)
	s.True(budget.EffectiveAmount().Equal(revised))
	s.True(budget.RemainingAmount().Equal(decimal.NewFromInt(1200)))
}

func TestBudgetServiceSuite(t *testing.T) {
	suite.Run(t, new(budgetServiceSuite))
}
