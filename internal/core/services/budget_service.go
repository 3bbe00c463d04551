package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
)

// budgetService manages budgets and keeps their spent figures in line with
// completed bill payments. Spent amounts are always fully recomputed from the
// payment aggregate, never incremented, so repeated recomputation converges on
// the same figure regardless of call order or stale intermediate values.
type budgetService struct {
	budgetRepo  portsrepo.BudgetRepository
	paymentRepo portsrepo.PaymentAggregationSupport
	accountRepo portsrepo.AnalyticalAccountReader
}

// NewBudgetService creates the budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepository, paymentRepo portsrepo.PaymentAggregationSupport, accountRepo portsrepo.AnalyticalAccountReader) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:  budgetRepo,
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// RecomputeSpent implements portssvc.BudgetTrackerSvc. Every budget tied to the
// analytical account receives the same recomputed figure.
func (s *budgetService) RecomputeSpent(ctx context.Context, analyticalAccountID string, userID string) (decimal.Decimal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	spent, err := s.paymentRepo.SumCompletedBillPaymentsByAccount(ctx, analyticalAccountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to sum bill payments for account %s: %v", apperrors.ErrReconciliationFailed, analyticalAccountID, err)
	}

	now := time.Now().UTC()
	if err := s.budgetRepo.UpdateSpentForAccount(ctx, analyticalAccountID, spent, userID, now); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to apply spent amount for account %s: %v", apperrors.ErrReconciliationFailed, analyticalAccountID, err)
	}

	logger.Info("Budget spent amounts recomputed",
		slog.String("analytical_account_id", analyticalAccountID),
		slog.String("spent", spent.String()),
	)
	return spent, nil
}

// CreateBudget persists a new budget for an analytical account.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: budget amount must not be negative", apperrors.ErrValidation)
	}
	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: budget period end must be after period start", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, req.AnalyticalAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: analytical account %s", apperrors.ErrNotFound, req.AnalyticalAccountID)
		}
		return nil, fmt.Errorf("failed to fetch analytical account %s: %w", req.AnalyticalAccountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: analytical account %s is inactive", apperrors.ErrValidation, req.AnalyticalAccountID)
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:            uuid.NewString(),
		Name:                req.Name,
		AnalyticalAccountID: req.AnalyticalAccountID,
		Amount:              req.Amount,
		RevisedAmount:       req.RevisedAmount,
		PeriodStart:         req.PeriodStart,
		PeriodEnd:           req.PeriodEnd,
		PeriodType:          req.PeriodType,
		SpentAmount:         decimal.Zero,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	// A new budget picks up spend that already happened against its account.
	if spent, err := s.paymentRepo.SumCompletedBillPaymentsByAccount(ctx, req.AnalyticalAccountID); err == nil {
		if uerr := s.budgetRepo.UpdateSpentForAccount(ctx, req.AnalyticalAccountID, spent, creatorUserID, now); uerr == nil {
			budget.SpentAmount = spent
		}
	} else {
		logger.Warn("Failed to seed spent amount for new budget", slog.String("budget_id", budget.BudgetID), slog.String("error", err.Error()))
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("analytical_account_id", budget.AnalyticalAccountID))
	return &budget, nil
}

// GetBudgetByID retrieves a budget.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	return budget, nil
}

// ListBudgets retrieves a paginated list of active budgets.
func (s *budgetService) ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// UpdateBudget updates a budget's editable fields. The spent amount is derived
// and cannot be changed here.
func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}

	updated := false
	if req.Name != nil {
		budget.Name = *req.Name
		updated = true
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: budget amount must not be negative", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
		updated = true
	}
	if req.RevisedAmount != nil {
		budget.RevisedAmount = req.RevisedAmount
		updated = true
	}
	if req.PeriodStart != nil {
		budget.PeriodStart = *req.PeriodStart
		updated = true
	}
	if req.PeriodEnd != nil {
		budget.PeriodEnd = *req.PeriodEnd
		updated = true
	}
	if !budget.PeriodEnd.After(budget.PeriodStart) {
		return nil, fmt.Errorf("%w: budget period end must be after period start", apperrors.ErrValidation)
	}

	if !updated {
		return budget, nil
	}

	budget.LastUpdatedAt = time.Now().UTC()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget", slog.String("budget_id", budgetID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update budget %s: %w", budgetID, err)
	}

	logger.Info("Budget updated", slog.String("budget_id", budgetID))
	return budget, nil
}

// DeactivateBudget marks a budget as inactive.
func (s *budgetService) DeactivateBudget(ctx context.Context, budgetID string, userID string) error {
	if err := s.budgetRepo.DeactivateBudget(ctx, budgetID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate budget %s: %w", budgetID, err)
	}
	return nil
}
