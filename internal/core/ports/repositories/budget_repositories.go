package repositories

import (
	"context"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for budgets.
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves a paginated list of active budgets.
	ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error)

	// ListBudgetsByAccount retrieves every budget tied to an analytical account.
	ListBudgetsByAccount(ctx context.Context, analyticalAccountID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets.
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates a budget's editable fields (never spentAmount).
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// UpdateSpentForAccount writes the recomputed spent figure to every budget
	// tied to the analytical account in one round trip.
	UpdateSpentForAccount(ctx context.Context, analyticalAccountID string, spent decimal.Decimal, userID string, now time.Time) error

	// DeactivateBudget marks a budget as inactive.
	DeactivateBudget(ctx context.Context, budgetID string, userID string, now time.Time) error
}

// BudgetRepository combines all budget repository interfaces.
type BudgetRepository interface {
	BudgetReader
	BudgetWriter
}
