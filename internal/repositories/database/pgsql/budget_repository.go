package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, name, analytical_account_id, amount, revised_amount, period_start, period_end, period_type, spent_amount, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(
		&b.BudgetID,
		&b.Name,
		&b.AnalyticalAccountID,
		&b.Amount,
		&b.RevisedAmount,
		&b.PeriodStart,
		&b.PeriodEnd,
		&b.PeriodType,
		&b.SpentAmount,
		&b.IsActive,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	return b, err
}

// SaveBudget inserts a new budget.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (budget_id, name, analytical_account_id, amount, revised_amount, period_start, period_end, period_type, spent_amount, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		budget.BudgetID,
		budget.Name,
		budget.AnalyticalAccountID,
		budget.Amount,
		budget.RevisedAmount,
		budget.PeriodStart,
		budget.PeriodEnd,
		budget.PeriodType,
		budget.SpentAmount,
		budget.IsActive,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget %s: %w", budget.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	budget, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	return &budget, nil
}

// ListBudgets retrieves a paginated list of active budgets.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE is_active = TRUE
		ORDER BY period_start DESC, name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Budget, error) {
		return scanBudget(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan budgets: %w", err)
	}
	return budgets, nil
}

// ListBudgetsByAccount retrieves every budget tied to an analytical account.
func (r *PgxBudgetRepository) ListBudgetsByAccount(ctx context.Context, analyticalAccountID string) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE analytical_account_id = $1
		ORDER BY period_start DESC;
	`
	rows, err := r.Pool.Query(ctx, query, analyticalAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets for account %s: %w", analyticalAccountID, err)
	}
	defer rows.Close()

	budgets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Budget, error) {
		return scanBudget(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan budgets: %w", err)
	}
	return budgets, nil
}

// UpdateBudget updates a budget's editable fields. Spent amount is only ever
// written through UpdateSpentForAccount.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		UPDATE budgets
		SET name = $2, amount = $3, revised_amount = $4, period_start = $5, period_end = $6, period_type = $7, last_updated_at = $8, last_updated_by = $9
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		budget.BudgetID,
		budget.Name,
		budget.Amount,
		budget.RevisedAmount,
		budget.PeriodStart,
		budget.PeriodEnd,
		budget.PeriodType,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", budget.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateSpentForAccount writes the recomputed spent figure to every budget
// tied to the analytical account in one round trip.
func (r *PgxBudgetRepository) UpdateSpentForAccount(ctx context.Context, analyticalAccountID string, spent decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE budgets
		SET spent_amount = $2, last_updated_at = $3, last_updated_by = $4
		WHERE analytical_account_id = $1;
	`
	if _, err := r.Pool.Exec(ctx, query, analyticalAccountID, spent, now, userID); err != nil {
		return fmt.Errorf("failed to update spent amount for account %s: %w", analyticalAccountID, err)
	}
	return nil
}

// DeactivateBudget marks a budget as inactive.
func (r *PgxBudgetRepository) DeactivateBudget(ctx context.Context, budgetID string, userID string, now time.Time) error {
	query := `
		UPDATE budgets
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, budgetID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
