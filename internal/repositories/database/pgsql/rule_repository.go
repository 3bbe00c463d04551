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
)

type PgxRuleRepository struct {
	BaseRepository
}

// newPgxRuleRepository creates a new repository for assignment rule data.
func newPgxRuleRepository(pool *pgxpool.Pool) portsrepo.RuleRepository {
	return &PgxRuleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RuleRepository = (*PgxRuleRepository)(nil)

const ruleColumns = `rule_id, name, rule_type, vendor_id, product_id, min_amount, max_amount, keywords, target_account_id, priority, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanRule(row pgx.Row) (domain.AssignmentRule, error) {
	var rule domain.AssignmentRule
	err := row.Scan(
		&rule.RuleID,
		&rule.Name,
		&rule.RuleType,
		&rule.Conditions.VendorID,
		&rule.Conditions.ProductID,
		&rule.Conditions.MinAmount,
		&rule.Conditions.MaxAmount,
		&rule.Conditions.Keywords,
		&rule.TargetAccountID,
		&rule.Priority,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.CreatedBy,
		&rule.LastUpdatedAt,
		&rule.LastUpdatedBy,
	)
	return rule, err
}

// SaveRule inserts a new assignment rule.
func (r *PgxRuleRepository) SaveRule(ctx context.Context, rule domain.AssignmentRule) error {
	query := `
		INSERT INTO assignment_rules (rule_id, name, rule_type, vendor_id, product_id, min_amount, max_amount, keywords, target_account_id, priority, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		rule.RuleID,
		rule.Name,
		rule.RuleType,
		rule.Conditions.VendorID,
		rule.Conditions.ProductID,
		rule.Conditions.MinAmount,
		rule.Conditions.MaxAmount,
		rule.Conditions.Keywords,
		rule.TargetAccountID,
		rule.Priority,
		rule.IsActive,
		rule.CreatedAt,
		rule.CreatedBy,
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save assignment rule %s: %w", rule.RuleID, err)
	}
	return nil
}

// FindRuleByID retrieves an assignment rule by its ID.
func (r *PgxRuleRepository) FindRuleByID(ctx context.Context, ruleID string) (*domain.AssignmentRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM assignment_rules WHERE rule_id = $1;`
	rule, err := scanRule(r.Pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find assignment rule %s: %w", ruleID, err)
	}
	return &rule, nil
}

// ListRulesForEvaluation retrieves active rules in evaluation order. Priority
// ties are broken by creation time, then rule ID, so evaluation is deterministic.
func (r *PgxRuleRepository) ListRulesForEvaluation(ctx context.Context) ([]domain.AssignmentRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM assignment_rules
		WHERE is_active = TRUE
		ORDER BY priority DESC, created_at ASC, rule_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment rules for evaluation: %w", err)
	}
	defer rows.Close()

	rules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AssignmentRule, error) {
		return scanRule(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignment rules: %w", err)
	}
	return rules, nil
}

// ListRules retrieves a paginated list of rules, active and inactive.
func (r *PgxRuleRepository) ListRules(ctx context.Context, limit int, offset int) ([]domain.AssignmentRule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM assignment_rules
		ORDER BY priority DESC, created_at ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment rules: %w", err)
	}
	defer rows.Close()

	rules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AssignmentRule, error) {
		return scanRule(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan assignment rules: %w", err)
	}
	return rules, nil
}

// UpdateRule updates an existing assignment rule.
func (r *PgxRuleRepository) UpdateRule(ctx context.Context, rule domain.AssignmentRule) error {
	query := `
		UPDATE assignment_rules
		SET name = $2, vendor_id = $3, product_id = $4, min_amount = $5, max_amount = $6, keywords = $7,
			target_account_id = $8, priority = $9, is_active = $10, last_updated_at = $11, last_updated_by = $12
		WHERE rule_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		rule.RuleID,
		rule.Name,
		rule.Conditions.VendorID,
		rule.Conditions.ProductID,
		rule.Conditions.MinAmount,
		rule.Conditions.MaxAmount,
		rule.Conditions.Keywords,
		rule.TargetAccountID,
		rule.Priority,
		rule.IsActive,
		rule.LastUpdatedAt,
		rule.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment rule %s: %w", rule.RuleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateRule marks a rule as inactive so evaluation skips it.
func (r *PgxRuleRepository) DeactivateRule(ctx context.Context, ruleID string, userID string, now time.Time) error {
	query := `
		UPDATE assignment_rules
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE rule_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, ruleID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate assignment rule %s: %w", ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
