package repositories

import (
	"context"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
)

// RuleReader defines read operations for assignment rules.
type RuleReader interface {
	// FindRuleByID retrieves a specific rule by its identifier.
	FindRuleByID(ctx context.Context, ruleID string) (*domain.AssignmentRule, error)

	// ListRulesForEvaluation retrieves every active rule in evaluation order:
	// priority descending, creation time ascending, rule ID ascending.
	ListRulesForEvaluation(ctx context.Context) ([]domain.AssignmentRule, error)

	// ListRules retrieves a paginated list of rules, active and inactive.
	ListRules(ctx context.Context, limit int, offset int) ([]domain.AssignmentRule, error)
}

// RuleWriter defines write operations for assignment rules.
type RuleWriter interface {
	// SaveRule persists a new rule.
	SaveRule(ctx context.Context, rule domain.AssignmentRule) error

	// UpdateRule updates an existing rule.
	UpdateRule(ctx context.Context, rule domain.AssignmentRule) error

	// DeactivateRule marks a rule as inactive so evaluation skips it.
	DeactivateRule(ctx context.Context, ruleID string, userID string, now time.Time) error
}

// RuleRepository combines all rule repository interfaces.
type RuleRepository interface {
	RuleReader
	RuleWriter
}
