package services

import (
	"context"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RuleEngineSvc evaluates prioritized classification rules against a document
// snapshot to select an analytical account.
type RuleEngineSvc interface {
	// AssignAccount returns the target account of the first matching rule in
	// priority order, or nil when no rule matches. "No match" is a normal,
	// non-error outcome.
	AssignAccount(ctx context.Context, ruleCtx domain.RuleContext) (*string, error)
}

// SequenceSvc produces year-scoped, prefix-qualified document numbers such as
// "INV-2025-0007".
type SequenceSvc interface {
	// Next generates the next number for the prefix in the current year.
	// A store-read failure degrades to a timestamp-based fallback number
	// rather than an error.
	Next(ctx context.Context, prefix string) (string, error)
}

// ReconciliationSvc recomputes a payable document's paid/remaining amounts and
// status from its completed payments.
type ReconciliationSvc interface {
	// Reconcile runs inside a per-document critical section and applies all
	// derived fields atomically. It must be called after every payment write
	// affecting the document.
	Reconcile(ctx context.Context, documentID string, userID string) (*domain.ReconciliationResult, error)
}

// BudgetTrackerSvc aggregates completed bill-payment amounts into budget spent
// figures per analytical account.
type BudgetTrackerSvc interface {
	// RecomputeSpent fully recomputes the spent figure for an analytical
	// account and applies it to every budget tied to that account.
	RecomputeSpent(ctx context.Context, analyticalAccountID string, userID string) (decimal.Decimal, error)
}
