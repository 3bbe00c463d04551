package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriodType is the granularity of a budget period.
type BudgetPeriodType string

const (
	PeriodMonthly   BudgetPeriodType = "MONTHLY"
	PeriodQuarterly BudgetPeriodType = "QUARTERLY"
	PeriodYearly    BudgetPeriodType = "YEARLY"
	PeriodCustom    BudgetPeriodType = "CUSTOM"
)

// Budget is a planned spend figure for one analytical account over a period.
// SpentAmount is derived from completed bill payments and maintained by the
// budget service; it is never edited directly.
type Budget struct {
	BudgetID            string           `json:"budgetID"`
	Name                string           `json:"name"`
	AnalyticalAccountID string           `json:"analyticalAccountID"`
	Amount              decimal.Decimal  `json:"amount"`
	RevisedAmount       *decimal.Decimal `json:"revisedAmount,omitempty"`
	PeriodStart         time.Time        `json:"periodStart"`
	PeriodEnd           time.Time        `json:"periodEnd"`
	PeriodType          BudgetPeriodType `json:"periodType"`
	SpentAmount         decimal.Decimal  `json:"spentAmount"`
	IsActive            bool             `json:"isActive"`
	AuditFields
}

// EffectiveAmount returns the revised amount when set, otherwise the original amount.
func (b Budget) EffectiveAmount() decimal.Decimal {
	if b.RevisedAmount != nil {
		return *b.RevisedAmount
	}
	return b.Amount
}

// RemainingAmount returns effective amount minus spent. May be negative when
// a budget is overspent.
func (b Budget) RemainingAmount() decimal.Decimal {
	return b.EffectiveAmount().Sub(b.SpentAmount)
}

// Utilization returns spent divided by effective amount as a ratio. Zero-amount
// budgets report zero utilization.
func (b Budget) Utilization() decimal.Decimal {
	effective := b.EffectiveAmount()
	if effective.IsZero() {
		return decimal.Zero
	}
	return b.SpentAmount.Div(effective)
}
