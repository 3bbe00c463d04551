package dto

import (
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	Name                string                  `json:"name" binding:"required"`
	AnalyticalAccountID string                  `json:"analyticalAccountID" binding:"required"`
	Amount              decimal.Decimal         `json:"amount" binding:"required"`
	RevisedAmount       *decimal.Decimal        `json:"revisedAmount"`
	PeriodStart         time.Time               `json:"periodStart" binding:"required"`
	PeriodEnd           time.Time               `json:"periodEnd" binding:"required"`
	PeriodType          domain.BudgetPeriodType `json:"periodType" binding:"required,oneof=MONTHLY QUARTERLY YEARLY CUSTOM"`
}

// UpdateBudgetRequest defines the fields a budget allows updating. SpentAmount
// is derived and cannot be set through the API.
type UpdateBudgetRequest struct {
	Name          *string          `json:"name"`
	Amount        *decimal.Decimal `json:"amount"`
	RevisedAmount *decimal.Decimal `json:"revisedAmount"`
	PeriodStart   *time.Time       `json:"periodStart"`
	PeriodEnd     *time.Time       `json:"periodEnd"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID            string                  `json:"budgetID"`
	Name                string                  `json:"name"`
	AnalyticalAccountID string                  `json:"analyticalAccountID"`
	Amount              decimal.Decimal         `json:"amount"`
	RevisedAmount       *decimal.Decimal        `json:"revisedAmount,omitempty"`
	EffectiveAmount     decimal.Decimal         `json:"effectiveAmount"`
	PeriodStart         time.Time               `json:"periodStart"`
	PeriodEnd           time.Time               `json:"periodEnd"`
	PeriodType          domain.BudgetPeriodType `json:"periodType"`
	SpentAmount         decimal.Decimal         `json:"spentAmount"`
	RemainingAmount     decimal.Decimal         `json:"remainingAmount"`
	IsActive            bool                    `json:"isActive"`
	CreatedAt           time.Time               `json:"createdAt"`
}

// BudgetUtilizationResponse reports spend against a budget's effective amount.
type BudgetUtilizationResponse struct {
	BudgetID        string          `json:"budgetID"`
	EffectiveAmount decimal.Decimal `json:"effectiveAmount"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Utilization     decimal.Decimal `json:"utilization"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:            b.BudgetID,
		Name:                b.Name,
		AnalyticalAccountID: b.AnalyticalAccountID,
		Amount:              b.Amount,
		RevisedAmount:       b.RevisedAmount,
		EffectiveAmount:     b.EffectiveAmount(),
		PeriodStart:         b.PeriodStart,
		PeriodEnd:           b.PeriodEnd,
		PeriodType:          b.PeriodType,
		SpentAmount:         b.SpentAmount,
		RemainingAmount:     b.RemainingAmount(),
		IsActive:            b.IsActive,
		CreatedAt:           b.CreatedAt,
	}
}

// ToListBudgetResponse converts a slice of budgets to response DTOs.
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}

// ToBudgetUtilizationResponse builds the utilization report for a budget.
func ToBudgetUtilizationResponse(b *domain.Budget) BudgetUtilizationResponse {
	return BudgetUtilizationResponse{
		BudgetID:        b.BudgetID,
		EffectiveAmount: b.EffectiveAmount(),
		SpentAmount:     b.SpentAmount,
		RemainingAmount: b.RemainingAmount(),
		Utilization:     b.Utilization(),
	}
}
