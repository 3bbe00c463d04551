package domain_test

import (
	"testing"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFinancialDocument_CalculateTotals(t *testing.T) {
	tests := []struct {
		name         string
		lineItems    []domain.LineItem
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "no line items",
			lineItems:    nil,
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
		{
			name: "single line with tax",
			lineItems: []domain.LineItem{
				{Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100), TaxRatePercent: decimal.NewFromInt(10)},
			},
			wantSubtotal: "200",
			wantTax:      "20",
			wantTotal:    "220",
		},
		{
			name: "multiple lines with mixed rates",
			lineItems: []domain.LineItem{
				{Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(50), TaxRatePercent: decimal.NewFromInt(5)},
				{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromFloat(99.99), TaxRatePercent: decimal.Zero},
			},
			wantSubtotal: "249.99",
			wantTax:      "7.5",
			wantTotal:    "257.49",
		},
		{
			name: "zero quantity line contributes nothing",
			lineItems: []domain.LineItem{
				{Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(500), TaxRatePercent: decimal.NewFromInt(18)},
			},
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domain.FinancialDocument{
				DocType:   domain.CustomerInvoice,
				LineItems: tt.lineItems,
			}
			doc.CalculateTotals()

			assert.True(t, doc.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)), "subtotal: got %s", doc.Subtotal)
			assert.True(t, doc.TaxAmount.Equal(decimal.RequireFromString(tt.wantTax)), "tax: got %s", doc.TaxAmount)
			assert.True(t, doc.TotalAmount.Equal(decimal.RequireFromString(tt.wantTotal)), "total: got %s", doc.TotalAmount)
			assert.True(t, doc.TotalAmount.Equal(doc.Subtotal.Add(doc.TaxAmount)))
		})
	}
}

func TestFinancialDocument_CalculateTotals_Idempotent(t *testing.T) {
	doc := domain.FinancialDocument{
		DocType: domain.VendorBill,
		LineItems: []domain.LineItem{
			{Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromFloat(12.5), TaxRatePercent: decimal.NewFromInt(18)},
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1000), TaxRatePercent: decimal.NewFromInt(5)},
		},
		PaidAmount: decimal.NewFromInt(100),
	}

	doc.CalculateTotals()
	firstSubtotal, firstTax, firstTotal := doc.Subtotal, doc.TaxAmount, doc.TotalAmount

	doc.CalculateTotals()

	assert.True(t, doc.Subtotal.Equal(firstSubtotal))
	assert.True(t, doc.TaxAmount.Equal(firstTax))
	assert.True(t, doc.TotalAmount.Equal(firstTotal))
	assert.True(t, doc.RemainingAmount.Equal(doc.TotalAmount.Sub(doc.PaidAmount)))
}

func TestBudget_Utilization(t *testing.T) {
	revised := decimal.NewFromInt(2000)

	b := domain.Budget{Amount: decimal.NewFromInt(1000), SpentAmount: decimal.NewFromInt(250)}
	assert.True(t, b.Utilization().Equal(decimal.NewFromFloat(0.25)))
	assert.True(t, b.RemainingAmount().Equal(decimal.NewFromInt(750)))

	// Revised amount overrides the original.
	b.RevisedAmount = &revised
	assert.True(t, b.EffectiveAmount().Equal(revised))
	assert.True(t, b.Utilization().Equal(decimal.NewFromFloat(0.125)))

	zero := domain.Budget{Amount: decimal.Zero, SpentAmount: decimal.NewFromInt(10)}
	assert.True(t, zero.Utilization().IsZero())
}
