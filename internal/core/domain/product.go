package domain

import "github.com/shopspring/decimal"

// ProductType distinguishes physical goods from services.
type ProductType string

const (
	Good    ProductType = "GOOD"
	Service ProductType = "SERVICE"
)

// Product is a sellable/purchasable item referenced by document line items.
type Product struct {
	ProductID      string          `json:"productID"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"` // unique
	Description    string          `json:"description"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	ProductType    ProductType     `json:"productType"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
