package dto

import (
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a product.
type CreateProductRequest struct {
	Name           string             `json:"name" binding:"required"`
	SKU            string             `json:"sku" binding:"required"`
	Description    string             `json:"description"`
	UnitPrice      decimal.Decimal    `json:"unitPrice" binding:"required"`
	TaxRatePercent decimal.Decimal    `json:"taxRatePercent"`
	ProductType    domain.ProductType `json:"productType" binding:"required,oneof=GOOD SERVICE"`
}

// UpdateProductRequest defines the fields a product allows updating.
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	TaxRatePercent *decimal.Decimal `json:"taxRatePercent"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID      string             `json:"productID"`
	Name           string             `json:"name"`
	SKU            string             `json:"sku"`
	Description    string             `json:"description"`
	UnitPrice      decimal.Decimal    `json:"unitPrice"`
	TaxRatePercent decimal.Decimal    `json:"taxRatePercent"`
	ProductType    domain.ProductType `json:"productType"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// ToProductResponse converts a domain.Product to its response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ProductID,
		Name:           p.Name,
		SKU:            p.SKU,
		Description:    p.Description,
		UnitPrice:      p.UnitPrice,
		TaxRatePercent: p.TaxRatePercent,
		ProductType:    p.ProductType,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}

// ToListProductResponse converts a slice of products to response DTOs.
func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
