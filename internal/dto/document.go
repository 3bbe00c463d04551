package dto

import (
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest defines one line of a document create/update request.
type LineItemRequest struct {
	ProductID      *string         `json:"productID"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
}

// CreateDocumentRequest defines the data needed to create a financial document.
// The document number is generated server-side and cannot be supplied.
type CreateDocumentRequest struct {
	ContactID           string            `json:"contactID" binding:"required"`
	DocumentDate        time.Time         `json:"documentDate" binding:"required"`
	DueDate             *time.Time        `json:"dueDate"`
	ReferenceNumber     string            `json:"referenceNumber"`
	AnalyticalAccountID *string           `json:"analyticalAccountID"`
	Notes               string            `json:"notes"`
	LineItems           []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateDocumentRequest defines the fields a document allows updating.
type UpdateDocumentRequest struct {
	ContactID           *string               `json:"contactID"`
	DocumentDate        *time.Time            `json:"documentDate"`
	DueDate             *time.Time            `json:"dueDate"`
	ReferenceNumber     *string               `json:"referenceNumber"`
	AnalyticalAccountID *string               `json:"analyticalAccountID"`
	Notes               *string               `json:"notes"`
	Status              *domain.DocumentStatus `json:"status"`
	LineItems           []LineItemRequest     `json:"lineItems" binding:"omitempty,min=1,dive"`
}

// LineItemResponse defines one line of a document response.
type LineItemResponse struct {
	LineItemID     string          `json:"lineItemID"`
	ProductID      *string         `json:"productID,omitempty"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
}

// DocumentResponse defines the data returned for a financial document.
type DocumentResponse struct {
	DocumentID          string              `json:"documentID"`
	DocType             domain.DocumentType `json:"docType"`
	DocumentNumber      string              `json:"documentNumber"`
	ReferenceNumber     string              `json:"referenceNumber"`
	ContactID           string              `json:"contactID"`
	DocumentDate        time.Time           `json:"documentDate"`
	DueDate             *time.Time          `json:"dueDate,omitempty"`
	LineItems           []LineItemResponse  `json:"lineItems"`
	Subtotal            decimal.Decimal     `json:"subtotal"`
	TaxAmount           decimal.Decimal     `json:"taxAmount"`
	TotalAmount         decimal.Decimal     `json:"totalAmount"`
	PaidAmount          decimal.Decimal     `json:"paidAmount"`
	RemainingAmount     decimal.Decimal     `json:"remainingAmount"`
	AnalyticalAccountID *string             `json:"analyticalAccountID,omitempty"`
	Status              domain.DocumentStatus `json:"status"`
	Notes               string              `json:"notes"`
	CreatedAt           time.Time           `json:"createdAt"`
	CreatedBy           string              `json:"createdBy"`
}

// ReconciliationResponse defines the data returned by an explicit reconcile call.
type ReconciliationResponse struct {
	DocumentID      string                `json:"documentID"`
	PaidAmount      decimal.Decimal       `json:"paidAmount"`
	RemainingAmount decimal.Decimal       `json:"remainingAmount"`
	Status          domain.DocumentStatus `json:"status"`
}

// ToDocumentResponse converts a domain.FinancialDocument to its response DTO.
func ToDocumentResponse(doc *domain.FinancialDocument) DocumentResponse {
	lines := make([]LineItemResponse, len(doc.LineItems))
	for i, li := range doc.LineItems {
		lines[i] = LineItemResponse{
			LineItemID:     li.LineItemID,
			ProductID:      li.ProductID,
			Description:    li.Description,
			Quantity:       li.Quantity,
			UnitPrice:      li.UnitPrice,
			TaxRatePercent: li.TaxRatePercent,
			LineTotal:      li.LineTotal,
		}
	}
	return DocumentResponse{
		DocumentID:          doc.DocumentID,
		DocType:             doc.DocType,
		DocumentNumber:      doc.DocumentNumber,
		ReferenceNumber:     doc.ReferenceNumber,
		ContactID:           doc.ContactID,
		DocumentDate:        doc.DocumentDate,
		DueDate:             doc.DueDate,
		LineItems:           lines,
		Subtotal:            doc.Subtotal,
		TaxAmount:           doc.TaxAmount,
		TotalAmount:         doc.TotalAmount,
		PaidAmount:          doc.PaidAmount,
		RemainingAmount:     doc.RemainingAmount,
		AnalyticalAccountID: doc.AnalyticalAccountID,
		Status:              doc.Status,
		Notes:               doc.Notes,
		CreatedAt:           doc.CreatedAt,
		CreatedBy:           doc.CreatedBy,
	}
}

// ToListDocumentResponse converts a slice of documents to response DTOs.
func ToListDocumentResponse(docs []domain.FinancialDocument) []DocumentResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i])
	}
	return res
}

// ToReconciliationResponse converts a domain.ReconciliationResult to its response DTO.
func ToReconciliationResponse(r *domain.ReconciliationResult) ReconciliationResponse {
	return ReconciliationResponse{
		DocumentID:      r.DocumentID,
		PaidAmount:      r.PaidAmount,
		RemainingAmount: r.RemainingAmount,
		Status:          r.Status,
	}
}
