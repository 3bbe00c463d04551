package dto

import (
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines the data needed to record a payment against a
// bill or invoice. Status defaults to PENDING when omitted.
type CreatePaymentRequest struct {
	DocumentID          string               `json:"documentID" binding:"required"`
	Amount              decimal.Decimal      `json:"amount" binding:"required"`
	PaymentDate         time.Time            `json:"paymentDate" binding:"required"`
	Method              domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER CHEQUE CARD OTHER"`
	Status              domain.PaymentStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	AnalyticalAccountID *string              `json:"analyticalAccountID"`
	Notes               string               `json:"notes"`
}

// UpdatePaymentRequest defines the fields a payment allows updating.
type UpdatePaymentRequest struct {
	Amount              *decimal.Decimal      `json:"amount"`
	PaymentDate         *time.Time            `json:"paymentDate"`
	Method              *domain.PaymentMethod `json:"method" binding:"omitempty,oneof=CASH BANK_TRANSFER CHEQUE CARD OTHER"`
	Status              *domain.PaymentStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELLED"`
	AnalyticalAccountID *string               `json:"analyticalAccountID"`
	Notes               *string               `json:"notes"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID           string               `json:"paymentID"`
	PaymentNumber       string               `json:"paymentNumber"`
	Kind                domain.PaymentKind   `json:"kind"`
	DocumentID          string               `json:"documentID"`
	ContactID           string               `json:"contactID"`
	Amount              decimal.Decimal      `json:"amount"`
	PaymentDate         time.Time            `json:"paymentDate"`
	Method              domain.PaymentMethod `json:"method"`
	Status              domain.PaymentStatus `json:"status"`
	AnalyticalAccountID *string              `json:"analyticalAccountID,omitempty"`
	Notes               string               `json:"notes"`
	CreatedAt           time.Time            `json:"createdAt"`
	CreatedBy           string               `json:"createdBy"`
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:           p.PaymentID,
		PaymentNumber:       p.PaymentNumber,
		Kind:                p.Kind,
		DocumentID:          p.DocumentID,
		ContactID:           p.ContactID,
		Amount:              p.Amount,
		PaymentDate:         p.PaymentDate,
		Method:              p.Method,
		Status:              p.Status,
		AnalyticalAccountID: p.AnalyticalAccountID,
		Notes:               p.Notes,
		CreatedAt:           p.CreatedAt,
		CreatedBy:           p.CreatedBy,
	}
}

// ToListPaymentResponse converts a slice of payments to response DTOs.
func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}
