package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentKind distinguishes bill payments (money out) from invoice payments (money in).
type PaymentKind string

const (
	BillPayment    PaymentKind = "BILL_PAYMENT"
	InvoicePayment PaymentKind = "INVOICE_PAYMENT"
)

// NumberPrefix returns the payment-number prefix for a payment kind.
func (k PaymentKind) NumberPrefix() string {
	if k == BillPayment {
		return "BPAY"
	}
	return "IPAY"
}

// PaymentStatus is the lifecycle state of a payment. Only COMPLETED payments
// count toward reconciliation and budget aggregation.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheque       PaymentMethod = "CHEQUE"
	MethodCard         PaymentMethod = "CARD"
	MethodOther        PaymentMethod = "OTHER"
)

// Payment records money paid against a vendor bill or received against a
// customer invoice.
type Payment struct {
	PaymentID           string          `json:"paymentID"`
	PaymentNumber       string          `json:"paymentNumber"`
	Kind                PaymentKind     `json:"kind"`
	DocumentID          string          `json:"documentID"` // owning bill/invoice
	ContactID           string          `json:"contactID"`
	Amount              decimal.Decimal `json:"amount"` // always > 0
	PaymentDate         time.Time       `json:"paymentDate"`
	Method              PaymentMethod   `json:"method"`
	Status              PaymentStatus   `json:"status"`
	AnalyticalAccountID *string         `json:"analyticalAccountID,omitempty"`
	Notes               string          `json:"notes"`
	AuditFields
}
