package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies which of the four financial document kinds a record is.
type DocumentType string

const (
	PurchaseOrder   DocumentType = "PURCHASE_ORDER"
	SalesOrder      DocumentType = "SALES_ORDER"
	VendorBill      DocumentType = "VENDOR_BILL"
	CustomerInvoice DocumentType = "CUSTOMER_INVOICE"
)

// DocumentStatus is the lifecycle state of a financial document. The valid set
// depends on the document type; see ValidStatuses.
type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "DRAFT"
	StatusConfirmed     DocumentStatus = "CONFIRMED"
	StatusReceived      DocumentStatus = "RECEIVED"
	StatusDelivered     DocumentStatus = "DELIVERED"
	StatusOpen          DocumentStatus = "OPEN"
	StatusSent          DocumentStatus = "SENT"
	StatusPartiallyPaid DocumentStatus = "PARTIALLY_PAID"
	StatusPaid          DocumentStatus = "PAID"
	StatusOverdue       DocumentStatus = "OVERDUE"
	StatusCancelled     DocumentStatus = "CANCELLED"
)

// NumberPrefix returns the document-number prefix for a document type.
func (t DocumentType) NumberPrefix() string {
	switch t {
	case PurchaseOrder:
		return "PO"
	case SalesOrder:
		return "SO"
	case VendorBill:
		return "BILL"
	case CustomerInvoice:
		return "INV"
	}
	return "DOC"
}

// IsPayable reports whether documents of this type carry paid/remaining amounts.
func (t DocumentType) IsPayable() bool {
	return t == VendorBill || t == CustomerInvoice
}

// ValidStatuses returns the status set for a document type.
// Vendor bills have no partial-payment state; that asymmetry with invoices is
// carried over from the original product behaviour.
func (t DocumentType) ValidStatuses() []DocumentStatus {
	switch t {
	case PurchaseOrder:
		return []DocumentStatus{StatusDraft, StatusConfirmed, StatusReceived, StatusCancelled}
	case SalesOrder:
		return []DocumentStatus{StatusDraft, StatusConfirmed, StatusDelivered, StatusCancelled}
	case VendorBill:
		return []DocumentStatus{StatusDraft, StatusOpen, StatusPaid, StatusCancelled}
	case CustomerInvoice:
		return []DocumentStatus{StatusDraft, StatusSent, StatusPartiallyPaid, StatusPaid, StatusOverdue, StatusCancelled}
	}
	return nil
}

// LineItem is a single line on a financial document.
type LineItem struct {
	LineItemID     string          `json:"lineItemID"`
	ProductID      *string         `json:"productID,omitempty"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
	LineTotal      decimal.Decimal `json:"lineTotal"` // quantity * unitPrice, pre-tax
}

// FinancialDocument is the shared shape of purchase orders, sales orders,
// vendor bills and customer invoices. Subtotal, tax and total amounts are
// derived from the line items; paid/remaining amounts exist only on payable
// types and are maintained by reconciliation.
type FinancialDocument struct {
	DocumentID          string          `json:"documentID"`
	DocType             DocumentType    `json:"docType"`
	DocumentNumber      string          `json:"documentNumber"` // unique, immutable once assigned
	ReferenceNumber     string          `json:"referenceNumber"`
	ContactID           string          `json:"contactID"`
	DocumentDate        time.Time       `json:"documentDate"`
	DueDate             *time.Time      `json:"dueDate,omitempty"`
	LineItems           []LineItem      `json:"lineItems"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	PaidAmount          decimal.Decimal `json:"paidAmount"`
	RemainingAmount     decimal.Decimal `json:"remainingAmount"`
	AnalyticalAccountID *string         `json:"analyticalAccountID,omitempty"`
	Status              DocumentStatus  `json:"status"`
	Notes               string          `json:"notes"`
	AuditFields
}

// ReconciliationResult is the outcome of recomputing a payable document's
// payment state from its completed payments. Conservation holds after every
// reconciliation: PaidAmount + RemainingAmount == the document total.
type ReconciliationResult struct {
	DocumentID      string          `json:"documentID"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Status          DocumentStatus  `json:"status"`
}

// CalculateTotals derives line totals, subtotal, tax amount and total amount
// from the line items. It is idempotent: applying it twice to the same line
// items yields the same figures. Remaining amount is kept consistent with the
// current paid amount for payable documents.
func (d *FinancialDocument) CalculateTotals() {
	subtotal := decimal.Zero
	taxAmount := decimal.Zero
	hundred := decimal.NewFromInt(100)

	for i := range d.LineItems {
		line := &d.LineItems[i]
		line.LineTotal = line.Quantity.Mul(line.UnitPrice)
		subtotal = subtotal.Add(line.LineTotal)
		taxAmount = taxAmount.Add(line.LineTotal.Mul(line.TaxRatePercent).Div(hundred))
	}

	d.Subtotal = subtotal
	d.TaxAmount = taxAmount
	d.TotalAmount = subtotal.Add(taxAmount)
	if d.DocType.IsPayable() {
		d.RemainingAmount = d.TotalAmount.Sub(d.PaidAmount)
	}
}
