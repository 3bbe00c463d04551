package repositories

import (
	"context"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentsByDocumentID retrieves every payment linked to a document.
	FindPaymentsByDocumentID(ctx context.Context, documentID string) ([]domain.Payment, error)

	// ListPayments retrieves a paginated list of payments of one kind.
	ListPayments(ctx context.Context, kind domain.PaymentKind, limit int, offset int) ([]domain.Payment, error)

	NumberReader
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	// SavePayment persists a new payment. Returns apperrors.ErrDuplicate when
	// the payment number already exists.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdatePayment updates an existing payment.
	UpdatePayment(ctx context.Context, payment domain.Payment) error

	// DeletePayment removes a payment.
	DeletePayment(ctx context.Context, paymentID string) error
}

// PaymentAggregationSupport defines the aggregate queries reconciliation and
// budget tracking are built on.
type PaymentAggregationSupport interface {
	// SumCompletedByDocumentInTx sums completed payment amounts for a document
	// within the given transaction, so the figure is consistent with the locked
	// document row.
	SumCompletedByDocumentInTx(ctx context.Context, tx pgx.Tx, documentID string) (decimal.Decimal, error)

	// SumCompletedBillPaymentsByAccount sums completed bill-payment amounts
	// carrying the given analytical account.
	SumCompletedBillPaymentsByAccount(ctx context.Context, analyticalAccountID string) (decimal.Decimal, error)
}

// PaymentRepository combines all payment repository interfaces.
type PaymentRepository interface {
	PaymentReader
	PaymentWriter
	PaymentAggregationSupport
}
