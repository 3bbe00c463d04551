package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, payment_number, kind, document_id, contact_id, amount, payment_date, method, status, analytical_account_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.PaymentID,
		&p.PaymentNumber,
		&p.Kind,
		&p.DocumentID,
		&p.ContactID,
		&p.Amount,
		&p.PaymentDate,
		&p.Method,
		&p.Status,
		&p.AnalyticalAccountID,
		&p.Notes,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// SavePayment inserts a new payment.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	query := `
		INSERT INTO payments (payment_id, payment_number, kind, document_id, contact_id, amount, payment_date, method, status, analytical_account_id, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		payment.PaymentID,
		payment.PaymentNumber,
		payment.Kind,
		payment.DocumentID,
		payment.ContactID,
		payment.Amount,
		payment.PaymentDate,
		payment.Method,
		payment.Status,
		payment.AnalyticalAccountID,
		payment.Notes,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: payment number %s already exists", apperrors.ErrDuplicate, payment.PaymentNumber)
		}
		return fmt.Errorf("failed to save payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	payment, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return &payment, nil
}

// FindPaymentsByDocumentID retrieves every payment linked to a document.
func (r *PgxPaymentRepository) FindPaymentsByDocumentID(ctx context.Context, documentID string) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE document_id = $1
		ORDER BY payment_date ASC, payment_number ASC;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for document %s: %w", documentID, err)
	}
	defer rows.Close()

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}
	return payments, nil
}

// ListPayments retrieves a paginated list of payments of one kind, newest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, kind domain.PaymentKind, limit int, offset int) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE kind = $1
		ORDER BY payment_date DESC, payment_number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan payments: %w", err)
	}
	return payments, nil
}

// FindLatestNumber returns the lexicographically greatest payment number with
// the given prefix.
func (r *PgxPaymentRepository) FindLatestNumber(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT payment_number
		FROM payments
		WHERE payment_number LIKE $1 || '%'
		ORDER BY payment_number DESC
		LIMIT 1;
	`
	var number string
	err := r.Pool.QueryRow(ctx, query, prefix).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find latest payment number for prefix %s: %w", prefix, err)
	}
	return number, nil
}

// UpdatePayment updates an existing payment.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	query := `
		UPDATE payments
		SET amount = $2, payment_date = $3, method = $4, status = $5, analytical_account_id = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE payment_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		payment.PaymentID,
		payment.Amount,
		payment.PaymentDate,
		payment.Method,
		payment.Status,
		payment.AnalyticalAccountID,
		payment.Notes,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePayment removes a payment.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM payments WHERE payment_id = $1;`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumCompletedByDocumentInTx sums completed payment amounts for a document
// within the given transaction, so the figure is consistent with the locked
// document row.
func (r *PgxPaymentRepository) SumCompletedByDocumentInTx(ctx context.Context, tx pgx.Tx, documentID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE document_id = $1 AND status = 'COMPLETED';
	`
	var sum decimal.Decimal
	if err := tx.QueryRow(ctx, query, documentID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum completed payments for document %s: %w", documentID, err)
	}
	return sum, nil
}

// SumCompletedBillPaymentsByAccount sums completed bill-payment amounts
// carrying the given analytical account.
func (r *PgxPaymentRepository) SumCompletedBillPaymentsByAccount(ctx context.Context, analyticalAccountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE analytical_account_id = $1 AND kind = 'BILL_PAYMENT' AND status = 'COMPLETED';
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, analyticalAccountID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum bill payments for account %s: %w", analyticalAccountID, err)
	}
	return sum, nil
}
