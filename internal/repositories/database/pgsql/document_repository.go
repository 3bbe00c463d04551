package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for financial document data.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, doc_type, document_number, reference_number, contact_id, document_date, due_date, subtotal, tax_amount, total_amount, paid_amount, remaining_amount, analytical_account_id, status, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (domain.FinancialDocument, error) {
	var d domain.FinancialDocument
	err := row.Scan(
		&d.DocumentID,
		&d.DocType,
		&d.DocumentNumber,
		&d.ReferenceNumber,
		&d.ContactID,
		&d.DocumentDate,
		&d.DueDate,
		&d.Subtotal,
		&d.TaxAmount,
		&d.TotalAmount,
		&d.PaidAmount,
		&d.RemainingAmount,
		&d.AnalyticalAccountID,
		&d.Status,
		&d.Notes,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

// queryer abstracts pool and transaction so line items can be loaded either way.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxDocumentRepository) loadLineItems(ctx context.Context, q queryer, documentID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, product_id, description, quantity, unit_price, tax_rate_percent, line_total
		FROM document_line_items
		WHERE document_id = $1
		ORDER BY position;
	`
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items for document %s: %w", documentID, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LineItem, error) {
		var li domain.LineItem
		err := row.Scan(
			&li.LineItemID,
			&li.ProductID,
			&li.Description,
			&li.Quantity,
			&li.UnitPrice,
			&li.TaxRatePercent,
			&li.LineTotal,
		)
		return li, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan line items for document %s: %w", documentID, err)
	}
	return items, nil
}

func insertLineItems(ctx context.Context, tx pgx.Tx, doc domain.FinancialDocument) error {
	query := `
		INSERT INTO document_line_items (line_item_id, document_id, position, product_id, description, quantity, unit_price, tax_rate_percent, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for i, li := range doc.LineItems {
		_, err := tx.Exec(ctx, query,
			li.LineItemID,
			doc.DocumentID,
			i,
			li.ProductID,
			li.Description,
			li.Quantity,
			li.UnitPrice,
			li.TaxRatePercent,
			li.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("failed to insert line item %s: %w", li.LineItemID, err)
		}
	}
	return nil
}

// SaveDocument persists a document and its line items atomically.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.FinancialDocument) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO financial_documents (document_id, doc_type, document_number, reference_number, contact_id, document_date, due_date, subtotal, tax_amount, total_amount, paid_amount, remaining_amount, analytical_account_id, status, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, query,
		doc.DocumentID,
		doc.DocType,
		doc.DocumentNumber,
		doc.ReferenceNumber,
		doc.ContactID,
		doc.DocumentDate,
		doc.DueDate,
		doc.Subtotal,
		doc.TaxAmount,
		doc.TotalAmount,
		doc.PaidAmount,
		doc.RemainingAmount,
		doc.AnalyticalAccountID,
		doc.Status,
		doc.Notes,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: document number %s already exists", apperrors.ErrDuplicate, doc.DocumentNumber)
		}
		return fmt.Errorf("failed to save document %s: %w", doc.DocumentID, err)
	}

	if err := insertLineItems(ctx, tx, doc); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindDocumentByID retrieves a document with its line items.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.FinancialDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM financial_documents WHERE document_id = $1;`
	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}

	doc.LineItems, err = r.loadLineItems(ctx, r.Pool, documentID)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments retrieves a paginated list of documents of one type, newest
// first. Line items are loaded per document.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, offset int) ([]domain.FinancialDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM financial_documents
		WHERE doc_type = $1
		ORDER BY document_date DESC, document_number DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, docType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FinancialDocument, error) {
		return scanDocument(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}

	for i := range docs {
		docs[i].LineItems, err = r.loadLineItems(ctx, r.Pool, docs[i].DocumentID)
		if err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// FindLatestNumber returns the lexicographically greatest document number with
// the given prefix. Zero-padded sequences make this the numerically greatest
// as well, until a sequence outgrows its pad width within a single year.
func (r *PgxDocumentRepository) FindLatestNumber(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT document_number
		FROM financial_documents
		WHERE document_number LIKE $1 || '%'
		ORDER BY document_number DESC
		LIMIT 1;
	`
	var number string
	err := r.Pool.QueryRow(ctx, query, prefix).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find latest document number for prefix %s: %w", prefix, err)
	}
	return number, nil
}

// UpdateDocument replaces a document's mutable fields and line items. The
// document number is never touched.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc domain.FinancialDocument) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	query := `
		UPDATE financial_documents
		SET reference_number = $2, contact_id = $3, document_date = $4, due_date = $5,
			subtotal = $6, tax_amount = $7, total_amount = $8, paid_amount = $9, remaining_amount = $10,
			analytical_account_id = $11, status = $12, notes = $13, last_updated_at = $14, last_updated_by = $15
		WHERE document_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		doc.DocumentID,
		doc.ReferenceNumber,
		doc.ContactID,
		doc.DocumentDate,
		doc.DueDate,
		doc.Subtotal,
		doc.TaxAmount,
		doc.TotalAmount,
		doc.PaidAmount,
		doc.RemainingAmount,
		doc.AnalyticalAccountID,
		doc.Status,
		doc.Notes,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", doc.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM document_line_items WHERE document_id = $1;`, doc.DocumentID); err != nil {
		return fmt.Errorf("failed to clear line items for document %s: %w", doc.DocumentID, err)
	}
	if err := insertLineItems(ctx, tx, doc); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindDocumentByIDForUpdate selects a document row and locks it within the
// given transaction. Line items are loaded through the same transaction.
func (r *PgxDocumentRepository) FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.FinancialDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM financial_documents WHERE document_id = $1 FOR UPDATE;`
	doc, err := scanDocument(tx.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock document %s: %w", documentID, err)
	}

	doc.LineItems, err = r.loadLineItems(ctx, tx, documentID)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocumentPaymentStateInTx writes the derived payment fields and the
// resulting status in one statement within the given transaction.
func (r *PgxDocumentRepository) UpdateDocumentPaymentStateInTx(ctx context.Context, tx pgx.Tx, documentID string, paid decimal.Decimal, remaining decimal.Decimal, status domain.DocumentStatus, userID string, now time.Time) error {
	query := `
		UPDATE financial_documents
		SET paid_amount = $2, remaining_amount = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE document_id = $1;
	`
	tag, err := tx.Exec(ctx, query, documentID, paid, remaining, status, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update payment state for document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
