package repositories

import (
	"context"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DocumentReader defines read operations for financial documents.
type DocumentReader interface {
	// FindDocumentByID retrieves a document with its line items.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.FinancialDocument, error)

	// ListDocuments retrieves a paginated list of documents of one type.
	ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, offset int) ([]domain.FinancialDocument, error)

	NumberReader
}

// DocumentWriter defines write operations for financial documents.
type DocumentWriter interface {
	// SaveDocument persists a new document and its line items atomically.
	// Returns apperrors.ErrDuplicate when the document number already exists.
	SaveDocument(ctx context.Context, doc domain.FinancialDocument) error

	// UpdateDocument replaces a document's mutable fields and line items.
	// The document number is never touched.
	UpdateDocument(ctx context.Context, doc domain.FinancialDocument) error
}

// DocumentReconciliationSupport defines the operations reconciliation runs
// inside its per-document critical section.
type DocumentReconciliationSupport interface {
	// FindDocumentByIDForUpdate selects a document row and locks it within the
	// given transaction.
	FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.FinancialDocument, error)

	// UpdateDocumentPaymentStateInTx writes the derived payment fields and the
	// resulting status in one statement within the given transaction.
	UpdateDocumentPaymentStateInTx(ctx context.Context, tx pgx.Tx, documentID string, paid decimal.Decimal, remaining decimal.Decimal, status domain.DocumentStatus, userID string, now time.Time) error
}

// DocumentRepository combines all document repository interfaces.
type DocumentRepository interface {
	DocumentReader
	DocumentWriter
}

// DocumentRepositoryWithTx extends DocumentRepository with the transactional
// operations reconciliation needs.
type DocumentRepositoryWithTx interface {
	DocumentRepository
	DocumentReconciliationSupport
	TransactionManager
}
