package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
	"github.com/shopspring/decimal"
)

// reconciliationService recomputes a payable document's paid/remaining amounts
// and status from its completed payments. The whole recomputation runs inside a
// database transaction with the document row locked, so concurrent payment
// writes against the same document serialize instead of losing updates.
type reconciliationService struct {
	docRepo     portsrepo.DocumentRepositoryWithTx
	paymentRepo portsrepo.PaymentRepository
}

// NewReconciliationService creates the payment reconciler.
func NewReconciliationService(docRepo portsrepo.DocumentRepositoryWithTx, paymentRepo portsrepo.PaymentRepository) portssvc.ReconciliationSvc {
	return &reconciliationService{
		docRepo:     docRepo,
		paymentRepo: paymentRepo,
	}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

// Reconcile implements portssvc.ReconciliationSvc.
func (s *reconciliationService) Reconcile(ctx context.Context, documentID string, userID string) (*domain.ReconciliationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.docRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrReconciliationFailed, err)
	}
	defer func() {
		_ = s.docRepo.Rollback(ctx, tx)
	}()

	doc, err := s.docRepo.FindDocumentByIDForUpdate(ctx, tx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: failed to lock document %s: %v", apperrors.ErrReconciliationFailed, documentID, err)
	}

	if !doc.DocType.IsPayable() {
		return nil, fmt.Errorf("%w: document %s of type %s carries no payments", apperrors.ErrValidation, documentID, doc.DocType)
	}

	paid, err := s.paymentRepo.SumCompletedByDocumentInTx(ctx, tx, documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to sum payments for document %s: %v", apperrors.ErrReconciliationFailed, documentID, err)
	}

	remaining := doc.TotalAmount.Sub(paid)
	if remaining.IsNegative() {
		logger.Warn("Completed payments exceed document total",
			slog.String("document_id", documentID),
			slog.String("total", doc.TotalAmount.String()),
			slog.String("paid", paid.String()),
		)
	}

	now := time.Now().UTC()
	status := nextPaymentStatus(doc, paid, remaining, now)

	if err := s.docRepo.UpdateDocumentPaymentStateInTx(ctx, tx, documentID, paid, remaining, status, userID, now); err != nil {
		return nil, fmt.Errorf("%w: failed to update payment state of document %s: %v", apperrors.ErrReconciliationFailed, documentID, err)
	}

	if err := s.docRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: failed to commit reconciliation of document %s: %v", apperrors.ErrReconciliationFailed, documentID, err)
	}

	logger.Info("Document reconciled",
		slog.String("document_id", documentID),
		slog.String("paid", paid.String()),
		slog.String("remaining", remaining.String()),
		slog.String("status", string(status)),
	)

	return &domain.ReconciliationResult{
		DocumentID:      documentID,
		PaidAmount:      paid,
		RemainingAmount: remaining,
		Status:          status,
	}, nil
}

// nextPaymentStatus applies the status transition policy. Rules are evaluated
// in priority order and the first that fires decides the status:
//
//  1. remaining <= 0 with a positive total: PAID.
//  2. partially paid: PARTIALLY_PAID, invoices only. Bills have no partial
//     state and keep their prior status until fully paid.
//  3. past due date and not paid/cancelled: OVERDUE, invoices only.
//  4. otherwise the status is unchanged.
func nextPaymentStatus(doc *domain.FinancialDocument, paid, remaining decimal.Decimal, now time.Time) domain.DocumentStatus {
	if remaining.LessThanOrEqual(decimal.Zero) && doc.TotalAmount.GreaterThan(decimal.Zero) {
		return domain.StatusPaid
	}

	if doc.DocType == domain.CustomerInvoice {
		if paid.GreaterThan(decimal.Zero) && remaining.GreaterThan(decimal.Zero) {
			return domain.StatusPartiallyPaid
		}
		if doc.DueDate != nil && now.After(*doc.DueDate) &&
			doc.Status != domain.StatusPaid && doc.Status != domain.StatusCancelled {
			return domain.StatusOverdue
		}
	}

	return doc.Status
}
