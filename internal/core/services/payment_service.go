package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
)

// paymentService records payments against bills and invoices. Every write that
// can change a document's completed-payment total triggers reconciliation of
// that document, and bill-payment writes additionally push the affected
// analytical accounts through budget recomputation.
type paymentService struct {
	paymentRepo   portsrepo.PaymentRepository
	docRepo       portsrepo.DocumentReader
	sequenceSvc   portssvc.SequenceSvc
	reconcileSvc  portssvc.ReconciliationSvc
	budgetTracker portssvc.BudgetTrackerSvc
}

// NewPaymentService creates the payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepository,
	docRepo portsrepo.DocumentReader,
	sequenceSvc portssvc.SequenceSvc,
	reconcileSvc portssvc.ReconciliationSvc,
	budgetTracker portssvc.BudgetTrackerSvc,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:   paymentRepo,
		docRepo:       docRepo,
		sequenceSvc:   sequenceSvc,
		reconcileSvc:  reconcileSvc,
		budgetTracker: budgetTracker,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// documentTypeForKind maps a payment kind to the document type it pays.
func documentTypeForKind(kind domain.PaymentKind) domain.DocumentType {
	if kind == domain.BillPayment {
		return domain.VendorBill
	}
	return domain.CustomerInvoice
}

// CreatePayment records a payment against a bill or invoice. A COMPLETED
// payment immediately reconciles the document; if reconciliation fails the
// payment is rolled back so the stored state never disagrees with the
// document's derived fields.
func (s *paymentService) CreatePayment(ctx context.Context, kind domain.PaymentKind, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	doc, err := s.docRepo.FindDocumentByID(ctx, req.DocumentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, req.DocumentID)
		}
		return nil, fmt.Errorf("failed to fetch document %s: %w", req.DocumentID, err)
	}
	if doc.DocType != documentTypeForKind(kind) {
		return nil, fmt.Errorf("%w: document %s is not a %s target", apperrors.ErrValidation, req.DocumentID, kind)
	}
	switch doc.Status {
	case domain.StatusDraft:
		return nil, fmt.Errorf("%w: document %s is still a draft", apperrors.ErrValidation, req.DocumentID)
	case domain.StatusCancelled:
		return nil, fmt.Errorf("%w: document %s is cancelled", apperrors.ErrValidation, req.DocumentID)
	}

	status := req.Status
	if status == "" {
		status = domain.PaymentPending
	}

	// A payment without its own classification inherits the document's.
	accountID := req.AnalyticalAccountID
	if accountID == nil {
		accountID = doc.AnalyticalAccountID
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:           uuid.NewString(),
		Kind:                kind,
		DocumentID:          doc.DocumentID,
		ContactID:           doc.ContactID,
		Amount:              req.Amount,
		PaymentDate:         req.PaymentDate,
		Method:              req.Method,
		Status:              status,
		AnalyticalAccountID: accountID,
		Notes:               req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.saveWithNumberRetry(ctx, &payment); err != nil {
		return nil, err
	}

	if payment.Status == domain.PaymentCompleted {
		if _, err := s.reconcileSvc.Reconcile(ctx, payment.DocumentID, creatorUserID); err != nil {
			// The payment must not survive a failed reconciliation.
			if delErr := s.paymentRepo.DeletePayment(ctx, payment.PaymentID); delErr != nil {
				logger.Error("Failed to roll back payment after reconciliation failure",
					slog.String("payment_id", payment.PaymentID),
					slog.String("error", delErr.Error()),
				)
			}
			return nil, fmt.Errorf("payment recorded but reconciliation failed, payment rolled back: %w", err)
		}
		s.recomputeBudgets(ctx, &payment, creatorUserID)
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("payment_number", payment.PaymentNumber),
		slog.String("kind", string(kind)),
		slog.String("document_id", payment.DocumentID),
	)
	return &payment, nil
}

// GetPaymentByID retrieves a payment, verifying it belongs to the requested kind.
func (s *paymentService) GetPaymentByID(ctx context.Context, kind domain.PaymentKind, paymentID string) (*domain.Payment, error) {
	return s.findTypedPayment(ctx, kind, paymentID)
}

// ListPayments retrieves a paginated list of payments of one kind.
func (s *paymentService) ListPayments(ctx context.Context, kind domain.PaymentKind, limit int, offset int) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPayments(ctx, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s payments: %w", kind, err)
	}
	return payments, nil
}

// UpdatePayment updates a payment. When the update can change the document's
// completed total (the old or the new state is COMPLETED), the document is
// reconciled and affected budgets recomputed.
func (s *paymentService) UpdatePayment(ctx context.Context, kind domain.PaymentKind, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.findTypedPayment(ctx, kind, paymentID)
	if err != nil {
		return nil, err
	}
	previous := *payment

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		payment.Amount = *req.Amount
	}
	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}
	if req.Method != nil {
		payment.Method = *req.Method
	}
	if req.Status != nil {
		payment.Status = *req.Status
	}
	if req.AnalyticalAccountID != nil {
		payment.AnalyticalAccountID = req.AnalyticalAccountID
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
	}

	payment.LastUpdatedAt = time.Now().UTC()
	payment.LastUpdatedBy = userID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		logger.Error("Failed to update payment", slog.String("payment_id", paymentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update payment %s: %w", paymentID, err)
	}

	if previous.Status == domain.PaymentCompleted || payment.Status == domain.PaymentCompleted {
		if _, err := s.reconcileSvc.Reconcile(ctx, payment.DocumentID, userID); err != nil {
			return nil, fmt.Errorf("payment updated but reconciliation failed: %w", err)
		}
		// A completed bill payment moved between accounts affects both.
		s.recomputeBudgets(ctx, &previous, userID)
		s.recomputeBudgets(ctx, payment, userID)
	}

	logger.Info("Payment updated", slog.String("payment_id", paymentID), slog.String("kind", string(kind)))
	return payment, nil
}

// DeletePayment removes a payment and reconciles the owning document so its
// derived fields reflect the deletion.
func (s *paymentService) DeletePayment(ctx context.Context, kind domain.PaymentKind, paymentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.findTypedPayment(ctx, kind, paymentID)
	if err != nil {
		return err
	}

	if err := s.paymentRepo.DeletePayment(ctx, paymentID); err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}

	if _, err := s.reconcileSvc.Reconcile(ctx, payment.DocumentID, userID); err != nil {
		return fmt.Errorf("payment deleted but reconciliation failed: %w", err)
	}
	if payment.Status == domain.PaymentCompleted {
		s.recomputeBudgets(ctx, payment, userID)
	}

	logger.Info("Payment deleted", slog.String("payment_id", paymentID), slog.String("kind", string(kind)))
	return nil
}

func (s *paymentService) findTypedPayment(ctx context.Context, kind domain.PaymentKind, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	if payment.Kind != kind {
		return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
	}
	return payment, nil
}

// recomputeBudgets pushes a bill payment's analytical account through budget
// recomputation. Budget drift is repairable by a later recomputation, so a
// failure here is logged, not returned.
func (s *paymentService) recomputeBudgets(ctx context.Context, payment *domain.Payment, userID string) {
	if payment.Kind != domain.BillPayment || payment.AnalyticalAccountID == nil {
		return
	}
	if _, err := s.budgetTracker.RecomputeSpent(ctx, *payment.AnalyticalAccountID, userID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Budget recomputation failed",
			slog.String("payment_id", payment.PaymentID),
			slog.String("analytical_account_id", *payment.AnalyticalAccountID),
			slog.String("error", err.Error()),
		)
	}
}

// saveWithNumberRetry generates a payment number and persists the payment,
// regenerating on a number collision up to maxNumberRetries times.
func (s *paymentService) saveWithNumberRetry(ctx context.Context, payment *domain.Payment) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	prefix := payment.Kind.NumberPrefix()

	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		number, err := s.sequenceSvc.Next(ctx, prefix)
		if err != nil {
			return fmt.Errorf("failed to generate payment number: %w", err)
		}
		payment.PaymentNumber = number

		err = s.paymentRepo.SavePayment(ctx, *payment)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		logger.Warn("Payment number collision, retrying",
			slog.String("payment_number", number),
			slog.Int("attempt", attempt+1),
		)
	}
	return fmt.Errorf("%w: could not allocate a unique %s number after %d attempts", apperrors.ErrSequenceExhausted, prefix, maxNumberRetries)
}
