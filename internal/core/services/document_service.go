package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
)

// maxNumberRetries bounds how often a document write is retried when its
// generated number collides with a concurrently created one.
const maxNumberRetries = 3

// documentService manages the four financial document types behind one facade.
// Creation generates the document number, derives totals from line items and
// runs the rule engine when no analytical account was supplied.
type documentService struct {
	docRepo     portsrepo.DocumentRepository
	contactRepo portsrepo.ContactRepository
	productRepo portsrepo.ProductRepository
	accountRepo portsrepo.AnalyticalAccountReader
	ruleEngine  portssvc.RuleEngineSvc
	sequenceSvc portssvc.SequenceSvc
}

// NewDocumentService creates the document service.
func NewDocumentService(
	docRepo portsrepo.DocumentRepository,
	contactRepo portsrepo.ContactRepository,
	productRepo portsrepo.ProductRepository,
	accountRepo portsrepo.AnalyticalAccountReader,
	ruleEngine portssvc.RuleEngineSvc,
	sequenceSvc portssvc.SequenceSvc,
) portssvc.DocumentSvcFacade {
	return &documentService{
		docRepo:     docRepo,
		contactRepo: contactRepo,
		productRepo: productRepo,
		accountRepo: accountRepo,
		ruleEngine:  ruleEngine,
		sequenceSvc: sequenceSvc,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument creates a new document of the given type in DRAFT status.
func (s *documentService) CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.CreateDocumentRequest, creatorUserID string) (*domain.FinancialDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	contact, err := s.contactRepo.FindContactByID(ctx, req.ContactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: contact %s", apperrors.ErrNotFound, req.ContactID)
		}
		return nil, fmt.Errorf("failed to fetch contact %s: %w", req.ContactID, err)
	}
	if err := validateContactForDocType(docType, contact); err != nil {
		return nil, err
	}

	lineItems, err := s.buildLineItems(ctx, req.LineItems)
	if err != nil {
		return nil, err
	}

	if req.AnalyticalAccountID != nil {
		if err := s.verifyAccountActive(ctx, *req.AnalyticalAccountID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	doc := domain.FinancialDocument{
		DocumentID:          uuid.NewString(),
		DocType:             docType,
		ReferenceNumber:     req.ReferenceNumber,
		ContactID:           req.ContactID,
		DocumentDate:        req.DocumentDate,
		DueDate:             req.DueDate,
		LineItems:           lineItems,
		PaidAmount:          decimal.Zero,
		AnalyticalAccountID: req.AnalyticalAccountID,
		Status:              domain.StatusDraft,
		Notes:               req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	doc.CalculateTotals()

	if doc.AnalyticalAccountID == nil {
		s.autoAssignAccount(ctx, &doc)
	}

	if err := s.saveWithNumberRetry(ctx, &doc); err != nil {
		return nil, err
	}

	logger.Info("Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("doc_type", string(docType)),
		slog.String("document_number", doc.DocumentNumber),
	)
	return &doc, nil
}

// GetDocumentByID retrieves a document, verifying it belongs to the requested type.
func (s *documentService) GetDocumentByID(ctx context.Context, docType domain.DocumentType, documentID string) (*domain.FinancialDocument, error) {
	doc, err := s.findTypedDocument(ctx, docType, documentID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments retrieves a paginated list of documents of one type.
func (s *documentService) ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, offset int) ([]domain.FinancialDocument, error) {
	docs, err := s.docRepo.ListDocuments(ctx, docType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s documents: %w", docType, err)
	}
	return docs, nil
}

// UpdateDocument updates a document's mutable fields. Totals are re-derived
// whenever line items change; payment-derived statuses cannot be set manually.
func (s *documentService) UpdateDocument(ctx context.Context, docType domain.DocumentType, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.FinancialDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.findTypedDocument(ctx, docType, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: document %s is cancelled", apperrors.ErrConflict, documentID)
	}

	if req.ContactID != nil && *req.ContactID != doc.ContactID {
		contact, err := s.contactRepo.FindContactByID(ctx, *req.ContactID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: contact %s", apperrors.ErrNotFound, *req.ContactID)
			}
			return nil, fmt.Errorf("failed to fetch contact %s: %w", *req.ContactID, err)
		}
		if err := validateContactForDocType(docType, contact); err != nil {
			return nil, err
		}
		doc.ContactID = *req.ContactID
	}
	if req.DocumentDate != nil {
		doc.DocumentDate = *req.DocumentDate
	}
	if req.DueDate != nil {
		doc.DueDate = req.DueDate
	}
	if req.ReferenceNumber != nil {
		doc.ReferenceNumber = *req.ReferenceNumber
	}
	if req.Notes != nil {
		doc.Notes = *req.Notes
	}
	if req.AnalyticalAccountID != nil {
		if err := s.verifyAccountActive(ctx, *req.AnalyticalAccountID); err != nil {
			return nil, err
		}
		doc.AnalyticalAccountID = req.AnalyticalAccountID
	}
	if req.Status != nil {
		if err := validateStatusTransition(docType, *req.Status); err != nil {
			return nil, err
		}
		doc.Status = *req.Status
	}
	if len(req.LineItems) > 0 {
		lineItems, err := s.buildLineItems(ctx, req.LineItems)
		if err != nil {
			return nil, err
		}
		doc.LineItems = lineItems
	}
	doc.CalculateTotals()

	// Auto-assignment only applies while the document is still a draft; a
	// confirmed document keeps whatever account it was classified into.
	if doc.AnalyticalAccountID == nil && doc.Status == domain.StatusDraft {
		s.autoAssignAccount(ctx, doc)
	}

	doc.LastUpdatedAt = time.Now().UTC()
	doc.LastUpdatedBy = userID

	if err := s.docRepo.UpdateDocument(ctx, *doc); err != nil {
		logger.Error("Failed to update document", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update document %s: %w", documentID, err)
	}

	logger.Info("Document updated", slog.String("document_id", documentID), slog.String("doc_type", string(docType)))
	return doc, nil
}

// CancelDocument moves a document to CANCELLED. Documents with recorded
// payments cannot be cancelled.
func (s *documentService) CancelDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.findTypedDocument(ctx, docType, documentID)
	if err != nil {
		return err
	}
	if doc.Status == domain.StatusCancelled {
		return nil
	}
	if docType.IsPayable() && doc.PaidAmount.IsPositive() {
		return fmt.Errorf("%w: document %s has recorded payments and cannot be cancelled", apperrors.ErrConflict, documentID)
	}

	doc.Status = domain.StatusCancelled
	doc.LastUpdatedAt = time.Now().UTC()
	doc.LastUpdatedBy = userID

	if err := s.docRepo.UpdateDocument(ctx, *doc); err != nil {
		return fmt.Errorf("failed to cancel document %s: %w", documentID, err)
	}

	logger.Info("Document cancelled", slog.String("document_id", documentID), slog.String("doc_type", string(docType)))
	return nil
}

// findTypedDocument loads a document and rejects it when it belongs to a
// different document type, so the per-type routes cannot leak each other's
// records.
func (s *documentService) findTypedDocument(ctx context.Context, docType domain.DocumentType, documentID string) (*domain.FinancialDocument, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	if doc.DocType != docType {
		return nil, fmt.Errorf("%w: document %s", apperrors.ErrNotFound, documentID)
	}
	return doc, nil
}

// buildLineItems materializes request lines into domain line items, pulling
// unit price, tax rate and description from the referenced product when the
// request leaves them unset.
func (s *documentService) buildLineItems(ctx context.Context, reqLines []dto.LineItemRequest) ([]domain.LineItem, error) {
	productIDs := make([]string, 0, len(reqLines))
	for _, line := range reqLines {
		if line.ProductID != nil {
			productIDs = append(productIDs, *line.ProductID)
		}
	}

	var products map[string]domain.Product
	if len(productIDs) > 0 {
		var err error
		products, err = s.productRepo.FindProductsByIDs(ctx, productIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch products for line items: %w", err)
		}
	}

	lineItems := make([]domain.LineItem, 0, len(reqLines))
	for i, line := range reqLines {
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: line %d quantity must be positive", apperrors.ErrValidation, i+1)
		}
		item := domain.LineItem{
			LineItemID:     uuid.NewString(),
			ProductID:      line.ProductID,
			Description:    line.Description,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			TaxRatePercent: line.TaxRatePercent,
		}
		if line.ProductID != nil {
			product, ok := products[*line.ProductID]
			if !ok {
				return nil, fmt.Errorf("%w: product %s on line %d", apperrors.ErrNotFound, *line.ProductID, i+1)
			}
			if !product.IsActive {
				return nil, fmt.Errorf("%w: product %s on line %d is inactive", apperrors.ErrValidation, *line.ProductID, i+1)
			}
			if item.UnitPrice.IsZero() {
				item.UnitPrice = product.UnitPrice
			}
			if item.TaxRatePercent.IsZero() {
				item.TaxRatePercent = product.TaxRatePercent
			}
			if item.Description == "" {
				item.Description = product.Name
			}
		} else if item.Description == "" {
			return nil, fmt.Errorf("%w: line %d needs a product or a description", apperrors.ErrValidation, i+1)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d unit price must not be negative", apperrors.ErrValidation, i+1)
		}
		if item.TaxRatePercent.IsNegative() {
			return nil, fmt.Errorf("%w: line %d tax rate must not be negative", apperrors.ErrValidation, i+1)
		}
		lineItems = append(lineItems, item)
	}
	return lineItems, nil
}

// autoAssignAccount runs the rule engine over the document's snapshot. A rule
// engine failure or a no-match leaves the document unclassified; neither
// blocks the document write.
func (s *documentService) autoAssignAccount(ctx context.Context, doc *domain.FinancialDocument) {
	logger := middleware.GetLoggerFromCtx(ctx)

	productIDs := make([]string, 0, len(doc.LineItems))
	for _, line := range doc.LineItems {
		if line.ProductID != nil {
			productIDs = append(productIDs, *line.ProductID)
		}
	}
	total := doc.TotalAmount
	ruleCtx := domain.RuleContext{
		ContactID:   &doc.ContactID,
		ProductIDs:  productIDs,
		TotalAmount: &total,
	}

	accountID, err := s.ruleEngine.AssignAccount(ctx, ruleCtx)
	if err != nil {
		logger.Warn("Rule evaluation failed; document left unclassified",
			slog.String("document_id", doc.DocumentID),
			slog.String("error", err.Error()),
		)
		return
	}
	if accountID == nil {
		return
	}
	doc.AnalyticalAccountID = accountID
	logger.Info("Analytical account auto-assigned",
		slog.String("document_id", doc.DocumentID),
		slog.String("analytical_account_id", *accountID),
	)
}

// saveWithNumberRetry generates a document number and persists the document,
// regenerating on a number collision up to maxNumberRetries times.
func (s *documentService) saveWithNumberRetry(ctx context.Context, doc *domain.FinancialDocument) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	prefix := doc.DocType.NumberPrefix()

	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		number, err := s.sequenceSvc.Next(ctx, prefix)
		if err != nil {
			return fmt.Errorf("failed to generate document number: %w", err)
		}
		doc.DocumentNumber = number

		err = s.docRepo.SaveDocument(ctx, *doc)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("failed to save document: %w", err)
		}
		logger.Warn("Document number collision, retrying",
			slog.String("document_number", number),
			slog.Int("attempt", attempt+1),
		)
	}
	return fmt.Errorf("%w: could not allocate a unique %s number after %d attempts", apperrors.ErrSequenceExhausted, prefix, maxNumberRetries)
}

// verifyAccountActive checks that an analytical account exists and is active.
func (s *documentService) verifyAccountActive(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: analytical account %s", apperrors.ErrNotFound, accountID)
		}
		return fmt.Errorf("failed to fetch analytical account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: analytical account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return nil
}

// validateContactForDocType enforces the contact-side of each document type:
// purchasing documents need a vendor, selling documents need a customer.
func validateContactForDocType(docType domain.DocumentType, contact *domain.Contact) error {
	if !contact.IsActive {
		return fmt.Errorf("%w: contact %s is inactive", apperrors.ErrValidation, contact.ContactID)
	}
	switch docType {
	case domain.PurchaseOrder, domain.VendorBill:
		if !contact.IsVendor() {
			return fmt.Errorf("%w: contact %s is not a vendor", apperrors.ErrValidation, contact.ContactID)
		}
	case domain.SalesOrder, domain.CustomerInvoice:
		if !contact.IsCustomer() {
			return fmt.Errorf("%w: contact %s is not a customer", apperrors.ErrValidation, contact.ContactID)
		}
	}
	return nil
}

// validateStatusTransition rejects statuses outside the document type's set
// and statuses that only reconciliation may produce.
func validateStatusTransition(docType domain.DocumentType, status domain.DocumentStatus) error {
	switch status {
	case domain.StatusPaid, domain.StatusPartiallyPaid, domain.StatusOverdue:
		return fmt.Errorf("%w: status %s is derived from payments and cannot be set directly", apperrors.ErrValidation, status)
	}
	for _, valid := range docType.ValidStatuses() {
		if status == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: status %s is not valid for %s", apperrors.ErrValidation, status, docType)
}
