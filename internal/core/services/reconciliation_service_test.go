package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/services"
)

// --- Mock DocumentRepository (implements DocumentRepositoryWithTx) ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.FinancialDocument, error) {
	args := m.Called(ctx, documentID)
	var doc *domain.FinancialDocument
	if args.Get(0) != nil {
		doc = args.Get(0).(*domain.FinancialDocument)
	}
	return doc, args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, offset int) ([]domain.FinancialDocument, error) {
	args := m.Called(ctx, docType, limit, offset)
	var docs []domain.FinancialDocument
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.FinancialDocument)
	}
	return docs, args.Error(1)
}

func (m *MockDocumentRepository) FindLatestNumber(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.FinancialDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, doc domain.FinancialDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindDocumentByIDForUpdate(ctx context.Context, tx pgx.Tx, documentID string) (*domain.FinancialDocument, error) {
	args := m.Called(ctx, tx, documentID)
	var doc *domain.FinancialDocument
	if args.Get(0) != nil {
		doc = args.Get(0).(*domain.FinancialDocument)
	}
	return doc, args.Error(1)
}

func (m *MockDocumentRepository) UpdateDocumentPaymentStateInTx(ctx context.Context, tx pgx.Tx, documentID string, paid decimal.Decimal, remaining decimal.Decimal, status domain.DocumentStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, documentID, paid, remaining, status, userID, now)
	return args.Error(0)
}

func (m *MockDocumentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockDocumentRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDocumentRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	var payment *domain.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.Payment)
	}
	return payment, args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentsByDocumentID(ctx context.Context, documentID string) ([]domain.Payment, error) {
	args := m.Called(ctx, documentID)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	return payments, args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, kind domain.PaymentKind, limit int, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, kind, limit, offset)
	var payments []domain.Payment
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.Payment)
	}
	return payments, args.Error(1)
}

func (m *MockPaymentRepository) FindLatestNumber(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

func (m *MockPaymentRepository) SumCompletedByDocumentInTx(ctx context.Context, tx pgx.Tx, documentID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, documentID)
	sum := decimal.Zero
	if args.Get(0) != nil {
		sum = args.Get(0).(decimal.Decimal)
	}
	return sum, args.Error(1)
}

func (m *MockPaymentRepository) SumCompletedBillPaymentsByAccount(ctx context.Context, analyticalAccountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, analyticalAccountID)
	sum := decimal.Zero
	if args.Get(0) != nil {
		sum = args.Get(0).(decimal.Decimal)
	}
	return sum, args.Error(1)
}

// --- Test Suite ---
type reconciliationServiceSuite struct {
	suite.Suite
	mockDocRepo     *MockDocumentRepository
	mockPaymentRepo *MockPaymentRepository
	userID          string
}

func (s *reconciliationServiceSuite) SetupTest() {
	s.mockDocRepo = new(MockDocumentRepository)
	s.mockPaymentRepo = new(MockPaymentRepository)
	s.userID = uuid.NewString()
}

func (s *reconciliationServiceSuite) invoice(total string, status domain.DocumentStatus) *domain.FinancialDocument {
	return &domain.FinancialDocument{
		DocumentID:  uuid.NewString(),
		DocType:     domain.CustomerInvoice,
		TotalAmount: decimal.RequireFromString(total),
		Status:      status,
	}
}

func (s *reconciliationServiceSuite) expectTx() {
	s.mockDocRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	s.mockDocRepo.On("Rollback", mock.Anything, mock.Anything).Return(pgx.ErrTxClosed).Maybe()
}

func (s *reconciliationServiceSuite) TestReconcile_FullyPaid() {
	ctx := context.Background()
	doc := s.invoice("1000", domain.StatusSent)

	s.expectTx()
	s.mockDocRepo.On("FindDocumentByIDForUpdate", ctx, mock.Anything, doc.DocumentID).Return(doc, nil).Once()
	// 400 + 600 completed
	s.mockPaymentRepo.On("SumCompletedByDocumentInTx", ctx, mock.Anything, doc.DocumentID).
		Return(decimal.NewFromInt(1000), nil).Once()
	s.mockDocRepo.On("UpdateDocumentPaymentStateInTx", ctx, mock.Anything, doc.DocumentID,
		decimal.NewFromInt(1000), mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }),
		domain.StatusPaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockDocRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	svc := services.NewReconciliationService(s.mockDocRepo, s.mockPaymentRepo)
	result, err := svc.Reconcile(ctx, doc.DocumentID, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.Equal(domain.StatusPaid, result.Status)
	s.True(result.PaidAmount.Equal(decimal.NewFromInt(1000)))
	s.True(result.RemainingAmount.IsZero())
	// Conservation: paid + remaining == total.
	s.True(result.PaidAmount.Add(result.RemainingAmount).Equal(doc.TotalAmount))
	s.mockDocRepo.AssertExpectations(s.T())
}

func (s *reconciliationServiceSuite) TestReconcile_PartiallyPaidInvoice() {
	ctx := context.Background()
	doc := s.invoice("1000", domain.StatusSent)

	s.expectTx()
	s.mockDocRepo.On("FindDocumentByIDForUpdate", ctx, mock.Anything, doc.DocumentID).Return(doc, nil).Once()
	s.mockPaymentRepo.On("SumCompletedByDocumentInTx", ctx, mock.Anything, doc.DocumentID).
		Return(decimal.NewFromInt(400), nil).Once()
	s.mockDocRepo.On("UpdateDocumentPaymentStateInTx", ctx, mock.Anything, doc.DocumentID,
		decimal.NewFromInt(400), decimal.NewFromInt(600),
		domain.StatusPartiallyPaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockDocRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	svc := services.NewReconciliationService(s.mockDocRepo, s.mockPaymentRepo)
	result, err := svc.Reconcile(ctx, doc.DocumentID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.StatusPartiallyPaid, result.Status)
	s.True(result.RemainingAmount.Equal(decimal.NewFromInt(600)))
}

func (s *reconciliationServiceSuite) TestReconcile_PartiallyPaidBillKeepsStatus() {
	ctx := context.Background()
	doc := &domain.FinancialDocument{
		DocumentID:  uuid.NewString(),
		DocType:     domain.VendorBill,
		TotalAmount: decimal.NewFromInt(1000),
		Status:      domain.StatusOpen,
	}

	s.expectTx()
	s.mockDocRepo.On("FindDocumentByIDForUpdate", ctx, mock.Anything, doc.DocumentID).Return(doc, nil).Once()
	s.mockPaymentRepo.On("SumCompletedByDocumentInTx", ctx, mock.Anything, doc.DocumentID).
		Return(decimal.NewFromInt(400), nil).Once()
	// Bills have no partial state: the bill stays OPEN until fully paid.
	s.mockDocRepo.On("UpdateDocumentPaymentStateInTx", ctx, mock.Anything, doc.DocumentID,
		decimal.NewFromInt(400), decimal.NewFromInt(600),
		domain.StatusOpen, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockDocRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	svc := services.NewReconciliationService(s.mockDocRepo, s.mockPaymentRepo)
	result, err := svc.Reconcile(ctx, doc.DocumentID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.StatusOpen, result.Status)
}

func (s *reconciliationServiceSuite) TestReconcile_OverdueInvoice() {
	ctx := context.Background()
	pastDue := time.Now().UTC().Add(-48 * time.Hour)
	doc := s.invoice("500", domain.StatusSent)
	doc.DueDate = &pastDue

	s.expectTx()
	s.mockDocRepo.On("FindDocumentByIDForUpdate", ctx, mock.Anything, doc.DocumentID).Return(doc, nil).Once()
	s.mockPaymentRepo.On("SumCompletedByDocumentInTx", ctx, mock.Anything, doc.DocumentID).
		Return(decimal.Zero, nil).Once()
	s.mockDocRepo.On("UpdateDocumentPaymentStateInTx", ctx, mock.Anything, doc.DocumentID,
		decimal.Zero, decimal.NewFromInt(500),
		domain.StatusOverdue, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockDocRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	svc := services.NewReconciliationService(s.mockDocRepo, s.mockPaymentRepo)
	result, err := svc.Reconcile(ctx, doc.DocumentID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.StatusOverdue, result.Status)
}

func (s *reconciliationServiceSuite) TestReconcile_OverpaymentStillPaid() {
	ctx := context.Background()
	doc := s.invoice("1000", domain.StatusSent)

	s.expectTx()
	s.mockDocRepo.On("FindDocumentByIDForUpdate", ctx, mock.Anything, doc.DocumentID).Return(doc, nil).Once()
	s.mockPaymentRepo.On("SumCompletedByDocumentInTx", ctx, mock.Anything, doc.DocumentID).
		Return(decimal.NewFromInt(1200), nil).Once()
	s.mockDocRepo.On("UpdateDocumentPaymentStateInTx", ctx, mock.Anything, doc.DocumentID,
		decimal.NewFromInt(1200), decimal.NewFromInt(-200),
		domain.StatusPaid, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockDocRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	svc := services.NewReconciliationService(s.mockDocRepo, s.mockPaymentRepo)
	result, err := svc.Reconcile(ctx, doc.DocumentID, s.userID)

	s.Require().NoError(err)
	s.Equal(domain.StatusPaid, result.Status)
	s.True(result.RemainingAmount.IsNegative())
}

func (s *reconciliationServiceSuite) TestReconcile_NonPayableRejected() {
	ctx := context.Background()
	doc := &domain.FinancialDocument{
		DocumentID:  uuid.NewString(),
		DocType:     domain.PurchaseOrder,
		TotalAmount: decimal.NewFromInt(100),
		Status:      domain.StatusConfirmed,
	}

	s.expectTx()
	s.mockDocRepo.On("FindDocumentByIDForUpdate", ctx, mock.Anything, doc.DocumentID).Return(doc, nil).Once()

	svc := services.NewReconciliationService(s.mockDocRepo, s.mockPaymentRepo)
	result, err := svc.Reconcile(ctx, doc.DocumentID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(result)
}

func (s *reconciliationServiceSuite) TestReconcile_DocumentNotFound() {
	ctx := context.Background()
	documentID := uuid.NewString()

	s.expectTx()
	s.mockDocRepo.On("FindDocumentByIDForUpdate", ctx, mock.Anything, documentID).Return(nil, apperrors.ErrNotFound).Once()

	svc := services.NewReconciliationService(s.mockDocRepo, s.mockPaymentRepo)
	result, err := svc.Reconcile(ctx, documentID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(result)
}

func (s *reconciliationServiceSuite) TestReconcile_SumErrorWrapped() {
	ctx := context.Background()
	doc := s.invoice("100", domain.StatusSent)

	s.expectTx()
	s.mockDocRepo.On("FindDocumentByIDForUpdate", ctx, mock.Anything, doc.DocumentID).Return(doc, nil).Once()
	s.mockPaymentRepo.On("SumCompletedByDocumentInTx", ctx, mock.Anything, doc.DocumentID).
		Return(nil, assert.AnError).Once()

	svc := services.NewReconciliationService(s.mockDocRepo, s.mockPaymentRepo)
	result, err := svc.Reconcile(ctx, doc.DocumentID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrReconciliationFailed)
	s.Nil(result)
}

func TestReconciliationServiceSuite(t *testing.T) {
	suite.Run(t, new(reconciliationServiceSuite))
}
