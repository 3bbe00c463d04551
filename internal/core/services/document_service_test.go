package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/apperrors"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
)

// --- Mock ContactRepository ---
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	var contact *domain.Contact
	if args.Get(0) != nil {
		contact = args.Get(0).(*domain.Contact)
	}
	return contact, args.Error(1)
}

func (m *MockContactRepository) ListContacts(ctx context.Context, contactType *domain.ContactType, limit int, offset int) ([]domain.Contact, error) {
	args := m.Called(ctx, contactType, limit, offset)
	var contacts []domain.Contact
	if args.Get(0) != nil {
		contacts = args.Get(0).([]domain.Contact)
	}
	return contacts, args.Error(1)
}

func (m *MockContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) DeactivateContact(ctx context.Context, contactID string, userID string, now time.Time) error {
	args := m.Called(ctx, contactID, userID, now)
	return args.Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	var product *domain.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*domain.Product)
	}
	return product, args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	var products map[string]domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).(map[string]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, productID string, userID string, now time.Time) error {
	args := m.Called(ctx, productID, userID, now)
	return args.Error(0)
}

// --- Mock RuleEngineSvc ---
type MockRuleEngine struct {
	mock.Mock
}

func (m *MockRuleEngine) AssignAccount(ctx context.Context, ruleCtx domain.RuleContext) (*string, error) {
	args := m.Called(ctx, ruleCtx)
	var target *string
	if args.Get(0) != nil {
		target = args.Get(0).(*string)
	}
	return target, args.Error(1)
}

// --- Mock SequenceSvc ---
type MockSequenceSvc struct {
	mock.Mock
}

func (m *MockSequenceSvc) Next(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type documentServiceSuite struct {
	suite.Suite
	mockDocRepo     *MockDocumentRepository
	mockContactRepo *MockContactRepository
	mockProductRepo *MockProductRepository
	mockAccountRepo *MockAccountRepository
	mockRuleEngine  *MockRuleEngine
	mockSequence    *MockSequenceSvc
	service         portssvc.DocumentSvcFacade
	userID          string
}

func (s *documentServiceSuite) SetupTest() {
	s.mockDocRepo = new(MockDocumentRepository)
	s.mockContactRepo = new(MockContactRepository)
	s.mockProductRepo = new(MockProductRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockRuleEngine = new(MockRuleEngine)
	s.mockSequence = new(MockSequenceSvc)
	s.service = services.NewDocumentService(
		s.mockDocRepo,
		s.mockContactRepo,
		s.mockProductRepo,
		s.mockAccountRepo,
		s.mockRuleEngine,
		s.mockSequence,
	)
	s.userID = uuid.NewString()
}

func (s *documentServiceSuite) vendor() *domain.Contact {
	return &domain.Contact{ContactID: uuid.NewString(), Name: "Acme Supplies", ContactType: domain.Vendor, IsActive: true}
}

func (s *documentServiceSuite) customer() *domain.Contact {
	return &domain.Contact{ContactID: uuid.NewString(), Name: "Globex", ContactType: domain.Customer, IsActive: true}
}

func (s *documentServiceSuite) TestCreateDocument_DerivesTotalsAndNumber() {
	ctx := context.Background()
	vendor := s.vendor()

	s.mockContactRepo.On("FindContactByID", ctx, vendor.ContactID).Return(vendor, nil).Once()
	s.mockRuleEngine.On("AssignAccount", ctx, mock.Anything).Return(nil, nil).Once()
	s.mockSequence.On("Next", ctx, "BILL").Return("BILL-2026-0001", nil).Once()
	s.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(doc domain.FinancialDocument) bool {
		return doc.DocumentNumber == "BILL-2026-0001" &&
			doc.Status == domain.StatusDraft &&
			doc.Subtotal.Equal(decimal.NewFromInt(200)) &&
			doc.TaxAmount.Equal(decimal.NewFromInt(20)) &&
			doc.TotalAmount.Equal(decimal.NewFromInt(220)) &&
			doc.RemainingAmount.Equal(decimal.NewFromInt(220))
	})).Return(nil).Once()

	doc, err := s.service.CreateDocument(ctx, domain.VendorBill, dto.CreateDocumentRequest{
		ContactID:    vendor.ContactID,
		DocumentDate: time.Now().UTC(),
		LineItems: []dto.LineItemRequest{
			{
				Description:    "Office chairs",
				Quantity:       decimal.NewFromInt(2),
				UnitPrice:      decimal.NewFromInt(100),
				TaxRatePercent: decimal.NewFromInt(10),
			},
		},
	}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(doc)
	s.Equal(domain.VendorBill, doc.DocType)
	s.mockDocRepo.AssertExpectations(s.T())
}

func (s *documentServiceSuite) TestCreateDocument_AutoAssignsAccount() {
	ctx := context.Background()
	vendor := s.vendor()
	target := uuid.NewString()

	s.mockContactRepo.On("FindContactByID", ctx, vendor.ContactID).Return(vendor, nil).Once()
	s.mockRuleEngine.On("AssignAccount", ctx, mock.MatchedBy(func(rc domain.RuleContext) bool {
		return rc.ContactID != nil && *rc.ContactID == vendor.ContactID
	})).Return(&target, nil).Once()
	s.mockSequence.On("Next", ctx, "BILL").Return("BILL-2026-0002", nil).Once()
	s.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(doc domain.FinancialDocument) bool {
		return doc.AnalyticalAccountID != nil && *doc.AnalyticalAccountID == target
	})).Return(nil).Once()

	doc, err := s.service.CreateDocument(ctx, domain.VendorBill, dto.CreateDocumentRequest{
		ContactID:    vendor.ContactID,
		DocumentDate: time.Now().UTC(),
		LineItems: []dto.LineItemRequest{
			{Description: "Catering", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(500)},
		},
	}, s.userID)

	s.Require().NoError(err)
	s.Require().NotNil(doc.AnalyticalAccountID)
	s.Equal(target, *doc.AnalyticalAccountID)
}

func (s *documentServiceSuite) TestCreateDocument_ExplicitAccountSkipsRuleEngine() {
	ctx := context.Background()
	vendor := s.vendor()
	accountID := uuid.NewString()
	account := &domain.AnalyticalAccount{AccountID: accountID, IsActive: true}

	s.mockContactRepo.On("FindContactByID", ctx, vendor.ContactID).Return(vendor, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	s.mockSequence.On("Next", ctx, "BILL").Return("BILL-2026-0003", nil).Once()
	s.mockDocRepo.On("SaveDocument", ctx, mock.Anything).Return(nil).Once()

	_, err := s.service.CreateDocument(ctx, domain.VendorBill, dto.CreateDocumentRequest{
		ContactID:           vendor.ContactID,
		DocumentDate:        time.Now().UTC(),
		AnalyticalAccountID: &accountID,
		LineItems: []dto.LineItemRequest{
			{Description: "Paper", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5)},
		},
	}, s.userID)

	s.Require().NoError(err)
	s.mockRuleEngine.AssertNotCalled(s.T(), "AssignAccount", mock.Anything, mock.Anything)
}

func (s *documentServiceSuite) TestCreateDocument_RejectsCustomerOnPurchaseSide() {
	ctx := context.Background()
	customer := s.customer()

	s.mockContactRepo.On("FindContactByID", ctx, customer.ContactID).Return(customer, nil).Once()

	_, err := s.service.CreateDocument(ctx, domain.PurchaseOrder, dto.CreateDocumentRequest{
		ContactID:    customer.ContactID,
		DocumentDate: time.Now().UTC(),
		LineItems: []dto.LineItemRequest{
			{Description: "Anything", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockDocRepo.AssertNotCalled(s.T(), "SaveDocument", mock.Anything, mock.Anything)
}

func (s *documentServiceSuite) TestCreateDocument_LinePricingFromProduct() {
	ctx := context.Background()
	customer := s.customer()
	productID := uuid.NewString()
	product := domain.Product{
		ProductID:      productID,
		Name:           "Consulting hour",
		UnitPrice:      decimal.NewFromInt(150),
		TaxRatePercent: decimal.NewFromInt(20),
		ProductType:    domain.Service,
		IsActive:       true,
	}

	s.mockContactRepo.On("FindContactByID", ctx, customer.ContactID).Return(customer, nil).Once()
	s.mockProductRepo.On("FindProductsByIDs", ctx, []string{productID}).
		Return(map[string]domain.Product{productID: product}, nil).Once()
	s.mockRuleEngine.On("AssignAccount", ctx, mock.Anything).Return(nil, nil).Once()
	s.mockSequence.On("Next", ctx, "INV").Return("INV-2026-0001", nil).Once()
	s.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(doc domain.FinancialDocument) bool {
		line := doc.LineItems[0]
		return line.UnitPrice.Equal(decimal.NewFromInt(150)) &&
			line.TaxRatePercent.Equal(decimal.NewFromInt(20)) &&
			line.Description == "Consulting hour" &&
			doc.TotalAmount.Equal(decimal.NewFromInt(360)) // 2*150 + 20% tax
	})).Return(nil).Once()

	_, err := s.service.CreateDocument(ctx, domain.CustomerInvoice, dto.CreateDocumentRequest{
		ContactID:    customer.ContactID,
		DocumentDate: time.Now().UTC(),
		LineItems: []dto.LineItemRequest{
			{ProductID: &productID, Quantity: decimal.NewFromInt(2)},
		},
	}, s.userID)

	s.Require().NoError(err)
	s.mockDocRepo.AssertExpectations(s.T())
}

func (s *documentServiceSuite) TestCreateDocument_NumberCollisionRetries() {
	ctx := context.Background()
	vendor := s.vendor()

	s.mockContactRepo.On("FindContactByID", ctx, vendor.ContactID).Return(vendor, nil).Once()
	s.mockRuleEngine.On("AssignAccount", ctx, mock.Anything).Return(nil, nil).Once()
	s.mockSequence.On("Next", ctx, "BILL").Return("BILL-2026-0007", nil).Once()
	s.mockSequence.On("Next", ctx, "BILL").Return("BILL-2026-0008", nil).Once()
	s.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(doc domain.FinancialDocument) bool {
		return doc.DocumentNumber == "BILL-2026-0007"
	})).Return(apperrors.ErrDuplicate).Once()
	s.mockDocRepo.On("SaveDocument", ctx, mock.MatchedBy(func(doc domain.FinancialDocument) bool {
		return doc.DocumentNumber == "BILL-2026-0008"
	})).Return(nil).Once()

	doc, err := s.service.CreateDocument(ctx, domain.VendorBill, dto.CreateDocumentRequest{
		ContactID:    vendor.ContactID,
		DocumentDate: time.Now().UTC(),
		LineItems: []dto.LineItemRequest{
			{Description: "Toner", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(80)},
		},
	}, s.userID)

	s.Require().NoError(err)
	s.Equal("BILL-2026-0008", doc.DocumentNumber)
}

func (s *documentServiceSuite) TestCreateDocument_SequenceExhaustedAfterRetries() {
	ctx := context.Background()
	vendor := s.vendor()

	s.mockContactRepo.On("FindContactByID", ctx, vendor.ContactID).Return(vendor, nil).Once()
	s.mockRuleEngine.On("AssignAccount", ctx, mock.Anything).Return(nil, nil).Once()
	s.mockSequence.On("Next", ctx, "BILL").Return("BILL-2026-0009", nil).Times(3)
	s.mockDocRepo.On("SaveDocument", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Times(3)

	_, err := s.service.CreateDocument(ctx, domain.VendorBill, dto.CreateDocumentRequest{
		ContactID:    vendor.ContactID,
		DocumentDate: time.Now().UTC(),
		LineItems: []dto.LineItemRequest{
			{Description: "Toner", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(80)},
		},
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrSequenceExhausted)
}

func (s *documentServiceSuite) TestUpdateDocument_RejectsDerivedStatus() {
	ctx := context.Background()
	doc := &domain.FinancialDocument{
		DocumentID:   uuid.NewString(),
		DocType:      domain.CustomerInvoice,
		Status:       domain.StatusSent,
		ContactID:    uuid.NewString(),
		DocumentDate: time.Now().UTC(),
	}
	paid := domain.StatusPaid

	s.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := s.service.UpdateDocument(ctx, domain.CustomerInvoice, doc.DocumentID, dto.UpdateDocumentRequest{
		Status: &paid,
	}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *documentServiceSuite) TestUpdateDocument_WrongTypeIsNotFound() {
	ctx := context.Background()
	doc := &domain.FinancialDocument{
		DocumentID: uuid.NewString(),
		DocType:    domain.VendorBill,
		Status:     domain.StatusOpen,
	}

	s.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := s.service.UpdateDocument(ctx, domain.CustomerInvoice, doc.DocumentID, dto.UpdateDocumentRequest{}, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *documentServiceSuite) TestCancelDocument_RejectedWithPayments() {
	ctx := context.Background()
	doc := &domain.FinancialDocument{
		DocumentID:  uuid.NewString(),
		DocType:     domain.VendorBill,
		Status:      domain.StatusOpen,
		TotalAmount: decimal.NewFromInt(100),
		PaidAmount:  decimal.NewFromInt(40),
	}

	s.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	err := s.service.CancelDocument(ctx, domain.VendorBill, doc.DocumentID, s.userID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockDocRepo.AssertNotCalled(s.T(), "UpdateDocument", mock.Anything, mock.Anything)
}

func (s *documentServiceSuite) TestCancelDocument_Succeeds() {
	ctx := context.Background()
	doc := &domain.FinancialDocument{
		DocumentID: uuid.NewString(),
		DocType:    domain.PurchaseOrder,
		Status:     domain.StatusDraft,
	}

	s.mockDocRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	s.mockDocRepo.On("UpdateDocument", ctx, mock.MatchedBy(func(d domain.FinancialDocument) bool {
		return d.Status == domain.StatusCancelled
	})).Return(nil).Once()

	err := s.service.CancelDocument(ctx, domain.PurchaseOrder, doc.DocumentID, s.userID)

	s.Require().NoError(err)
	s.mockDocRepo.AssertExpectations(s.T())
}

func TestDocumentServiceSuite(t *testing.T) {
	suite.Run(t, new(documentServiceSuite))
}
