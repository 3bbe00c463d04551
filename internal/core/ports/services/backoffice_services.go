package services

import (
	"context"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/dto"
)

// AnalyticalAccountSvcFacade exposes analytical-account operations to handlers.
type AnalyticalAccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAnalyticalAccountRequest, creatorUserID string) (*domain.AnalyticalAccount, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.AnalyticalAccount, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AnalyticalAccount, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAnalyticalAccountRequest, userID string) (*domain.AnalyticalAccount, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// RuleSvcFacade exposes assignment-rule administration to handlers.
type RuleSvcFacade interface {
	CreateRule(ctx context.Context, req dto.CreateRuleRequest, creatorUserID string) (*domain.AssignmentRule, error)
	GetRuleByID(ctx context.Context, ruleID string) (*domain.AssignmentRule, error)
	ListRules(ctx context.Context, limit int, offset int) ([]domain.AssignmentRule, error)
	UpdateRule(ctx context.Context, ruleID string, req dto.UpdateRuleRequest, userID string) (*domain.AssignmentRule, error)
	DeactivateRule(ctx context.Context, ruleID string, userID string) error
}

// ContactSvcFacade exposes contact operations to handlers.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest, creatorUserID string) (*domain.Contact, error)
	GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, contactType *domain.ContactType, limit int, offset int) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, contactID string, req dto.UpdateContactRequest, userID string) (*domain.Contact, error)
	DeactivateContact(ctx context.Context, contactID string, userID string) error
}

// ProductSvcFacade exposes product operations to handlers.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	DeactivateProduct(ctx context.Context, productID string, userID string) error
}

// DocumentSvcFacade exposes financial-document operations to handlers. The same
// facade serves purchase orders, sales orders, vendor bills and customer
// invoices; the docType parameter selects which.
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.CreateDocumentRequest, creatorUserID string) (*domain.FinancialDocument, error)
	GetDocumentByID(ctx context.Context, docType domain.DocumentType, documentID string) (*domain.FinancialDocument, error)
	ListDocuments(ctx context.Context, docType domain.DocumentType, limit int, offset int) ([]domain.FinancialDocument, error)
	UpdateDocument(ctx context.Context, docType domain.DocumentType, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.FinancialDocument, error)
	CancelDocument(ctx context.Context, docType domain.DocumentType, documentID string, userID string) error
}

// PaymentSvcFacade exposes payment operations to handlers. Payment writes
// trigger reconciliation of the owning document and, for bill payments,
// budget recomputation.
type PaymentSvcFacade interface {
	CreatePayment(ctx context.Context, kind domain.PaymentKind, req dto.CreatePaymentRequest, creatorUserID string) (*domain.Payment, error)
	GetPaymentByID(ctx context.Context, kind domain.PaymentKind, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, kind domain.PaymentKind, limit int, offset int) ([]domain.Payment, error)
	UpdatePayment(ctx context.Context, kind domain.PaymentKind, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error)
	DeletePayment(ctx context.Context, kind domain.PaymentKind, paymentID string, userID string) error
}

// BudgetSvcFacade exposes budget operations to handlers, including the spent
// recomputation used by payment writes.
type BudgetSvcFacade interface {
	BudgetTrackerSvc

	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error)
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)
	DeactivateBudget(ctx context.Context, budgetID string, userID string) error
}

// UserSvcFacade exposes user management to handlers.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeactivateUser(ctx context.Context, userID string, updaterUserID string) error
}

// AuthSvc exposes authentication to the public handlers.
type AuthSvc interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
