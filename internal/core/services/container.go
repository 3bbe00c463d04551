package services

import (
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/platform/config"
)

// NewServiceContainer wires every service with its dependencies. Documents and
// payments number from separate tables, so each gets its own sequence
// generator backed by the matching repository.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Rule = NewRuleService(repos.RuleRepo, repos.AccountRepo)
	container.RuleEngine = NewRuleEngine(repos.RuleRepo)
	container.Sequence = NewSequenceService(repos.DocumentRepo)
	container.Contact = NewContactService(repos.ContactRepo)
	container.Product = NewProductService(repos.ProductRepo)

	container.Document = NewDocumentService(
		repos.DocumentRepo,
		repos.ContactRepo,
		repos.ProductRepo,
		repos.AccountRepo,
		container.RuleEngine,
		container.Sequence,
	)

	container.Reconciliation = NewReconciliationService(repos.DocumentRepo, repos.PaymentRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.PaymentRepo, repos.AccountRepo)

	paymentSequence := NewSequenceService(repos.PaymentRepo)
	container.Payment = NewPaymentService(
		repos.PaymentRepo,
		repos.DocumentRepo,
		paymentSequence,
		container.Reconciliation,
		container.Budget,
	)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo, container.User)

	return container
}
