package repositories

// RepositoryProvider bundles every repository implementation for service wiring.
type RepositoryProvider struct {
	AccountRepo  AnalyticalAccountRepository
	RuleRepo     RuleRepository
	ContactRepo  ContactRepository
	ProductRepo  ProductRepository
	DocumentRepo DocumentRepositoryWithTx
	PaymentRepo  PaymentRepository
	BudgetRepo   BudgetRepository
	UserRepo     UserRepository
}
