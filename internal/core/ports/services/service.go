package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account        AnalyticalAccountSvcFacade
	Rule           RuleSvcFacade
	RuleEngine     RuleEngineSvc
	Sequence       SequenceSvc
	Contact        ContactSvcFacade
	Product        ProductSvcFacade
	Document       DocumentSvcFacade
	Payment        PaymentSvcFacade
	Reconciliation ReconciliationSvc
	Budget         BudgetSvcFacade
	User           UserSvcFacade
	Auth           AuthSvc
}
