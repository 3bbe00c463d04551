package pgsql

import (
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository implementation.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		RuleRepo:     newPgxRuleRepository(dbPool),
		ContactRepo:  newPgxContactRepository(dbPool),
		ProductRepo:  newPgxProductRepository(dbPool),
		DocumentRepo: newPgxDocumentRepository(dbPool),
		PaymentRepo:  newPgxPaymentRepository(dbPool),
		BudgetRepo:   newPgxBudgetRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
	}
}
