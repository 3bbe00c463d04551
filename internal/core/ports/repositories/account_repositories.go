package repositories

import (
	"context"
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
)

// AnalyticalAccountReader defines read operations for analytical accounts.
type AnalyticalAccountReader interface {
	// FindAccountByID retrieves a specific analytical account by its identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.AnalyticalAccount, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs
	// are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.AnalyticalAccount, error)

	// ListAccounts retrieves a paginated list of active analytical accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AnalyticalAccount, error)
}

// AnalyticalAccountWriter defines write operations for analytical accounts.
type AnalyticalAccountWriter interface {
	// SaveAccount persists a new analytical account.
	SaveAccount(ctx context.Context, account domain.AnalyticalAccount) error

	// UpdateAccount updates an existing account's metadata fields.
	UpdateAccount(ctx context.Context, account domain.AnalyticalAccount) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AnalyticalAccountRepository combines all analytical-account repository interfaces.
type AnalyticalAccountRepository interface {
	AnalyticalAccountReader
	AnalyticalAccountWriter
}
