package services

import (
	"context"
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

// accountService manages analytical accounts, the classification dimension
// rules, documents, payments and budgets all hang off.
type accountService struct {
	accountRepo portsrepo.AnalyticalAccountRepository
}

// NewAccountService creates the analytical-account service.
func NewAccountService(accountRepo portsrepo.AnalyticalAccountRepository) portssvc.AnalyticalAccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AnalyticalAccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new analytical account. Account names are unique;
// a clash surfaces as apperrors.ErrDuplicate from the repository.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAnalyticalAccountRequest, creatorUserID string) (*domain.AnalyticalAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.AnalyticalAccount{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AccountType: req.AccountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save analytical account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save analytical account: %w", err)
	}

	logger.Info("Analytical account created", slog.String("account_id", account.AccountID), slog.String("name", account.Name))
	return &account, nil
}

// GetAccountByID retrieves an analytical account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.AnalyticalAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find analytical account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of active analytical accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AnalyticalAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analytical accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount updates an account's metadata. The account type is fixed at
// creation.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAnalyticalAccountRequest, userID string) (*domain.AnalyticalAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find analytical account %s: %w", accountID, err)
	}

	updated := false
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
		}
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update analytical account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update analytical account %s: %w", accountID, err)
	}

	logger.Info("Analytical account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account as inactive. Historical documents keep
// referencing it; only new classifications are blocked.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate analytical account %s: %w", accountID, err)
	}
	return nil
}
