package dto

import (
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
)

// CreateAnalyticalAccountRequest defines the data needed to create an analytical account.
type CreateAnalyticalAccountRequest struct {
	Name        string                       `json:"name" binding:"required"`
	Description string                       `json:"description"`
	AccountType domain.AnalyticalAccountType `json:"accountType" binding:"required,oneof=COST_CENTER REVENUE_CENTER PROJECT DEPARTMENT"`
}

// UpdateAnalyticalAccountRequest defines the metadata fields an account allows updating.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAnalyticalAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AnalyticalAccountResponse defines the data returned for an analytical account.
type AnalyticalAccountResponse struct {
	AccountID   string                       `json:"accountID"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	AccountType domain.AnalyticalAccountType `json:"accountType"`
	IsActive    bool                         `json:"isActive"`
	CreatedAt   time.Time                    `json:"createdAt"`
	CreatedBy   string                       `json:"createdBy"`
}

// ToAnalyticalAccountResponse converts a domain.AnalyticalAccount to its response DTO.
func ToAnalyticalAccountResponse(acc *domain.AnalyticalAccount) AnalyticalAccountResponse {
	return AnalyticalAccountResponse{
		AccountID:   acc.AccountID,
		Name:        acc.Name,
		Description: acc.Description,
		AccountType: acc.AccountType,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
		CreatedBy:   acc.CreatedBy,
	}
}

// ToListAnalyticalAccountResponse converts a slice of accounts to response DTOs.
func ToListAnalyticalAccountResponse(accounts []domain.AnalyticalAccount) []AnalyticalAccountResponse {
	res := make([]AnalyticalAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAnalyticalAccountResponse(&accounts[i])
	}
	return res
}

// ListParams defines common query parameters for paginated listings.
type ListParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
