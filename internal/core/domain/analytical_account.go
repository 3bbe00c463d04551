package domain

// AnalyticalAccountType classifies what an analytical account tracks.
type AnalyticalAccountType string

const (
	CostCenter    AnalyticalAccountType = "COST_CENTER"
	RevenueCenter AnalyticalAccountType = "REVENUE_CENTER"
	Project       AnalyticalAccountType = "PROJECT"
	Department    AnalyticalAccountType = "DEPARTMENT"
)

// AnalyticalAccount is a cost/revenue classification dimension attached to
// transactions for budget reporting. Name is unique. Once a document references
// an account only its metadata fields (description) may change.
type AnalyticalAccount struct {
	AccountID   string                `json:"accountID"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	AccountType AnalyticalAccountType `json:"accountType"`
	IsActive    bool                  `json:"isActive"`
	AuditFields
}
