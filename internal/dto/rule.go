package dto

import (
	"time"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RuleConditionsPayload carries the optional condition fields of a rule.
type RuleConditionsPayload struct {
	VendorID  *string          `json:"vendorID"`
	ProductID *string          `json:"productID"`
	MinAmount *decimal.Decimal `json:"minAmount"`
	MaxAmount *decimal.Decimal `json:"maxAmount"`
	Keywords  []string         `json:"keywords"`
}

// CreateRuleRequest defines the data needed to create an assignment rule.
type CreateRuleRequest struct {
	Name            string                `json:"name" binding:"required"`
	RuleType        domain.RuleType       `json:"ruleType" binding:"required,oneof=VENDOR_BASED PRODUCT_BASED AMOUNT_BASED CUSTOM"`
	Conditions      RuleConditionsPayload `json:"conditions"`
	TargetAccountID string                `json:"targetAccountID" binding:"required"`
	Priority        int                   `json:"priority"`
}

// UpdateRuleRequest defines the fields a rule allows updating.
type UpdateRuleRequest struct {
	Name            *string                `json:"name"`
	Conditions      *RuleConditionsPayload `json:"conditions"`
	TargetAccountID *string                `json:"targetAccountID"`
	Priority        *int                   `json:"priority"`
}

// RuleResponse defines the data returned for an assignment rule.
type RuleResponse struct {
	RuleID          string                `json:"ruleID"`
	Name            string                `json:"name"`
	RuleType        domain.RuleType       `json:"ruleType"`
	Conditions      RuleConditionsPayload `json:"conditions"`
	TargetAccountID string                `json:"targetAccountID"`
	Priority        int                   `json:"priority"`
	IsActive        bool                  `json:"isActive"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ToRuleConditions converts the payload into the domain condition set.
func (p RuleConditionsPayload) ToRuleConditions() domain.RuleConditions {
	return domain.RuleConditions{
		VendorID:  p.VendorID,
		ProductID: p.ProductID,
		MinAmount: p.MinAmount,
		MaxAmount: p.MaxAmount,
		Keywords:  p.Keywords,
	}
}

// ToRuleResponse converts a domain.AssignmentRule to its response DTO.
func ToRuleResponse(rule *domain.AssignmentRule) RuleResponse {
	return RuleResponse{
		RuleID:   rule.RuleID,
		Name:     rule.Name,
		RuleType: rule.RuleType,
		Conditions: RuleConditionsPayload{
			VendorID:  rule.Conditions.VendorID,
			ProductID: rule.Conditions.ProductID,
			MinAmount: rule.Conditions.MinAmount,
			MaxAmount: rule.Conditions.MaxAmount,
			Keywords:  rule.Conditions.Keywords,
		},
		TargetAccountID: rule.TargetAccountID,
		Priority:        rule.Priority,
		IsActive:        rule.IsActive,
		CreatedAt:       rule.CreatedAt,
		CreatedBy:       rule.CreatedBy,
	}
}

// ToListRuleResponse converts a slice of rules to response DTOs.
func ToListRuleResponse(rules []domain.AssignmentRule) []RuleResponse {
	res := make([]RuleResponse, len(rules))
	for i := range rules {
		res[i] = ToRuleResponse(&rules[i])
	}
	return res
}
