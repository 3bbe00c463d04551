package domain

import "github.com/shopspring/decimal"

// RuleType identifies which condition set an assignment rule evaluates.
type RuleType string

const (
	VendorBased  RuleType = "VENDOR_BASED"
	ProductBased RuleType = "PRODUCT_BASED"
	AmountBased  RuleType = "AMOUNT_BASED"
	Custom       RuleType = "CUSTOM"
)

// RuleConditions holds the optional condition fields of an assignment rule.
// Which fields are meaningful depends on the rule type; a rule whose type-relevant
// fields are unset simply never matches (except AMOUNT_BASED, which matches
// unconditionally when both bounds are unset).
type RuleConditions struct {
	VendorID  *string          `json:"vendorID,omitempty"`
	ProductID *string          `json:"productID,omitempty"`
	MinAmount *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`
	Keywords  []string         `json:"keywords,omitempty"`
}

// RuleContext is the snapshot of a document being created that rules are
// evaluated against.
type RuleContext struct {
	ContactID   *string          `json:"contactID,omitempty"`
	ProductIDs  []string         `json:"productIDs,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
}

// AssignmentRule auto-selects an analytical account for a new transaction.
// Rules are evaluated in priority order (higher first, ties broken by creation
// order) and the first matching rule wins.
type AssignmentRule struct {
	RuleID          string         `json:"ruleID"`
	Name            string         `json:"name"`
	RuleType        RuleType       `json:"ruleType"`
	Conditions      RuleConditions `json:"conditions"`
	TargetAccountID string         `json:"targetAccountID"`
	Priority        int            `json:"priority"`
	IsActive        bool           `json:"isActive"`
	AuditFields
}
