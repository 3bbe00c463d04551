package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/services"
)

// --- Mock RuleReader ---
type MockRuleReader struct {
	mock.Mock
}

func (m *MockRuleReader) FindRuleByID(ctx context.Context, ruleID string) (*domain.AssignmentRule, error) {
	args := m.Called(ctx, ruleID)
	var rule *domain.AssignmentRule
	if args.Get(0) != nil {
		rule = args.Get(0).(*domain.AssignmentRule)
	}
	return rule, args.Error(1)
}

func (m *MockRuleReader) ListRulesForEvaluation(ctx context.Context) ([]domain.AssignmentRule, error) {
	args := m.Called(ctx)
	var rules []domain.AssignmentRule
	if args.Get(0) != nil {
		rules = args.Get(0).([]domain.AssignmentRule)
	}
	return rules, args.Error(1)
}

func (m *MockRuleReader) ListRules(ctx context.Context, limit int, offset int) ([]domain.AssignmentRule, error) {
	args := m.Called(ctx, limit, offset)
	var rules []domain.AssignmentRule
	if args.Get(0) != nil {
		rules = args.Get(0).([]domain.AssignmentRule)
	}
	return rules, args.Error(1)
}

// --- Test Suite ---
type ruleEngineSuite struct {
	suite.Suite
	mockRuleRepo *MockRuleReader
}

func strPtr(s string) *string { return &s }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func vendorRule(vendorID string, target string, priority int) domain.AssignmentRule {
	return domain.AssignmentRule{
		RuleID:          uuid.NewString(),
		Name:            "vendor rule",
		RuleType:        domain.VendorBased,
		Conditions:      domain.RuleConditions{VendorID: strPtr(vendorID)},
		TargetAccountID: target,
		Priority:        priority,
		IsActive:        true,
		AuditFields:     domain.AuditFields{CreatedAt: time.Now().UTC()},
	}
}

func (s *ruleEngineSuite) SetupTest() {
	s.mockRuleRepo = new(MockRuleReader)
}

func (s *ruleEngineSuite) TestAssignAccount_FirstMatchWins() {
	ctx := context.Background()
	vendorID := uuid.NewString()

	// Repo returns rules already in evaluation order; the engine must take the
	// first match and not keep looking for a "better" one.
	high := vendorRule(vendorID, "acct-high", 100)
	low := vendorRule(vendorID, "acct-low", 1)
	s.mockRuleRepo.On("ListRulesForEvaluation", ctx).Return([]domain.AssignmentRule{high, low}, nil).Once()

	engine := services.NewRuleEngine(s.mockRuleRepo)
	target, err := engine.AssignAccount(ctx, domain.RuleContext{ContactID: &vendorID})

	s.Require().NoError(err)
	s.Require().NotNil(target)
	s.Equal("acct-high", *target)
	s.mockRuleRepo.AssertExpectations(s.T())
}

func (s *ruleEngineSuite) TestAssignAccount_SkipsNonMatchingHigherPriority() {
	ctx := context.Background()
	vendorID := uuid.NewString()

	other := vendorRule(uuid.NewString(), "acct-other", 100)
	match := vendorRule(vendorID, "acct-match", 5)
	s.mockRuleRepo.On("ListRulesForEvaluation", ctx).Return([]domain.AssignmentRule{other, match}, nil).Once()

	engine := services.NewRuleEngine(s.mockRuleRepo)
	target, err := engine.AssignAccount(ctx, domain.RuleContext{ContactID: &vendorID})

	s.Require().NoError(err)
	s.Require().NotNil(target)
	s.Equal("acct-match", *target)
}

func (s *ruleEngineSuite) TestAssignAccount_NoMatchReturnsNilNil() {
	ctx := context.Background()

	s.mockRuleRepo.On("ListRulesForEvaluation", ctx).Return([]domain.AssignmentRule{
		vendorRule(uuid.NewString(), "acct", 10),
	}, nil).Once()

	engine := services.NewRuleEngine(s.mockRuleRepo)
	target, err := engine.AssignAccount(ctx, domain.RuleContext{ContactID: strPtr(uuid.NewString())})

	s.Require().NoError(err)
	s.Nil(target)
}

func (s *ruleEngineSuite) TestAssignAccount_RepoError() {
	ctx := context.Background()

	s.mockRuleRepo.On("ListRulesForEvaluation", ctx).Return(nil, assert.AnError).Once()

	engine := services.NewRuleEngine(s.mockRuleRepo)
	target, err := engine.AssignAccount(ctx, domain.RuleContext{})

	s.Require().Error(err)
	s.Nil(target)
}

func (s *ruleEngineSuite) TestAssignAccount_ProductRule() {
	ctx := context.Background()
	productID := uuid.NewString()

	rule := domain.AssignmentRule{
		RuleID:          uuid.NewString(),
		RuleType:        domain.ProductBased,
		Conditions:      domain.RuleConditions{ProductID: strPtr(productID)},
		TargetAccountID: "acct-product",
		IsActive:        true,
	}
	s.mockRuleRepo.On("ListRulesForEvaluation", ctx).Return([]domain.AssignmentRule{rule}, nil)

	engine := services.NewRuleEngine(s.mockRuleRepo)

	target, err := engine.AssignAccount(ctx, domain.RuleContext{
		ProductIDs: []string{uuid.NewString(), productID},
	})
	s.Require().NoError(err)
	s.Require().NotNil(target)
	s.Equal("acct-product", *target)

	// Same rule, context without the product.
	target, err = engine.AssignAccount(ctx, domain.RuleContext{
		ProductIDs: []string{uuid.NewString()},
	})
	s.Require().NoError(err)
	s.Nil(target)
}

func (s *ruleEngineSuite) TestAssignAccount_AmountBounds() {
	ctx := context.Background()

	rule := domain.AssignmentRule{
		RuleID:   uuid.NewString(),
		RuleType: domain.AmountBased,
		Conditions: domain.RuleConditions{
			MinAmount: decPtr(decimal.NewFromInt(100)),
			MaxAmount: decPtr(decimal.NewFromInt(500)),
		},
		TargetAccountID: "acct-amount",
		IsActive:        true,
	}
	s.mockRuleRepo.On("ListRulesForEvaluation", ctx).Return([]domain.AssignmentRule{rule}, nil)

	engine := services.NewRuleEngine(s.mockRuleRepo)

	cases := []struct {
		amount  string
		matches bool
	}{
		{"99.99", false},
		{"100", true}, // bounds are inclusive
		{"250", true},
		{"500", true},
		{"500.01", false},
	}
	for _, tc := range cases {
		amount := decimal.RequireFromString(tc.amount)
		target, err := engine.AssignAccount(ctx, domain.RuleContext{TotalAmount: &amount})
		s.Require().NoError(err)
		if tc.matches {
			s.Require().NotNil(target, "amount %s should match", tc.amount)
			s.Equal("acct-amount", *target)
		} else {
			s.Nil(target, "amount %s should not match", tc.amount)
		}
	}
}

func (s *ruleEngineSuite) TestAssignAccount_AmountRuleWithoutBoundsMatchesEverything() {
	ctx := context.Background()

	rule := domain.AssignmentRule{
		RuleID:          uuid.NewString(),
		RuleType:        domain.AmountBased,
		TargetAccountID: "acct-catchall",
		IsActive:        true,
	}
	s.mockRuleRepo.On("ListRulesForEvaluation", ctx).Return([]domain.AssignmentRule{rule}, nil)

	engine := services.NewRuleEngine(s.mockRuleRepo)
	target, err := engine.AssignAccount(ctx, domain.RuleContext{})

	s.Require().NoError(err)
	s.Require().NotNil(target)
	s.Equal("acct-catchall", *target)
}

func (s *ruleEngineSuite) TestAssignAccount_BoundedAmountRuleNeedsAmount() {
	ctx := context.Background()

	rule := domain.AssignmentRule{
		RuleID:          uuid.NewString(),
		RuleType:        domain.AmountBased,
		Conditions:      domain.RuleConditions{MinAmount: decPtr(decimal.NewFromInt(10))},
		TargetAccountID: "acct-bounded",
		IsActive:        true,
	}
	s.mockRuleRepo.On("ListRulesForEvaluation", ctx).Return([]domain.AssignmentRule{rule}, nil)

	engine := services.NewRuleEngine(s.mockRuleRepo)
	target, err := engine.AssignAccount(ctx, domain.RuleContext{})

	s.Require().NoError(err)
	s.Nil(target)
}

func (s *ruleEngineSuite) TestAssignAccount_CustomKeywordOverSerializedContext() {
	ctx := context.Background()
	vendorID := "vendor-ACME-42"

	rule := domain.AssignmentRule{
		RuleID:          uuid.NewString(),
		RuleType:        domain.Custom,
		Conditions:      domain.RuleConditions{Keywords: []string{"acme"}},
		TargetAccountID: "acct-custom",
		IsActive:        true,
	}
	s.mockRuleRepo.On("ListRulesForEvaluation", ctx).Return([]domain.AssignmentRule{rule}, nil)

	engine := services.NewRuleEngine(s.mockRuleRepo)

	// Keyword matching is case-insensitive and runs over the serialized
	// context, so an ID substring counts as a hit.
	target, err := engine.AssignAccount(ctx, domain.RuleContext{ContactID: &vendorID})
	s.Require().NoError(err)
	s.Require().NotNil(target)
	s.Equal("acct-custom", *target)

	target, err = engine.AssignAccount(ctx, domain.RuleContext{ContactID: strPtr("someone-else")})
	s.Require().NoError(err)
	s.Nil(target)
}

func TestRuleEngineSuite(t *testing.T) {
	suite.Run(t, new(ruleEngineSuite))
}
