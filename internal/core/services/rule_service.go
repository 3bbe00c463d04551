package services

import (
	"context"
	"errors"
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

// ruleService administers assignment rules. Evaluation lives in the rule
// engine; this service only handles rule lifecycle and condition validation.
type ruleService struct {
	ruleRepo    portsrepo.RuleRepository
	accountRepo portsrepo.AnalyticalAccountReader
}

// NewRuleService creates the rule administration service.
func NewRuleService(ruleRepo portsrepo.RuleRepository, accountRepo portsrepo.AnalyticalAccountReader) portssvc.RuleSvcFacade {
	return &ruleService{ruleRepo: ruleRepo, accountRepo: accountRepo}
}

var _ portssvc.RuleSvcFacade = (*ruleService)(nil)

// CreateRule persists a new assignment rule after checking its conditions
// against the rule type and its target account.
func (s *ruleService) CreateRule(ctx context.Context, req dto.CreateRuleRequest, creatorUserID string) (*domain.AssignmentRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	conditions := req.Conditions.ToRuleConditions()
	if err := validateRuleConditions(req.RuleType, conditions); err != nil {
		return nil, err
	}
	if err := s.verifyTargetAccount(ctx, req.TargetAccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rule := domain.AssignmentRule{
		RuleID:          uuid.NewString(),
		Name:            req.Name,
		RuleType:        req.RuleType,
		Conditions:      conditions,
		TargetAccountID: req.TargetAccountID,
		Priority:        req.Priority,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ruleRepo.SaveRule(ctx, rule); err != nil {
		logger.Error("Failed to save rule", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save rule: %w", err)
	}

	logger.Info("Assignment rule created",
		slog.String("rule_id", rule.RuleID),
		slog.String("rule_type", string(rule.RuleType)),
		slog.Int("priority", rule.Priority),
	)
	return &rule, nil
}

// GetRuleByID retrieves a rule.
func (s *ruleService) GetRuleByID(ctx context.Context, ruleID string) (*domain.AssignmentRule, error) {
	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find rule %s: %w", ruleID, err)
	}
	return rule, nil
}

// ListRules retrieves a paginated list of rules.
func (s *ruleService) ListRules(ctx context.Context, limit int, offset int) ([]domain.AssignmentRule, error) {
	rules, err := s.ruleRepo.ListRules(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

// UpdateRule updates a rule's editable fields. The rule type is fixed at
// creation; changing matching semantics means creating a new rule.
func (s *ruleService) UpdateRule(ctx context.Context, ruleID string, req dto.UpdateRuleRequest, userID string) (*domain.AssignmentRule, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rule, err := s.ruleRepo.FindRuleByID(ctx, ruleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find rule %s: %w", ruleID, err)
	}

	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Conditions != nil {
		conditions := req.Conditions.ToRuleConditions()
		if err := validateRuleConditions(rule.RuleType, conditions); err != nil {
			return nil, err
		}
		rule.Conditions = conditions
	}
	if req.TargetAccountID != nil {
		if err := s.verifyTargetAccount(ctx, *req.TargetAccountID); err != nil {
			return nil, err
		}
		rule.TargetAccountID = *req.TargetAccountID
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}

	rule.LastUpdatedAt = time.Now().UTC()
	rule.LastUpdatedBy = userID

	if err := s.ruleRepo.UpdateRule(ctx, *rule); err != nil {
		logger.Error("Failed to update rule", slog.String("rule_id", ruleID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update rule %s: %w", ruleID, err)
	}

	logger.Info("Assignment rule updated", slog.String("rule_id", ruleID))
	return rule, nil
}

// DeactivateRule marks a rule as inactive so evaluation skips it.
func (s *ruleService) DeactivateRule(ctx context.Context, ruleID string, userID string) error {
	if err := s.ruleRepo.DeactivateRule(ctx, ruleID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate rule %s: %w", ruleID, err)
	}
	return nil
}

func (s *ruleService) verifyTargetAccount(ctx context.Context, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: target account %s", apperrors.ErrNotFound, accountID)
		}
		return fmt.Errorf("failed to fetch target account %s: %w", accountID, err)
	}
	if !account.IsActive {
		return fmt.Errorf("%w: target account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return nil
}

// validateRuleConditions checks that a rule carries the condition fields its
// type evaluates. AMOUNT_BASED rules may leave both bounds unset; they then
// match every transaction, which is the documented catch-all pattern.
func validateRuleConditions(ruleType domain.RuleType, c domain.RuleConditions) error {
	switch ruleType {
	case domain.VendorBased:
		if c.VendorID == nil || *c.VendorID == "" {
			return fmt.Errorf("%w: VENDOR_BASED rules need a vendorID condition", apperrors.ErrValidation)
		}
	case domain.ProductBased:
		if c.ProductID == nil || *c.ProductID == "" {
			return fmt.Errorf("%w: PRODUCT_BASED rules need a productID condition", apperrors.ErrValidation)
		}
	case domain.AmountBased:
		if c.MinAmount != nil && c.MaxAmount != nil && c.MinAmount.GreaterThan(*c.MaxAmount) {
			return fmt.Errorf("%w: minAmount must not exceed maxAmount", apperrors.ErrValidation)
		}
	case domain.Custom:
		if len(c.Keywords) == 0 {
			return fmt.Errorf("%w: CUSTOM rules need at least one keyword", apperrors.ErrValidation)
		}
		for _, kw := range c.Keywords {
			if kw == "" {
				return fmt.Errorf("%w: keywords must not be empty", apperrors.ErrValidation)
			}
		}
	default:
		return fmt.Errorf("%w: unknown rule type %s", apperrors.ErrValidation, ruleType)
	}
	return nil
}
