package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/domain"
	portsrepo "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/repositories"
	portssvc "github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/core/ports/services"
	"github.com/DharmiKhambhadiya/Budget-Accounting-System-sub000/internal/middleware"
)

// ruleEngine selects an analytical account for a document snapshot by walking
// the active assignment rules in priority order and returning the target of the
// first rule that matches. This is a "first sufficiently-specific rule wins"
// policy, not "best match".
type ruleEngine struct {
	ruleRepo portsrepo.RuleReader
}

// NewRuleEngine creates the rule evaluation service.
func NewRuleEngine(ruleRepo portsrepo.RuleReader) portssvc.RuleEngineSvc {
	return &ruleEngine{ruleRepo: ruleRepo}
}

var _ portssvc.RuleEngineSvc = (*ruleEngine)(nil)

// AssignAccount implements portssvc.RuleEngineSvc. Returning (nil, nil) means
// no rule matched; the caller leaves the account unset.
func (s *ruleEngine) AssignAccount(ctx context.Context, ruleCtx domain.RuleContext) (*string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rules, err := s.ruleRepo.ListRulesForEvaluation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment rules: %w", err)
	}

	for i := range rules {
		rule := &rules[i]
		if !s.ruleMatches(rule, ruleCtx) {
			continue
		}
		logger.Debug("Assignment rule matched",
			slog.String("rule_id", rule.RuleID),
			slog.String("rule_type", string(rule.RuleType)),
			slog.Int("priority", rule.Priority),
			slog.String("target_account_id", rule.TargetAccountID),
		)
		target := rule.TargetAccountID
		return &target, nil
	}

	logger.Debug("No assignment rule matched", slog.Int("rules_evaluated", len(rules)))
	return nil, nil
}

// ruleMatches evaluates a single rule against the context. A rule whose
// type-relevant conditions are unset never matches (it is skipped, not
// rejected), with the exception of AMOUNT_BASED rules without bounds, which
// match unconditionally.
func (s *ruleEngine) ruleMatches(rule *domain.AssignmentRule, ruleCtx domain.RuleContext) bool {
	switch rule.RuleType {
	case domain.VendorBased:
		return rule.Conditions.VendorID != nil &&
			ruleCtx.ContactID != nil &&
			*rule.Conditions.VendorID == *ruleCtx.ContactID

	case domain.ProductBased:
		if rule.Conditions.ProductID == nil {
			return false
		}
		for _, id := range ruleCtx.ProductIDs {
			if id == *rule.Conditions.ProductID {
				return true
			}
		}
		return false

	case domain.AmountBased:
		min := rule.Conditions.MinAmount
		max := rule.Conditions.MaxAmount
		if min == nil && max == nil {
			return true
		}
		if ruleCtx.TotalAmount == nil {
			return false
		}
		if min != nil && ruleCtx.TotalAmount.LessThan(*min) {
			return false
		}
		if max != nil && ruleCtx.TotalAmount.GreaterThan(*max) {
			return false
		}
		return true

	case domain.Custom:
		if len(rule.Conditions.Keywords) == 0 {
			return false
		}
		// Keywords are matched against the whole serialized context, ids and
		// numeric fields included. Deliberately loose.
		serialized := serializeRuleContext(ruleCtx)
		for _, keyword := range rule.Conditions.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(serialized, strings.ToLower(keyword)) {
				return true
			}
		}
		return false
	}

	return false
}

// serializeRuleContext renders the context as lowercased JSON for keyword
// matching.
func serializeRuleContext(ruleCtx domain.RuleContext) string {
	raw, err := json.Marshal(ruleCtx)
	if err != nil {
		return ""
	}
	return strings.ToLower(string(raw))
}
