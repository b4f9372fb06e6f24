package usecase

import (
	"context"
	"fmt"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"
	"ecomovex-service/pkg/logger"
)

// BudgetValidator sums estimated costs against the plan's budget limit,
// consulting the maps collaborator for price levels when a destination has no
// cost recorded. It never writes the inferred cost back to the plan.
type BudgetValidator struct {
	mapsRepo repository.MapsRepository
	logger   logger.Logger
}

// NewBudgetValidator creates a new budget validator
func NewBudgetValidator(mapsRepo repository.MapsRepository, logger logger.Logger) *BudgetValidator {
	return &BudgetValidator{
		mapsRepo: mapsRepo,
		logger:   logger,
	}
}

// Agent returns the agent tag used in findings
func (v *BudgetValidator) Agent() string {
	return entity.AgentBudget
}

// Validate inspects the plan and returns the agent's report
func (v *BudgetValidator) Validate(ctx context.Context, plan *entity.Plan) entity.AgentReport {
	var findings []entity.Finding
	var total int64
	staleData := false

	for _, d := range plan.Destinations {
		cost, ok := v.costOf(ctx, d, &staleData)
		if !ok {
			findings = append(findings, entity.Finding{
				Agent:          entity.AgentBudget,
				Severity:       entity.SeverityWarning,
				Message:        fmt.Sprintf("no cost estimate available for %q", d.Name),
				DestinationRef: d.ID,
				Suggestion:     &entity.Suggestion{Code: "missing_cost"},
			})
			continue
		}
		total += cost
	}

	if staleData {
		findings = append(findings, entity.Finding{
			Agent:      entity.AgentBudget,
			Severity:   entity.SeverityWarning,
			Message:    "price levels could not be refreshed, budget totals may be stale",
			Suggestion: &entity.Suggestion{Code: "stale_data"},
		})
	}

	summary := fmt.Sprintf("estimated total cost is %d", total)
	if plan.BudgetLimit != nil {
		limit := *plan.BudgetLimit
		if total > limit {
			findings = append(findings, entity.Finding{
				Agent:    entity.AgentBudget,
				Severity: entity.SeverityWarning,
				Message:  fmt.Sprintf("the plan costs %d, which is %d over the %d budget", total, total-limit, limit),
				Suggestion: &entity.Suggestion{Code: "over_budget", Params: map[string]interface{}{
					"total":   total,
					"limit":   limit,
					"over_by": total - limit,
				}},
			})
		}

		percent := 0.0
		if limit > 0 {
			percent = float64(total) / float64(limit) * 100
		}
		findings = append(findings, entity.Finding{
			Agent:    entity.AgentBudget,
			Severity: entity.SeverityInfo,
			Message:  fmt.Sprintf("budget usage: %d of %d (%.0f%%), %d remaining", total, limit, percent, limit-total),
			Suggestion: &entity.Suggestion{Code: "budget_usage", Params: map[string]interface{}{
				"total":     total,
				"limit":     limit,
				"percent":   percent,
				"remaining": limit - total,
			}},
		})
		summary = fmt.Sprintf("estimated total cost is %d of a %d budget", total, limit)
	}

	return entity.AgentReport{Agent: entity.AgentBudget, Findings: findings, Summary: summary}
}

// costOf returns the destination's recorded cost, or infers one from the maps
// collaborator's price level. staleData is set when the lookup fails.
func (v *BudgetValidator) costOf(ctx context.Context, d entity.PlanDestination, staleData *bool) (int64, bool) {
	if d.EstimatedCost != nil {
		return *d.EstimatedCost, true
	}
	if d.DestinationID == "" {
		return 0, false
	}

	details, err := v.mapsRepo.GetPlaceDetails(ctx, d.DestinationID)
	if err != nil {
		v.logger.Warn("Price level lookup failed", "destinationId", d.DestinationID, "error", err)
		*staleData = true
		return 0, false
	}
	if details.PriceLevel == nil {
		return 0, false
	}
	cost, ok := entity.CostForPriceLevel(*details.PriceLevel)
	return cost, ok
}
