package usecase

import (
	"context"
	"fmt"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/pkg/logger"
)

// StructuralValidator checks the plan's required fields, date-range sanity,
// and per-destination completeness.
type StructuralValidator struct {
	logger logger.Logger
}

// NewStructuralValidator creates a new structural validator
func NewStructuralValidator(logger logger.Logger) *StructuralValidator {
	return &StructuralValidator{logger: logger}
}

// Agent returns the agent tag used in findings
func (v *StructuralValidator) Agent() string {
	return entity.AgentStructural
}

// Validate inspects the plan and returns the agent's report
func (v *StructuralValidator) Validate(ctx context.Context, plan *entity.Plan) entity.AgentReport {
	var findings []entity.Finding
	missing := func(code, msg string) {
		findings = append(findings, entity.Finding{
			Agent:      entity.AgentStructural,
			Severity:   entity.SeverityError,
			Message:    msg,
			Suggestion: &entity.Suggestion{Code: code},
		})
	}

	if plan.PlaceName == "" {
		missing("missing_place_name", "the plan has no place name")
	}
	if plan.StartDate.IsZero() {
		missing("missing_start_date", "the plan has no start date")
	}
	if plan.EndDate.IsZero() {
		missing("missing_end_date", "the plan has no end date")
	}
	if len(plan.Destinations) == 0 {
		missing("no_destinations", "the plan has no destinations yet")
	}

	if !plan.StartDate.IsZero() && !plan.EndDate.IsZero() {
		if plan.EndDate.Before(plan.StartDate) {
			missing("invalid_date_range", "the plan's end date is before its start date")
		} else if plan.SpanDays() > entity.MaxPlanSpanDays {
			findings = append(findings, entity.Finding{
				Agent:    entity.AgentStructural,
				Severity: entity.SeverityError,
				Message:  fmt.Sprintf("the plan spans %d days, more than the %d day maximum", plan.SpanDays(), entity.MaxPlanSpanDays),
				Suggestion: &entity.Suggestion{Code: "span_too_long", Params: map[string]interface{}{
					"span_days": plan.SpanDays(),
				}},
			})
		}
	}

	for _, d := range plan.Destinations {
		if d.DestinationID == "" {
			findings = append(findings, entity.Finding{
				Agent:          entity.AgentStructural,
				Severity:       entity.SeverityError,
				Message:        fmt.Sprintf("%q has no destination id", d.Name),
				DestinationRef: d.ID,
				Suggestion:     &entity.Suggestion{Code: "missing_destination_id"},
			})
		}
		if d.DestinationType == "" {
			findings = append(findings, entity.Finding{
				Agent:          entity.AgentStructural,
				Severity:       entity.SeverityError,
				Message:        fmt.Sprintf("%q has no destination type", d.Name),
				DestinationRef: d.ID,
				Suggestion:     &entity.Suggestion{Code: "missing_destination_type"},
			})
		}
		if d.VisitDate.IsZero() {
			findings = append(findings, entity.Finding{
				Agent:          entity.AgentStructural,
				Severity:       entity.SeverityError,
				Message:        fmt.Sprintf("%q has no visit date", d.Name),
				DestinationRef: d.ID,
				Suggestion:     &entity.Suggestion{Code: "missing_visit_date"},
			})
		}
	}

	summary := "plan structure is complete"
	if len(findings) > 0 {
		summary = fmt.Sprintf("%d structural issues found", len(findings))
	}

	return entity.AgentReport{Agent: entity.AgentStructural, Findings: findings, Summary: summary}
}
