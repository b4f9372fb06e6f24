package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/pkg/logger"
)

// ScheduleValidator checks per-day ordering: unique order slots, no gaps, and
// no empty days inside the plan range.
type ScheduleValidator struct {
	logger logger.Logger
}

// NewScheduleValidator creates a new daily schedule validator
func NewScheduleValidator(logger logger.Logger) *ScheduleValidator {
	return &ScheduleValidator{logger: logger}
}

// Agent returns the agent tag used in findings
func (v *ScheduleValidator) Agent() string {
	return entity.AgentDailySchedule
}

// Validate inspects the plan and returns the agent's report
func (v *ScheduleValidator) Validate(ctx context.Context, plan *entity.Plan) entity.AgentReport {
	var findings []entity.Finding

	byDay := map[string][]entity.PlanDestination{}
	for _, d := range plan.Destinations {
		key := entity.DateOf(d.VisitDate).Format(entity.DateLayout)
		byDay[key] = append(byDay[key], d)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		seen := map[int][]uint{}
		maxOrder := 0
		for _, d := range byDay[day] {
			seen[d.OrderInDay] = append(seen[d.OrderInDay], d.ID)
			if d.OrderInDay > maxOrder {
				maxOrder = d.OrderInDay
			}
		}

		for order, ids := range seen {
			if len(ids) > 1 {
				findings = append(findings, entity.Finding{
					Agent:    entity.AgentDailySchedule,
					Severity: entity.SeverityError,
					Message:  fmt.Sprintf("%d destinations share order %d on %s", len(ids), order, day),
					Suggestion: &entity.Suggestion{Code: "duplicate_order", Params: map[string]interface{}{
						"visit_date": day,
						"order":      order,
					}},
				})
			}
		}

		for order := 1; order <= maxOrder; order++ {
			if _, ok := seen[order]; !ok {
				findings = append(findings, entity.Finding{
					Agent:    entity.AgentDailySchedule,
					Severity: entity.SeverityWarning,
					Message:  fmt.Sprintf("order slot %d is unused on %s", order, day),
					Suggestion: &entity.Suggestion{Code: "missing_order", Params: map[string]interface{}{
						"visit_date": day,
						"order":      order,
					}},
				})
			}
		}
	}

	findings = append(findings, v.emptyDayFindings(plan, byDay)...)

	summary := "daily schedule looks consistent"
	if len(findings) > 0 {
		summary = fmt.Sprintf("%d schedule issues found", len(findings))
	}

	return entity.AgentReport{Agent: entity.AgentDailySchedule, Findings: findings, Summary: summary}
}

// emptyDayFindings enumerates calendar days in the plan range with no
// destinations. Multiple empty days collapse into one finding listing the
// dates; a lone empty day keeps its own finding.
func (v *ScheduleValidator) emptyDayFindings(plan *entity.Plan, byDay map[string][]entity.PlanDestination) []entity.Finding {
	if plan.StartDate.IsZero() || plan.EndDate.IsZero() || plan.EndDate.Before(plan.StartDate) {
		return nil
	}

	var empty []string
	for d := entity.DateOf(plan.StartDate); !d.After(entity.DateOf(plan.EndDate)); d = d.AddDate(0, 0, 1) {
		key := d.Format(entity.DateLayout)
		if len(byDay[key]) == 0 {
			empty = append(empty, key)
		}
	}

	switch {
	case len(empty) == 0:
		return nil
	case len(empty) == 1:
		return []entity.Finding{{
			Agent:    entity.AgentDailySchedule,
			Severity: entity.SeverityWarning,
			Message:  fmt.Sprintf("nothing is planned on %s", empty[0]),
			Suggestion: &entity.Suggestion{Code: "empty_day", Params: map[string]interface{}{
				"visit_date": empty[0],
			}},
		}}
	default:
		return []entity.Finding{{
			Agent:    entity.AgentDailySchedule,
			Severity: entity.SeverityWarning,
			Message:  fmt.Sprintf("nothing is planned on %s", strings.Join(empty, ", ")),
			Suggestion: &entity.Suggestion{Code: "empty_days", Params: map[string]interface{}{
				"dates": empty,
			}},
		}}
	}
}
