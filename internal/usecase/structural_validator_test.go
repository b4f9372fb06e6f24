package usecase

import (
	"context"
	"testing"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func suggestionCodes(findings []entity.Finding) []string {
	codes := make([]string, 0, len(findings))
	for _, f := range findings {
		if f.Suggestion != nil {
			codes = append(codes, f.Suggestion.Code)
		}
	}
	return codes
}

func TestStructuralValidatorCleanPlan(t *testing.T) {
	v := NewStructuralValidator(logger.NewNopLogger())

	report := v.Validate(context.Background(), testPlan())

	assert.Equal(t, entity.AgentStructural, report.Agent)
	assert.Empty(t, report.Findings)
	assert.Equal(t, "plan structure is complete", report.Summary)
}

func TestStructuralValidatorMissingFields(t *testing.T) {
	v := NewStructuralValidator(logger.NewNopLogger())
	plan := &entity.Plan{}

	report := v.Validate(context.Background(), plan)

	codes := suggestionCodes(report.Findings)
	assert.Contains(t, codes, "missing_place_name")
	assert.Contains(t, codes, "missing_start_date")
	assert.Contains(t, codes, "missing_end_date")
	assert.Contains(t, codes, "no_destinations")
	for _, f := range report.Findings {
		assert.Equal(t, entity.SeverityError, f.Severity)
	}
}

func TestStructuralValidatorInvalidDateRange(t *testing.T) {
	v := NewStructuralValidator(logger.NewNopLogger())
	plan := testPlan()
	plan.StartDate, plan.EndDate = plan.EndDate, plan.StartDate

	report := v.Validate(context.Background(), plan)

	assert.Contains(t, suggestionCodes(report.Findings), "invalid_date_range")
}

func TestStructuralValidatorSpanTooLong(t *testing.T) {
	v := NewStructuralValidator(logger.NewNopLogger())
	plan := testPlan()
	plan.EndDate = plan.StartDate.AddDate(0, 0, 35)

	report := v.Validate(context.Background(), plan)

	codes := suggestionCodes(report.Findings)
	assert.Contains(t, codes, "span_too_long")
}

func TestStructuralValidatorIncompleteDestination(t *testing.T) {
	v := NewStructuralValidator(logger.NewNopLogger())
	plan := testPlan()
	plan.Destinations = append(plan.Destinations, entity.PlanDestination{
		ID:        3,
		Name:      "mystery stop",
		VisitDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
	})

	report := v.Validate(context.Background(), plan)

	codes := suggestionCodes(report.Findings)
	assert.Contains(t, codes, "missing_destination_id")
	assert.Contains(t, codes, "missing_destination_type")
	for _, f := range report.Findings {
		assert.Equal(t, uint(3), f.DestinationRef)
	}
}
