package usecase

import (
	"context"
	"testing"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleValidatorDuplicateOrder(t *testing.T) {
	v := NewScheduleValidator(logger.NewNopLogger())
	plan := testPlan()
	plan.Destinations[1].OrderInDay = 1

	report := v.Validate(context.Background(), plan)

	var dup *entity.Finding
	for i := range report.Findings {
		if report.Findings[i].Suggestion != nil && report.Findings[i].Suggestion.Code == "duplicate_order" {
			dup = &report.Findings[i]
		}
	}
	require.NotNil(t, dup)
	assert.Equal(t, entity.SeverityError, dup.Severity)
	assert.Equal(t, "2026-03-10", dup.Suggestion.Params["visit_date"])
}

func TestScheduleValidatorOrderGap(t *testing.T) {
	v := NewScheduleValidator(logger.NewNopLogger())
	plan := testPlan()
	plan.Destinations[1].OrderInDay = 4

	report := v.Validate(context.Background(), plan)

	gaps := 0
	for _, f := range report.Findings {
		if f.Suggestion != nil && f.Suggestion.Code == "missing_order" {
			gaps++
			assert.Equal(t, entity.SeverityWarning, f.Severity)
		}
	}
	// Slots 2 and 3 are unused.
	assert.Equal(t, 2, gaps)
}

func TestScheduleValidatorSingleEmptyDay(t *testing.T) {
	v := NewScheduleValidator(logger.NewNopLogger())
	plan := testPlan()
	plan.EndDate = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	report := v.Validate(context.Background(), plan)

	require.Len(t, report.Findings, 1)
	f := report.Findings[0]
	assert.Equal(t, "empty_day", f.Suggestion.Code)
	assert.Equal(t, "2026-03-11", f.Suggestion.Params["visit_date"])
}

func TestScheduleValidatorEmptyDaysCollapse(t *testing.T) {
	v := NewScheduleValidator(logger.NewNopLogger())
	plan := testPlan()
	plan.EndDate = time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)

	report := v.Validate(context.Background(), plan)

	// Three empty days produce one finding listing all of them.
	require.Len(t, report.Findings, 1)
	f := report.Findings[0]
	assert.Equal(t, "empty_days", f.Suggestion.Code)
	assert.Equal(t, []string{"2026-03-11", "2026-03-12", "2026-03-13"}, f.Suggestion.Params["dates"])
	assert.Contains(t, f.Message, "2026-03-11, 2026-03-12, 2026-03-13")
}

func TestScheduleValidatorCleanSchedule(t *testing.T) {
	v := NewScheduleValidator(logger.NewNopLogger())
	plan := testPlan()
	plan.EndDate = plan.StartDate

	report := v.Validate(context.Background(), plan)

	assert.Empty(t, report.Findings)
	assert.Equal(t, "daily schedule looks consistent", report.Summary)
}
