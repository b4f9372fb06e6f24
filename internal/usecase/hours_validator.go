package usecase

import (
	"context"
	"fmt"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"
	"ecomovex-service/pkg/logger"
)

// HoursValidator verifies each destination carries opening hours, refreshing
// missing ones from the maps collaborator. Only presence is checked here;
// intersecting hours with the destination's time slot is a later extension.
type HoursValidator struct {
	mapsRepo repository.MapsRepository
	logger   logger.Logger
}

// NewHoursValidator creates a new opening-hours validator
func NewHoursValidator(mapsRepo repository.MapsRepository, logger logger.Logger) *HoursValidator {
	return &HoursValidator{
		mapsRepo: mapsRepo,
		logger:   logger,
	}
}

// Agent returns the agent tag used in findings
func (v *HoursValidator) Agent() string {
	return entity.AgentOpeningHours
}

// Validate inspects the plan and returns the agent's report
func (v *HoursValidator) Validate(ctx context.Context, plan *entity.Plan) entity.AgentReport {
	var findings []entity.Finding
	staleData := false
	unknown := 0

	for _, d := range plan.Destinations {
		if d.OpeningHours != "" {
			continue
		}

		hours := ""
		if d.DestinationID != "" {
			details, err := v.mapsRepo.GetPlaceDetails(ctx, d.DestinationID)
			if err != nil {
				v.logger.Warn("Opening hours lookup failed", "destinationId", d.DestinationID, "error", err)
				staleData = true
			} else {
				hours = details.OpeningHours
			}
		}

		if hours == "" {
			unknown++
			findings = append(findings, entity.Finding{
				Agent:          entity.AgentOpeningHours,
				Severity:       entity.SeverityWarning,
				Message:        fmt.Sprintf("opening hours are unknown for %q", d.Name),
				DestinationRef: d.ID,
				Suggestion:     &entity.Suggestion{Code: "missing_hours"},
			})
		}
	}

	if staleData {
		findings = append(findings, entity.Finding{
			Agent:      entity.AgentOpeningHours,
			Severity:   entity.SeverityWarning,
			Message:    "opening hours could not be refreshed for some destinations",
			Suggestion: &entity.Suggestion{Code: "stale_data"},
		})
	}

	summary := "opening hours are known for every destination"
	if unknown > 0 {
		summary = fmt.Sprintf("opening hours unknown for %d destinations", unknown)
	}

	return entity.AgentReport{Agent: entity.AgentOpeningHours, Findings: findings, Summary: summary}
}
