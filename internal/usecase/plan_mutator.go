package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"
	"ecomovex-service/pkg/logger"
	"ecomovex-service/pkg/utils"
)

// PlanMutator applies parsed mutations to an in-memory copy of the plan,
// resolving place names through the maps collaborator. Semantics are
// best-effort: a failed mutation becomes a finding and the rest still apply.
type PlanMutator struct {
	mapsRepo repository.MapsRepository
	logger   logger.Logger
}

// NewPlanMutator creates a new plan mutator
func NewPlanMutator(mapsRepo repository.MapsRepository, logger logger.Logger) *PlanMutator {
	return &PlanMutator{
		mapsRepo: mapsRepo,
		logger:   logger,
	}
}

// Apply runs the mutations in order against a deep copy of plan and returns
// the post-state plan, per-mutation outcomes, and accumulated findings.
func (m *PlanMutator) Apply(ctx context.Context, plan *entity.Plan, mutations []entity.Mutation) (*entity.Plan, []entity.MutationOutcome, []entity.Finding) {
	working := plan.Clone()
	outcomes := make([]entity.MutationOutcome, 0, len(mutations))
	var findings []entity.Finding

	for _, mut := range mutations {
		var err error
		switch mut.Op {
		case entity.OpAdd:
			err = m.applyAdd(ctx, working, mut, &findings)
		case entity.OpRemove:
			err = m.applyRemove(working, mut, &findings)
		case entity.OpModifyTime:
			err = m.applyModifyTime(working, mut, &findings)
		case entity.OpChangeBudget:
			err = m.applyChangeBudget(working, mut, &findings)
		default:
			err = fmt.Errorf("unknown mutation op %q", mut.Op)
		}

		outcome := entity.MutationOutcome{Mutation: mut, Applied: err == nil}
		if err != nil {
			outcome.Detail = err.Error()
			m.logger.Warn("Mutation not applied", "op", string(mut.Op), "detail", err.Error())
		}
		outcomes = append(outcomes, outcome)
	}

	return working, outcomes, findings
}

// applyAdd resolves the place text and schedules a new destination.
func (m *PlanMutator) applyAdd(ctx context.Context, plan *entity.Plan, mut entity.Mutation, findings *[]entity.Finding) error {
	visitDate, err := m.resolveVisitDate(plan, mut.VisitDate)
	if err != nil {
		*findings = append(*findings, entity.Finding{
			Agent:    entity.AgentMutator,
			Severity: entity.SeverityError,
			Message:  fmt.Sprintf("cannot add %q: %v", mut.Title, err),
			Suggestion: &entity.Suggestion{Code: "visit_date_out_of_range", Params: map[string]interface{}{
				"visit_date": mut.VisitDate,
			}},
		})
		return err
	}

	places, err := m.mapsRepo.SearchPlace(ctx, mut.Title)
	if err != nil {
		*findings = append(*findings, entity.Finding{
			Agent:      entity.AgentMutator,
			Severity:   entity.SeverityWarning,
			Message:    fmt.Sprintf("could not resolve %q: maps lookup failed", mut.Title),
			Suggestion: &entity.Suggestion{Code: "destination_unresolved"},
		})
		return fmt.Errorf("maps lookup failed for %q: %w", mut.Title, err)
	}

	switch {
	case len(places) == 0:
		*findings = append(*findings, entity.Finding{
			Agent:      entity.AgentMutator,
			Severity:   entity.SeverityError,
			Message:    fmt.Sprintf("no place found for %q", mut.Title),
			Suggestion: &entity.Suggestion{Code: "destination_unresolved"},
		})
		return fmt.Errorf("no place found for %q", mut.Title)
	case len(places) > 1:
		*findings = append(*findings, entity.Finding{
			Agent:    entity.AgentMutator,
			Severity: entity.SeverityWarning,
			Message:  fmt.Sprintf("found %d places for %q, please be more specific", len(places), mut.Title),
			Suggestion: &entity.Suggestion{Code: "ambiguous_place", Params: map[string]interface{}{
				"candidates": len(places),
			}},
		})
		return fmt.Errorf("ambiguous place %q", mut.Title)
	}

	place := places[0]
	destType := mut.DestinationType
	if destType == "" {
		destType = utils.GuessDestinationType(mut.Title)
	}

	dest := entity.PlanDestination{
		ID:              m.nextDestinationID(plan),
		PlanID:          plan.ID,
		DestinationID:   place.DestinationID,
		Name:            place.Name,
		DestinationType: destType,
		VisitDate:       visitDate,
		TimeSlot:        mut.TimeSlot,
		Note:            mut.Note,
		OpeningHours:    place.OpeningHours,
	}
	if place.PriceLevel != nil {
		if cost, ok := entity.CostForPriceLevel(*place.PriceLevel); ok {
			dest.EstimatedCost = &cost
		}
	}

	if mut.OrderInDay > 0 {
		dest.OrderInDay = mut.OrderInDay
		m.shiftOrdersFrom(plan, visitDate, mut.OrderInDay, 0)
	} else {
		dest.OrderInDay = plan.MaxOrderOn(visitDate) + 1
	}

	plan.Destinations = append(plan.Destinations, dest)
	m.logger.Info("Destination added",
		"destinationId", place.DestinationID,
		"name", place.Name,
		"visitDate", visitDate.Format(entity.DateLayout),
		"order", dest.OrderInDay)
	return nil
}

// applyRemove drops a destination by id or case-insensitive title match.
func (m *PlanMutator) applyRemove(plan *entity.Plan, mut entity.Mutation, findings *[]entity.Finding) error {
	idx := -1
	if mut.DestinationID != 0 {
		for i := range plan.Destinations {
			if plan.Destinations[i].ID == mut.DestinationID {
				idx = i
				break
			}
		}
	} else if mut.TitleMatch != "" {
		needle := strings.ToLower(mut.TitleMatch)
		for i := range plan.Destinations {
			if strings.Contains(strings.ToLower(plan.Destinations[i].Name), needle) {
				idx = i
				break
			}
		}
	}

	if idx < 0 {
		*findings = append(*findings, entity.Finding{
			Agent:      entity.AgentMutator,
			Severity:   entity.SeverityWarning,
			Message:    "nothing in the plan matches the remove request",
			Suggestion: &entity.Suggestion{Code: "remove_target_not_found"},
		})
		return fmt.Errorf("remove target not found")
	}

	removed := plan.Destinations[idx]
	plan.Destinations = append(plan.Destinations[:idx], plan.Destinations[idx+1:]...)
	m.logger.Info("Destination removed", "id", removed.ID, "name", removed.Name)
	return nil
}

// applyModifyTime moves a destination to a new slot, day, or order.
func (m *PlanMutator) applyModifyTime(plan *entity.Plan, mut entity.Mutation, findings *[]entity.Finding) error {
	dest := plan.FindDestination(mut.DestinationID)
	if dest == nil {
		*findings = append(*findings, entity.Finding{
			Agent:          entity.AgentMutator,
			Severity:       entity.SeverityWarning,
			Message:        fmt.Sprintf("destination id %d not found", mut.DestinationID),
			DestinationRef: mut.DestinationID,
			Suggestion:     &entity.Suggestion{Code: "modify_target_not_found"},
		})
		return fmt.Errorf("destination id %d not found", mut.DestinationID)
	}

	if mut.VisitDate != "" {
		visitDate, err := m.resolveVisitDate(plan, mut.VisitDate)
		if err != nil {
			*findings = append(*findings, entity.Finding{
				Agent:          entity.AgentMutator,
				Severity:       entity.SeverityError,
				Message:        fmt.Sprintf("cannot move destination %d: %v", mut.DestinationID, err),
				DestinationRef: mut.DestinationID,
				Suggestion:     &entity.Suggestion{Code: "visit_date_out_of_range"},
			})
			return err
		}
		if !visitDate.Equal(entity.DateOf(dest.VisitDate)) {
			dest.VisitDate = visitDate
			maxOther := 0
			for _, d := range plan.DestinationsOn(visitDate) {
				if d.ID != dest.ID && d.OrderInDay > maxOther {
					maxOther = d.OrderInDay
				}
			}
			dest.OrderInDay = maxOther + 1
		}
	}

	if mut.TimeSlot != "" {
		dest.TimeSlot = mut.TimeSlot
	}

	if mut.OrderInDay > 0 && mut.OrderInDay != dest.OrderInDay {
		m.shiftOrdersFrom(plan, dest.VisitDate, mut.OrderInDay, dest.ID)
		dest.OrderInDay = mut.OrderInDay
	}

	m.logger.Info("Destination rescheduled",
		"id", dest.ID,
		"visitDate", dest.VisitDate.Format(entity.DateLayout),
		"timeSlot", dest.TimeSlot,
		"order", dest.OrderInDay)
	return nil
}

// applyChangeBudget sets the plan budget limit.
func (m *PlanMutator) applyChangeBudget(plan *entity.Plan, mut entity.Mutation, findings *[]entity.Finding) error {
	if mut.NewBudget < 0 {
		*findings = append(*findings, entity.Finding{
			Agent:      entity.AgentMutator,
			Severity:   entity.SeverityWarning,
			Message:    "budget must be non-negative",
			Suggestion: &entity.Suggestion{Code: "invalid_budget"},
		})
		return fmt.Errorf("negative budget %d", mut.NewBudget)
	}
	budget := mut.NewBudget
	plan.BudgetLimit = &budget
	m.logger.Info("Budget limit changed", "newBudget", budget)
	return nil
}

// shiftOrdersFrom makes room at the given order slot within one day by
// shifting every destination at or above it by +1. Other days are never
// renumbered.
func (m *PlanMutator) shiftOrdersFrom(plan *entity.Plan, day time.Time, order int, excludeID uint) {
	target := entity.DateOf(day)
	for i := range plan.Destinations {
		d := &plan.Destinations[i]
		if d.ID == excludeID {
			continue
		}
		if entity.DateOf(d.VisitDate).Equal(target) && d.OrderInDay >= order {
			d.OrderInDay++
		}
	}
}

// resolveVisitDate parses a wire date and enforces the plan range invariant.
func (m *PlanMutator) resolveVisitDate(plan *entity.Plan, raw string) (time.Time, error) {
	if raw == "" {
		return entity.DateOf(plan.StartDate), nil
	}
	visitDate, err := time.ParseInLocation(entity.DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid visit date %q", raw)
	}
	if !plan.ContainsDate(visitDate) {
		return time.Time{}, fmt.Errorf("visit date %s is outside the plan range", raw)
	}
	return visitDate, nil
}

func (m *PlanMutator) nextDestinationID(plan *entity.Plan) uint {
	var max uint
	for _, d := range plan.Destinations {
		if d.ID > max {
			max = d.ID
		}
	}
	return max + 1
}
