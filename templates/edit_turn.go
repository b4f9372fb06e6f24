package templates

import (
	"context"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/usecase"
	"ecomovex-service/pkg/logger"
	"ecomovex-service/pkg/metrics"
)

// EditTurnHandler handles edit-family intents: parse the utterance into
// mutations, apply them, then fan out the validators over the mutated plan.
type EditTurnHandler struct {
	editParser *usecase.EditParser
	mutator    *usecase.PlanMutator
	validators []usecase.Validator
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewEditTurnHandler creates a new edit turn handler
func NewEditTurnHandler(
	editParser *usecase.EditParser,
	mutator *usecase.PlanMutator,
	validators []usecase.Validator,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *EditTurnHandler {
	return &EditTurnHandler{
		editParser: editParser,
		mutator:    mutator,
		validators: validators,
		logger:     logger,
		metrics:    metrics,
	}
}

// CanHandle determines if this handler can process the given intent
func (h *EditTurnHandler) CanHandle(intent entity.IntentType) bool {
	return intent.IsEdit()
}

// Handle runs the edit pipeline stage for one turn
func (h *EditTurnHandler) Handle(ctx context.Context, turn *usecase.TurnContext) error {
	if turn.Plan == nil {
		return entity.ErrPlanNotFound
	}

	var mutations []entity.Mutation
	var parserFindings []entity.Finding
	if turn.IntentViaFallback {
		// The classification already spent the fallback completion, so the
		// parser stays on its rule path here.
		mutations, parserFindings = h.editParser.ParseRules(turn.Intent, turn.Plan)
	} else {
		h.metrics.LLMCalls.WithLabelValues("edit_parser").Inc()
		mutations, parserFindings = h.editParser.Parse(ctx, turn.Intent, turn.Plan, turn.Request.Utterance)
	}
	if len(parserFindings) > 0 {
		turn.Reports = append(turn.Reports, entity.AgentReport{
			Agent:    entity.AgentEditParser,
			Findings: parserFindings,
			Summary:  "the edit request could not be fully parsed",
		})
	}

	if len(mutations) > 0 {
		plan, outcomes, mutatorFindings := h.mutator.Apply(ctx, turn.Plan, mutations)
		turn.Plan = plan
		turn.Outcomes = outcomes

		for _, outcome := range outcomes {
			if outcome.Applied {
				turn.Mutated = true
				if turn.Action == "" {
					turn.Action = string(outcome.Mutation.Op)
				}
			}
		}

		if len(mutatorFindings) > 0 {
			turn.Reports = append(turn.Reports, entity.AgentReport{
				Agent:    entity.AgentMutator,
				Findings: mutatorFindings,
				Summary:  "some edits could not be applied",
			})
		}
	}

	h.logger.Info("Edit turn applied",
		"mutations", len(mutations),
		"mutated", turn.Mutated,
		"action", turn.Action)

	turn.Reports = append(turn.Reports, usecase.RunValidators(ctx, turn.Plan, h.validators)...)
	return nil
}
