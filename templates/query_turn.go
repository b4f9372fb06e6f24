package templates

import (
	"context"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/usecase"
	"ecomovex-service/pkg/logger"
)

// QueryTurnHandler handles read-only intents: the validators run over the
// unchanged plan so the reply can report its current state.
type QueryTurnHandler struct {
	validators []usecase.Validator
	logger     logger.Logger
}

// NewQueryTurnHandler creates a new query turn handler
func NewQueryTurnHandler(validators []usecase.Validator, logger logger.Logger) *QueryTurnHandler {
	return &QueryTurnHandler{
		validators: validators,
		logger:     logger,
	}
}

// CanHandle determines if this handler can process the given intent
func (h *QueryTurnHandler) CanHandle(intent entity.IntentType) bool {
	return intent.IsQuery()
}

// Handle runs the read-only pipeline stage for one turn
func (h *QueryTurnHandler) Handle(ctx context.Context, turn *usecase.TurnContext) error {
	if turn.Plan == nil {
		turn.Reports = append(turn.Reports, entity.AgentReport{
			Agent: entity.AgentDispatcher,
			Findings: []entity.Finding{{
				Agent:    entity.AgentDispatcher,
				Severity: entity.SeverityInfo,
				Message:  "there is no active plan yet",
			}},
			Summary: "no active plan",
		})
		return nil
	}

	turn.Reports = append(turn.Reports, usecase.RunValidators(ctx, turn.Plan, h.validators)...)
	return nil
}
