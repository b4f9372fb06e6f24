package templates

import (
	"context"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/usecase"
	"ecomovex-service/pkg/logger"
)

// ChitChatTurnHandler handles conversational turns that touch neither the
// plan nor the validators.
type ChitChatTurnHandler struct {
	logger logger.Logger
}

// NewChitChatTurnHandler creates a new chit-chat turn handler
func NewChitChatTurnHandler(logger logger.Logger) *ChitChatTurnHandler {
	return &ChitChatTurnHandler{logger: logger}
}

// CanHandle determines if this handler can process the given intent
func (h *ChitChatTurnHandler) CanHandle(intent entity.IntentType) bool {
	return intent == entity.IntentChitChat || intent == entity.IntentUnknown
}

// Handle runs the chit-chat stage, which is intentionally empty
func (h *ChitChatTurnHandler) Handle(ctx context.Context, turn *usecase.TurnContext) error {
	h.logger.Debug("Chit-chat turn, skipping validators")
	return nil
}
