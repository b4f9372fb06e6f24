package usecase

import (
	"context"
	"time"

	"ecomovex-service/internal/domain/entity"
)

// TurnContext carries the working state of one conversation turn through its
// handler. It is built fresh per turn; nothing in it outlives the request.
type TurnContext struct {
	Request entity.ChatRequest
	Intent  entity.Intent
	Now     time.Time

	// IntentViaFallback is set when the LLM remapped the rule engine's
	// classification. The edit parser then derives mutations from the rule
	// entities without further completions, keeping the turn at two LLM calls.
	IntentViaFallback bool

	// Plan is the working deep copy. Nil when the user has no active plan.
	Plan *entity.Plan

	Mutated  bool
	Action   string
	Outcomes []entity.MutationOutcome
	Reports  []entity.AgentReport
}

// IntentHandler defines the interface for per-intent turn handlers
type IntentHandler interface {
	// CanHandle determines if this handler can process the given intent
	CanHandle(intent entity.IntentType) bool

	// Handle runs the handler's stage of the pipeline, appending agent
	// reports to the turn context
	Handle(ctx context.Context, turn *TurnContext) error
}

// IntentRouter routes turns to the appropriate handler based on intent
type IntentRouter interface {
	// Register registers a handler for specific intents
	Register(handler IntentHandler)

	// GetHandler returns the appropriate handler for a given intent
	GetHandler(intent entity.IntentType) IntentHandler
}
