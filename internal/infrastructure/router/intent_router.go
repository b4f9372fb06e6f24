package router

import (
	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/usecase"
	"ecomovex-service/pkg/logger"
)

// IntentRouter routes turns to appropriate handlers based on intent
type IntentRouter struct {
	handlers []usecase.IntentHandler
	logger   logger.Logger
}

// NewIntentRouter creates a new intent router
func NewIntentRouter(logger logger.Logger) *IntentRouter {
	return &IntentRouter{
		handlers: make([]usecase.IntentHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific intents
func (r *IntentRouter) Register(handler usecase.IntentHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered intent handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given intent
func (r *IntentRouter) GetHandler(intent entity.IntentType) usecase.IntentHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(intent) {
			return handler
		}
	}
	return nil
}
