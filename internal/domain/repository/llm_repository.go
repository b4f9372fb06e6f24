package repository

import (
	"context"

	"ecomovex-service/internal/domain/entity"
)

// LLMRepository defines the interface for the LLM completion collaborator.
type LLMRepository interface {
	Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64, maxTokens int) (string, error)
}
