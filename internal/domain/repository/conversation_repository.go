package repository

import (
	"context"

	"ecomovex-service/internal/domain/entity"
)

// ConversationRepository defines the interface for conversation turn storage.
// Reads are FIFO per conversation; turn indices are monotonic.
type ConversationRepository interface {
	LoadLast(ctx context.Context, conversationID uint, k int) ([]entity.ConversationTurn, error)
	Append(ctx context.Context, turn *entity.ConversationTurn) error
	NextTurnIndex(ctx context.Context, conversationID uint) (int, error)
}
