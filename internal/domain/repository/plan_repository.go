package repository

import (
	"context"

	"ecomovex-service/internal/domain/entity"
)

// PlanRepository defines the interface for plan storage operations. Plans are
// replaced whole to avoid partial commits across destination edits.
type PlanRepository interface {
	GetActivePlan(ctx context.Context, userID uint) (*entity.Plan, error)
	ReplacePlan(ctx context.Context, plan *entity.Plan) error
}
