package repository

import (
	"context"
	"errors"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormPlanRepository implements the PlanRepository interface
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GORM plan repository
func NewGormPlanRepository(db *gorm.DB) repository.PlanRepository {
	return &GormPlanRepository{
		db: db,
	}
}

// Plans GORM model for database mapping
type Plans struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"column:user_id;index"`
	PlaceName   string `gorm:"column:place_name"`
	StartDate   time.Time
	EndDate     time.Time
	BudgetLimit *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Plans) TableName() string {
	return "t_plans"
}

// PlanDestinations GORM model for database mapping. Destination ids are
// plan-scoped: the primary key is (plan_id, id) so whole-plan replacement can
// carry ids assigned in memory.
type PlanDestinations struct {
	PlanID          uint      `gorm:"primaryKey;column:plan_id;uniqueIndex:uq_plan_day_order"`
	ID              uint      `gorm:"primaryKey"`
	DestinationID   string    `gorm:"column:destination_id"`
	Name            string    `gorm:"column:name"`
	DestinationType string    `gorm:"column:destination_type"`
	VisitDate       time.Time `gorm:"uniqueIndex:uq_plan_day_order"`
	OrderInDay      int       `gorm:"uniqueIndex:uq_plan_day_order"`
	TimeSlot        string    `gorm:"column:time_slot"`
	EstimatedCost   *int64
	Note            string
	OpeningHours    string
}

// TableName overrides the default table name
func (PlanDestinations) TableName() string {
	return "t_plan_destinations"
}

// Migrate creates the plan tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Plans{}, &PlanDestinations{})
}

// GetActivePlan returns the user's most recent plan with its destinations,
// nil when the user has none.
func (r *GormPlanRepository) GetActivePlan(ctx context.Context, userID uint) (*entity.Plan, error) {
	var plan Plans
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&plan)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	var dests []PlanDestinations
	result = r.db.WithContext(ctx).
		Where("plan_id = ?", plan.ID).
		Order("visit_date ASC, order_in_day ASC").
		Find(&dests)
	if result.Error != nil {
		return nil, result.Error
	}

	return toEntityPlan(&plan, dests), nil
}

// ReplacePlan persists the whole plan in one transaction: the destination set
// is replaced wholesale to avoid partial commits across edits.
func (r *GormPlanRepository) ReplacePlan(ctx context.Context, plan *entity.Plan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := toPlanRow(plan)
		if err := tx.Save(row).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&PlanDestinations{}).Error; err != nil {
			return err
		}
		for _, d := range plan.Destinations {
			destRow := toDestinationRow(plan.ID, d)
			if err := tx.Create(destRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Convert GORM models to the domain entity
func toEntityPlan(row *Plans, dests []PlanDestinations) *entity.Plan {
	plan := &entity.Plan{
		ID:          row.ID,
		UserID:      row.UserID,
		PlaceName:   row.PlaceName,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		BudgetLimit: row.BudgetLimit,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	for _, d := range dests {
		plan.Destinations = append(plan.Destinations, entity.PlanDestination{
			ID:              d.ID,
			PlanID:          d.PlanID,
			DestinationID:   d.DestinationID,
			Name:            d.Name,
			DestinationType: d.DestinationType,
			VisitDate:       d.VisitDate,
			OrderInDay:      d.OrderInDay,
			TimeSlot:        d.TimeSlot,
			EstimatedCost:   d.EstimatedCost,
			Note:            d.Note,
			OpeningHours:    d.OpeningHours,
		})
	}
	return plan
}

func toPlanRow(plan *entity.Plan) *Plans {
	return &Plans{
		ID:          plan.ID,
		UserID:      plan.UserID,
		PlaceName:   plan.PlaceName,
		StartDate:   plan.StartDate,
		EndDate:     plan.EndDate,
		BudgetLimit: plan.BudgetLimit,
		CreatedAt:   plan.CreatedAt,
	}
}

func toDestinationRow(planID uint, d entity.PlanDestination) *PlanDestinations {
	return &PlanDestinations{
		PlanID:          planID,
		ID:              d.ID,
		DestinationID:   d.DestinationID,
		Name:            d.Name,
		DestinationType: d.DestinationType,
		VisitDate:       d.VisitDate,
		OrderInDay:      d.OrderInDay,
		TimeSlot:        d.TimeSlot,
		EstimatedCost:   d.EstimatedCost,
		Note:            d.Note,
		OpeningHours:    d.OpeningHours,
	}
}
