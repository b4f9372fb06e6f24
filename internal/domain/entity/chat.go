package entity

import "time"

// MaxUtteranceBytes bounds the accepted utterance size.
const MaxUtteranceBytes = 4096

// Turn actions reported back to the caller.
const (
	ActionAdd          = "add"
	ActionRemove       = "remove"
	ActionModifyTime   = "modify_time"
	ActionChangeBudget = "change_budget"
)

// ChatRequest is one user turn entering the pipeline.
type ChatRequest struct {
	UserID         uint      `json:"user_id" binding:"required"`
	ConversationID uint      `json:"conversation_id" binding:"required"`
	Utterance      string    `json:"utterance" binding:"required"`
	Now            time.Time `json:"now,omitempty"`
}

// Warning is a user-facing validation warning in the structured response.
type Warning struct {
	Agent   string `json:"agent"`
	Message string `json:"message"`
}

// Modification is a machine-readable suggested change in the structured
// response, derived from findings that carry a suggestion.
type Modification struct {
	Source     string `json:"source"`
	Field      string `json:"field,omitempty"`
	Issue      string `json:"issue,omitempty"`
	Suggestion string `json:"suggestion"`
}

// SnapshotDestination is the wire form of one scheduled visit.
type SnapshotDestination struct {
	ID              uint   `json:"id"`
	DestinationID   string `json:"destination_id"`
	Name            string `json:"name"`
	DestinationType string `json:"destination_type"`
	VisitDate       string `json:"visit_date"`
	OrderInDay      int    `json:"order_in_day"`
	TimeSlot        string `json:"time_slot,omitempty"`
	EstimatedCost   *int64 `json:"estimated_cost,omitempty"`
	Note            string `json:"note,omitempty"`
}

// PlanSnapshot is the wire form of a plan returned to the caller.
type PlanSnapshot struct {
	ID           uint                  `json:"id"`
	PlaceName    string                `json:"place_name"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	BudgetLimit  *int64                `json:"budget_limit,omitempty"`
	Destinations []SnapshotDestination `json:"destinations"`
}

// ChatResponse is the assembled result of one turn.
type ChatResponse struct {
	ReplyText     string         `json:"reply_text"`
	Plan          *PlanSnapshot  `json:"plan,omitempty"`
	Warnings      []Warning      `json:"warnings"`
	Modifications []Modification `json:"modifications"`
	Intent        string         `json:"intent"`
	Action        string         `json:"action,omitempty"`
}

// SnapshotOf projects a plan into its wire form.
func SnapshotOf(p *Plan) *PlanSnapshot {
	if p == nil {
		return nil
	}
	snap := &PlanSnapshot{
		ID:           p.ID,
		PlaceName:    p.PlaceName,
		StartDate:    p.StartDate.Format(DateLayout),
		EndDate:      p.EndDate.Format(DateLayout),
		BudgetLimit:  p.BudgetLimit,
		Destinations: make([]SnapshotDestination, 0, len(p.Destinations)),
	}
	for _, d := range p.Destinations {
		snap.Destinations = append(snap.Destinations, SnapshotDestination{
			ID:              d.ID,
			DestinationID:   d.DestinationID,
			Name:            d.Name,
			DestinationType: d.DestinationType,
			VisitDate:       d.VisitDate.Format(DateLayout),
			OrderInDay:      d.OrderInDay,
			TimeSlot:        d.TimeSlot,
			EstimatedCost:   d.EstimatedCost,
			Note:            d.Note,
		})
	}
	return snap
}
