package entity

import (
	"time"
)

// DateLayout is the wire format for plan dates. All plan dates are UTC.
const DateLayout = "2006-01-02"

// MaxPlanSpanDays caps the inclusive length of a plan.
const MaxPlanSpanDays = 30

// Destination types
const (
	TypeRestaurant = "restaurant"
	TypeHotel      = "hotel"
	TypeAttraction = "attraction"
)

// Time slots
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
)

// Plan is the root aggregate for a user's trip. It exclusively owns its
// PlanDestinations.
type Plan struct {
	ID           uint
	UserID       uint
	PlaceName    string
	StartDate    time.Time
	EndDate      time.Time
	BudgetLimit  *int64
	Destinations []PlanDestination
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlanDestination is a single scheduled visit within a Plan.
type PlanDestination struct {
	ID              uint
	PlanID          uint
	DestinationID   string
	Name            string
	DestinationType string
	VisitDate       time.Time
	OrderInDay      int
	TimeSlot        string
	EstimatedCost   *int64
	Note            string
	OpeningHours    string
}

// SpanDays returns the inclusive number of calendar days the plan covers.
func (p *Plan) SpanDays() int {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return 0
	}
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}

// ContainsDate reports whether d falls within [StartDate, EndDate].
func (p *Plan) ContainsDate(d time.Time) bool {
	day := DateOf(d)
	return !day.Before(DateOf(p.StartDate)) && !day.After(DateOf(p.EndDate))
}

// DestinationsOn returns the destinations scheduled for the given day.
func (p *Plan) DestinationsOn(d time.Time) []PlanDestination {
	day := DateOf(d)
	var out []PlanDestination
	for _, dest := range p.Destinations {
		if DateOf(dest.VisitDate).Equal(day) {
			out = append(out, dest)
		}
	}
	return out
}

// MaxOrderOn returns the highest order_in_day used on the given day, 0 if the
// day is empty.
func (p *Plan) MaxOrderOn(d time.Time) int {
	max := 0
	for _, dest := range p.DestinationsOn(d) {
		if dest.OrderInDay > max {
			max = dest.OrderInDay
		}
	}
	return max
}

// FindDestination returns the destination with the given id, nil when absent.
func (p *Plan) FindDestination(id uint) *PlanDestination {
	for i := range p.Destinations {
		if p.Destinations[i].ID == id {
			return &p.Destinations[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the plan. The mutator always works on a copy so
// a failed turn never leaks partial state.
func (p *Plan) Clone() *Plan {
	cp := *p
	cp.Destinations = make([]PlanDestination, len(p.Destinations))
	copy(cp.Destinations, p.Destinations)
	if p.BudgetLimit != nil {
		v := *p.BudgetLimit
		cp.BudgetLimit = &v
	}
	for i := range cp.Destinations {
		if p.Destinations[i].EstimatedCost != nil {
			v := *p.Destinations[i].EstimatedCost
			cp.Destinations[i].EstimatedCost = &v
		}
	}
	return &cp
}

// DateOf truncates a timestamp to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
