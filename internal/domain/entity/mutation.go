package entity

// MutationOp tags the kind of plan edit.
type MutationOp string

const (
	OpAdd          MutationOp = "add"
	OpRemove       MutationOp = "remove"
	OpModifyTime   MutationOp = "modify_time"
	OpChangeBudget MutationOp = "change_budget"
)

// Mutation is one structured edit to a Plan, produced by the edit parser. The
// JSON shape doubles as the schema the LLM is constrained to.
type Mutation struct {
	Op              MutationOp `json:"op"`
	Title           string     `json:"title,omitempty"`
	DestinationType string     `json:"destination_type,omitempty"`
	DestinationID   uint       `json:"destination_id,omitempty"`
	TitleMatch      string     `json:"title_match,omitempty"`
	VisitDate       string     `json:"visit_date,omitempty"`
	TimeSlot        string     `json:"time_slot,omitempty"`
	OrderInDay      int        `json:"order_in_day,omitempty"`
	NewBudget       int64      `json:"new_budget,omitempty"`
	Note            string     `json:"note,omitempty"`
}

// MutationOutcome records whether a single mutation applied.
type MutationOutcome struct {
	Mutation Mutation
	Applied  bool
	Detail   string
}
