package entity

// Finding severities
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Validation agents, in canonical merge order.
const (
	AgentStructural    = "structural"
	AgentDailySchedule = "daily_schedule"
	AgentBudget        = "budget"
	AgentOpeningHours  = "opening_hours"
	AgentMutator       = "plan_mutator"
	AgentEditParser    = "edit_parser"
	AgentDispatcher    = "dispatcher"
)

// Suggestion is a machine-readable remediation hint attached to a finding.
type Suggestion struct {
	Code   string                 `json:"code"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// Finding is one validation observation emitted by a sub-agent. Findings are
// value objects: created per turn, consumed by the composer, never persisted.
type Finding struct {
	Agent          string      `json:"agent"`
	Severity       string      `json:"severity"`
	Message        string      `json:"message"`
	DestinationRef uint        `json:"destination_ref,omitempty"`
	Suggestion     *Suggestion `json:"suggestion,omitempty"`
}

// AgentReport is the unit returned by one validator: its findings plus a short
// summary line used in the composed prompt.
type AgentReport struct {
	Agent    string
	Findings []Finding
	Summary  string
}
