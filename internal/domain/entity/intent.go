package entity

// IntentType identifies the classified purpose of a user utterance.
type IntentType string

const (
	IntentAdd               IntentType = "ADD"
	IntentRemove            IntentType = "REMOVE"
	IntentModifyTime        IntentType = "MODIFY_TIME"
	IntentModifyDay         IntentType = "MODIFY_DAY"
	IntentModifyLocation    IntentType = "MODIFY_LOCATION"
	IntentChangeBudget      IntentType = "CHANGE_BUDGET"
	IntentViewPlan          IntentType = "VIEW_PLAN"
	IntentSuggest           IntentType = "SUGGEST"
	IntentGetWeather        IntentType = "GET_WEATHER"
	IntentGetRoute          IntentType = "GET_ROUTE"
	IntentSearchDestination IntentType = "SEARCH_DESTINATION"
	IntentChitChat          IntentType = "CHIT_CHAT"
	IntentUnknown           IntentType = "UNKNOWN"
)

// IsEdit reports whether the intent mutates the plan.
func (t IntentType) IsEdit() bool {
	switch t {
	case IntentAdd, IntentRemove, IntentModifyTime, IntentModifyDay,
		IntentModifyLocation, IntentChangeBudget:
		return true
	}
	return false
}

// IsQuery reports whether the intent reads the plan without mutating it.
func (t IntentType) IsQuery() bool {
	switch t {
	case IntentViewPlan, IntentSuggest, IntentGetWeather, IntentGetRoute,
		IntentSearchDestination:
		return true
	}
	return false
}

// IntentEntities is the typed entity bag extracted by the rule engine.
type IntentEntities struct {
	Day         int    // 1-based day number within the plan, 0 when absent
	TimeText    string // raw time token, e.g. "19:00" or "9h30"
	TimeSlot    string // resolved slot for TimeText
	ItemID      uint   // explicit destination id ("id=15"), 0 when absent
	BudgetValue int64  // normalized budget amount, -1 when absent
	Title       string // extracted noun phrase for add/remove
}

// Intent is a classified utterance with its extracted entities.
type Intent struct {
	Type       IntentType
	Entities   IntentEntities
	Confidence float64
}
