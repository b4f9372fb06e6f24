package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"
	"ecomovex-service/pkg/logger"
	"ecomovex-service/pkg/utils"
)

const editSchemaPrompt = `You convert a travel-plan edit request into JSON mutations.
Reply with ONLY a JSON array. Each element is one of:
  {"op":"add","title":"<place text>","destination_type":"restaurant|hotel|attraction","visit_date":"YYYY-MM-DD","time_slot":"morning|afternoon|evening","order_in_day":<int>}
  {"op":"remove","destination_id":<int>} or {"op":"remove","title_match":"<text>"}
  {"op":"modify_time","destination_id":<int>,"time_slot":"...","visit_date":"YYYY-MM-DD","order_in_day":<int>}
  {"op":"change_budget","new_budget":<int>}
Omit fields you cannot infer. destination_id must come from the plan listing below.
Do not invent ids or dates outside the plan range.`

// maxParseAttempts bounds schema-constrained LLM calls before falling back to
// the rule engine's entities.
const maxParseAttempts = 2

// EditParser converts an edit utterance into structured plan mutations using
// the LLM, with a deterministic rule-engine fallback.
type EditParser struct {
	llmRepo repository.LLMRepository
	logger  logger.Logger
}

// NewEditParser creates a new edit parser
func NewEditParser(llmRepo repository.LLMRepository, logger logger.Logger) *EditParser {
	return &EditParser{
		llmRepo: llmRepo,
		logger:  logger,
	}
}

// Parse returns the mutation list for an edit intent. Findings describe
// anything the parser had to discard or give up on; they never abort the turn.
func (p *EditParser) Parse(ctx context.Context, intent entity.Intent, plan *entity.Plan, utterance string) ([]entity.Mutation, []entity.Finding) {
	projection := p.planProjection(plan)

	for attempt := 1; attempt <= maxParseAttempts; attempt++ {
		mutations, err := p.parseWithLLM(ctx, projection, utterance)
		if err != nil {
			p.logger.Warn("LLM edit parse attempt failed", "attempt", attempt, "error", err)
			continue
		}
		if findings := p.checkPostconditions(plan, mutations); len(findings) > 0 {
			p.logger.Warn("LLM mutations failed postconditions", "attempt", attempt, "violations", len(findings))
			continue
		}
		p.applyDefaults(plan, mutations)
		return mutations, nil
	}

	p.logger.Info("Falling back to rule-engine mutation", "intent", string(intent.Type))
	return p.fallbackFromRules(intent, plan)
}

// parseWithLLM performs one schema-constrained completion.
func (p *EditParser) parseWithLLM(ctx context.Context, projection, utterance string) ([]entity.Mutation, error) {
	messages := []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: editSchemaPrompt + "\n\nCurrent plan:\n" + projection},
		{Role: entity.RoleUser, Content: utterance},
	}

	reply, err := p.llmRepo.Complete(ctx, messages, 0.0, 512)
	if err != nil {
		return nil, err
	}

	raw := utils.ExtractJSONArray(reply)
	if raw == "" {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var mutations []entity.Mutation
	if err := json.Unmarshal([]byte(raw), &mutations); err != nil {
		return nil, fmt.Errorf("unmarshal mutations: %w", err)
	}
	return mutations, nil
}

// ParseRules derives mutations from the rule engine's entities without calling
// the LLM, for turns whose classification already consumed a completion.
func (p *EditParser) ParseRules(intent entity.Intent, plan *entity.Plan) ([]entity.Mutation, []entity.Finding) {
	return p.fallbackFromRules(intent, plan)
}

// checkPostconditions validates LLM output against the supplied plan. Any
// violation discards the whole batch; the caller retries or falls back.
func (p *EditParser) checkPostconditions(plan *entity.Plan, mutations []entity.Mutation) []entity.Finding {
	var findings []entity.Finding
	reject := func(msg string) {
		findings = append(findings, entity.Finding{
			Agent:    entity.AgentEditParser,
			Severity: entity.SeverityWarning,
			Message:  msg,
		})
	}

	for _, m := range mutations {
		switch m.Op {
		case entity.OpAdd:
			if m.Title == "" {
				reject("add mutation without a place title")
			}
		case entity.OpRemove:
			if m.DestinationID != 0 && plan.FindDestination(m.DestinationID) == nil {
				reject(fmt.Sprintf("remove targets unknown destination id %d", m.DestinationID))
			}
			if m.DestinationID == 0 && m.TitleMatch == "" {
				reject("remove mutation without a target")
			}
		case entity.OpModifyTime:
			if plan.FindDestination(m.DestinationID) == nil {
				reject(fmt.Sprintf("modify_time targets unknown destination id %d", m.DestinationID))
			}
		case entity.OpChangeBudget:
			if m.NewBudget < 0 {
				reject("budget must be non-negative")
			}
		default:
			reject(fmt.Sprintf("unknown mutation op %q", m.Op))
		}
	}
	return findings
}

// applyDefaults fills in the documented defaults for add mutations.
func (p *EditParser) applyDefaults(plan *entity.Plan, mutations []entity.Mutation) {
	for i := range mutations {
		if mutations[i].Op == entity.OpAdd && mutations[i].VisitDate == "" {
			mutations[i].VisitDate = plan.StartDate.Format(entity.DateLayout)
		}
	}
}

// fallbackFromRules derives a single best-effort mutation from the rule
// engine's entities when the LLM output could not be used.
func (p *EditParser) fallbackFromRules(intent entity.Intent, plan *entity.Plan) ([]entity.Mutation, []entity.Finding) {
	unparseable := []entity.Finding{{
		Agent:    entity.AgentEditParser,
		Severity: entity.SeverityWarning,
		Message:  "could not parse edit",
	}}

	ents := intent.Entities
	switch intent.Type {
	case entity.IntentAdd:
		if ents.Title == "" {
			return nil, unparseable
		}
		m := entity.Mutation{
			Op:        entity.OpAdd,
			Title:     ents.Title,
			TimeSlot:  ents.TimeSlot,
			VisitDate: plan.StartDate.Format(entity.DateLayout),
		}
		if ents.Day > 0 {
			m.VisitDate = utils.ResolveDay(plan.StartDate, ents.Day).Format(entity.DateLayout)
		}
		return []entity.Mutation{m}, nil

	case entity.IntentRemove:
		if ents.ItemID > 0 {
			// Explicit id overrides any title match.
			if plan.FindDestination(ents.ItemID) == nil {
				return nil, unparseable
			}
			return []entity.Mutation{{Op: entity.OpRemove, DestinationID: ents.ItemID}}, nil
		}
		if ents.Title != "" && p.titleMatches(plan, ents.Title) {
			return []entity.Mutation{{Op: entity.OpRemove, TitleMatch: ents.Title}}, nil
		}
		return nil, unparseable

	case entity.IntentModifyTime:
		if ents.ItemID == 0 || plan.FindDestination(ents.ItemID) == nil {
			return nil, unparseable
		}
		m := entity.Mutation{Op: entity.OpModifyTime, DestinationID: ents.ItemID, TimeSlot: ents.TimeSlot}
		if ents.Day > 0 {
			m.VisitDate = utils.ResolveDay(plan.StartDate, ents.Day).Format(entity.DateLayout)
		}
		return []entity.Mutation{m}, nil

	case entity.IntentChangeBudget:
		if ents.BudgetValue < 0 {
			return nil, unparseable
		}
		return []entity.Mutation{{Op: entity.OpChangeBudget, NewBudget: ents.BudgetValue}}, nil
	}

	return nil, unparseable
}

func (p *EditParser) titleMatches(plan *entity.Plan, title string) bool {
	needle := strings.ToLower(title)
	for _, d := range plan.Destinations {
		if strings.Contains(strings.ToLower(d.Name), needle) {
			return true
		}
	}
	return false
}

// planProjection renders the compact destination listing embedded in the LLM
// prompt: one line per destination with id, name, date and order.
func (p *EditParser) planProjection(plan *entity.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s to %s\n", plan.PlaceName,
		plan.StartDate.Format(entity.DateLayout), plan.EndDate.Format(entity.DateLayout))
	if plan.BudgetLimit != nil {
		fmt.Fprintf(&b, "budget limit: %d\n", *plan.BudgetLimit)
	}
	for _, d := range plan.Destinations {
		fmt.Fprintf(&b, "id=%d | %s | %s | #%d\n",
			d.ID, d.Name, d.VisitDate.Format(entity.DateLayout), d.OrderInDay)
	}
	return b.String()
}
