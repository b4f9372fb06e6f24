package usecase

import (
	"fmt"
	"sort"
	"strings"

	"ecomovex-service/internal/domain/entity"
)

// agentOrder fixes the canonical ordering of findings across agents.
var agentOrder = map[string]int{
	entity.AgentStructural:    0,
	entity.AgentDailySchedule: 1,
	entity.AgentBudget:        2,
	entity.AgentOpeningHours:  3,
	entity.AgentMutator:       4,
	entity.AgentEditParser:    5,
	entity.AgentDispatcher:    6,
}

var severityOrder = map[string]int{
	entity.SeverityError:   0,
	entity.SeverityWarning: 1,
	entity.SeverityInfo:    2,
}

// MergedResult is the single record produced from all sub-agent reports.
type MergedResult struct {
	Success  bool
	Findings []entity.Finding
	Reports  []entity.AgentReport
	Summary  string
}

// ResultMerger folds the sub-agent reports into one deduplicated, canonically
// ordered record. Merging is idempotent: merging the same reports twice yields
// the same output.
type ResultMerger struct{}

// NewResultMerger creates a new result merger
func NewResultMerger() *ResultMerger {
	return &ResultMerger{}
}

// Merge combines reports, deduplicates findings and imposes the canonical
// ordering: errors before warnings before info, then by agent order.
func (m *ResultMerger) Merge(reports []entity.AgentReport) MergedResult {
	var findings []entity.Finding
	seen := map[string]bool{}

	orderedReports := make([]entity.AgentReport, len(reports))
	copy(orderedReports, reports)
	sort.SliceStable(orderedReports, func(i, j int) bool {
		return agentRank(orderedReports[i].Agent) < agentRank(orderedReports[j].Agent)
	})

	for _, report := range orderedReports {
		for _, f := range report.Findings {
			key := dedupeKey(f)
			if seen[key] {
				continue
			}
			seen[key] = true
			findings = append(findings, f)
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		si, sj := severityOrder[findings[i].Severity], severityOrder[findings[j].Severity]
		if si != sj {
			return si < sj
		}
		return agentRank(findings[i].Agent) < agentRank(findings[j].Agent)
	})

	success := true
	messages := make([]string, 0, len(findings))
	for _, f := range findings {
		if f.Severity == entity.SeverityError {
			success = false
		}
		messages = append(messages, f.Message)
	}

	return MergedResult{
		Success:  success,
		Findings: findings,
		Reports:  orderedReports,
		Summary:  strings.Join(messages, "\n"),
	}
}

// dedupeKey collapses findings with the same agent, suggestion code, and
// destination reference. The message is part of the key so same-code findings
// about different days survive.
func dedupeKey(f entity.Finding) string {
	code := ""
	if f.Suggestion != nil {
		code = f.Suggestion.Code
	}
	return fmt.Sprintf("%s|%s|%d|%s", f.Agent, code, f.DestinationRef, f.Message)
}

func agentRank(agent string) int {
	if rank, ok := agentOrder[agent]; ok {
		return rank
	}
	return len(agentOrder)
}
