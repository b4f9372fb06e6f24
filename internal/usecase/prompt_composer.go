package usecase

import (
	"context"
	"fmt"
	"strings"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"
	"ecomovex-service/pkg/logger"
)

const personaPreamble = `You are EcomoveX, a friendly eco-travel assistant.
Answer in the user's language. Ground every number, price, distance and place
name in the INFO blocks below; never invent values that are not listed there.
Mention the warnings naturally in your reply when any are present.`

// maxHistoryTurns bounds the short-term memory passed to the LLM.
const maxHistoryTurns = 6

// composerTemperatureCap is a hard ceiling regardless of configuration.
const composerTemperatureCap = 0.7

// PromptComposer assembles the final system prompt from the merged agent
// outputs and renders the user-facing reply through the LLM.
type PromptComposer struct {
	llmRepo     repository.LLMRepository
	logger      logger.Logger
	temperature float64
	maxTokens   int
}

// NewPromptComposer creates a new prompt composer
func NewPromptComposer(llmRepo repository.LLMRepository, logger logger.Logger, temperature float64, maxTokens int) *PromptComposer {
	if temperature > composerTemperatureCap {
		temperature = composerTemperatureCap
	}
	return &PromptComposer{
		llmRepo:     llmRepo,
		logger:      logger,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Compose builds the message list: the assembled system prompt, the last k
// conversation turns with user/assistant alternation preserved, then the
// current utterance.
func (c *PromptComposer) Compose(turn *TurnContext, merged MergedResult, history []entity.ConversationTurn) []entity.ChatMessage {
	var sys strings.Builder
	sys.WriteString(personaPreamble)

	if turn.Action != "" {
		fmt.Fprintf(&sys, "\n\nAction taken on the plan: %s.", turn.Action)
	}

	for _, report := range merged.Reports {
		if len(report.Findings) == 0 {
			continue
		}
		fmt.Fprintf(&sys, "\n\n[INFO %s]\n%s", strings.ToUpper(report.Agent), report.Summary)
		for _, f := range report.Findings {
			fmt.Fprintf(&sys, "\n- (%s) %s", f.Severity, f.Message)
		}
	}

	messages := []entity.ChatMessage{{Role: entity.RoleSystem, Content: sys.String()}}

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	for _, t := range history {
		if t.Role != entity.RoleUser && t.Role != entity.RoleAssistant {
			continue
		}
		messages = append(messages, entity.ChatMessage{Role: t.Role, Content: t.Content})
	}

	messages = append(messages, entity.ChatMessage{Role: entity.RoleUser, Content: turn.Request.Utterance})
	return messages
}

// Reply renders the user-facing text. An LLM failure degrades to a
// deterministic reply listing the warnings; the turn never fails here.
// mutated reports whether this turn changed the plan.
func (c *PromptComposer) Reply(ctx context.Context, messages []entity.ChatMessage, merged MergedResult, mutated bool) string {
	reply, err := c.llmRepo.Complete(ctx, messages, c.temperature, c.maxTokens)
	if err != nil {
		c.logger.Warn("Composer LLM call failed, using deterministic reply", "error", err)
		return c.fallbackReply(merged, mutated)
	}
	return reply
}

// fallbackReply is the deterministic reply used when the LLM is unavailable.
// The opener only claims an update when the plan actually changed.
func (c *PromptComposer) fallbackReply(merged MergedResult, mutated bool) string {
	var b strings.Builder
	if mutated {
		b.WriteString("I've updated your plan.")
	} else {
		b.WriteString("Here's where your plan stands.")
	}
	if merged.Success {
		b.WriteString(" Everything checks out.")
	}

	warned := false
	for _, f := range merged.Findings {
		if f.Severity == entity.SeverityInfo {
			continue
		}
		if !warned {
			b.WriteString(" A few things to look at:")
			warned = true
		}
		b.WriteString("\n- ")
		b.WriteString(f.Message)
	}
	return b.String()
}
