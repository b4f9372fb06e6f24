package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func composerTurn(action string) *TurnContext {
	return &TurnContext{
		Request: entity.ChatRequest{
			UserID:         42,
			ConversationID: 9,
			Utterance:      "Thêm nhà hàng Cục Gạch vào ngày 2",
		},
		Action: action,
	}
}

func TestComposeBuildsSystemPrompt(t *testing.T) {
	c := NewPromptComposer(&mockLLMRepo{}, logger.NewNopLogger(), 0.5, 800)
	merged := MergedResult{
		Reports: []entity.AgentReport{
			{
				Agent:   entity.AgentBudget,
				Summary: "estimated total cost is 200000 of a 1000000 budget",
				Findings: []entity.Finding{
					finding(entity.AgentBudget, entity.SeverityWarning, "over budget", "over_budget"),
				},
			},
			{Agent: entity.AgentStructural, Summary: "plan structure is complete"},
		},
	}

	messages := c.Compose(composerTurn(entity.ActionAdd), merged, nil)

	require.Len(t, messages, 2)
	system := messages[0]
	assert.Equal(t, entity.RoleSystem, system.Role)
	assert.Contains(t, system.Content, "You are EcomoveX")
	assert.Contains(t, system.Content, "Action taken on the plan: add.")
	assert.Contains(t, system.Content, "[INFO BUDGET]")
	assert.Contains(t, system.Content, "estimated total cost is 200000")
	assert.Contains(t, system.Content, "- (warning) over budget")
	// Reports with no findings contribute no block.
	assert.NotContains(t, system.Content, "[INFO STRUCTURAL]")

	assert.Equal(t, entity.RoleUser, messages[1].Role)
	assert.Equal(t, "Thêm nhà hàng Cục Gạch vào ngày 2", messages[1].Content)
}

func TestComposeTrimsAndFiltersHistory(t *testing.T) {
	c := NewPromptComposer(&mockLLMRepo{}, logger.NewNopLogger(), 0.5, 800)

	var history []entity.ConversationTurn
	for i := 0; i < 8; i++ {
		role := entity.RoleUser
		if i%2 == 1 {
			role = entity.RoleAssistant
		}
		history = append(history, entity.ConversationTurn{
			ConversationID: 9,
			TurnIndex:      i,
			Role:           role,
			Content:        fmt.Sprintf("turn %d", i),
			Timestamp:      time.Now(),
		})
	}
	history = append(history, entity.ConversationTurn{Role: entity.RoleSystem, Content: "should be dropped"})

	messages := c.Compose(composerTurn(""), MergedResult{}, history)

	// The window keeps the last six turns, then drops the injected system-role
	// turn, leaving five history messages between the prompt and the utterance.
	require.Len(t, messages, 7)
	assert.Equal(t, "turn 3", messages[1].Content)
	assert.Equal(t, "turn 7", messages[5].Content)
	assert.Equal(t, "Thêm nhà hàng Cục Gạch vào ngày 2", messages[6].Content)
	for _, msg := range messages[1:6] {
		assert.NotEqual(t, entity.RoleSystem, msg.Role)
	}
}

func TestComposeOmitsActionWhenAbsent(t *testing.T) {
	c := NewPromptComposer(&mockLLMRepo{}, logger.NewNopLogger(), 0.5, 800)

	messages := c.Compose(composerTurn(""), MergedResult{}, nil)

	assert.NotContains(t, messages[0].Content, "Action taken on the plan")
}

func TestComposerCapsTemperature(t *testing.T) {
	c := NewPromptComposer(&mockLLMRepo{}, logger.NewNopLogger(), 1.3, 800)

	assert.Equal(t, composerTemperatureCap, c.temperature)
}

func TestReplyUsesLLM(t *testing.T) {
	llm := &mockLLMRepo{replies: []*string{llmReply("Đã thêm nhà hàng vào ngày 2 nhé!")}}
	c := NewPromptComposer(llm, logger.NewNopLogger(), 0.5, 800)

	reply := c.Reply(context.Background(), []entity.ChatMessage{{Role: entity.RoleUser, Content: "hi"}}, MergedResult{}, false)

	assert.Equal(t, "Đã thêm nhà hàng vào ngày 2 nhé!", reply)
}

func TestReplyFallsBackWhenLLMDown(t *testing.T) {
	llm := &mockLLMRepo{}
	c := NewPromptComposer(llm, logger.NewNopLogger(), 0.5, 800)
	merged := MergedResult{
		Findings: []entity.Finding{
			finding(entity.AgentBudget, entity.SeverityWarning, "over budget", "over_budget"),
			finding(entity.AgentBudget, entity.SeverityInfo, "budget usage", "budget_usage"),
		},
	}

	reply := c.Reply(context.Background(), nil, merged, true)

	assert.Contains(t, reply, "I've updated your plan.")
	assert.Contains(t, reply, "- over budget")
	assert.NotContains(t, reply, "budget usage")
}

func TestReplyFallbackOnReadOnlyTurn(t *testing.T) {
	llm := &mockLLMRepo{}
	c := NewPromptComposer(llm, logger.NewNopLogger(), 0.5, 800)

	// No mutation this turn, so the deterministic reply must not claim one.
	reply := c.Reply(context.Background(), nil, MergedResult{Success: true}, false)

	assert.Contains(t, reply, "Here's where your plan stands.")
	assert.Contains(t, reply, "Everything checks out.")
	assert.NotContains(t, reply, "I've updated your plan.")
}
