package templates

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/usecase"
	"ecomovex-service/pkg/logger"
	"ecomovex-service/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetrics = metrics.NewMetrics("templates_test")

type stubLLM struct{}

func (s *stubLLM) Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64, maxTokens int) (string, error) {
	return "", fmt.Errorf("%w: unavailable", entity.ErrLLM)
}

// countingLLM fails every completion and records how many were attempted.
type countingLLM struct{ calls int }

func (s *countingLLM) Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64, maxTokens int) (string, error) {
	s.calls++
	return "", fmt.Errorf("%w: unavailable", entity.ErrLLM)
}

type stubMaps struct{}

func (s *stubMaps) SearchPlace(ctx context.Context, text string) ([]entity.Place, error) {
	return []entity.Place{{DestinationID: "place-" + text, Name: text}}, nil
}

func (s *stubMaps) GetPlaceDetails(ctx context.Context, destinationID string) (*entity.PlaceDetails, error) {
	return &entity.PlaceDetails{DestinationID: destinationID}, nil
}

func handlerFixture() (*EditTurnHandler, *QueryTurnHandler) {
	log := logger.NewNopLogger()
	parser := usecase.NewEditParser(&stubLLM{}, log)
	mutator := usecase.NewPlanMutator(&stubMaps{}, log)
	validators := []usecase.Validator{usecase.NewStructuralValidator(log)}
	return NewEditTurnHandler(parser, mutator, validators, log, testMetrics),
		NewQueryTurnHandler(validators, log)
}

func fixturePlan() *entity.Plan {
	return &entity.Plan{
		ID:        7,
		UserID:    42,
		PlaceName: "Da Lat",
		StartDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		Destinations: []entity.PlanDestination{{
			ID: 1, PlanID: 7, DestinationID: "place-xuan-huong",
			Name: "Hồ Xuân Hương", DestinationType: entity.TypeAttraction,
			VisitDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), OrderInDay: 1,
		}},
	}
}

func TestEditHandlerRequiresPlan(t *testing.T) {
	edit, _ := handlerFixture()
	turn := &usecase.TurnContext{Request: entity.ChatRequest{Utterance: "thêm gì đó"}}

	err := edit.Handle(context.Background(), turn)

	assert.ErrorIs(t, err, entity.ErrPlanNotFound)
}

func TestEditHandlerAppliesRuleFallback(t *testing.T) {
	edit, _ := handlerFixture()
	turn := &usecase.TurnContext{
		Request: entity.ChatRequest{Utterance: "Xoá id 1"},
		Intent: entity.Intent{
			Type:     entity.IntentRemove,
			Entities: entity.IntentEntities{ItemID: 1, BudgetValue: -1},
		},
		Plan: fixturePlan(),
	}

	err := edit.Handle(context.Background(), turn)

	require.NoError(t, err)
	assert.True(t, turn.Mutated)
	assert.Equal(t, entity.ActionRemove, turn.Action)
	assert.Empty(t, turn.Plan.Destinations)

	// The structural validator report is present after the edit.
	agents := make([]string, 0, len(turn.Reports))
	for _, r := range turn.Reports {
		agents = append(agents, r.Agent)
	}
	assert.Contains(t, agents, entity.AgentStructural)
}

func TestEditHandlerSkipsParserAfterFallbackIntent(t *testing.T) {
	log := logger.NewNopLogger()
	llm := &countingLLM{}
	edit := NewEditTurnHandler(
		usecase.NewEditParser(llm, log),
		usecase.NewPlanMutator(&stubMaps{}, log),
		[]usecase.Validator{usecase.NewStructuralValidator(log)},
		log, testMetrics,
	)
	turn := &usecase.TurnContext{
		Request: entity.ChatRequest{Utterance: "bỏ chỗ id 1 đi"},
		Intent: entity.Intent{
			Type:     entity.IntentRemove,
			Entities: entity.IntentEntities{ItemID: 1, BudgetValue: -1},
		},
		IntentViaFallback: true,
		Plan:              fixturePlan(),
	}

	err := edit.Handle(context.Background(), turn)

	require.NoError(t, err)
	assert.True(t, turn.Mutated)
	assert.Equal(t, entity.ActionRemove, turn.Action)
	// The classification already used a completion; the parser stays offline.
	assert.Zero(t, llm.calls)
}

func TestEditHandlerRecordsParserFindings(t *testing.T) {
	edit, _ := handlerFixture()
	turn := &usecase.TurnContext{
		Request: entity.ChatRequest{Utterance: "làm gì đó hay hay"},
		Intent: entity.Intent{
			Type:     entity.IntentAdd,
			Entities: entity.IntentEntities{BudgetValue: -1},
		},
		Plan: fixturePlan(),
	}

	err := edit.Handle(context.Background(), turn)

	require.NoError(t, err)
	assert.False(t, turn.Mutated)
	require.NotEmpty(t, turn.Reports)
	assert.Equal(t, entity.AgentEditParser, turn.Reports[0].Agent)
}

func TestQueryHandlerWithoutPlan(t *testing.T) {
	_, query := handlerFixture()
	turn := &usecase.TurnContext{Request: entity.ChatRequest{Utterance: "xem kế hoạch"}}

	err := query.Handle(context.Background(), turn)

	require.NoError(t, err)
	require.Len(t, turn.Reports, 1)
	assert.Equal(t, entity.AgentDispatcher, turn.Reports[0].Agent)
	assert.Equal(t, entity.SeverityInfo, turn.Reports[0].Findings[0].Severity)
}

func TestChitChatHandlerCoverage(t *testing.T) {
	h := NewChitChatTurnHandler(logger.NewNopLogger())

	assert.True(t, h.CanHandle(entity.IntentChitChat))
	assert.True(t, h.CanHandle(entity.IntentUnknown))
	assert.False(t, h.CanHandle(entity.IntentAdd))
	assert.NoError(t, h.Handle(context.Background(), &usecase.TurnContext{}))
}
