package usecase

import (
	"context"
	"fmt"
	"time"

	"ecomovex-service/internal/domain/entity"
)

// mockMapsRepo is a hand-rolled maps collaborator double.
type mockMapsRepo struct {
	searchFn  func(ctx context.Context, text string) ([]entity.Place, error)
	detailsFn func(ctx context.Context, destinationID string) (*entity.PlaceDetails, error)

	searchCalls  int
	detailsCalls int
}

func (m *mockMapsRepo) SearchPlace(ctx context.Context, text string) ([]entity.Place, error) {
	m.searchCalls++
	if m.searchFn != nil {
		return m.searchFn(ctx, text)
	}
	return []entity.Place{{DestinationID: "place-" + text, Name: text}}, nil
}

func (m *mockMapsRepo) GetPlaceDetails(ctx context.Context, destinationID string) (*entity.PlaceDetails, error) {
	m.detailsCalls++
	if m.detailsFn != nil {
		return m.detailsFn(ctx, destinationID)
	}
	return &entity.PlaceDetails{DestinationID: destinationID}, nil
}

// mockLLMRepo replays canned completions in order. A nil entry yields an error
// so failure sequences are easy to script.
type mockLLMRepo struct {
	replies []*string
	calls   [][]entity.ChatMessage
}

func llmReply(s string) *string { return &s }

func (m *mockLLMRepo) Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64, maxTokens int) (string, error) {
	m.calls = append(m.calls, messages)
	i := len(m.calls) - 1
	if i >= len(m.replies) || m.replies[i] == nil {
		return "", fmt.Errorf("%w: scripted failure", entity.ErrLLM)
	}
	return *m.replies[i], nil
}

// testPlan is a three-day Da Lat trip with two destinations on day one.
func testPlan() *entity.Plan {
	budget := int64(1000000)
	cost1 := int64(150000)
	cost2 := int64(50000)
	return &entity.Plan{
		ID:          7,
		UserID:      42,
		PlaceName:   "Da Lat",
		StartDate:   time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		BudgetLimit: &budget,
		Destinations: []entity.PlanDestination{
			{
				ID:              1,
				PlanID:          7,
				DestinationID:   "place-xuan-huong",
				Name:            "Hồ Xuân Hương",
				DestinationType: entity.TypeAttraction,
				VisitDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				OrderInDay:      1,
				TimeSlot:        entity.SlotMorning,
				EstimatedCost:   &cost1,
				OpeningHours:    "Monday: Open 24 hours",
			},
			{
				ID:              2,
				PlanID:          7,
				DestinationID:   "place-da-quy",
				Name:            "Quán Dã Quỳ",
				DestinationType: entity.TypeRestaurant,
				VisitDate:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
				OrderInDay:      2,
				TimeSlot:        entity.SlotAfternoon,
				EstimatedCost:   &cost2,
				OpeningHours:    "Monday: 10:00 - 21:00",
			},
		},
	}
}

func day(d int) time.Time {
	return time.Date(2026, 3, 9+d, 0, 0, 0, 0, time.UTC)
}
