package utils

import (
	"testing"
	"time"

	"ecomovex-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBudget(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		unit     string
		expected int64
	}{
		{"plain amount", "500000", "", 500000},
		{"thousand suffix", "150", "k", 150000},
		{"decimal with k", "1.5", "k", 1500},
		{"comma decimal", "1,5", "k", 1500},
		{"vnd unit passthrough", "200000", "vnd", 200000},
		{"garbage", "abc", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeBudget(tt.value, tt.unit))
		})
	}
}

func TestTimeSlotForHour(t *testing.T) {
	assert.Equal(t, entity.SlotMorning, TimeSlotForHour(5))
	assert.Equal(t, entity.SlotMorning, TimeSlotForHour(11))
	assert.Equal(t, entity.SlotAfternoon, TimeSlotForHour(12))
	assert.Equal(t, entity.SlotAfternoon, TimeSlotForHour(17))
	assert.Equal(t, entity.SlotEvening, TimeSlotForHour(18))
	assert.Equal(t, entity.SlotEvening, TimeSlotForHour(3))
}

func TestResolveDay(t *testing.T) {
	start := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), ResolveDay(start, 1))
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), ResolveDay(start, 3))
}

func TestGuessDestinationType(t *testing.T) {
	assert.Equal(t, entity.TypeRestaurant, GuessDestinationType("Nhà hàng Cục Gạch"))
	assert.Equal(t, entity.TypeRestaurant, GuessDestinationType("Quán cafe The Workshop"))
	assert.Equal(t, entity.TypeHotel, GuessDestinationType("Khách sạn Rex"))
	assert.Equal(t, entity.TypeHotel, GuessDestinationType("Beachside Resort"))
	assert.Equal(t, entity.TypeAttraction, GuessDestinationType("War Remnants Museum"))
}
