package utils

import (
	"strconv"
	"strings"
	"time"

	"ecomovex-service/internal/domain/entity"
)

// ParseInt converts a string to int, returning 0 on failure.
func ParseInt(value string) int {
	parsed, _ := strconv.Atoi(value)
	return parsed
}

// NormalizeBudget converts a raw budget token and optional unit suffix to a
// whole amount, e.g. ("150", "k") -> 150000. Returns -1 when unparseable.
func NormalizeBudget(value, unit string) int64 {
	value = strings.ReplaceAll(value, ",", ".")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return -1
	}
	if strings.EqualFold(unit, "k") {
		f *= 1000
	}
	return int64(f)
}

// TimeSlotForHour buckets an hour of day into a coarse time slot.
func TimeSlotForHour(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return entity.SlotMorning
	case hour >= 12 && hour < 18:
		return entity.SlotAfternoon
	default:
		return entity.SlotEvening
	}
}

// ResolveDay maps a 1-based day number onto a calendar date within the plan.
func ResolveDay(start time.Time, day int) time.Time {
	return entity.DateOf(start).AddDate(0, 0, day-1)
}

// GuessDestinationType infers a destination type from a place title. Defaults
// to attraction when no keyword matches.
func GuessDestinationType(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "nhà hàng"), strings.Contains(lower, "restaurant"),
		strings.Contains(lower, "quán"), strings.Contains(lower, "cafe"):
		return entity.TypeRestaurant
	case strings.Contains(lower, "khách sạn"), strings.Contains(lower, "hotel"),
		strings.Contains(lower, "hostel"), strings.Contains(lower, "resort"):
		return entity.TypeHotel
	default:
		return entity.TypeAttraction
	}
}
