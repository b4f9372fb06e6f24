package utils

import (
	"testing"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVietnameseAdd(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("Thêm nhà hàng Cục Gạch vào ngày 2")

	assert.Equal(t, entity.IntentAdd, intent.Type)
	assert.Equal(t, 1.0, intent.Confidence)
	assert.Equal(t, 2, intent.Entities.Day)
	assert.Equal(t, "nhà hàng cục gạch", intent.Entities.Title)
}

func TestClassifyRemoveByID(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("Xoá id 15")

	assert.Equal(t, entity.IntentRemove, intent.Type)
	assert.Equal(t, uint(15), intent.Entities.ItemID)
	assert.Empty(t, intent.Entities.Title)
	assert.Equal(t, 1.0, intent.Confidence)
}

func TestClassifyModifyTime(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("Đổi bảo tàng sang 15h")

	assert.Equal(t, entity.IntentModifyTime, intent.Type)
	assert.Equal(t, "15h", intent.Entities.TimeText)
	assert.Equal(t, entity.SlotAfternoon, intent.Entities.TimeSlot)
}

func TestClassifyChangeBudget(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("Đổi ngân sách thành 500k")

	// Budget outranks the generic modify verb.
	assert.Equal(t, entity.IntentChangeBudget, intent.Type)
	assert.Equal(t, int64(500000), intent.Entities.BudgetValue)
}

func TestClassifyBudgetSkipsDayNumber(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	// The day number sits between the keyword and the amount; the suffixed
	// number is the budget.
	intent := c.Classify("đổi ngân sách ngày 2 thành 500k")

	assert.Equal(t, int64(500000), intent.Entities.BudgetValue)
	assert.Equal(t, 2, intent.Entities.Day)
}

func TestClassifyBudgetWithoutUnitSuffix(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("budget ngày 2 thành 500000")

	assert.Equal(t, entity.IntentChangeBudget, intent.Type)
	assert.Equal(t, int64(500000), intent.Entities.BudgetValue)
}

func TestClassifyBudgetValueNeedsKeyword(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("Xoá id 15")

	assert.Equal(t, int64(-1), intent.Entities.BudgetValue)
}

func TestClassifyViewPlanVerbOnly(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("xem kế hoạch")

	assert.Equal(t, entity.IntentViewPlan, intent.Type)
	assert.Equal(t, 0.7, intent.Confidence)
}

func TestClassifySuggest(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("Gợi ý quán cafe gần đây")

	assert.Equal(t, entity.IntentSuggest, intent.Type)
}

func TestClassifyUnknown(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("trời hôm nay đẹp quá")

	assert.Equal(t, entity.IntentUnknown, intent.Type)
	assert.Equal(t, 0.0, intent.Confidence)
}

func TestClassifyDayNumberNotMistakenForID(t *testing.T) {
	c := NewIntentClassifier(logger.NewNopLogger())

	intent := c.Classify("remove the museum on day 3")

	assert.Equal(t, entity.IntentRemove, intent.Type)
	assert.Equal(t, 3, intent.Entities.Day)
	assert.Equal(t, uint(0), intent.Entities.ItemID)
}
