package model_test

import (
	"testing"
	"time"

	"bookit/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestSlot_IsAvailable(t *testing.T) {
	slot := &model.Slot{Status: model.SlotStatusAvailable, AvailableCapacity: 3}
	assert.True(t, slot.IsAvailable())

	slot.AvailableCapacity = 0
	assert.False(t, slot.IsAvailable())

	slot.AvailableCapacity = 3
	slot.Status = model.SlotStatusSoldOut
	assert.False(t, slot.IsAvailable())
}

func TestSlotStatus_IsValid(t *testing.T) {
	assert.True(t, model.SlotStatusAvailable.IsValid())
	assert.True(t, model.SlotStatusSoldOut.IsValid())
	assert.False(t, model.SlotStatus("cancelled").IsValid())
}

func TestGroupSlotsByDate(t *testing.T) {
	t.Run("groups consecutive dates preserving order", func(t *testing.T) {
		slots := []*model.Slot{
			{ID: 1, Date: day(0), TimeSlot: "09:00"},
			{ID: 2, Date: day(0), TimeSlot: "14:00"},
			{ID: 3, Date: day(1), TimeSlot: "09:00"},
			{ID: 4, Date: day(2), TimeSlot: "09:00"},
			{ID: 5, Date: day(2), TimeSlot: "11:00"},
		}

		groups := model.GroupSlotsByDate(slots)

		require.Len(t, groups, 3)
		assert.Equal(t, "2026-09-01", groups[0].Date)
		assert.Len(t, groups[0].Slots, 2)
		assert.Equal(t, "09:00", groups[0].Slots[0].TimeSlot)
		assert.Equal(t, "14:00", groups[0].Slots[1].TimeSlot)
		assert.Equal(t, "2026-09-02", groups[1].Date)
		assert.Len(t, groups[1].Slots, 1)
		assert.Equal(t, "2026-09-03", groups[2].Date)
		assert.Len(t, groups[2].Slots, 2)
	})

	t.Run("empty input yields empty groups", func(t *testing.T) {
		groups := model.GroupSlotsByDate(nil)
		assert.NotNil(t, groups)
		assert.Len(t, groups, 0)
	})
}
