package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

func TestNewGrid_DefaultHours(t *testing.T) {
	grid, err := NewGrid(DefaultHours())
	require.NoError(t, err)

	slots := grid.AllSlots()
	// 08:00-17:00 по 30 минут = 18 слотов
	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("08:00"), slots[0])
	assert.Equal(t, types.TimeString("08:30"), slots[1])
	assert.Equal(t, types.TimeString("16:30"), slots[17])
}

func TestNewGrid_PartialLastSlotDropped(t *testing.T) {
	// Слот 45 минут: последний неполный интервал перед закрытием отбрасывается
	grid, err := NewGrid(Hours{
		Open:                "08:00",
		Midday:              "13:00",
		Close:               "17:00",
		SlotDurationMinutes: 45,
	})
	require.NoError(t, err)

	slots := grid.AllSlots()
	last := slots[len(slots)-1]
	end, err := last.AddMinutes(45)
	require.NoError(t, err)
	assert.False(t, end.IsAfter("17:00"))
}

func TestNewGrid_InvalidHours(t *testing.T) {
	tests := []struct {
		name  string
		hours Hours
	}{
		{"midday before open", Hours{Open: "13:00", Midday: "08:00", Close: "17:00", SlotDurationMinutes: 30}},
		{"close equals midday", Hours{Open: "08:00", Midday: "13:00", Close: "13:00", SlotDurationMinutes: 30}},
		{"bad time format", Hours{Open: "8:00", Midday: "13:00", Close: "17:00", SlotDurationMinutes: 30}},
		{"slot too short", Hours{Open: "08:00", Midday: "13:00", Close: "17:00", SlotDurationMinutes: 5}},
		{"slot too long", Hours{Open: "08:00", Midday: "13:00", Close: "17:00", SlotDurationMinutes: 240}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.hours)
			assert.ErrorIs(t, err, ErrInvalidHours)
		})
	}
}

func TestGrid_Contains(t *testing.T) {
	grid, err := NewGrid(DefaultHours())
	require.NoError(t, err)

	assert.True(t, grid.Contains("08:00"))
	assert.True(t, grid.Contains("14:30"))
	assert.False(t, grid.Contains("17:00")) // закрытие - не слот
	assert.False(t, grid.Contains("07:30"))
	assert.False(t, grid.Contains("08:15")) // мимо сетки
}

func TestGrid_PeriodRange(t *testing.T) {
	grid, err := NewGrid(DefaultHours())
	require.NoError(t, err)

	start, end, ok := grid.PeriodRange(PeriodMorning)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("08:00"), start)
	assert.Equal(t, types.TimeString("13:00"), end)

	start, end, ok = grid.PeriodRange(PeriodAfternoon)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("13:00"), start)
	assert.Equal(t, types.TimeString("17:00"), end)

	start, end, ok = grid.PeriodRange(PeriodAllDay)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("08:00"), start)
	assert.Equal(t, types.TimeString("17:00"), end)

	_, _, ok = grid.PeriodRange(Period("evening"))
	assert.False(t, ok)
}

func TestGrid_SlotsIn(t *testing.T) {
	grid, err := NewGrid(DefaultHours())
	require.NoError(t, err)

	morning := grid.SlotsIn(PeriodMorning)
	afternoon := grid.SlotsIn(PeriodAfternoon)
	allDay := grid.SlotsIn(PeriodAllDay)

	// Утро: 08:00..12:30, день: 13:00..16:30, полуинтервалы не пересекаются
	assert.Len(t, morning, 10)
	assert.Len(t, afternoon, 8)
	assert.Len(t, allDay, 18)
	assert.Equal(t, types.TimeString("12:30"), morning[len(morning)-1])
	assert.Equal(t, types.TimeString("13:00"), afternoon[0])
}

func TestGrid_AllSlotsReturnsCopy(t *testing.T) {
	grid, err := NewGrid(DefaultHours())
	require.NoError(t, err)

	slots := grid.AllSlots()
	slots[0] = "00:00"

	assert.Equal(t, types.TimeString("08:00"), grid.AllSlots()[0])
}

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"morning", "afternoon", "all-day"} {
		_, ok := ParsePeriod(valid)
		assert.True(t, ok, valid)
	}
	_, ok := ParsePeriod("night")
	assert.False(t, ok)
}
