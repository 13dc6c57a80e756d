package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

func newTestGrid(t *testing.T) *domain.Grid {
	t.Helper()
	grid, err := domain.NewGrid(domain.DefaultHours())
	require.NoError(t, err)
	return grid
}

func booking(slot types.TimeString, model domain.CarModel) *domain.Booking {
	return &domain.Booking{
		Branch:   domain.BranchMahasarakham,
		TimeSlot: slot,
		CarModel: model,
	}
}

func block(start, end types.TimeString, model domain.CarModel) *domain.UnavailabilityBlock {
	return &domain.UnavailabilityBlock{
		Branch:    domain.BranchMahasarakham,
		CarModel:  model,
		StartTime: start,
		EndTime:   end,
	}
}

func TestResolveDay_EmptyDay(t *testing.T) {
	grid := newTestGrid(t)

	resolved := ResolveDay(grid, nil, nil)

	require.Len(t, resolved, len(grid.AllSlots()))
	for _, slot := range grid.AllSlots() {
		assert.Len(t, resolved[slot], len(domain.AllCarModels), "slot %s", slot)
	}
}

func TestResolveDay_BookingRemovesModelFromItsSlotOnly(t *testing.T) {
	grid := newTestGrid(t)

	resolved := ResolveDay(grid, []*domain.Booking{
		booking("10:00", domain.CarAtto3),
	}, nil)

	assert.False(t, resolved["10:00"].Contains(domain.CarAtto3))
	// Остальные модели слота не затронуты
	assert.Len(t, resolved["10:00"], len(domain.AllCarModels)-1)
	// Соседние слоты не затронуты
	assert.True(t, resolved["09:30"].Contains(domain.CarAtto3))
	assert.True(t, resolved["10:30"].Contains(domain.CarAtto3))
}

func TestResolveDay_BlockCoversHalfOpenRange(t *testing.T) {
	grid := newTestGrid(t)

	// Утренняя блокировка [08:00, 13:00)
	resolved := ResolveDay(grid, nil, []*domain.UnavailabilityBlock{
		block("08:00", "13:00", domain.CarDolphin),
	})

	assert.False(t, resolved["08:00"].Contains(domain.CarDolphin))
	assert.False(t, resolved["12:30"].Contains(domain.CarDolphin))
	// Правая граница полуинтервала свободна
	assert.True(t, resolved["13:00"].Contains(domain.CarDolphin))
}

func TestResolveDay_OrderIndependent(t *testing.T) {
	grid := newTestGrid(t)

	bookings := []*domain.Booking{
		booking("10:00", domain.CarAtto3),
		booking("10:00", domain.CarM6),
		booking("14:30", domain.CarSealDynamic),
	}
	blocks := []*domain.UnavailabilityBlock{
		block("13:00", "17:00", domain.CarDolphin),
		block("08:00", "17:00", domain.CarSealion7),
	}

	forward := ResolveDay(grid, bookings, blocks)

	reversedBookings := []*domain.Booking{bookings[2], bookings[1], bookings[0]}
	reversedBlocks := []*domain.UnavailabilityBlock{blocks[1], blocks[0]}
	backward := ResolveDay(grid, reversedBookings, reversedBlocks)

	for _, slot := range grid.AllSlots() {
		assert.ElementsMatch(t, forward[slot].Models(), backward[slot].Models(), "slot %s", slot)
	}
}

func TestResolveDay_Idempotent(t *testing.T) {
	grid := newTestGrid(t)

	bookings := []*domain.Booking{booking("09:00", domain.CarSeal5)}
	blocks := []*domain.UnavailabilityBlock{block("13:00", "17:00", domain.CarSeal5)}

	first := ResolveDay(grid, bookings, blocks)
	second := ResolveDay(grid, bookings, blocks)

	for _, slot := range grid.AllSlots() {
		assert.Equal(t, first[slot].Models(), second[slot].Models(), "slot %s", slot)
	}
}

func TestModelSet_ModelsCatalogOrder(t *testing.T) {
	set := ModelSet{
		domain.CarM6:          {},
		domain.CarSealDynamic: {},
		domain.CarDolphin:     {},
	}

	// Порядок каталога, не порядок map
	assert.Equal(t, []domain.CarModel{
		domain.CarSealDynamic,
		domain.CarDolphin,
		domain.CarM6,
	}, set.Models())
}

func TestIsCarAvailable(t *testing.T) {
	grid := newTestGrid(t)

	bookings := []*domain.Booking{booking("10:00", domain.CarAtto3)}
	blocks := []*domain.UnavailabilityBlock{block("13:00", "17:00", domain.CarDolphin)}

	tests := []struct {
		name  string
		slot  types.TimeString
		model domain.CarModel
		want  bool
	}{
		{"free cell", "10:00", domain.CarM6, true},
		{"booked cell", "10:00", domain.CarAtto3, false},
		{"same model other slot", "10:30", domain.CarAtto3, true},
		{"blocked afternoon", "14:00", domain.CarDolphin, false},
		{"blocked model in morning", "10:00", domain.CarDolphin, true},
		{"slot outside grid", "07:00", domain.CarM6, false},
		{"slot off the grid step", "10:15", domain.CarM6, false},
		{"unknown model", "10:00", domain.CarModel("Tesla Model 3"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCarAvailable(grid, tt.slot, tt.model, bookings, blocks))
		})
	}
}

func TestBookingsInRange(t *testing.T) {
	bookings := []*domain.Booking{
		booking("08:00", domain.CarAtto3),
		booking("12:30", domain.CarAtto3),
		booking("13:00", domain.CarAtto3),
		booking("10:00", domain.CarM6),
	}

	// Утренний полуинтервал [08:00, 13:00): 13:00 не входит, чужая модель не входит
	got := BookingsInRange(bookings, domain.CarAtto3, "08:00", "13:00")
	require.Len(t, got, 2)
	assert.Equal(t, types.TimeString("08:00"), got[0].TimeSlot)
	assert.Equal(t, types.TimeString("12:30"), got[1].TimeSlot)

	assert.Empty(t, BookingsInRange(bookings, domain.CarSeal5, "08:00", "17:00"))
}
