package get_day_schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/ptr"
	"github.com/tawanchai/BYD-TestDriveService/pkg/txmanager"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) GetByBranchWithFilter(_ context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.Branch == filter.Branch && (filter.Date == nil || b.BookingDate.Equal(*filter.Date)) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeBlockRepo struct {
	blocks []*domain.UnavailabilityBlock
}

func (r *fakeBlockRepo) GetByBranchWithFilter(_ context.Context, filter domain.BranchBlocksFilter) ([]*domain.UnavailabilityBlock, error) {
	out := make([]*domain.UnavailabilityBlock, 0)
	for _, u := range r.blocks {
		if u.Branch == filter.Branch && (filter.Date == nil || u.BlockDate.Equal(*filter.Date)) {
			out = append(out, u)
		}
	}
	return out, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoReadOnlySnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type failingTxManager struct{}

func (failingTxManager) DoReadOnlySnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return fmt.Errorf("%w: connection refused", txmanager.ErrStoreUnavailable)
}

func testGrid(t *testing.T) *domain.Grid {
	t.Helper()
	grid, err := domain.NewGrid(domain.DefaultHours())
	require.NoError(t, err)
	return grid
}

func TestExecute_FullDaySchedule(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{bookings: []*domain.Booking{{
		ID:           7,
		Branch:       domain.BranchMahasarakham,
		BookingDate:  date,
		TimeSlot:     "14:30",
		CarModel:     domain.CarSealDynamic,
		CustomerName: "Somchai J.",
		PhoneNumber:  ptr.Ptr("0812345678"),
		Salesperson:  "สมศักดิ์",
	}}}
	blocks := &fakeBlockRepo{blocks: []*domain.UnavailabilityBlock{{
		ID:        3,
		Branch:    domain.BranchMahasarakham,
		BlockDate: date,
		CarModel:  domain.CarDolphin,
		StartTime: "08:00",
		EndTime:   "13:00",
		Reason:    ptr.Ptr("maintenance"),
	}}}

	uc := NewUseCase(bookings, blocks, passthroughTxManager{}, testGrid(t), noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Branch: domain.BranchMahasarakham,
		Date:   date,
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 18)
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("16:30"), resp.Slots[17].StartTime)

	bySlot := make(map[types.TimeString]SlotSchedule)
	for _, s := range resp.Slots {
		bySlot[s.StartTime] = s
	}

	// Бронирование лежит в своем слоте, модель выпала из свободных
	slot := bySlot["14:30"]
	require.Len(t, slot.Bookings, 1)
	assert.Equal(t, int64(7), slot.Bookings[0].ID)
	assert.Equal(t, "Somchai J.", slot.Bookings[0].CustomerName)
	assert.NotContains(t, slot.AvailableCars, domain.CarSealDynamic)
	assert.Len(t, slot.AvailableCars, len(domain.AllCarModels)-1)

	// Блокировка видна во всех утренних слотах
	morning := bySlot["09:00"]
	require.Len(t, morning.UnavailableCars, 1)
	assert.Equal(t, domain.CarDolphin, morning.UnavailableCars[0].CarModel)
	assert.NotContains(t, morning.AvailableCars, domain.CarDolphin)

	// Правая граница полуинтервала свободна
	afternoon := bySlot["13:00"]
	assert.Empty(t, afternoon.UnavailableCars)
	assert.Contains(t, afternoon.AvailableCars, domain.CarDolphin)

	// Нетронутый слот отдает полный каталог
	free := bySlot["16:30"]
	assert.Empty(t, free.Bookings)
	assert.Empty(t, free.UnavailableCars)
	assert.Equal(t, domain.AllCarModels, free.AvailableCars)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBlockRepo{}, passthroughTxManager{}, testGrid(t), noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Branch: "bangkok",
		Date:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Branch: domain.BranchKalasin,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBlockRepo{}, failingTxManager{}, testGrid(t), noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Branch: domain.BranchKalasin,
		Date:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
