package create_unavailability

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
		if b.Branch != filter.Branch {
			continue
		}
		if filter.Date != nil && !b.BookingDate.Equal(*filter.Date) {
			continue
		}
		if filter.CarModel != nil && b.CarModel != *filter.CarModel {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeBlockRepo struct {
	nextID int64
	blocks []*domain.UnavailabilityBlock
}

func (r *fakeBlockRepo) Create(_ context.Context, block *domain.UnavailabilityBlock) (*domain.UnavailabilityBlock, error) {
	r.nextID++
	created := *block
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	r.blocks = append(r.blocks, &created)
	return &created, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type failingTxManager struct{}

func (failingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fmt.Errorf("%w: connection refused", txmanager.ErrStoreUnavailable)
}

type conflictCounter struct {
	kinds map[string]int
}

func (c *conflictCounter) IncBookingConflict(kind string) {
	if c.kinds == nil {
		c.kinds = make(map[string]int)
	}
	c.kinds[kind]++
}

func testGrid(t *testing.T) *domain.Grid {
	t.Helper()
	grid, err := domain.NewGrid(domain.DefaultHours())
	require.NoError(t, err)
	return grid
}

func validRequest() *Request {
	return &Request{
		Branch:    domain.BranchKalasin,
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		CarModel:  domain.CarDolphin,
		Period:    domain.PeriodMorning,
		Reason:    ptr.Ptr("ตรวจเช็คระยะ"),
		CreatedBy: "wipa",
	}
}

func TestExecute_PeriodBoundaries(t *testing.T) {
	tests := []struct {
		period    domain.Period
		wantStart types.TimeString
		wantEnd   types.TimeString
	}{
		{domain.PeriodMorning, "08:00", "13:00"},
		{domain.PeriodAfternoon, "13:00", "17:00"},
		{domain.PeriodAllDay, "08:00", "17:00"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			blockRepo := &fakeBlockRepo{}
			uc := NewUseCase(&fakeBookingRepo{}, blockRepo, passthroughTxManager{}, testGrid(t), noopLogger{})

			req := validRequest()
			req.Period = tt.period

			resp, err := uc.Execute(context.Background(), req)
			require.NoError(t, err)

			// Период резолвится в границы по таблице политик
			assert.Equal(t, tt.wantStart, resp.StartTime)
			assert.Equal(t, tt.wantEnd, resp.EndTime)
			assert.Equal(t, domain.CarDolphin, resp.CarModel)
			assert.Equal(t, "wipa", resp.CreatedBy)
		})
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"unknown branch", func(r *Request) { r.Branch = "khonkaen" }},
		{"unknown car model", func(r *Request) { r.CarModel = "Honda Civic" }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"unknown period", func(r *Request) { r.Period = "evening" }},
		{"empty actor", func(r *Request) { r.CreatedBy = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeBookingRepo{}, &fakeBlockRepo{}, passthroughTxManager{}, testGrid(t), noopLogger{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_BookingExistsInRange(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{{
		Branch:      domain.BranchKalasin,
		BookingDate: date,
		TimeSlot:    "10:00",
		CarModel:    domain.CarDolphin,
	}}}

	uc := NewUseCase(bookingRepo, &fakeBlockRepo{}, passthroughTxManager{}, testGrid(t), noopLogger{})
	conflicts := &conflictCounter{}
	uc = uc.WithConflictObserver(conflicts)

	// Утренний блок накрывает бронирование на 10:00 - отклоняем
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingExistsInRange)
	assert.Contains(t, err.Error(), "10:00")
	assert.Equal(t, 1, conflicts.kinds["booking_in_range"])

	// Дневной блок [13:00, 17:00) бронирование не задевает
	req := validRequest()
	req.Period = domain.PeriodAfternoon
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_BookingOfOtherModelIgnored(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{{
		Branch:      domain.BranchKalasin,
		BookingDate: date,
		TimeSlot:    "10:00",
		CarModel:    domain.CarM6,
	}}}

	uc := NewUseCase(bookingRepo, &fakeBlockRepo{}, passthroughTxManager{}, testGrid(t), noopLogger{})

	// Бронирование другой модели блокировке не мешает
	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBlockRepo{}, failingTxManager{}, testGrid(t), noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
