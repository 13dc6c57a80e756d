package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	bookingRepo "github.com/tawanchai/BYD-TestDriveService/internal/infra/storage/booking"
	"github.com/tawanchai/BYD-TestDriveService/pkg/txmanager"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// --- фейки ---

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// fakeBookingRepo in-memory репозиторий с эмуляцией уникального индекса по ячейке
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.Branch == b.Branch &&
			existing.BookingDate.Equal(b.BookingDate) &&
			existing.TimeSlot == b.TimeSlot &&
			existing.CarModel == b.CarModel {
			return nil, fmt.Errorf("%w: cell taken", bookingRepo.ErrCellTaken)
		}
	}

	r.nextID++
	created := *b
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.bookings = append(r.bookings, &created)
	return &created, nil
}

func (r *fakeBookingRepo) GetByBranchWithFilter(_ context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

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
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

type fakeBlockRepo struct {
	blocks []*domain.UnavailabilityBlock
}

func (r *fakeBlockRepo) GetByBranchWithFilter(_ context.Context, filter domain.BranchBlocksFilter) ([]*domain.UnavailabilityBlock, error) {
	out := make([]*domain.UnavailabilityBlock, 0)
	for _, u := range r.blocks {
		if u.Branch != filter.Branch {
			continue
		}
		if filter.Date != nil && !u.BlockDate.Equal(*filter.Date) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// passthroughTxManager выполняет замыкание без настоящей транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// failingTxManager эмулирует исчерпание повторов
type failingTxManager struct{}

func (failingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fmt.Errorf("%w: serialization failure after 3 attempts", txmanager.ErrStoreUnavailable)
}

type fakeStaffDir struct {
	names map[string]string
}

func (d *fakeStaffDir) ResolveDisplayName(_ context.Context, login string) string {
	if name, ok := d.names[login]; ok {
		return name
	}
	return login
}

type conflictCounter struct {
	mu    sync.Mutex
	kinds map[string]int
}

func (c *conflictCounter) IncBookingConflict(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kinds == nil {
		c.kinds = make(map[string]int)
	}
	c.kinds[kind]++
}

// --- вспомогательные конструкторы ---

func testGrid(t *testing.T) *domain.Grid {
	t.Helper()
	grid, err := domain.NewGrid(domain.DefaultHours())
	require.NoError(t, err)
	return grid
}

func validRequest() *Request {
	return &Request{
		Branch:       domain.BranchMahasarakham,
		Date:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:     "10:00",
		CarModel:     domain.CarAtto3,
		CustomerName: "Somchai J.",
		Salesperson:  "somsak",
		CreatedBy:    "somsak",
	}
}

func newTestUseCase(t *testing.T, bookings *fakeBookingRepo, blocks *fakeBlockRepo) *UseCase {
	t.Helper()
	staffDir := &fakeStaffDir{names: map[string]string{"somsak": "สมศักดิ์"}}
	return NewUseCase(bookings, blocks, staffDir, passthroughTxManager{}, testGrid(t), noopLogger{})
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo, &fakeBlockRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.BranchMahasarakham, resp.Branch)
	assert.Equal(t, types.TimeString("10:00"), resp.TimeSlot)
	assert.Equal(t, domain.CarAtto3, resp.CarModel)
	// Имя продавца резолвится через справочник
	assert.Equal(t, "สมศักดิ์", resp.Salesperson)
	assert.Equal(t, "somsak", resp.CreatedBy)
}

func TestExecute_ValidationErrors(t *testing.T) {
	longString := func(n int) string {
		out := make([]byte, n)
		for i := range out {
			out[i] = 'x'
		}
		return string(out)
	}

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"unknown branch", func(r *Request) { r.Branch = "bangkok" }},
		{"unknown car model", func(r *Request) { r.CarModel = "Tesla Model 3" }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty slot", func(r *Request) { r.TimeSlot = "" }},
		{"malformed slot", func(r *Request) { r.TimeSlot = "9:30" }},
		{"empty customer name", func(r *Request) { r.CustomerName = "" }},
		{"customer name too long", func(r *Request) { r.CustomerName = longString(domain.MaxCustomerNameLength + 1) }},
		{"empty salesperson", func(r *Request) { r.Salesperson = "" }},
		{"empty actor", func(r *Request) { r.CreatedBy = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeBlockRepo{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_SlotOutsideGrid(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeBlockRepo{})

	req := validRequest()
	req.TimeSlot = "07:30" // до открытия

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req.TimeSlot = "10:15" // мимо шага сетки
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CellAlreadyBooked(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo, &fakeBlockRepo{})
	conflicts := &conflictCounter{}
	uc = uc.WithConflictObserver(conflicts)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Повтор на ту же ячейку отклоняется
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	assert.Equal(t, 1, conflicts.kinds["already_booked"])

	// Та же модель в другом слоте проходит
	req := validRequest()
	req.TimeSlot = "10:30"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	// Другая модель в том же слоте проходит
	req = validRequest()
	req.CarModel = domain.CarM6
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CarUnavailable(t *testing.T) {
	blocks := &fakeBlockRepo{blocks: []*domain.UnavailabilityBlock{{
		Branch:    domain.BranchMahasarakham,
		BlockDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CarModel:  domain.CarAtto3,
		StartTime: "08:00",
		EndTime:   "13:00",
	}}}
	uc := newTestUseCase(t, &fakeBookingRepo{}, blocks)
	conflicts := &conflictCounter{}
	uc = uc.WithConflictObserver(conflicts)

	// 10:00 попадает в утреннюю блокировку
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCarUnavailable)
	assert.Equal(t, 1, conflicts.kinds["car_unavailable"])

	// 13:00 - правая граница полуинтервала, уже свободна
	req := validRequest()
	req.TimeSlot = "13:00"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	staffDir := &fakeStaffDir{}
	uc := NewUseCase(&fakeBookingRepo{}, &fakeBlockRepo{}, staffDir, failingTxManager{}, testGrid(t), noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestExecute_ConcurrentSameCell(t *testing.T) {
	// Два конкурентных запроса на одну ячейку: ровно один выигрывает.
	// Здесь вместо SERIALIZABLE конфликт ловит эмуляция уникального индекса,
	// у настоящего стора обе линии защиты дают тот же исход.
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo, &fakeBlockRepo{})

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_DeleteThenRebook(t *testing.T) {
	// После физического удаления ячейка снова бронируется
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo, &fakeBlockRepo{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Удаляем напрямую из фейка, как это делает DELETE /bookings/{id}
	repo.mu.Lock()
	for i, b := range repo.bookings {
		if b.ID == resp.ID {
			repo.bookings = append(repo.bookings[:i], repo.bookings[i+1:]...)
			break
		}
	}
	repo.mu.Unlock()

	_, err = uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}
