package get_day_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/tawanchai/BYD-TestDriveService/internal/availability"
	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/ptr"
	"github.com/tawanchai/BYD-TestDriveService/pkg/txmanager"
)

// UseCase use case получения расписания дня: занятые, заблокированные
// и свободные модели по каждому слоту сетки
//
// Обе таблицы читаются одним read-only снапшотом, чтобы сетка не оказалась
// "порванной" между двумя запросами. Доступность пересчитывается на каждый
// вызов и нигде не кешируется.
type UseCase struct {
	bookingRepo BookingRepository
	blockRepo   UnavailabilityRepository
	txManager   TransactionManager
	grid        *domain.Grid
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo UnavailabilityRepository,
	txManager TransactionManager,
	grid *domain.Grid,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		txManager:   txManager,
		grid:        grid,
		logger:      logger,
	}
}

// Execute выполняет use case получения расписания дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: branch=%s, date=%s", req.Branch, req.Date.Format(domain.DateFormat))

	if !req.Branch.IsValid() {
		uc.logger.Warn("GetDaySchedule: unknown branch %q", req.Branch)
		return nil, fmt.Errorf("%w: unknown branch %q", ErrInvalidInput, req.Branch)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var (
		bookings []*domain.Booking
		blocks   []*domain.UnavailabilityBlock
	)

	err := uc.txManager.DoReadOnlySnapshot(ctx, func(txCtx context.Context) error {
		var err error

		bookings, err = uc.bookingRepo.GetByBranchWithFilter(txCtx, domain.BranchBookingsFilter{
			Branch: req.Branch,
			Date:   ptr.Ptr(req.Date),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err = uc.blockRepo.GetByBranchWithFilter(txCtx, domain.BranchBlocksFilter{
			Branch: req.Branch,
			Date:   ptr.Ptr(req.Date),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get unavailability blocks: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrStoreUnavailable) {
			uc.logger.Error("GetDaySchedule: store unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		uc.logger.Error("GetDaySchedule: snapshot read failed: %v", err)
		return nil, err
	}

	resolved := availability.ResolveDay(uc.grid, bookings, blocks)

	slots := make([]SlotSchedule, 0, len(uc.grid.AllSlots()))
	for _, slot := range uc.grid.AllSlots() {
		entry := SlotSchedule{
			StartTime:       slot,
			Bookings:        make([]BookingEntry, 0),
			UnavailableCars: make([]UnavailableCar, 0),
			AvailableCars:   resolved[slot].Models(),
		}

		for _, b := range bookings {
			if b.TimeSlot == slot {
				entry.Bookings = append(entry.Bookings, BookingEntry{
					ID:           b.ID,
					CarModel:     b.CarModel,
					CustomerName: b.CustomerName,
					PhoneNumber:  b.PhoneNumber,
					Salesperson:  b.Salesperson,
					Notes:        b.Notes,
				})
			}
		}

		for _, u := range blocks {
			if u.Covers(slot) {
				entry.UnavailableCars = append(entry.UnavailableCars, UnavailableCar{
					CarModel: u.CarModel,
					Reason:   u.Reason,
				})
			}
		}

		slots = append(slots, entry)
	}

	uc.logger.Info("GetDaySchedule: resolved %d slots, %d bookings, %d blocks for branch=%s",
		len(slots), len(bookings), len(blocks), req.Branch)

	return &Response{
		Branch: req.Branch,
		Date:   req.Date,
		Slots:  slots,
	}, nil
}
