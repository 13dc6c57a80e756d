package create_unavailability

import (
	"context"
	"errors"
	"fmt"

	"github.com/tawanchai/BYD-TestDriveService/internal/availability"
	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/ptr"
	"github.com/tawanchai/BYD-TestDriveService/pkg/txmanager"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// UseCase use case блокировки автомобиля на период дня
//
// Период резолвится в полуинтервал [start, end) по фиксированной таблице
// политик сетки. Перед вставкой внутри сериализуемой транзакции проверяется,
// что интервал не накрывает существующее бронирование этой модели.
type UseCase struct {
	bookingRepo BookingRepository
	blockRepo   UnavailabilityRepository
	txManager   TransactionManager
	grid        *domain.Grid
	conflicts   ConflictObserver
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

// WithConflictObserver подключает сбор метрик отклоненных конфликтов
func (uc *UseCase) WithConflictObserver(observer ConflictObserver) *UseCase {
	uc.conflicts = observer
	return uc
}

// Execute выполняет use case создания блокировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateUnavailability: branch=%s, date=%s, model=%s, period=%s, actor=%s",
		req.Branch, req.Date.Format(domain.DateFormat), req.CarModel, req.Period, req.CreatedBy)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateUnavailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим период в границы по таблице политик
	startTime, endTime, ok := uc.grid.PeriodRange(req.Period)
	if !ok {
		uc.logger.Warn("CreateUnavailability: unknown period %q", req.Period)
		return nil, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, req.Period)
	}

	var result *domain.UnavailabilityBlock

	// 3. Проверка пересечения с бронированиями и вставка в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.GetByBranchWithFilter(txCtx, domain.BranchBookingsFilter{
			Branch:    req.Branch,
			Date:      ptr.Ptr(req.Date),
			CarModel:  ptr.Ptr(req.CarModel),
			ForUpdate: true,
		})
		if err != nil {
			uc.logger.Error("CreateUnavailability: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		conflicting := availability.BookingsInRange(bookings, req.CarModel, startTime, endTime)
		if len(conflicting) > 0 {
			return uc.bookingInRangeError(conflicting[0].TimeSlot)
		}

		created, err := uc.blockRepo.Create(txCtx, &domain.UnavailabilityBlock{
			Branch:    req.Branch,
			BlockDate: req.Date,
			CarModel:  req.CarModel,
			StartTime: startTime,
			EndTime:   endTime,
			Reason:    req.Reason,
			CreatedBy: req.CreatedBy,
		})
		if err != nil {
			uc.logger.Error("CreateUnavailability: failed to create block: %v", err)
			return fmt.Errorf("%w: failed to create block: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrStoreUnavailable) {
			uc.logger.Error("CreateUnavailability: store unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateUnavailability: successfully created block id=%d (%s-%s)",
		result.ID, result.StartTime, result.EndTime)

	return &Response{
		ID:        result.ID,
		Branch:    result.Branch,
		Date:      result.BlockDate,
		CarModel:  result.CarModel,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		Reason:    result.Reason,
		CreatedBy: result.CreatedBy,
		CreatedAt: result.CreatedAt,
	}, nil
}

// bookingInRangeError формирует конфликт с указанием занятого времени,
// чтобы менеджер знал, какую запись нужно сначала отменить
func (uc *UseCase) bookingInRangeError(occupied types.TimeString) error {
	if uc.conflicts != nil {
		uc.conflicts.IncBookingConflict("booking_in_range")
	}
	uc.logger.Warn("CreateUnavailability: booking exists at %s", occupied)
	return fmt.Errorf("%w: booked at %s", ErrBookingExistsInRange, occupied)
}
