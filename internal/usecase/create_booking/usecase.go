package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/tawanchai/BYD-TestDriveService/internal/availability"
	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	bookingRepo "github.com/tawanchai/BYD-TestDriveService/internal/infra/storage/booking"
	"github.com/tawanchai/BYD-TestDriveService/pkg/ptr"
	"github.com/tawanchai/BYD-TestDriveService/pkg/txmanager"
)

// UseCase use case создания бронирования тест-драйва
//
// Единственный путь записи бронирований. Последовательность
// "проверить доступность -> вставить" выполняется внутри сериализуемой
// транзакции, а уникальный индекс по ячейке страхует на уровне схемы:
// из двух конкурентных запросов на одну ячейку пройдет ровно один.
type UseCase struct {
	bookingRepo BookingRepository
	blockRepo   UnavailabilityRepository
	staffDir    StaffDirectory
	txManager   TransactionManager
	grid        *domain.Grid
	conflicts   ConflictObserver
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo UnavailabilityRepository,
	staffDir StaffDirectory,
	txManager TransactionManager,
	grid *domain.Grid,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		staffDir:    staffDir,
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

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: branch=%s, date=%s, slot=%s, model=%s, actor=%s",
		req.Branch, req.Date.Format(domain.DateFormat), req.TimeSlot, req.CarModel, req.CreatedBy)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Слот должен принадлежать сетке рабочего дня
	if !uc.grid.Contains(req.TimeSlot) {
		uc.logger.Warn("CreateBooking: slot %s is not in the business-day grid", req.TimeSlot)
		return nil, fmt.Errorf("%w: slot %s is outside business hours", ErrInvalidInput, req.TimeSlot)
	}

	// 3. Резолвим отображаемое имя продавца (с graceful degradation)
	salesperson := uc.staffDir.ResolveDisplayName(ctx, req.Salesperson)

	var result *domain.Booking

	// 4. Проверка конфликтов и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Читаем заявки дня под блокировкой (FOR UPDATE на бронированиях дня)
		bookings, err := uc.bookingRepo.GetByBranchWithFilter(txCtx, domain.BranchBookingsFilter{
			Branch:    req.Branch,
			Date:      ptr.Ptr(req.Date),
			ForUpdate: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err := uc.blockRepo.GetByBranchWithFilter(txCtx, domain.BranchBlocksFilter{
			Branch: req.Branch,
			Date:   ptr.Ptr(req.Date),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get unavailability blocks: %v", err)
			return fmt.Errorf("%w: failed to get unavailability blocks: %v", ErrInternal, err)
		}

		// 4.2. Перепроверяем доступность по последнему зафиксированному состоянию
		if !availability.IsCarAvailable(uc.grid, req.TimeSlot, req.CarModel, bookings, blocks) {
			return uc.classifyConflict(req, bookings, blocks)
		}

		// 4.3. Вставляем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			Branch:       req.Branch,
			BookingDate:  req.Date,
			TimeSlot:     req.TimeSlot,
			CarModel:     req.CarModel,
			CustomerName: req.CustomerName,
			PhoneNumber:  req.PhoneNumber,
			Salesperson:  salesperson,
			Notes:        req.Notes,
			CreatedBy:    req.CreatedBy,
		})
		if err != nil {
			// Уникальный индекс сработал - конкурентная транзакция успела раньше
			if errors.Is(err, bookingRepo.ErrCellTaken) {
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotAlreadyBooked):
			uc.observeConflict("already_booked")
			uc.logger.Warn("CreateBooking: cell (%s, %s, %s, %s) already booked",
				req.Branch, req.Date.Format(domain.DateFormat), req.TimeSlot, req.CarModel)
		case errors.Is(err, ErrCarUnavailable):
			uc.observeConflict("car_unavailable")
			uc.logger.Warn("CreateBooking: car %s unavailable at %s on %s",
				req.CarModel, req.TimeSlot, req.Date.Format(domain.DateFormat))
		case errors.Is(err, txmanager.ErrStoreUnavailable):
			uc.logger.Error("CreateBooking: store unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		Branch:       result.Branch,
		Date:         result.BookingDate,
		TimeSlot:     result.TimeSlot,
		CarModel:     result.CarModel,
		CustomerName: result.CustomerName,
		PhoneNumber:  result.PhoneNumber,
		Salesperson:  result.Salesperson,
		Notes:        result.Notes,
		CreatedBy:    result.CreatedBy,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// classifyConflict определяет вид конфликта для занятой ячейки
// Бронирование и блокировка взаимоисключающие для одной ячейки,
// поэтому достаточно найти первую причину
func (uc *UseCase) classifyConflict(req *Request, bookings []*domain.Booking, blocks []*domain.UnavailabilityBlock) error {
	for _, b := range bookings {
		if b.OccupiesCell(req.Branch, req.TimeSlot, req.CarModel) {
			return fmt.Errorf("%w: booked at %s", ErrSlotAlreadyBooked, b.TimeSlot)
		}
	}

	for _, u := range blocks {
		if u.CarModel == req.CarModel && u.Covers(req.TimeSlot) {
			return fmt.Errorf("%w: blocked %s-%s", ErrCarUnavailable, u.StartTime, u.EndTime)
		}
	}

	// Ячейка занята, но причину не нашли - расхождение сетки и данных
	return fmt.Errorf("%w: slot %s is not bookable", ErrCarUnavailable, req.TimeSlot)
}

func (uc *UseCase) observeConflict(kind string) {
	if uc.conflicts != nil {
		uc.conflicts.IncBookingConflict(kind)
	}
}
