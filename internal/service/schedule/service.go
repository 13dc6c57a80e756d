package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	bookingstore "github.com/tawanchai/BYD-TestDriveService/internal/infra/storage/booking"
	unavailabilitystore "github.com/tawanchai/BYD-TestDriveService/internal/infra/storage/unavailability"
	"github.com/tawanchai/BYD-TestDriveService/internal/service/schedule/models"
)

// Service сервис чтения и удаления записей расписания.
//
// Создание идет через use cases с сериализуемыми транзакциями, а здесь
// собраны простые CRUD-операции, которым конкурентная проверка не нужна:
// удаление ячейки расписание может только освободить.
type Service struct {
	bookingRepo BookingRepository
	blockRepo   UnavailabilityRepository
	logger      Logger
}

// NewService создает новый сервис расписания
func NewService(bookingRepo BookingRepository, blockRepo UnavailabilityRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		logger:      logger,
	}
}

// GetBooking возвращает бронирование по ID
func (s *Service) GetBooking(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetBooking: id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingstore.ErrBookingNotFound) {
			s.logger.Warn("GetBooking: booking %d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		s.logger.Error("GetBooking: failed to get booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetBooking: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetBranchBookings возвращает бронирования филиала, опционально за одну дату
func (s *Service) GetBranchBookings(ctx context.Context, req *models.ListBranchBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBranchBookings: branch=%s", req.Branch)

	if !req.Branch.IsValid() {
		return nil, fmt.Errorf("%w: unknown branch %q", ErrInvalidInput, req.Branch)
	}

	bookings, err := s.bookingRepo.GetByBranchWithFilter(ctx, domain.BranchBookingsFilter{
		Branch: req.Branch,
		Date:   req.Date,
	})
	if err != nil {
		s.logger.Error("GetBranchBookings: failed to list bookings for branch=%s: %v", req.Branch, err)
		return nil, fmt.Errorf("%w: GetBranchBookings: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchBookings: found %d bookings for branch=%s", len(bookings), req.Branch)

	return models.FromDomainBookingList(bookings), nil
}

// DeleteBooking удаляет бронирование по ID. Удаление физическое: повторное
// бронирование той же ячейки после удаления должно проходить без конфликта.
func (s *Service) DeleteBooking(ctx context.Context, id int64, actor string) error {
	s.logger.Info("DeleteBooking: id=%d, actor=%s", id, actor)

	if actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	err := s.bookingRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, bookingstore.ErrBookingNotFound) {
			s.logger.Warn("DeleteBooking: booking %d not found", id)
			return fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		s.logger.Error("DeleteBooking: failed to delete booking %d: %v", id, err)
		return fmt.Errorf("%w: DeleteBooking: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBooking: booking %d deleted by %s", id, actor)
	return nil
}

// GetUnavailabilityBlock возвращает блокировку по ID
func (s *Service) GetUnavailabilityBlock(ctx context.Context, id int64) (*models.UnavailabilityResponse, error) {
	s.logger.Info("GetUnavailabilityBlock: id=%d", id)

	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, unavailabilitystore.ErrBlockNotFound) {
			s.logger.Warn("GetUnavailabilityBlock: block %d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrBlockNotFound, id)
		}
		s.logger.Error("GetUnavailabilityBlock: failed to get block %d: %v", id, err)
		return nil, fmt.Errorf("%w: GetUnavailabilityBlock: %v", ErrInternal, err)
	}

	return models.FromDomainBlock(block), nil
}

// ListUnavailability возвращает блокировки филиала. Без FromDate отдает все,
// с FromDate — предстоящие начиная с даты, в порядке (дата, время начала).
func (s *Service) ListUnavailability(ctx context.Context, req *models.ListUnavailabilityRequest) (*models.UnavailabilityListResponse, error) {
	s.logger.Info("ListUnavailability: branch=%s", req.Branch)

	if !req.Branch.IsValid() {
		return nil, fmt.Errorf("%w: unknown branch %q", ErrInvalidInput, req.Branch)
	}

	filter := domain.BranchBlocksFilter{
		Branch: req.Branch,
	}
	if req.FromDate != nil {
		fromDate := req.FromDate.Truncate(24 * time.Hour)
		filter.FromDate = &fromDate
	}

	blocks, err := s.blockRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListUnavailability: failed to list blocks for branch=%s: %v", req.Branch, err)
		return nil, fmt.Errorf("%w: ListUnavailability: %v", ErrInternal, err)
	}

	s.logger.Info("ListUnavailability: found %d blocks for branch=%s", len(blocks), req.Branch)

	return models.FromDomainBlockList(blocks), nil
}

// DeleteUnavailability удаляет блокировку по ID
func (s *Service) DeleteUnavailability(ctx context.Context, id int64, actor string) error {
	s.logger.Info("DeleteUnavailability: id=%d, actor=%s", id, actor)

	if actor == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	err := s.blockRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, unavailabilitystore.ErrBlockNotFound) {
			s.logger.Warn("DeleteUnavailability: block %d not found", id)
			return fmt.Errorf("%w: id=%d", ErrBlockNotFound, id)
		}
		s.logger.Error("DeleteUnavailability: failed to delete block %d: %v", id, err)
		return fmt.Errorf("%w: DeleteUnavailability: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteUnavailability: block %d deleted by %s", id, actor)
	return nil
}
