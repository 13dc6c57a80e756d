package create_unavailability

import (
	"context"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error)
}

// UnavailabilityRepository интерфейс репозитория блокировок
type UnavailabilityRepository interface {
	Create(ctx context.Context, block *domain.UnavailabilityBlock) (*domain.UnavailabilityBlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConflictObserver приемник метрик отклоненных конфликтов
type ConflictObserver interface {
	IncBookingConflict(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
