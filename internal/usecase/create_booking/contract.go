package create_booking

import (
	"context"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error)
}

// UnavailabilityRepository интерфейс репозитория блокировок
type UnavailabilityRepository interface {
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchBlocksFilter) ([]*domain.UnavailabilityBlock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// StaffDirectory резолвер отображаемого имени продавца
// Реализация обязана деградировать до логина при недоступности справочника
type StaffDirectory interface {
	ResolveDisplayName(ctx context.Context, login string) string
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
