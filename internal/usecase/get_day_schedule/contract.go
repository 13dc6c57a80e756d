package get_day_schedule

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
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchBlocksFilter) ([]*domain.UnavailabilityBlock, error)
}

// TransactionManager интерфейс для консистентного чтения
type TransactionManager interface {
	DoReadOnlySnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
