package schedule

import (
	"context"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// UnavailabilityRepository интерфейс репозитория блокировок
type UnavailabilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.UnavailabilityBlock, error)
	GetByBranchWithFilter(ctx context.Context, filter domain.BranchBlocksFilter) ([]*domain.UnavailabilityBlock, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
