package get_booking

import (
	"context"

	"github.com/tawanchai/BYD-TestDriveService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBooking(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
