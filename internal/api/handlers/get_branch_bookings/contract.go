package get_branch_bookings

import (
	"context"

	"github.com/tawanchai/BYD-TestDriveService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBranchBookings(ctx context.Context, req *models.ListBranchBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
