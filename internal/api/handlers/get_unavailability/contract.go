package get_unavailability

import (
	"context"

	"github.com/tawanchai/BYD-TestDriveService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListUnavailability(ctx context.Context, req *models.ListUnavailabilityRequest) (*models.UnavailabilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
