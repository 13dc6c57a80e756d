package create_unavailability

import (
	"context"

	createUnavailability "github.com/tawanchai/BYD-TestDriveService/internal/usecase/create_unavailability"
)

type CreateUnavailabilityUseCase interface {
	Execute(ctx context.Context, req *createUnavailability.Request) (*createUnavailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
