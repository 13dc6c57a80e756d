package delete_unavailability

import "context"

type ScheduleService interface {
	DeleteUnavailability(ctx context.Context, id int64, actor string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
