package delete_booking

import "context"

type ScheduleService interface {
	DeleteBooking(ctx context.Context, id int64, actor string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
