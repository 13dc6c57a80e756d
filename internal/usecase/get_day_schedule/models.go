package get_day_schedule

import (
	"time"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// Request модель запроса расписания дня
type Request struct {
	Branch domain.Branch // Филиал
	Date   time.Time     // Дата (без времени)
}

// Response расписание одного дня филиала
type Response struct {
	Branch domain.Branch
	Date   time.Time
	Slots  []SlotSchedule // В порядке сетки
}

// SlotSchedule состояние одного слота
type SlotSchedule struct {
	StartTime       types.TimeString
	Bookings        []BookingEntry    // Занятые ячейки слота
	UnavailableCars []UnavailableCar  // Модели, накрытые блокировками
	AvailableCars   []domain.CarModel // Свободные модели в порядке каталога
}

// BookingEntry запись о бронировании для показа в сетке
type BookingEntry struct {
	ID           int64
	CarModel     domain.CarModel
	CustomerName string
	PhoneNumber  *string
	Salesperson  string
	Notes        *string
}

// UnavailableCar заблокированная модель с причиной
type UnavailableCar struct {
	CarModel domain.CarModel
	Reason   *string
}
