package domain

import (
	"time"

	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// Booking подтвержденная запись на тест-драйв: один слот, одна модель, один филиал, один день
//
// Инвариант: для (branch, booking_date, time_slot, car_model) существует не более
// одной записи - закреплен уникальным индексом uniq_bookings_cell в схеме.
// Записи не изменяются по месту: исправление это удаление + повторное создание.
type Booking struct {
	ID           int64
	Branch       Branch
	BookingDate  time.Time
	TimeSlot     types.TimeString
	CarModel     CarModel
	CustomerName string
	PhoneNumber  *string
	Salesperson  string
	Notes        *string
	CreatedBy    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCell проверяет, что бронирование занимает указанную ячейку
func (b *Booking) OccupiesCell(branch Branch, slot types.TimeString, model CarModel) bool {
	return b.Branch == branch && b.TimeSlot == slot && b.CarModel == model
}

// BranchBookingsFilter фильтр для выборки бронирований филиала
type BranchBookingsFilter struct {
	Branch    Branch     // Обязательный параметр
	Date      *time.Time // Конкретная дата (опционально, если nil - все даты)
	CarModel  *CarModel  // Фильтр по модели (опционально)
	ForUpdate bool       // Блокировать выбранные строки (FOR UPDATE) внутри транзакции
}
