package domain

import (
	"time"

	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// UnavailabilityBlock изъятие автомобиля из бронирования на непрерывный
// интервал [StartTime, EndTime) одного дня: сервисное обслуживание, резерв и т.п.
//
// Инвариант: StartTime < EndTime. Блок не может быть создан поверх
// существующего бронирования той же модели - проверяется при создании.
type UnavailabilityBlock struct {
	ID        int64
	Branch    Branch
	BlockDate time.Time
	CarModel  CarModel
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string
	CreatedBy string

	CreatedAt time.Time
}

// Covers проверяет, что слот попадает в полуинтервал блока
func (u *UnavailabilityBlock) Covers(slot types.TimeString) bool {
	return !slot.IsBefore(u.StartTime) && slot.IsBefore(u.EndTime)
}

// BranchBlocksFilter фильтр для выборки блокировок филиала
type BranchBlocksFilter struct {
	Branch   Branch     // Обязательный параметр
	Date     *time.Time // Конкретная дата (опционально)
	FromDate *time.Time // Нижняя граница даты (опционально, для списка предстоящих)
	CarModel *CarModel  // Фильтр по модели (опционально)
}
