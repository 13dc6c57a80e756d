// Package availability чистое вычисление свободных моделей по сетке слотов
//
// Доступность выводится из двух видов заявок - бронирований и блокировок -
// вычитанием из полного каталога. Ничего не кешируется: каждый вызов
// пересчитывает результат из переданных строк, порядок строк не влияет
// на результат.
package availability

import (
	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// ModelSet множество моделей автомобилей
type ModelSet map[domain.CarModel]struct{}

// Contains проверяет наличие модели в множестве
func (s ModelSet) Contains(m domain.CarModel) bool {
	_, ok := s[m]
	return ok
}

// Models возвращает модели множества в каноническом порядке каталога
func (s ModelSet) Models() []domain.CarModel {
	out := make([]domain.CarModel, 0, len(s))
	for _, m := range domain.AllCarModels {
		if s.Contains(m) {
			out = append(out, m)
		}
	}
	return out
}

func fullCatalog() ModelSet {
	set := make(ModelSet, len(domain.AllCarModels))
	for _, m := range domain.AllCarModels {
		set[m] = struct{}{}
	}
	return set
}

// ResolveDay вычисляет свободные модели для каждого слота дня
//
// Вход - заявки, уже отфильтрованные по (branch, date) одним консистентным
// чтением. Каждый слот стартует с полного каталога; бронирование убирает
// свою модель из своего слота, блокировка убирает модель из всех слотов
// полуинтервала [StartTime, EndTime).
func ResolveDay(grid *domain.Grid, bookings []*domain.Booking, blocks []*domain.UnavailabilityBlock) map[types.TimeString]ModelSet {
	result := make(map[types.TimeString]ModelSet)
	for _, slot := range grid.AllSlots() {
		result[slot] = fullCatalog()
	}

	for _, b := range bookings {
		if set, ok := result[b.TimeSlot]; ok {
			delete(set, b.CarModel)
		}
	}

	for _, u := range blocks {
		for slot, set := range result {
			if u.Covers(slot) {
				delete(set, u.CarModel)
			}
		}
	}

	return result
}

// IsCarAvailable проверяет доступность одной модели в одном слоте
// Слот вне сетки считается недоступным
func IsCarAvailable(grid *domain.Grid, slot types.TimeString, model domain.CarModel, bookings []*domain.Booking, blocks []*domain.UnavailabilityBlock) bool {
	if !grid.Contains(slot) {
		return false
	}
	if !model.IsValid() {
		return false
	}

	for _, b := range bookings {
		if b.TimeSlot == slot && b.CarModel == model {
			return false
		}
	}

	for _, u := range blocks {
		if u.CarModel == model && u.Covers(slot) {
			return false
		}
	}

	return true
}

// BookingsInRange возвращает бронирования модели, чей слот попадает в [start, end)
// Используется при создании блокировки: блок не должен накрыть подтвержденную запись
func BookingsInRange(bookings []*domain.Booking, model domain.CarModel, start, end types.TimeString) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if b.CarModel != model {
			continue
		}
		if !b.TimeSlot.IsBefore(start) && b.TimeSlot.IsBefore(end) {
			out = append(out, b)
		}
	}
	return out
}
