package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных:
	// неизвестная модель, филиал или слот вне сетки
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotAlreadyBooked возвращается, когда ячейка (branch, date, slot, model)
	// уже занята другим бронированием
	ErrSlotAlreadyBooked = errors.New("create_booking: slot already booked for this car")

	// ErrCarUnavailable возвращается, когда слот накрыт блокировкой автомобиля
	ErrCarUnavailable = errors.New("create_booking: car is unavailable at this time")

	// ErrStoreUnavailable возвращается, когда база недоступна даже после повторов
	// Клиенту следует повторить запрос позже; это не конфликт
	ErrStoreUnavailable = errors.New("create_booking: store temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
