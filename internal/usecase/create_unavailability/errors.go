package create_unavailability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных:
	// неизвестная модель, филиал или период
	ErrInvalidInput = errors.New("create_unavailability: invalid input data")

	// ErrBookingExistsInRange возвращается, когда в интервале блокировки уже есть
	// подтвержденное бронирование этой модели: блокировка не должна молча
	// осиротить запись клиента
	ErrBookingExistsInRange = errors.New("create_unavailability: booking exists in range")

	// ErrStoreUnavailable возвращается, когда база недоступна даже после повторов
	ErrStoreUnavailable = errors.New("create_unavailability: store temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_unavailability: internal error")
)
