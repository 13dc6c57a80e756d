package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/tawanchai/BYD-TestDriveService/internal/api/handlers"
	"github.com/tawanchai/BYD-TestDriveService/internal/api/middleware"
	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	createBooking "github.com/tawanchai/BYD-TestDriveService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат слота, ожидается HH:MM"
	msgMissingStaffLogin  = "отсутствует логин сотрудника"
	msgSlotAlreadyBooked  = "выбранная модель уже забронирована на этот слот"
	msgCarUnavailable     = "модель недоступна в выбранное время"
	msgInvalidInput       = "некорректные данные бронирования"
	msgStoreUnavailable   = "сервис временно недоступен, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Актор берется из контекста (через middleware StaffAuth)
	staffLogin, ok := middleware.GetStaffLogin(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing staff login")
		handlers.RespondUnauthorized(w, msgMissingStaffLogin)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и слота)
	useCaseReq, err := req.ToUseCaseRequest(staffLogin)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		// Определяем, что именно не распарсилось
		if _, dateErr := time.Parse(domain.DateFormat, req.Date); dateErr != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: branch=%s, date=%s, slot=%s, model=%s",
				req.Branch, req.Date, req.TimeSlot, req.CarModel)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createBooking.ErrCarUnavailable):
			h.logger.Warn("POST /bookings - Car unavailable: branch=%s, date=%s, slot=%s, model=%s",
				req.Branch, req.Date, req.TimeSlot, req.CarModel)
			handlers.RespondConflict(w, msgCarUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrStoreUnavailable):
			h.logger.Error("POST /bookings - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: branch=%s, error=%v", req.Branch, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, branch=%s, slot=%s, model=%s",
		result.ID, req.Branch, req.TimeSlot, req.CarModel)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
