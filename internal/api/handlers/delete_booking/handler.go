package delete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tawanchai/BYD-TestDriveService/internal/api/handlers"
	"github.com/tawanchai/BYD-TestDriveService/internal/api/middleware"
	"github.com/tawanchai/BYD-TestDriveService/internal/service/schedule"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgNotFound          = "бронирование не найдено"
	msgMissingStaffLogin = "отсутствует логин сотрудника"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
//
// Удаление освобождает ячейку: повторный POST на ту же ячейку после
// успешного DELETE обязан проходить.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	staffLogin, ok := middleware.GetStaffLogin(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing staff login")
		handlers.RespondUnauthorized(w, msgMissingStaffLogin)
		return
	}

	err = h.service.DeleteBooking(r.Context(), bookingID, staffLogin)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted successfully: booking_id=%d, staff=%s",
		bookingID, staffLogin)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
