package create_unavailability

import (
	"errors"
	"net/http"

	"github.com/tawanchai/BYD-TestDriveService/internal/api/handlers"
	"github.com/tawanchai/BYD-TestDriveService/internal/api/middleware"
	createUnavailability "github.com/tawanchai/BYD-TestDriveService/internal/usecase/create_unavailability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingStaffLogin  = "отсутствует логин сотрудника"
	msgBookingInRange     = "в интервале блокировки уже есть бронирование этой модели"
	msgInvalidInput       = "некорректные данные блокировки"
	msgStoreUnavailable   = "сервис временно недоступен, повторите запрос"
)

type Handler struct {
	useCase CreateUnavailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CreateUnavailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/unavailability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateUnavailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /unavailability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	staffLogin, ok := middleware.GetStaffLogin(r.Context())
	if !ok {
		h.logger.Warn("POST /unavailability - Missing staff login")
		handlers.RespondUnauthorized(w, msgMissingStaffLogin)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(staffLogin)
	if err != nil {
		h.logger.Warn("POST /unavailability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createUnavailability.ErrBookingExistsInRange):
			h.logger.Warn("POST /unavailability - Booking exists in range: branch=%s, date=%s, model=%s, period=%s",
				req.Branch, req.Date, req.CarModel, req.Period)
			handlers.RespondConflict(w, msgBookingInRange)

		case errors.Is(err, createUnavailability.ErrInvalidInput):
			h.logger.Warn("POST /unavailability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createUnavailability.ErrStoreUnavailable):
			h.logger.Error("POST /unavailability - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /unavailability - Failed to create block: branch=%s, error=%v", req.Branch, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /unavailability - Block created successfully: block_id=%d, branch=%s, model=%s, period=%s",
		result.ID, req.Branch, req.CarModel, req.Period)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
