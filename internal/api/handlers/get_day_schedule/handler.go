package get_day_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tawanchai/BYD-TestDriveService/internal/api/handlers"
	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	getDaySchedule "github.com/tawanchai/BYD-TestDriveService/internal/usecase/get_day_schedule"
)

const (
	msgInvalidBranch    = "неизвестный филиал"
	msgMissingDate      = "параметр date обязателен"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStoreUnavailable = "сервис временно недоступен, повторите запрос"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branch}/schedule?date=YYYY-MM-DD
//
// Публичный эндпоинт: расписание дня видно без логина сотрудника.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branch := domain.Branch(vars["branch"])

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /branches/{branch}/schedule - Missing date parameter")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /branches/{branch}/schedule - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{
		Branch: branch,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /branches/{branch}/schedule - Invalid branch: %s", branch)
			handlers.RespondBadRequest(w, msgInvalidBranch)

		case errors.Is(err, getDaySchedule.ErrStoreUnavailable):
			h.logger.Error("GET /branches/{branch}/schedule - Store unavailable: %v", err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /branches/{branch}/schedule - Failed to resolve schedule: branch=%s, error=%v",
				branch, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{branch}/schedule - Schedule resolved: branch=%s, date=%s, slots=%d",
		branch, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
