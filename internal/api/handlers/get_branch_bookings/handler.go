package get_branch_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tawanchai/BYD-TestDriveService/internal/api/handlers"
	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	"github.com/tawanchai/BYD-TestDriveService/internal/service/schedule"
	"github.com/tawanchai/BYD-TestDriveService/internal/service/schedule/models"
)

const (
	msgInvalidBranch = "неизвестный филиал"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/branches/{branch}/bookings?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branch := domain.Branch(vars["branch"])

	req := &models.ListBranchBookingsRequest{
		Branch: branch,
	}

	// Опциональный фильтр по дате
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /branches/{branch}/bookings - Invalid date %q: %v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	result, err := h.service.GetBranchBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /branches/{branch}/bookings - Invalid branch: %s", branch)
			handlers.RespondBadRequest(w, msgInvalidBranch)

		default:
			h.logger.Error("GET /branches/{branch}/bookings - Failed to list bookings: branch=%s, error=%v",
				branch, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{branch}/bookings - Retrieved %d bookings: branch=%s",
		len(result.Bookings), branch)
	handlers.RespondJSON(w, http.StatusOK, result)
}
