package get_unavailability

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

// Handle GET /api/v1/branches/{branch}/unavailability?from=YYYY-MM-DD
//
// Без параметра from возвращает все блокировки филиала, с параметром —
// предстоящие начиная с указанной даты.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	branch := domain.Branch(vars["branch"])

	req := &models.ListUnavailabilityRequest{
		Branch: branch,
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /branches/{branch}/unavailability - Invalid from %q: %v", fromStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.FromDate = &from
	}

	result, err := h.service.ListUnavailability(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /branches/{branch}/unavailability - Invalid branch: %s", branch)
			handlers.RespondBadRequest(w, msgInvalidBranch)

		default:
			h.logger.Error("GET /branches/{branch}/unavailability - Failed to list blocks: branch=%s, error=%v",
				branch, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{branch}/unavailability - Retrieved %d blocks: branch=%s",
		len(result.Blocks), branch)
	handlers.RespondJSON(w, http.StatusOK, result)
}
