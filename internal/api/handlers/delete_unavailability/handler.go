package delete_unavailability

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
	msgInvalidBlockID    = "некорректный ID блокировки"
	msgNotFound          = "блокировка не найдена"
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

// Handle DELETE /api/v1/unavailability/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blockIDStr := vars["blockId"]

	blockID, err := strconv.ParseInt(blockIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /unavailability/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	staffLogin, ok := middleware.GetStaffLogin(r.Context())
	if !ok {
		h.logger.Warn("DELETE /unavailability/{id} - Missing staff login")
		handlers.RespondUnauthorized(w, msgMissingStaffLogin)
		return
	}

	err = h.service.DeleteUnavailability(r.Context(), blockID, staffLogin)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockNotFound):
			h.logger.Warn("DELETE /unavailability/{id} - Block not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /unavailability/{id} - Failed to delete block: block_id=%d, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /unavailability/{id} - Block deleted successfully: block_id=%d, staff=%s",
		blockID, staffLogin)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
