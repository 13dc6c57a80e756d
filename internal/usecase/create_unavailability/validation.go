package create_unavailability

import (
	"fmt"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Branch.IsValid() {
		return fmt.Errorf("%w: unknown branch %q", ErrInvalidInput, req.Branch)
	}

	if !req.CarModel.IsValid() {
		return fmt.Errorf("%w: unknown car model %q", ErrInvalidInput, req.CarModel)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, ok := domain.ParsePeriod(string(req.Period)); !ok {
		return fmt.Errorf("%w: unknown period %q", ErrInvalidInput, req.Period)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	if req.CreatedBy == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	return nil
}
