package create_booking

import (
	"fmt"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Сетка слотов проверяется отдельно внутри usecase
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

	if req.TimeSlot.IsZero() {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeSlot format: %v", ErrInvalidInput, err)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if req.PhoneNumber != nil && len(*req.PhoneNumber) > domain.MaxPhoneNumberLength {
		return fmt.Errorf("%w: phoneNumber is too long", ErrInvalidInput)
	}

	if req.Salesperson == "" {
		return fmt.Errorf("%w: salesperson is required", ErrInvalidInput)
	}
	if len(req.Salesperson) > domain.MaxSalespersonLength {
		return fmt.Errorf("%w: salesperson is too long", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	if req.CreatedBy == "" {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	return nil
}
