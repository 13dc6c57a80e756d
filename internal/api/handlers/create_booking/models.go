package create_booking

import (
	"time"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	createBooking "github.com/tawanchai/BYD-TestDriveService/internal/usecase/create_booking"
	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Branch       string  `json:"branch"`       // "mahasarakham" / "kalasin"
	Date         string  `json:"date"`         // "2026-09-01"
	TimeSlot     string  `json:"timeSlot"`     // "10:00"
	CarModel     string  `json:"carModel"`     // "BYD Atto 3"
	CustomerName string  `json:"customerName"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	Salesperson  string  `json:"salesperson"`
	Notes        *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	Branch       string  `json:"branch"`
	BranchName   string  `json:"branchName"`
	Date         string  `json:"date"`
	TimeSlot     string  `json:"timeSlot"`
	CarModel     string  `json:"carModel"`
	CustomerName string  `json:"customerName"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	Salesperson  string  `json:"salesperson"`
	Notes        *string `json:"notes,omitempty"`
	CreatedBy    string  `json:"createdBy"`
	CreatedAt    string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(createdBy string) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим слот
	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Branch:       domain.Branch(r.Branch),
		Date:         date,
		TimeSlot:     timeSlot,
		CarModel:     domain.CarModel(r.CarModel),
		CustomerName: r.CustomerName,
		PhoneNumber:  r.PhoneNumber,
		Salesperson:  r.Salesperson,
		Notes:        r.Notes,
		CreatedBy:    createdBy,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		Branch:       string(resp.Branch),
		BranchName:   resp.Branch.DisplayName(),
		Date:         resp.Date.Format(domain.DateFormat),
		TimeSlot:     resp.TimeSlot.String(),
		CarModel:     string(resp.CarModel),
		CustomerName: resp.CustomerName,
		PhoneNumber:  resp.PhoneNumber,
		Salesperson:  resp.Salesperson,
		Notes:        resp.Notes,
		CreatedBy:    resp.CreatedBy,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
