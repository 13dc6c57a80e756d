package create_unavailability

import (
	"time"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	createUnavailability "github.com/tawanchai/BYD-TestDriveService/internal/usecase/create_unavailability"
)

// CreateUnavailabilityRequest HTTP request model
type CreateUnavailabilityRequest struct {
	Branch   string  `json:"branch"`   // "mahasarakham" / "kalasin"
	Date     string  `json:"date"`     // "2026-09-01"
	CarModel string  `json:"carModel"` // "BYD Atto 3"
	Period   string  `json:"period"`   // "morning" / "afternoon" / "all-day"
	Reason   *string `json:"reason,omitempty"`
}

// UnavailabilityResponse HTTP response model
type UnavailabilityResponse struct {
	ID        int64   `json:"id"`
	Branch    string  `json:"branch"`
	Date      string  `json:"date"`
	CarModel  string  `json:"carModel"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
	CreatedBy string  `json:"createdBy"`
	CreatedAt string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateUnavailabilityRequest) ToUseCaseRequest(createdBy string) (*createUnavailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createUnavailability.Request{
		Branch:    domain.Branch(r.Branch),
		Date:      date,
		CarModel:  domain.CarModel(r.CarModel),
		Period:    domain.Period(r.Period),
		Reason:    r.Reason,
		CreatedBy: createdBy,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createUnavailability.Response) *UnavailabilityResponse {
	return &UnavailabilityResponse{
		ID:        resp.ID,
		Branch:    string(resp.Branch),
		Date:      resp.Date.Format(domain.DateFormat),
		CarModel:  string(resp.CarModel),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		Reason:    resp.Reason,
		CreatedBy: resp.CreatedBy,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
