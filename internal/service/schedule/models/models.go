package models

import (
	"time"

	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
)

// Request модели

// ListBranchBookingsRequest запрос списка бронирований филиала
type ListBranchBookingsRequest struct {
	Branch domain.Branch
	Date   *time.Time // Опционально: только конкретная дата
}

// ListUnavailabilityRequest запрос списка блокировок филиала
type ListUnavailabilityRequest struct {
	Branch   domain.Branch
	FromDate *time.Time // Опционально: предстоящие начиная с даты
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64   `json:"id"`
	Branch       string  `json:"branch"`
	BranchName   string  `json:"branchName"` // Тайское название для UI
	Date         string  `json:"date"`       // "2024-07-29"
	TimeSlot     string  `json:"timeSlot"`   // "10:00"
	CarModel     string  `json:"carModel"`
	CustomerName string  `json:"customerName"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	Salesperson  string  `json:"salesperson"`
	Notes        *string `json:"notes,omitempty"`
	CreatedBy    string  `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// UnavailabilityResponse ответ с данными блокировки
type UnavailabilityResponse struct {
	ID        int64   `json:"id"`
	Branch    string  `json:"branch"`
	Date      string  `json:"date"`
	CarModel  string  `json:"carModel"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
	CreatedBy string  `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
}

// UnavailabilityListResponse ответ со списком блокировок
type UnavailabilityListResponse struct {
	Blocks []UnavailabilityResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID,
		Branch:       string(b.Branch),
		BranchName:   b.Branch.DisplayName(),
		Date:         b.BookingDate.Format(domain.DateFormat),
		TimeSlot:     b.TimeSlot.String(),
		CarModel:     string(b.CarModel),
		CustomerName: b.CustomerName,
		PhoneNumber:  b.PhoneNumber,
		Salesperson:  b.Salesperson,
		Notes:        b.Notes,
		CreatedBy:    b.CreatedBy,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: out}
}

// FromDomainBlock конвертирует domain модель блокировки в DTO
func FromDomainBlock(u *domain.UnavailabilityBlock) *UnavailabilityResponse {
	if u == nil {
		return nil
	}

	return &UnavailabilityResponse{
		ID:        u.ID,
		Branch:    string(u.Branch),
		Date:      u.BlockDate.Format(domain.DateFormat),
		CarModel:  string(u.CarModel),
		StartTime: u.StartTime.String(),
		EndTime:   u.EndTime.String(),
		Reason:    u.Reason,
		CreatedBy: u.CreatedBy,
		CreatedAt: u.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список блокировок в DTO
func FromDomainBlockList(blocks []*domain.UnavailabilityBlock) *UnavailabilityListResponse {
	out := make([]UnavailabilityResponse, 0, len(blocks))
	for _, u := range blocks {
		out = append(out, *FromDomainBlock(u))
	}
	return &UnavailabilityListResponse{Blocks: out}
}
