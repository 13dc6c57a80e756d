package get_day_schedule

import (
	"github.com/tawanchai/BYD-TestDriveService/internal/domain"
	getDaySchedule "github.com/tawanchai/BYD-TestDriveService/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model: расписание одного дня
type DayScheduleResponse struct {
	Branch     string         `json:"branch"`
	BranchName string         `json:"branchName"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// SlotResponse состояние одного слота сетки
type SlotResponse struct {
	StartTime       string                   `json:"startTime"`
	Bookings        []BookingEntryResponse   `json:"bookings"`
	UnavailableCars []UnavailableCarResponse `json:"unavailableCars"`
	AvailableCars   []string                 `json:"availableCars"`
}

// BookingEntryResponse занятая ячейка слота
type BookingEntryResponse struct {
	ID           int64   `json:"id"`
	CarModel     string  `json:"carModel"`
	CustomerName string  `json:"customerName"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	Salesperson  string  `json:"salesperson"`
	Notes        *string `json:"notes,omitempty"`
}

// UnavailableCarResponse заблокированная модель
type UnavailableCarResponse struct {
	CarModel string  `json:"carModel"`
	Reason   *string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slot := SlotResponse{
			StartTime:       s.StartTime.String(),
			Bookings:        make([]BookingEntryResponse, 0, len(s.Bookings)),
			UnavailableCars: make([]UnavailableCarResponse, 0, len(s.UnavailableCars)),
			AvailableCars:   make([]string, 0, len(s.AvailableCars)),
		}

		for _, b := range s.Bookings {
			slot.Bookings = append(slot.Bookings, BookingEntryResponse{
				ID:           b.ID,
				CarModel:     string(b.CarModel),
				CustomerName: b.CustomerName,
				PhoneNumber:  b.PhoneNumber,
				Salesperson:  b.Salesperson,
				Notes:        b.Notes,
			})
		}

		for _, u := range s.UnavailableCars {
			slot.UnavailableCars = append(slot.UnavailableCars, UnavailableCarResponse{
				CarModel: string(u.CarModel),
				Reason:   u.Reason,
			})
		}

		for _, m := range s.AvailableCars {
			slot.AvailableCars = append(slot.AvailableCars, string(m))
		}

		slots = append(slots, slot)
	}

	return &DayScheduleResponse{
		Branch:     string(resp.Branch),
		BranchName: resp.Branch.DisplayName(),
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
