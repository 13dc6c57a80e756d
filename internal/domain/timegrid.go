package domain

import (
	"errors"
	"fmt"

	"github.com/tawanchai/BYD-TestDriveService/pkg/types"
)

// Period половина дня, на которую выставляется блокировка автомобиля
// Закрытое перечисление: границы задаются фиксированной таблицей политик Grid
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodAllDay    Period = "all-day"
)

// ParsePeriod парсит период из входных данных
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodMorning, PeriodAfternoon, PeriodAllDay:
		return Period(s), true
	default:
		return "", false
	}
}

// ErrInvalidHours возвращается при некорректной конфигурации рабочих часов
var ErrInvalidHours = errors.New("domain: invalid business hours")

// Hours рабочие часы филиалов
// Midday делит день на утренний и дневной периоды недоступности
type Hours struct {
	Open                types.TimeString
	Midday              types.TimeString
	Close               types.TimeString
	SlotDurationMinutes int
}

// DefaultHours рабочие часы по умолчанию (08:00-17:00, слот 30 минут)
func DefaultHours() Hours {
	return Hours{
		Open:                types.TimeString(DefaultOpenTime),
		Midday:              types.TimeString(DefaultMiddayTime),
		Close:               types.TimeString(DefaultCloseTime),
		SlotDurationMinutes: DefaultSlotDurationMinutes,
	}
}

// Validate проверяет согласованность рабочих часов
func (h Hours) Validate() error {
	for _, ts := range []types.TimeString{h.Open, h.Midday, h.Close} {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidHours, err)
		}
	}
	if !h.Open.IsBefore(h.Midday) || !h.Midday.IsBefore(h.Close) {
		return fmt.Errorf("%w: expected open < midday < close, got %s/%s/%s",
			ErrInvalidHours, h.Open, h.Midday, h.Close)
	}
	if h.SlotDurationMinutes < MinSlotDurationMinutes || h.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration %d minutes out of range [%d, %d]",
			ErrInvalidHours, h.SlotDurationMinutes, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	return nil
}

// Grid каноническая сетка бронируемых слотов одного рабочего дня
// Чистые справочные данные: один и тот же набор слотов на каждый вызов
type Grid struct {
	hours Hours
	slots []types.TimeString
}

// NewGrid строит сетку слотов из рабочих часов
func NewGrid(hours Hours) (*Grid, error) {
	if err := hours.Validate(); err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)
	current := hours.Open
	for current.IsBefore(hours.Close) {
		slotEnd, err := current.AddMinutes(hours.SlotDurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHours, err)
		}
		if slotEnd.IsAfter(hours.Close) {
			break
		}
		slots = append(slots, current)
		current = slotEnd
	}

	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: no slots fit between %s and %s", ErrInvalidHours, hours.Open, hours.Close)
	}

	return &Grid{hours: hours, slots: slots}, nil
}

// AllSlots возвращает упорядоченный список всех слотов дня
// Возвращается копия: вызывающий не может испортить справочник
func (g *Grid) AllSlots() []types.TimeString {
	out := make([]types.TimeString, len(g.slots))
	copy(out, g.slots)
	return out
}

// Contains проверяет, что слот принадлежит сетке
func (g *Grid) Contains(slot types.TimeString) bool {
	for _, s := range g.slots {
		if s == slot {
			return true
		}
	}
	return false
}

// PeriodRange возвращает полуинтервал [start, end) для периода недоступности
// Фиксированная таблица политик: morning = open..midday, afternoon = midday..close,
// all-day = open..close
func (g *Grid) PeriodRange(period Period) (start, end types.TimeString, ok bool) {
	switch period {
	case PeriodMorning:
		return g.hours.Open, g.hours.Midday, true
	case PeriodAfternoon:
		return g.hours.Midday, g.hours.Close, true
	case PeriodAllDay:
		return g.hours.Open, g.hours.Close, true
	default:
		return "", "", false
	}
}

// SlotsIn возвращает слоты, попадающие в указанный период
func (g *Grid) SlotsIn(period Period) []types.TimeString {
	start, end, ok := g.PeriodRange(period)
	if !ok {
		return nil
	}
	out := make([]types.TimeString, 0)
	for _, s := range g.slots {
		if !s.IsBefore(start) && s.IsBefore(end) {
			out = append(out, s)
		}
	}
	return out
}

// SlotDurationMinutes длительность одного слота
func (g *Grid) SlotDurationMinutes() int {
	return g.hours.SlotDurationMinutes
}
