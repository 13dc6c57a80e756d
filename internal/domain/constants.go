package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Рабочие часы по умолчанию; переопределяются секцией [business] в config.toml
// Границы периодов недоступности привязаны к этим же часам
const (
	DefaultOpenTime            = "08:00"
	DefaultMiddayTime          = "13:00"
	DefaultCloseTime           = "17:00"
	DefaultSlotDurationMinutes = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 120
	MaxCustomerNameLength  = 200
	MaxPhoneNumberLength   = 20
	MaxSalespersonLength   = 100
	MaxNotesLength         = 500
	MaxReasonLength        = 500
)
