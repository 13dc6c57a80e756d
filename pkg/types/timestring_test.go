package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid morning", "08:00", false},
		{"valid midnight", "00:00", false},
		{"valid end of day", "23:59", false},
		{"missing leading zero", "9:30", true},
		{"out of range hour", "24:00", true},
		{"out of range minute", "10:60", true},
		{"garbage", "abc", true},
		{"empty", "", true},
		{"with seconds", "10:00:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("14:30")
	require.NoError(t, err)
	assert.Equal(t, "14:30", ts.String())

	_, err = NewTimeStringFromString("14:3")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 1, 9, 5, 59, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(moment))
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("08:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 8*60+30, minutes)

	_, err = TimeString("late").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("08:00").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:30"), got)

	// Переход через час с добавлением ведущего нуля
	got, err = TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	// Выход за границу суток запрещен
	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	// Лексикографический порядок совпадает с хронологическим
	assert.True(t, TimeString("08:00").IsBefore("08:30"))
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("13:00").IsBefore("13:00"))
	assert.True(t, TimeString("17:00").IsAfter("08:00"))
	assert.False(t, TimeString("08:00").IsAfter("08:00"))
}

func TestTimeString_IsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())
	assert.False(t, TimeString("08:00").IsZero())
}
