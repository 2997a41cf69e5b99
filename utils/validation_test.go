package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidTime(t *testing.T) {
	assert.True(t, ValidTime("09:30"))
	assert.True(t, ValidTime("9:30")) // single-digit hour allowed pre-confirmation
	assert.True(t, ValidTime("23:59"))
	assert.False(t, ValidTime("24:00"))
	assert.False(t, ValidTime("10:60"))
	assert.False(t, ValidTime("10-30"))
	assert.False(t, ValidTime(""))
}

func TestValidWireDate(t *testing.T) {
	assert.True(t, ValidWireDate("2026-09-15"))
	assert.False(t, ValidWireDate("2026-9-15"))
	assert.False(t, ValidWireDate("15-09-2026"))
	assert.False(t, ValidWireDate(""))
}

func TestValidWireTime(t *testing.T) {
	assert.True(t, ValidWireTime("09:30"))
	assert.False(t, ValidWireTime("9:30"))
	assert.False(t, ValidWireTime("09:30:00"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+15550001111"))
	assert.True(t, ValidatePhone("+1 (555) 000-1111"))
	assert.True(t, ValidatePhone("919876543210"))
	assert.False(t, ValidatePhone("0123"))
	assert.False(t, ValidatePhone("not-a-phone"))
}

func TestParseAppointmentInstant(t *testing.T) {
	instant, err := ParseAppointmentInstant("2026-09-15", "14:30")
	assert.NoError(t, err)
	assert.Equal(t, 14, instant.Hour())
	assert.Equal(t, 30, instant.Minute())

	_, err = ParseAppointmentInstant("2026-09-15", "garbage")
	assert.Error(t, err)
}

func TestParseAppointmentInstantUsesLocalClock(t *testing.T) {
	// Wall times parse in the server's location, so comparisons against
	// time.Now() hold in every zone
	now := time.Now()
	future := now.Add(time.Hour)

	instant, err := ParseAppointmentInstant(future.Format("2006-01-02"), future.Format("15:04"))
	assert.NoError(t, err)
	assert.Equal(t, time.Local, instant.Location())
	assert.True(t, instant.After(now))

	elapsed := now.Add(-time.Hour)
	instant, err = ParseAppointmentInstant(elapsed.Format("2006-01-02"), elapsed.Format("15:04"))
	assert.NoError(t, err)
	assert.False(t, instant.After(now))
}

func TestParseAppointmentDateUsesLocalClock(t *testing.T) {
	now := time.Now()
	date, err := ParseAppointmentDate(now.Format("2006-01-02"))
	assert.NoError(t, err)
	assert.Equal(t, time.Local, date.Location())
	assert.False(t, date.Before(BeginningOfDay(now)))
}
