// utils/validation.go
package utils

import (
	"regexp"
	"strings"
	"time"
)

var (
	// 24-hour clock, single-digit hour allowed (selection-time check)
	timeRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	// Strict wire formats written to the appointments table
	wireDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	wireTimeRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ValidTime checks a 24-hour HH:MM time string.
func ValidTime(t string) bool {
	return timeRegex.MatchString(t)
}

// ValidWireDate checks the strict YYYY-MM-DD format stored on appointments.
func ValidWireDate(d string) bool {
	return wireDateRegex.MatchString(d)
}

// ValidWireTime checks the strict HH:MM format stored on appointments.
func ValidWireTime(t string) bool {
	return wireTimeRegex.MatchString(t)
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// + prefix followed by 7-15 digits
	match, _ := regexp.MatchString(`^\+?[1-9]\d{1,14}$`, cleaned)
	return match
}

// ParseAppointmentDate parses a YYYY-MM-DD date string. Appointment wall
// times are local; parsing in the server's location keeps comparisons against
// time.Now() consistent.
func ParseAppointmentDate(d string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", d, time.Local)
}

// ParseAppointmentInstant combines date and time strings into one local
// instant.
func ParseAppointmentInstant(d, t string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", d+" "+t, time.Local)
}
