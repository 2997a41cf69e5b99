// services/status.go
package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"salonbook-backend/models"
)

// StatusColor returns the display hex color for an appointment status.
func StatusColor(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.StatusScheduled, models.StatusPending:
		return "#FFC107" // yellow
	case models.StatusConfirmed:
		return "#2196F3" // blue
	case models.StatusCompleted, "paid":
		return "#4CAF50" // green
	case models.StatusInProgress, models.StatusInService:
		return "#FF9800" // orange
	case models.StatusCancelled:
		return "#F44336"
	case models.StatusNoShow:
		return "#795548"
	default:
		return "#9E9E9E"
	}
}

// StatusText returns the display label for an appointment status.
func StatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case models.StatusScheduled:
		return "Scheduled"
	case models.StatusConfirmed:
		return "Confirmed"
	case models.StatusPending:
		return "Pending"
	case models.StatusInProgress:
		return "In Progress"
	case models.StatusInService:
		return "In Service"
	case models.StatusCompleted, "paid":
		return "Completed"
	case models.StatusCancelled:
		return "Cancelled"
	case models.StatusNoShow:
		return "No Show"
	default:
		return "Unknown"
	}
}

// FormatTime renders an HH:MM string in 12-hour format with AM/PM.
func FormatTime(timeString string) string {
	if timeString == "" {
		return "N/A"
	}

	parts := strings.Split(timeString, ":")
	if len(parts) < 2 {
		return "Invalid Time"
	}
	hours, err1 := strconv.Atoi(parts[0])
	minutes, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return "Invalid Time"
	}

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	displayHours := hours % 12
	if displayHours == 0 {
		displayHours = 12
	}
	return fmt.Sprintf("%d:%02d %s", displayHours, minutes, period)
}

// FormatDate renders a YYYY-MM-DD string as a long display date.
func FormatDate(dateString string) string {
	if dateString == "" {
		return "N/A"
	}
	t, err := time.Parse("2006-01-02", dateString)
	if err != nil {
		return "Invalid Date"
	}
	return t.Format("Monday, January 2, 2006")
}
