// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/services"
	"salonbook-backend/utils"
)

// GetAppointments lists the caller's appointments. ?view=past sorts most
// recent first; the default upcoming view sorts by status priority then
// date/time ascending.
func GetAppointments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	views, err := appointmentService.ClientAppointments(user.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	if c.Query("view") == "past" {
		services.SortPast(views)
	} else {
		services.SortUpcoming(views)
	}

	c.JSON(http.StatusOK, views)
}

// GetStylistAppointments lists appointments assigned to the calling stylist.
func GetStylistAppointments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.Role != models.RoleStylist {
		utils.RespondWithError(c, http.StatusForbidden, "Stylist role required")
		return
	}

	views, err := appointmentService.StylistAppointments(user.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}
	c.JSON(http.StatusOK, views)
}

func GetAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	view, err := appointmentService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if view.ClientID != user.ID.String() && view.PrimaryStylistID != user.ID.String() {
		utils.RespondWithError(c, http.StatusForbidden, "Not your appointment")
		return
	}

	c.JSON(http.StatusOK, view)
}

// BookAppointment runs the full validation gate and creates the appointment.
func BookAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input services.BookingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client := services.BookingClient{
		ID:    user.ID.String(),
		Name:  user.FullName(),
		Email: user.Email,
		Phone: user.Phone,
	}
	// Clients with no fixed branch book at the one they selected; a fixed
	// branch on the profile wins over the payload.
	if user.BranchID != "" {
		input.BranchID = user.BranchID
	}

	appt, err := bookingService.Book(client, input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   verr.Title,
				"message": verr.Message,
			})
			return
		}
		category, message := services.ClassifyBookingError(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Booking failed",
			"category": category,
			"message":  message,
		})
		return
	}

	c.JSON(http.StatusCreated, appt)
}

type CancelInput struct {
	Reason string `json:"reason" binding:"required"`
}

func CancelAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input CancelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "A cancellation reason is required")
		return
	}

	if !ownsAppointment(c, user.ID.String()) {
		return
	}

	if err := appointmentService.Cancel(c.Param("id"), input.Reason); err != nil {
		respondTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

type RescheduleInput struct {
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Notes string `json:"notes" binding:"required"`
}

func RescheduleAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date, time and a reschedule note are required")
		return
	}

	if !ownsAppointment(c, user.ID.String()) {
		return
	}

	if err := appointmentService.Reschedule(c.Param("id"), input.Date, input.Time, input.Notes); err != nil {
		respondTransitionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment reschedule requested"})
}

func ownsAppointment(c *gin.Context, userID string) bool {
	view, err := appointmentService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return false
	}
	if view.ClientID != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Not your appointment")
		return false
	}
	return true
}

func respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotTransitionable):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
	default:
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}
}
