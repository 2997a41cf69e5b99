package controllers

import (
	"gorm.io/gorm"

	"salonbook-backend/services"
)

var (
	pricingService      *services.PricingService
	appointmentService  *services.AppointmentService
	appointmentFeed     *services.AppointmentFeed
	bookingService      *services.BookingService
	notificationService *services.NotificationService
	mailService         *services.MailService
)

// Setup wires the service layer. Called once from main after the database
// connection is up.
func Setup(db *gorm.DB) {
	pricingService = services.NewPricingService(db)
	appointmentService = services.NewAppointmentService(db)
	appointmentFeed = services.NewAppointmentFeed(appointmentService)
	appointmentService.SetFeed(appointmentFeed)
	notificationService = services.NewNotificationService(db)
	bookingService = services.NewBookingService(db, pricingService, appointmentService, notificationService)
	mailService = services.NewMailService()
}
