// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"salonbook-backend/models"
)

// ReminderService sends day-before SMS reminders for upcoming appointments.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders reminds every client with a pending or confirmed
// appointment tomorrow.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var appointments []models.Appointment
	err := s.db.Where("appointment_date = ? AND status IN ?",
		tomorrow, []string{models.StatusPending, models.StatusConfirmed}).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	for _, appt := range appointments {
		s.sendReminder(appt)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) sendReminder(appt models.Appointment) {
	if appt.ClientPhone == "" {
		log.Printf("Appointment %s: no client phone, skipping reminder", appt.ID)
		return
	}

	message := fmt.Sprintf("Hi %s, this is a reminder of your appointment tomorrow (%s) at %s. See you there!",
		appt.ClientName, appt.AppointmentDate, FormatTime(appt.AppointmentTime))

	// WhatsApp if the phone is E.164, plain SMS otherwise
	channel := "sms"
	to := appt.ClientPhone
	params := &twilioApi.CreateMessageParams{}
	if strings.HasPrefix(appt.ClientPhone, "+") && os.Getenv("TWILIO_WHATSAPP_NUMBER") != "" {
		channel = "whatsapp"
		to = "whatsapp:" + appt.ClientPhone
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}
	params.SetTo(to)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", appt.ClientPhone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", appt.ClientPhone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", appt.ClientPhone)
	}

	reminderLog := models.ReminderLog{
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}
	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for appointment %s: %v", appt.ID, err)
	}
}
