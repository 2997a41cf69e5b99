// services/notification_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"salonbook-backend/models"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create validates required fields and inserts one notification row.
func (n *NotificationService) Create(notification *models.Notification) error {
	if notification.Title == "" || notification.Message == "" || notification.Type == "" ||
		notification.RecipientID == "" {
		return errors.New("notification is missing required fields")
	}
	return n.db.Create(notification).Error
}

// CreateClientBookingNotification tells the client their booking was placed.
func (n *NotificationService) CreateClientBookingNotification(appt models.Appointment) error {
	stylistName := ""
	if len(appt.ServiceStylistPairs) > 0 {
		stylistName = appt.ServiceStylistPairs[0].StylistName
	}
	return n.Create(&models.Notification{
		Title:           "Appointment Booked Successfully",
		Message:         fmt.Sprintf("Your appointment has been scheduled for %s at %s", appt.AppointmentDate, appt.AppointmentTime),
		Type:            models.NotificationAppointmentCreated,
		RecipientID:     appt.ClientID,
		RecipientRole:   models.RoleClient,
		AppointmentID:   appt.ID.String(),
		AppointmentDate: appt.AppointmentDate,
		AppointmentTime: appt.AppointmentTime,
		ClientName:      appt.ClientName,
		StylistName:     stylistName,
	})
}

// CreateStylistBookingNotification tells the primary stylist about a new
// assignment.
func (n *NotificationService) CreateStylistBookingNotification(appt models.Appointment) error {
	if len(appt.ServiceStylistPairs) == 0 || appt.ServiceStylistPairs[0].StylistID == "" {
		return errors.New("appointment has no assigned stylist")
	}
	pair := appt.ServiceStylistPairs[0]
	return n.Create(&models.Notification{
		Title:           "New Appointment Assigned",
		Message:         fmt.Sprintf("You have a new appointment with %s on %s", appt.ClientName, appt.AppointmentDate),
		Type:            models.NotificationAppointmentCreated,
		RecipientID:     pair.StylistID,
		RecipientRole:   models.RoleStylist,
		AppointmentID:   appt.ID.String(),
		AppointmentDate: appt.AppointmentDate,
		AppointmentTime: appt.AppointmentTime,
		ClientName:      appt.ClientName,
		StylistName:     pair.StylistName,
	})
}

// ForRecipient lists a recipient's notifications, newest first.
func (n *NotificationService) ForRecipient(recipientID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := n.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flips a single notification's isRead flag, scoped to its owner.
func (n *NotificationService) MarkRead(id, recipientID string) error {
	result := n.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead flips every unread notification for a recipient.
func (n *NotificationService) MarkAllRead(recipientID string) (int64, error) {
	result := n.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
