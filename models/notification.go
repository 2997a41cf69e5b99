package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationAppointmentCreated     = "appointment_created"
	NotificationAppointmentConfirmed   = "appointment_confirmed"
	NotificationAppointmentCancelled   = "appointment_cancelled"
	NotificationAppointmentRescheduled = "appointment_rescheduled"
	NotificationAppointmentCompleted   = "appointment_completed"
	NotificationPromotion              = "promotion"
	NotificationReward                 = "reward"
	NotificationWelcome                = "welcome"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title   string    `gorm:"not null" json:"title"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Type    string    `gorm:"type:varchar(40);not null" json:"type"`
	IsRead  bool      `gorm:"default:false" json:"isRead"`

	RecipientID   string `gorm:"index;not null" json:"recipientId"`
	RecipientRole string `gorm:"type:varchar(20)" json:"recipientRole"`

	// Optional appointment cross-reference
	AppointmentID   string `json:"appointmentId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	ClientName      string `json:"clientName"`
	StylistName     string `json:"stylistName"`
	BranchName      string `json:"branchName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
