package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusScheduled  = "scheduled"
	StatusInService  = "in_service"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// ServiceStylistPair is one line item of a booking: a selected service with
// the staff member assigned to perform it.
type ServiceStylistPair struct {
	ServiceID    string  `json:"serviceId"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	StylistID    string  `json:"stylistId"`
	StylistName  string  `json:"stylistName"`
}

type PairList []ServiceStylistPair

func (l PairList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]ServiceStylistPair{})
	}
	return json.Marshal(l)
}

func (l *PairList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &l)
}

// HistoryEntry is one append-only audit record on an appointment.
type HistoryEntry struct {
	Action    string `json:"action"`
	By        string `json:"by"`
	Notes     string `json:"notes"`
	Timestamp string `json:"timestamp"`
}

type HistoryList []HistoryEntry

func (l HistoryList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]HistoryEntry{})
	}
	return json.Marshal(l)
}

func (l *HistoryList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &l)
}

// ServiceLine is a raw per-service entry carried by legacy appointment rows.
type ServiceLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

type ServiceLineList []ServiceLine

func (l ServiceLineList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]ServiceLine{})
	}
	return json.Marshal(l)
}

func (l *ServiceLineList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &l)
}

// Appointment rows come in two historical shapes: the current shape carries
// ServiceStylistPairs with AppointmentDate/AppointmentTime, older rows carry a
// single ServiceID/StylistID with Date/StartTime. The read-model mapper in
// services normalizes both.
type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID string    `gorm:"index;not null" json:"clientId"`
	BranchID string    `gorm:"index" json:"branchId"`

	AppointmentDate string `gorm:"type:varchar(10)" json:"appointmentDate"` // YYYY-MM-DD
	AppointmentTime string `gorm:"type:varchar(5)" json:"appointmentTime"`  // HH:MM (24-hour)
	Status          string `gorm:"type:varchar(20);index;default:'pending'" json:"status"`
	Notes           string `gorm:"type:text" json:"notes"`
	TotalPrice      float64 `gorm:"type:decimal(10,2)" json:"totalPrice"`

	ServiceStylistPairs PairList    `gorm:"type:jsonb;default:'[]'" json:"serviceStylistPairs"`
	History             HistoryList `gorm:"type:jsonb;default:'[]'" json:"history"`

	// Denormalized client contact fields written at booking time
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`
	CreatedBy   string `json:"createdBy"`

	// Reschedule / cancel bookkeeping
	RescheduleNotes    string     `gorm:"type:text" json:"rescheduleNotes"`
	CancellationReason string     `gorm:"type:text" json:"cancellationReason"`
	CancelledAt        *time.Time `json:"cancelledAt"`

	// Legacy shape fields, kept so historical rows keep reading back
	Date       string          `gorm:"type:varchar(10)" json:"date"`
	StartTime  string          `gorm:"type:varchar(5)" json:"startTime"`
	ServiceID  string          `json:"serviceId"`
	StylistID  string          `gorm:"index" json:"stylistId"`
	Services   ServiceLineList `gorm:"type:jsonb;default:'[]'" json:"services"`
	TotalCost  float64         `gorm:"type:decimal(10,2)" json:"totalCost"`
	FinalPrice float64         `gorm:"type:decimal(10,2)" json:"finalPrice"`
	Price      float64         `gorm:"type:decimal(10,2)" json:"price"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
