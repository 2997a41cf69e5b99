// services/booking_service.go
package services

import (
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

const maxNotesLength = 500

// Business hours window, inclusive, by appointment hour.
const (
	openingHour = 8
	closingHour = 20
)

// BookingClient is the authenticated caller assembling a booking.
type BookingClient struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// SelectedService is one catalog entry picked in the booking flow.
type SelectedService struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price utils.FlexFloat `json:"price"`
}

// SelectedStylist is the staff member assigned to one selected service.
type SelectedStylist struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// BookingRequest is the booking-in-progress state submitted for creation.
// Older clients send a single serviceId/stylistId instead of the multi-select
// lists, and durations may arrive as numeric strings.
type BookingRequest struct {
	BranchID string `json:"branchId"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM, 24-hour

	SelectedServices []SelectedService          `json:"selectedServices"`
	SelectedStylists map[string]SelectedStylist `json:"selectedStylists"` // keyed by service id

	// Legacy single-selection fallback fields
	ServiceID    string          `json:"serviceId"`
	ServiceName  string          `json:"serviceName"`
	ServicePrice utils.FlexFloat `json:"servicePrice"`
	StylistID    string          `json:"stylistId"`
	StylistName  string          `json:"stylistName"`

	Notes        string `json:"notes"`
	NotesInvalid bool   `json:"notesInvalid"` // pre-set by the notes field validator

	TotalDuration   utils.FlexInt   `json:"totalDuration"`
	ServiceDuration utils.FlexInt   `json:"serviceDuration"`
	TotalPrice      utils.FlexFloat `json:"totalPrice"`
}

// ValidationError is a blocking, human-readable booking failure. The
// operation is never attempted when one is returned.
type ValidationError struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Message
}

func invalid(title, message string) *ValidationError {
	return &ValidationError{Title: title, Message: message}
}

type BookingService struct {
	db            *gorm.DB
	pricing       *PricingService
	appointments  *AppointmentService
	notifications *NotificationService
}

func NewBookingService(db *gorm.DB, pricing *PricingService, appointments *AppointmentService, notifications *NotificationService) *BookingService {
	return &BookingService{
		db:            db,
		pricing:       pricing,
		appointments:  appointments,
		notifications: notifications,
	}
}

// TotalPrice computes the booking total from the resolved price map, falling
// back to the per-selection price, then to the request's own total fields.
func TotalPrice(req BookingRequest, prices PriceMap) float64 {
	if len(req.SelectedServices) > 0 {
		total := 0.0
		for _, service := range req.SelectedServices {
			price := prices.Get(service.ID)
			if price == 0 {
				price = float64(service.Price)
			}
			total += price
		}
		return total
	}
	if req.TotalPrice != 0 {
		return float64(req.TotalPrice)
	}
	return float64(req.ServicePrice)
}

// TotalDuration picks the explicit total duration, then the single-service
// duration, then 0.
func TotalDuration(req BookingRequest) int {
	if req.TotalDuration != 0 {
		return int(req.TotalDuration)
	}
	return int(req.ServiceDuration)
}

// Validate runs the ordered pre-confirmation gate. Each step short-circuits
// the remainder, surfacing one message.
func (b *BookingService) Validate(client BookingClient, req BookingRequest, prices PriceMap) *ValidationError {
	// 1: caller must be authenticated
	if client.ID == "" {
		return invalid("Authentication Required", "Please log in to book an appointment.")
	}

	// 2: caller profile must be complete
	if client.Name == "" || client.Email == "" {
		return invalid("Incomplete Profile", "Please complete your profile information before booking.")
	}

	// 3: branch, date and time must be chosen
	if req.BranchID == "" || req.Date == "" || req.Time == "" {
		return invalid("Missing Information", "Please go back and select a branch, date, and time.")
	}

	// 4: at least one service, via the multi-select list or the legacy field
	if len(req.SelectedServices) == 0 && req.ServiceID == "" {
		return invalid("No Services Selected", "Please go back and select at least one service.")
	}

	// 5: every selected service must have an assigned stylist
	if len(req.SelectedServices) > 0 {
		for _, service := range req.SelectedServices {
			if _, ok := req.SelectedStylists[service.ID]; !ok {
				return invalid("Stylist Assignment Required", "Please go back and assign stylists for all services.")
			}
		}
	} else if req.StylistID == "" {
		return invalid("No Stylist Assigned", "Please go back and select a stylist.")
	}

	// 6: date must parse and not be in the past (date-only comparison)
	appointmentDate, err := utils.ParseAppointmentDate(req.Date)
	if err != nil {
		return invalid("Invalid Date", "Please select a valid appointment date.")
	}
	if appointmentDate.Before(utils.BeginningOfDay(time.Now())) {
		return invalid("Invalid Date", "Please select a future date for your appointment.")
	}

	// 7: time must be a 24-hour HH:MM value
	if !utils.ValidTime(req.Time) {
		return invalid("Invalid Time", "Please select a valid appointment time.")
	}

	// 8: computed total must be positive
	if TotalPrice(req, prices) <= 0 {
		return invalid("Invalid Price", "The total price is invalid. Please go back and reselect services.")
	}

	// 9: computed duration must be positive
	if TotalDuration(req) <= 0 {
		return invalid("Invalid Duration", "The total duration is invalid. Please go back and reselect services.")
	}

	// 10: no duplicate service selections
	seen := make(map[string]bool, len(req.SelectedServices))
	for _, service := range req.SelectedServices {
		if seen[service.ID] {
			return invalid("Duplicate Services", "You have selected the same service multiple times. Please go back and fix this.")
		}
		seen[service.ID] = true
	}

	// 11: the notes field validator must be clear
	if req.NotesInvalid {
		return invalid("Invalid Notes", "Please fix the notes field before proceeding.")
	}

	// 12: notes length cap
	if len(req.Notes) > maxNotesLength {
		return invalid("Notes Too Long", "Notes cannot exceed 500 characters.")
	}

	// 13: the multiple-open-appointments block is intentionally disabled;
	// clients may hold more than one active appointment.

	return nil
}

// confirm re-validates after the user's explicit confirmation, this time at
// instant level and against the strict wire formats.
func (b *BookingService) confirm(req BookingRequest, pairs []models.ServiceStylistPair) *ValidationError {
	missing := []string{}
	if req.BranchID == "" {
		missing = append(missing, "branchId")
	}
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.Time == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return invalid("Missing Required Information", "Please complete: "+strings.Join(missing, ", "))
	}

	instant, err := utils.ParseAppointmentInstant(req.Date, req.Time)
	if err != nil || !instant.After(time.Now()) {
		return invalid("Invalid Appointment Time", "Please select a future date and time for your appointment.")
	}

	if hour := instant.Hour(); hour < openingHour || hour > closingHour {
		return invalid("Outside Business Hours", "Please select a time between 8:00 AM and 8:00 PM.")
	}

	if !utils.ValidWireDate(req.Date) {
		return invalid("Invalid Date Format", "Appointment date must be in YYYY-MM-DD format.")
	}
	if !utils.ValidWireTime(req.Time) {
		return invalid("Invalid Time Format", "Appointment time must be in HH:MM format.")
	}

	if len(pairs) == 0 {
		return invalid("No Services", "No services selected for this appointment.")
	}
	if pairs[0].StylistID == "" {
		return invalid("No Stylist", "No stylist assigned to this appointment.")
	}
	for _, pair := range pairs {
		if pair.StylistID == "" {
			return invalid("Stylist Assignment Required", "All services must have a stylist assigned.")
		}
	}

	return nil
}

// AssemblePairs builds the normalized pair list, preferring the per-service
// stylist assignment and falling back to the legacy single stylist field.
func AssemblePairs(req BookingRequest, prices PriceMap) []models.ServiceStylistPair {
	pairs := make([]models.ServiceStylistPair, 0, len(req.SelectedServices))
	for _, service := range req.SelectedServices {
		price := prices.Get(service.ID)
		if price == 0 {
			price = float64(service.Price)
		}

		stylistID := req.StylistID
		stylistName := req.StylistName
		if stylist, ok := req.SelectedStylists[service.ID]; ok && stylist.ID != "" {
			stylistID = stylist.ID
			stylistName = strings.TrimSpace(stylist.FirstName + " " + stylist.LastName)
		}

		pairs = append(pairs, models.ServiceStylistPair{
			ServiceID:    service.ID,
			ServiceName:  service.Name,
			ServicePrice: price,
			StylistID:    stylistID,
			StylistName:  stylistName,
		})
	}

	if len(pairs) == 0 && req.ServiceID != "" {
		price := prices.Get(req.ServiceID)
		if price == 0 {
			price = float64(req.ServicePrice)
		}
		name := req.ServiceName
		if name == "" {
			name = "Service"
		}
		pairs = append(pairs, models.ServiceStylistPair{
			ServiceID:    req.ServiceID,
			ServiceName:  name,
			ServicePrice: price,
			StylistID:    req.StylistID,
			StylistName:  req.StylistName,
		})
	}

	return pairs
}

// Assemble builds the normalized appointment row for a validated request:
// status pending, computed total, denormalized client contact fields, and a
// single-entry history log recording the creation.
func (b *BookingService) Assemble(client BookingClient, req BookingRequest, prices PriceMap) models.Appointment {
	return models.Appointment{
		ClientID:        client.ID,
		BranchID:        req.BranchID,
		AppointmentDate: req.Date,
		AppointmentTime: req.Time,
		Status:          models.StatusPending,
		Notes:           req.Notes,
		TotalPrice:      TotalPrice(req, prices),
		ClientName:      client.Name,
		ClientEmail:     client.Email,
		ClientPhone:     client.Phone,
		CreatedBy:       client.ID,
		ServiceStylistPairs: AssemblePairs(req, prices),
		History: models.HistoryList{{
			Action:    "created",
			By:        client.ID,
			Notes:     "Appointment created",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}},
	}
}

// Book runs the full gate, assembles the payload and issues the single
// create call. Returns the created row, a blocking validation error, or a
// classified write failure.
func (b *BookingService) Book(client BookingClient, req BookingRequest) (models.Appointment, error) {
	prices := b.pricing.PriceMapFor(req.BranchID)

	if verr := b.Validate(client, req, prices); verr != nil {
		return models.Appointment{}, verr
	}

	appt := b.Assemble(client, req, prices)

	if verr := b.confirm(req, appt.ServiceStylistPairs); verr != nil {
		return models.Appointment{}, verr
	}

	if err := b.db.Create(&appt).Error; err != nil {
		return models.Appointment{}, err
	}

	b.notifyBooked(appt)
	if b.appointments != nil {
		b.appointments.publish(client.ID)
	}

	return appt, nil
}

// notifyBooked creates the client and stylist notifications for a new
// booking. Notification failures never fail the booking.
func (b *BookingService) notifyBooked(appt models.Appointment) {
	if b.notifications == nil {
		return
	}
	if err := b.notifications.CreateClientBookingNotification(appt); err != nil {
		log.Printf("[BOOKING] client notification failed for %s: %v", appt.ID, err)
	}
	if err := b.notifications.CreateStylistBookingNotification(appt); err != nil {
		log.Printf("[BOOKING] stylist notification failed for %s: %v", appt.ID, err)
	}
}

// Booking error categories surfaced to clients after a failed create.
const (
	ErrorCategoryNetwork    = "network"
	ErrorCategoryPermission = "permission"
	ErrorCategoryConflict   = "conflict"
	ErrorCategoryValidation = "validation"
	ErrorCategoryDatabase   = "database"
	ErrorCategoryGeneric    = "generic"
)

// ClassifyBookingError buckets a write failure by substring match into one of
// six user-facing categories.
func ClassifyBookingError(err error) (category, message string) {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection") || strings.Contains(msg, "timeout"):
		return ErrorCategoryNetwork, "Please check your internet connection and try again."
	case strings.Contains(msg, "permission") || strings.Contains(msg, "unauthorized") || strings.Contains(msg, "denied"):
		return ErrorCategoryPermission, "You do not have permission to create this appointment. Please log in again."
	case strings.Contains(msg, "conflict") || strings.Contains(msg, "duplicate"):
		return ErrorCategoryConflict, "There may be a scheduling conflict. Please try a different time."
	case strings.Contains(msg, "validation") || strings.Contains(msg, "invalid"):
		return ErrorCategoryValidation, "Some appointment information is invalid. Please go back and check your selections."
	case strings.Contains(msg, "sqlstate") || strings.Contains(msg, "pq:") || strings.Contains(msg, "database"):
		return ErrorCategoryDatabase, "There was an issue saving your appointment. Please try again."
	default:
		return ErrorCategoryGeneric, "An unexpected error occurred. Please try again."
	}
}
