// services/appointment_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

// Statuses that block nothing but count as "active" for profile screens.
var activeStatuses = []string{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusScheduled,
	models.StatusInProgress,
}

// Statuses a client may cancel from.
var cancellableStatuses = []string{
	models.StatusScheduled,
	models.StatusPending,
	models.StatusConfirmed,
}

// Statuses a client may reschedule from.
var reschedulableStatuses = []string{
	models.StatusScheduled,
	models.StatusPending,
}

const placeholderStylistName = "Stylist Name"

// Placeholder unit price used to reconstruct a total for legacy rows that
// carry pairs but no price fields at all.
const placeholderUnitPrice = 200

// AppointmentView is the flat, display-ready shape produced by mapping a raw
// appointment row. It carries both raw identifiers and resolved display
// strings so the presentation layer needs no further lookups.
type AppointmentView struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	BranchID string `json:"branchId"`

	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`

	PrimaryServiceID string `json:"serviceId"`
	PrimaryStylistID string `json:"stylistId"`

	Status      string `json:"status"`
	StatusText  string `json:"statusText"`
	StatusColor string `json:"statusColor"`

	Notes      string  `json:"notes"`
	TotalPrice float64 `json:"totalPrice"`
	Duration   int     `json:"duration"`

	ServiceStylistPairs []models.ServiceStylistPair `json:"serviceStylistPairs"`
	History             []models.HistoryEntry       `json:"history"`

	ServiceNames []string `json:"serviceNames"`
	StylistName  string   `json:"stylistName"`
	BranchName   string   `json:"branchName"`

	FormattedDate string `json:"formattedDate"`
	FormattedTime string `json:"formattedTime"`

	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`

	RescheduleNotes    string `json:"rescheduleNotes,omitempty"`
	CancellationReason string `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AppointmentService struct {
	db   *gorm.DB
	feed *AppointmentFeed
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// SetFeed wires the live feed hub; writers publish after every mutation.
func (s *AppointmentService) SetFeed(feed *AppointmentFeed) {
	s.feed = feed
}

func (s *AppointmentService) publish(clientID string) {
	if s.feed != nil {
		s.feed.Publish(clientID)
	}
}

// nameCache bounds directory lookups to one per unique id per mapping batch.
type nameCache struct {
	db       *gorm.DB
	stylists map[string]string
	branches map[string]string
}

func newNameCache(db *gorm.DB) *nameCache {
	return &nameCache{
		db:       db,
		stylists: make(map[string]string),
		branches: make(map[string]string),
	}
}

func (c *nameCache) stylistName(stylistID string) string {
	if stylistID == "" {
		return placeholderStylistName
	}
	if name, ok := c.stylists[stylistID]; ok {
		return name
	}

	name := placeholderStylistName
	var user models.User
	if err := c.db.First(&user, "id = ?", stylistID).Error; err == nil {
		if full := user.FullName(); full != "" {
			name = full
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[APPT] stylist name lookup failed for %s: %v", stylistID, err)
	}
	c.stylists[stylistID] = name
	return name
}

func (c *nameCache) branchName(branchID string) string {
	if branchID == "" {
		return ""
	}
	if name, ok := c.branches[branchID]; ok {
		return name
	}

	name := "Branch " + branchID
	var branch models.Branch
	if err := c.db.First(&branch, "id = ?", branchID).Error; err == nil {
		name = branch.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[APPT] branch name lookup failed for %s: %v", branchID, err)
	}
	c.branches[branchID] = name
	return name
}

// normalizePairs returns the current-shape pair list for a row. Legacy rows
// with a single serviceId/stylistId get one synthesized pair.
func normalizePairs(appt models.Appointment) []models.ServiceStylistPair {
	if len(appt.ServiceStylistPairs) > 0 {
		return appt.ServiceStylistPairs
	}
	if appt.ServiceID == "" {
		return nil
	}
	name := "Service"
	price := appt.Price
	if len(appt.Services) > 0 {
		name = appt.Services[0].Name
		if price == 0 {
			price = appt.Services[0].Price
		}
	}
	return []models.ServiceStylistPair{{
		ServiceID:    appt.ServiceID,
		ServiceName:  name,
		ServicePrice: price,
		StylistID:    appt.StylistID,
	}}
}

// resolveTotal reconstructs the displayed total for a row. First non-zero
// wins: TotalPrice, TotalCost, FinalPrice, Price, the sum of the legacy
// services array, then a per-pair placeholder, then 0.
func resolveTotal(appt models.Appointment, pairs []models.ServiceStylistPair) float64 {
	for _, v := range []float64{appt.TotalPrice, appt.TotalCost, appt.FinalPrice, appt.Price} {
		if v != 0 {
			return v
		}
	}
	if len(appt.Services) > 0 {
		sum := 0.0
		for _, line := range appt.Services {
			sum += line.Price
		}
		if sum != 0 {
			return sum
		}
	}
	if len(pairs) > 0 {
		return float64(len(pairs) * placeholderUnitPrice)
	}
	return 0
}

// mapToView normalizes one raw appointment row into the display shape. It
// never fails: missing lookups degrade to placeholders.
func (s *AppointmentService) mapToView(appt models.Appointment, names *nameCache) AppointmentView {
	if names == nil {
		names = newNameCache(s.db)
	}

	pairs := normalizePairs(appt)

	// Current-shape fields win over their legacy counterparts
	date := appt.AppointmentDate
	if date == "" {
		date = appt.Date
	}
	timeStr := appt.AppointmentTime
	if timeStr == "" {
		timeStr = appt.StartTime
	}

	primaryServiceID := ""
	primaryStylistID := ""
	if len(pairs) > 0 {
		primaryServiceID = pairs[0].ServiceID
		primaryStylistID = pairs[0].StylistID
	}

	serviceNames := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		name := pair.ServiceName
		if name == "" {
			name = "Unknown Service"
		}
		serviceNames = append(serviceNames, name)
	}

	duration := 60 // default when no line carries one
	if len(appt.Services) > 0 && appt.Services[0].Duration > 0 {
		duration = appt.Services[0].Duration
	}

	history := []models.HistoryEntry(appt.History)
	if history == nil {
		history = []models.HistoryEntry{}
	}

	return AppointmentView{
		ID:                  appt.ID.String(),
		ClientID:            appt.ClientID,
		BranchID:            appt.BranchID,
		AppointmentDate:     date,
		AppointmentTime:     timeStr,
		PrimaryServiceID:    primaryServiceID,
		PrimaryStylistID:    primaryStylistID,
		Status:              appt.Status,
		StatusText:          StatusText(appt.Status),
		StatusColor:         StatusColor(appt.Status),
		Notes:               appt.Notes,
		TotalPrice:          resolveTotal(appt, pairs),
		Duration:            duration,
		ServiceStylistPairs: pairs,
		History:             history,
		ServiceNames:        serviceNames,
		StylistName:         names.stylistName(primaryStylistID),
		BranchName:          names.branchName(appt.BranchID),
		FormattedDate:       FormatDate(date),
		FormattedTime:       FormatTime(timeStr),
		ClientName:          appt.ClientName,
		ClientEmail:         appt.ClientEmail,
		ClientPhone:         appt.ClientPhone,
		RescheduleNotes:     appt.RescheduleNotes,
		CancellationReason:  appt.CancellationReason,
		CreatedAt:           appt.CreatedAt,
		UpdatedAt:           appt.UpdatedAt,
	}
}

func (s *AppointmentService) mapAll(rows []models.Appointment) []AppointmentView {
	names := newNameCache(s.db)
	views := make([]AppointmentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, s.mapToView(row, names))
	}
	return views
}

// ClientAppointments returns every appointment for a client, newest first.
// The query filters by client id only; ordering is applied client-side.
func (s *AppointmentService) ClientAppointments(clientID string) ([]AppointmentView, error) {
	var rows []models.Appointment
	if err := s.db.Where("client_id = ?", clientID).Find(&rows).Error; err != nil {
		return nil, err
	}
	views := s.mapAll(rows)
	SortPast(views)
	return views, nil
}

// StylistAppointments returns appointments assigned to a stylist, matching
// both the legacy stylist column and the current pair list.
func (s *AppointmentService) StylistAppointments(stylistID string) ([]AppointmentView, error) {
	var rows []models.Appointment
	containment := fmt.Sprintf(`[{"stylistId":%q}]`, stylistID)
	if err := s.db.Where("stylist_id = ? OR service_stylist_pairs @> ?", stylistID, containment).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	views := s.mapAll(rows)
	SortPast(views)
	return views, nil
}

// ClientSnapshot is the live-feed loader: full re-map of the client's
// appointments, sorted for the upcoming view.
func (s *AppointmentService) ClientSnapshot(clientID string) ([]AppointmentView, error) {
	var rows []models.Appointment
	if err := s.db.Where("client_id = ?", clientID).Find(&rows).Error; err != nil {
		return nil, err
	}
	views := s.mapAll(rows)
	SortUpcoming(views)
	return views, nil
}

// Get returns one mapped appointment.
func (s *AppointmentService) Get(id string) (AppointmentView, error) {
	var row models.Appointment
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		return AppointmentView{}, err
	}
	return s.mapToView(row, nil), nil
}

// HasActiveAppointments reports whether the client holds any appointment in
// an active status. Check failures allow booking.
func (s *AppointmentService) HasActiveAppointments(clientID string) bool {
	var count int64
	err := s.db.Model(&models.Appointment{}).
		Where("client_id = ? AND status IN ?", clientID, activeStatuses).
		Count(&count).Error
	if err != nil {
		log.Printf("[APPT] active-appointment check failed for %s: %v (allowing)", clientID, err)
		return false
	}
	return count > 0
}

var ErrNotTransitionable = errors.New("appointment is not in a state that allows this change")

// Cancel moves an appointment to cancelled with a mandatory reason. The
// status condition rides on the UPDATE itself so a concurrent staff-side
// transition cannot be silently overwritten.
func (s *AppointmentService) Cancel(id, reason string) error {
	if reason == "" {
		return errors.New("a cancellation reason is required")
	}

	var appt models.Appointment
	if err := s.db.First(&appt, "id = ?", id).Error; err != nil {
		return err
	}

	now := time.Now()
	result := s.db.Model(&models.Appointment{}).
		Where("id = ? AND status IN ?", id, cancellableStatuses).
		Updates(map[string]interface{}{
			"status":              models.StatusCancelled,
			"cancellation_reason": reason,
			"cancelled_at":        &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotTransitionable
	}

	s.publish(appt.ClientID)
	return nil
}

// Reschedule writes new date/time fields plus a mandatory note. Status is
// left untouched; the UI communicates the change as queued for confirmation.
func (s *AppointmentService) Reschedule(id, newDate, newTime, note string) error {
	if note == "" {
		return errors.New("a reschedule note is required")
	}
	if !utils.ValidWireDate(newDate) || !utils.ValidWireTime(newTime) {
		return errors.New("reschedule date must be YYYY-MM-DD and time HH:MM")
	}

	var appt models.Appointment
	if err := s.db.First(&appt, "id = ?", id).Error; err != nil {
		return err
	}

	result := s.db.Model(&models.Appointment{}).
		Where("id = ? AND status IN ?", id, reschedulableStatuses).
		Updates(map[string]interface{}{
			"appointment_date": newDate,
			"date":             newDate,
			"appointment_time": newTime,
			"start_time":       newTime,
			"reschedule_notes": note,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotTransitionable
	}

	s.publish(appt.ClientID)
	return nil
}

// sortKey combines the normalized date and time into one comparable instant;
// unparseable values sort to the zero time.
func sortKey(v AppointmentView) time.Time {
	t, err := time.Parse("2006-01-02 15:04", v.AppointmentDate+" "+v.AppointmentTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

func statusPriority(status string) int {
	switch status {
	case models.StatusPending:
		return 1
	case models.StatusConfirmed:
		return 2
	case models.StatusInService:
		return 3
	default:
		return 4
	}
}

// SortUpcoming orders by status priority (pending, confirmed, in_service,
// everything else), then by date+time ascending. Stable.
func SortUpcoming(views []AppointmentView) {
	sort.SliceStable(views, func(i, j int) bool {
		pi, pj := statusPriority(views[i].Status), statusPriority(views[j].Status)
		if pi != pj {
			return pi < pj
		}
		return sortKey(views[i]).Before(sortKey(views[j]))
	})
}

// SortPast orders by date+time descending, most recent first.
func SortPast(views []AppointmentView) {
	sort.SliceStable(views, func(i, j int) bool {
		return sortKey(views[i]).After(sortKey(views[j]))
	})
}
