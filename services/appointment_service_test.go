package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"salonbook-backend/models"
)

func TestResolveTotalExplicitTotalWins(t *testing.T) {
	// An explicit stored total is authoritative even when the legacy services
	// array sums to something else
	appt := models.Appointment{
		TotalPrice: 500,
		Services: models.ServiceLineList{
			{Name: "Haircut", Price: 100},
			{Name: "Coloring", Price: 200},
		},
	}
	assert.Equal(t, 500.0, resolveTotal(appt, nil))
}

func TestResolveTotalLadder(t *testing.T) {
	assert.Equal(t, 120.0, resolveTotal(models.Appointment{TotalCost: 120}, nil))
	assert.Equal(t, 90.0, resolveTotal(models.Appointment{FinalPrice: 90}, nil))
	assert.Equal(t, 75.0, resolveTotal(models.Appointment{Price: 75}, nil))

	appt := models.Appointment{
		Services: models.ServiceLineList{{Price: 100}, {Price: 150}},
	}
	assert.Equal(t, 250.0, resolveTotal(appt, nil))
}

func TestResolveTotalPlaceholderPerPair(t *testing.T) {
	pairs := []models.ServiceStylistPair{{ServiceID: "a"}, {ServiceID: "b"}}
	assert.Equal(t, 400.0, resolveTotal(models.Appointment{}, pairs))
	assert.Equal(t, 0.0, resolveTotal(models.Appointment{}, nil))
}

func TestNormalizePairsCurrentShapeWins(t *testing.T) {
	appt := models.Appointment{
		ServiceStylistPairs: models.PairList{
			{ServiceID: "svc-1", ServiceName: "Haircut", StylistID: "sty-1"},
		},
		ServiceID: "legacy-svc",
		StylistID: "legacy-sty",
	}
	pairs := normalizePairs(appt)
	require.Len(t, pairs, 1)
	assert.Equal(t, "svc-1", pairs[0].ServiceID)
}

func TestNormalizePairsSynthesizesLegacyRow(t *testing.T) {
	appt := models.Appointment{
		ServiceID: "svc-1",
		StylistID: "sty-1",
		Price:     80,
		Services:  models.ServiceLineList{{ID: "svc-1", Name: "Beard Trim", Price: 60}},
	}
	pairs := normalizePairs(appt)
	require.Len(t, pairs, 1)
	assert.Equal(t, "svc-1", pairs[0].ServiceID)
	assert.Equal(t, "Beard Trim", pairs[0].ServiceName)
	assert.Equal(t, 80.0, pairs[0].ServicePrice) // explicit price beats the line price
	assert.Equal(t, "sty-1", pairs[0].StylistID)

	assert.Nil(t, normalizePairs(models.Appointment{}))
}

func TestMapToViewLegacyRow(t *testing.T) {
	svc := NewAppointmentService(nil)
	appt := models.Appointment{
		ID:        uuid.New(),
		ClientID:  "client-1",
		Date:      "2026-09-15",
		StartTime: "14:30",
		Status:    models.StatusConfirmed,
		ServiceID: "svc-1",
		Services:  models.ServiceLineList{{ID: "svc-1", Name: "Haircut", Price: 100, Duration: 45}},
	}

	view := svc.mapToView(appt, nil)

	assert.Equal(t, "2026-09-15", view.AppointmentDate)
	assert.Equal(t, "14:30", view.AppointmentTime)
	assert.Equal(t, "svc-1", view.PrimaryServiceID)
	assert.Equal(t, "Confirmed", view.StatusText)
	assert.Equal(t, "#2196F3", view.StatusColor)
	assert.Equal(t, 100.0, view.TotalPrice)
	assert.Equal(t, 45, view.Duration)
	assert.Equal(t, []string{"Haircut"}, view.ServiceNames)
	assert.Equal(t, "Stylist Name", view.StylistName)
	assert.Equal(t, "2:30 PM", view.FormattedTime)
	assert.Equal(t, "Tuesday, September 15, 2026", view.FormattedDate)
	assert.NotNil(t, view.History)
}

func TestMapToViewCurrentShapePrecedence(t *testing.T) {
	svc := NewAppointmentService(nil)
	appt := models.Appointment{
		ID:              uuid.New(),
		AppointmentDate: "2026-10-01",
		AppointmentTime: "09:00",
		Date:            "2025-01-01",
		StartTime:       "17:00",
		Status:          models.StatusPending,
		TotalPrice:      350,
		ServiceStylistPairs: models.PairList{
			{ServiceID: "svc-1", ServiceName: "Coloring", ServicePrice: 350},
		},
	}

	view := svc.mapToView(appt, nil)

	assert.Equal(t, "2026-10-01", view.AppointmentDate)
	assert.Equal(t, "09:00", view.AppointmentTime)
	assert.Equal(t, 350.0, view.TotalPrice)
	assert.Equal(t, 60, view.Duration) // default when no line carries one
}

func TestMapToViewIsIdempotent(t *testing.T) {
	svc := NewAppointmentService(nil)
	appt := models.Appointment{
		ID:              uuid.New(),
		AppointmentDate: "2026-10-01",
		AppointmentTime: "09:00",
		Status:          models.StatusPending,
		TotalPrice:      350,
	}
	first := svc.mapToView(appt, nil)
	second := svc.mapToView(appt, nil)
	assert.Equal(t, first, second)
}

func upcomingView(status, date, timeStr string) AppointmentView {
	return AppointmentView{Status: status, AppointmentDate: date, AppointmentTime: timeStr}
}

func TestSortUpcomingStatusPriority(t *testing.T) {
	views := []AppointmentView{
		upcomingView(models.StatusConfirmed, "2026-09-01", "10:00"),
		upcomingView(models.StatusPending, "2026-09-02", "10:00"),
		upcomingView(models.StatusInService, "2026-09-01", "09:00"),
	}
	SortUpcoming(views)

	assert.Equal(t, models.StatusPending, views[0].Status)
	assert.Equal(t, models.StatusConfirmed, views[1].Status)
	assert.Equal(t, models.StatusInService, views[2].Status)
}

func TestSortUpcomingDateWithinSameStatus(t *testing.T) {
	views := []AppointmentView{
		upcomingView(models.StatusPending, "2026-09-03", "10:00"),
		upcomingView(models.StatusPending, "2026-09-01", "15:00"),
		upcomingView(models.StatusPending, "2026-09-01", "09:00"),
	}
	SortUpcoming(views)

	assert.Equal(t, "2026-09-01", views[0].AppointmentDate)
	assert.Equal(t, "09:00", views[0].AppointmentTime)
	assert.Equal(t, "15:00", views[1].AppointmentTime)
	assert.Equal(t, "2026-09-03", views[2].AppointmentDate)
}

func TestSortPastMostRecentFirst(t *testing.T) {
	views := []AppointmentView{
		upcomingView(models.StatusCompleted, "2026-01-05", "10:00"),
		upcomingView(models.StatusCancelled, "2026-03-01", "10:00"),
		upcomingView(models.StatusCompleted, "2026-03-01", "16:00"),
	}
	SortPast(views)

	assert.Equal(t, "16:00", views[0].AppointmentTime)
	assert.Equal(t, "10:00", views[1].AppointmentTime)
	assert.Equal(t, "2026-01-05", views[2].AppointmentDate)
}

func TestHasActiveAppointments(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAppointmentService(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "appointments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	assert.True(t, svc.HasActiveAppointments("client-1"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "appointments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	assert.False(t, svc.HasActiveAppointments("client-1"))
}

func TestHasActiveAppointmentsCheckFailureAllows(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAppointmentService(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "appointments"`)).
		WillReturnError(gorm.ErrInvalidDB)

	assert.False(t, svc.HasActiveAppointments("client-1"))
}

func TestCancelRequiresReason(t *testing.T) {
	svc := NewAppointmentService(nil)
	err := svc.Cancel("some-id", "")
	assert.Error(t, err)
}

func TestCancelConditionalUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAppointmentService(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "status"}).
			AddRow(id.String(), "client-1", models.StatusPending))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "appointments" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Cancel(id.String(), "schedule conflict")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRejectsTerminalStatus(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAppointmentService(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "status"}).
			AddRow(id.String(), "client-1", models.StatusCompleted))

	// The guarded UPDATE matches no rows when the status is not cancellable
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "appointments" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.Cancel(id.String(), "too late")
	assert.ErrorIs(t, err, ErrNotTransitionable)
}

func TestRescheduleValidatesInput(t *testing.T) {
	svc := NewAppointmentService(nil)

	assert.Error(t, svc.Reschedule("id", "2026-09-15", "10:00", ""))
	assert.Error(t, svc.Reschedule("id", "15-09-2026", "10:00", "note"))
	assert.Error(t, svc.Reschedule("id", "2026-09-15", "9:00", "note"))
}

func TestRescheduleWritesBothShapes(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAppointmentService(db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "status"}).
			AddRow(id.String(), "client-1", models.StatusPending))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "appointments" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Reschedule(id.String(), "2026-09-20", "11:00", "prefer a later slot")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSortKeyUnparseableSortsToZero(t *testing.T) {
	v := upcomingView(models.StatusPending, "garbage", "10:00")
	assert.Equal(t, time.Time{}, sortKey(v))
}
