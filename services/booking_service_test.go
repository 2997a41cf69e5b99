package services

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func validClient() BookingClient {
	return BookingClient{
		ID:    "client-1",
		Name:  "Ava Doe",
		Email: "ava@example.com",
		Phone: "+15550001111",
	}
}

func validRequest() BookingRequest {
	return BookingRequest{
		BranchID: "branch-a",
		Date:     futureDate(7),
		Time:     "10:00",
		SelectedServices: []SelectedService{
			{ID: "svc-1", Name: "Haircut", Price: 100},
		},
		SelectedStylists: map[string]SelectedStylist{
			"svc-1": {ID: "sty-1", FirstName: "Maya", LastName: "Lin"},
		},
		TotalDuration: 45,
	}
}

func testPrices() PriceMap {
	return PriceMap{"svc-1": 150, "svc-2": 200}
}

func TestValidateHappyPath(t *testing.T) {
	b := NewBookingService(nil, nil, nil, nil)
	assert.Nil(t, b.Validate(validClient(), validRequest(), testPrices()))
}

func TestValidateGateOrder(t *testing.T) {
	b := NewBookingService(nil, nil, nil, nil)
	prices := testPrices()

	cases := []struct {
		name    string
		client  BookingClient
		mutate  func(*BookingRequest)
		title   string
	}{
		{
			name:   "unauthenticated",
			client: BookingClient{},
			mutate: func(r *BookingRequest) {},
			title:  "Authentication Required",
		},
		{
			name:   "incomplete profile",
			client: BookingClient{ID: "client-1"},
			mutate: func(r *BookingRequest) {},
			title:  "Incomplete Profile",
		},
		{
			name:   "missing selections",
			client: validClient(),
			mutate: func(r *BookingRequest) { r.BranchID = "" },
			title:  "Missing Information",
		},
		{
			name:   "no services",
			client: validClient(),
			mutate: func(r *BookingRequest) {
				r.SelectedServices = nil
				r.ServiceID = ""
			},
			title: "No Services Selected",
		},
		{
			name:   "unassigned stylist",
			client: validClient(),
			mutate: func(r *BookingRequest) { delete(r.SelectedStylists, "svc-1") },
			title:  "Stylist Assignment Required",
		},
		{
			name:   "past date",
			client: validClient(),
			mutate: func(r *BookingRequest) { r.Date = "2020-01-01" },
			title:  "Invalid Date",
		},
		{
			name:   "unparseable date",
			client: validClient(),
			mutate: func(r *BookingRequest) { r.Date = "01/01/2030" },
			title:  "Invalid Date",
		},
		{
			name:   "bad time",
			client: validClient(),
			mutate: func(r *BookingRequest) { r.Time = "25:99" },
			title:  "Invalid Time",
		},
		{
			name:   "zero duration",
			client: validClient(),
			mutate: func(r *BookingRequest) {
				r.TotalDuration = 0
				r.ServiceDuration = 0
			},
			title: "Invalid Duration",
		},
		{
			name:   "notes flagged invalid",
			client: validClient(),
			mutate: func(r *BookingRequest) { r.NotesInvalid = true },
			title:  "Invalid Notes",
		},
		{
			name:   "notes too long",
			client: validClient(),
			mutate: func(r *BookingRequest) { r.Notes = strings.Repeat("x", 501) },
			title:  "Notes Too Long",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			verr := b.Validate(tc.client, req, prices)
			require.NotNil(t, verr)
			assert.Equal(t, tc.title, verr.Title)
		})
	}
}

func TestValidateAcceptsTodayDate(t *testing.T) {
	// The pre-confirmation check is date-only: booking for later today is
	// allowed in every timezone
	b := NewBookingService(nil, nil, nil, nil)
	req := validRequest()
	req.Date = time.Now().Format("2006-01-02")
	assert.Nil(t, b.Validate(validClient(), req, testPrices()))
}

func TestValidateRejectsDuplicateServices(t *testing.T) {
	b := NewBookingService(nil, nil, nil, nil)
	req := validRequest()
	req.SelectedServices = append(req.SelectedServices, SelectedService{ID: "svc-1", Name: "Haircut"})
	req.SelectedStylists["svc-1"] = SelectedStylist{ID: "sty-1"}

	verr := b.Validate(validClient(), req, testPrices())
	require.NotNil(t, verr)
	assert.Equal(t, "Duplicate Services", verr.Title)
}

func TestValidateRejectsZeroPrice(t *testing.T) {
	b := NewBookingService(nil, nil, nil, nil)
	req := validRequest()
	req.SelectedServices[0].Price = 0

	verr := b.Validate(validClient(), req, PriceMap{})
	require.NotNil(t, verr)
	assert.Equal(t, "Invalid Price", verr.Title)
}

func TestValidateAllowsMultipleActiveAppointments(t *testing.T) {
	// The one-open-appointment block is deliberately disabled; a client with
	// existing bookings still validates
	b := NewBookingService(nil, nil, nil, nil)
	assert.Nil(t, b.Validate(validClient(), validRequest(), testPrices()))
}

func TestValidateLegacySingleSelection(t *testing.T) {
	b := NewBookingService(nil, nil, nil, nil)
	req := BookingRequest{
		BranchID:        "branch-a",
		Date:            futureDate(3),
		Time:            "9:30",
		ServiceID:       "svc-1",
		ServiceName:     "Haircut",
		ServicePrice:    100,
		StylistID:       "sty-1",
		StylistName:     "Maya Lin",
		ServiceDuration: 30,
	}
	assert.Nil(t, b.Validate(validClient(), req, PriceMap{}))

	req.StylistID = ""
	verr := b.Validate(validClient(), req, PriceMap{})
	require.NotNil(t, verr)
	assert.Equal(t, "No Stylist Assigned", verr.Title)
}

func TestTotalPrice(t *testing.T) {
	prices := testPrices()

	// Resolved catalog prices win over the selection's own price
	req := validRequest()
	assert.Equal(t, 150.0, TotalPrice(req, prices))

	// Unknown service falls back to the selection price
	req.SelectedServices = append(req.SelectedServices, SelectedService{ID: "svc-x", Price: 80})
	assert.Equal(t, 230.0, TotalPrice(req, prices))

	// No selections: explicit total, then the legacy single price
	assert.Equal(t, 300.0, TotalPrice(BookingRequest{TotalPrice: 300}, prices))
	assert.Equal(t, 100.0, TotalPrice(BookingRequest{ServicePrice: 100}, prices))
}

func TestTotalDuration(t *testing.T) {
	assert.Equal(t, 90, TotalDuration(BookingRequest{TotalDuration: 90, ServiceDuration: 30}))
	assert.Equal(t, 30, TotalDuration(BookingRequest{ServiceDuration: 30}))
	assert.Equal(t, 0, TotalDuration(BookingRequest{}))
}

func TestAssemblePairs(t *testing.T) {
	req := validRequest()
	req.SelectedServices = append(req.SelectedServices, SelectedService{ID: "svc-2", Name: "Coloring", Price: 180})
	req.SelectedStylists["svc-2"] = SelectedStylist{ID: "sty-2", FirstName: "Noor", LastName: "Khan"}

	pairs := AssemblePairs(req, testPrices())
	require.Len(t, pairs, 2)

	assert.Equal(t, "svc-1", pairs[0].ServiceID)
	assert.Equal(t, 150.0, pairs[0].ServicePrice)
	assert.Equal(t, "sty-1", pairs[0].StylistID)
	assert.Equal(t, "Maya Lin", pairs[0].StylistName)

	assert.Equal(t, "svc-2", pairs[1].ServiceID)
	assert.Equal(t, 200.0, pairs[1].ServicePrice)
	assert.Equal(t, "Noor Khan", pairs[1].StylistName)
}

func TestAssemblePairsLegacyFallback(t *testing.T) {
	req := BookingRequest{
		ServiceID:    "svc-1",
		ServicePrice: 90,
		StylistID:    "sty-1",
		StylistName:  "Maya Lin",
	}
	pairs := AssemblePairs(req, PriceMap{})
	require.Len(t, pairs, 1)
	assert.Equal(t, "Service", pairs[0].ServiceName)
	assert.Equal(t, 90.0, pairs[0].ServicePrice)
	assert.Equal(t, "sty-1", pairs[0].StylistID)
}

func TestAssembleBuildsPendingAppointment(t *testing.T) {
	b := NewBookingService(nil, nil, nil, nil)
	client := validClient()
	req := validRequest()

	appt := b.Assemble(client, req, testPrices())

	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, client.ID, appt.ClientID)
	assert.Equal(t, client.ID, appt.CreatedBy)
	assert.Equal(t, req.Date, appt.AppointmentDate)
	assert.Equal(t, req.Time, appt.AppointmentTime)
	assert.Equal(t, 150.0, appt.TotalPrice)
	assert.Equal(t, "Ava Doe", appt.ClientName)
	require.Len(t, appt.ServiceStylistPairs, 1)

	require.Len(t, appt.History, 1)
	assert.Equal(t, "created", appt.History[0].Action)
	assert.Equal(t, client.ID, appt.History[0].By)
	_, err := time.Parse(time.RFC3339, appt.History[0].Timestamp)
	assert.NoError(t, err)
}

func TestConfirmGate(t *testing.T) {
	b := NewBookingService(nil, nil, nil, nil)
	pairs := []models.ServiceStylistPair{{ServiceID: "svc-1", StylistID: "sty-1"}}

	t.Run("missing fields listed", func(t *testing.T) {
		verr := b.confirm(BookingRequest{Date: futureDate(1)}, pairs)
		require.NotNil(t, verr)
		assert.Equal(t, "Missing Required Information", verr.Title)
		assert.Contains(t, verr.Message, "branchId")
		assert.Contains(t, verr.Message, "time")
		assert.NotContains(t, verr.Message, "date")
	})

	t.Run("past instant", func(t *testing.T) {
		req := validRequest()
		req.Date = "2020-01-01"
		verr := b.confirm(req, pairs)
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid Appointment Time", verr.Title)
	})

	t.Run("elapsed instant today", func(t *testing.T) {
		// An hour ago on the local clock is already past, whatever the
		// server's timezone
		elapsed := time.Now().Add(-time.Hour)
		req := validRequest()
		req.Date = elapsed.Format("2006-01-02")
		req.Time = elapsed.Format("15:04")
		verr := b.confirm(req, pairs)
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid Appointment Time", verr.Title)
	})

	t.Run("outside business hours", func(t *testing.T) {
		req := validRequest()
		req.Time = "21:00"
		verr := b.confirm(req, pairs)
		require.NotNil(t, verr)
		assert.Equal(t, "Outside Business Hours", verr.Title)
	})

	t.Run("closing hour inclusive", func(t *testing.T) {
		req := validRequest()
		req.Time = "20:00"
		assert.Nil(t, b.confirm(req, pairs))
	})

	t.Run("loose time rejected at the wire", func(t *testing.T) {
		req := validRequest()
		req.Time = "9:30"
		verr := b.confirm(req, pairs)
		require.NotNil(t, verr)
		assert.Equal(t, "Invalid Time Format", verr.Title)
	})

	t.Run("no pairs", func(t *testing.T) {
		verr := b.confirm(validRequest(), nil)
		require.NotNil(t, verr)
		assert.Equal(t, "No Services", verr.Title)
	})

	t.Run("pair without stylist", func(t *testing.T) {
		verr := b.confirm(validRequest(), []models.ServiceStylistPair{{ServiceID: "svc-1"}})
		require.NotNil(t, verr)
		assert.Equal(t, "No Stylist", verr.Title)
	})

	t.Run("happy path", func(t *testing.T) {
		assert.Nil(t, b.confirm(validRequest(), pairs))
	})
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	db, mock := newMockDB(t)
	b := NewBookingService(db, NewPricingService(db), nil, nil)

	svcID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "services"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "branches", "prices"}).
			AddRow(svcID.String(), "Haircut", 100.0, []byte(`[]`), []byte(`[]`)))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "appointments"`)).
		WillReturnRows(sqlmock.NewRows([]string{"services"}).AddRow([]byte(`[]`)))
	mock.ExpectCommit()

	req := validRequest()
	req.SelectedServices = []SelectedService{{ID: svcID.String(), Name: "Haircut", Price: 100}}
	req.SelectedStylists = map[string]SelectedStylist{
		svcID.String(): {ID: "sty-1", FirstName: "Maya", LastName: "Lin"},
	}

	appt, err := b.Book(validClient(), req)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, 100.0, appt.TotalPrice)
	require.Len(t, appt.ServiceStylistPairs, 1)
	assert.Equal(t, "sty-1", appt.ServiceStylistPairs[0].StylistID)
	require.Len(t, appt.History, 1)
	assert.Equal(t, "created", appt.History[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookClassifiesWriteFailure(t *testing.T) {
	db, mock := newMockDB(t)
	b := NewBookingService(db, NewPricingService(db), nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "services"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "appointments"`)).
		WillReturnError(errors.New("duplicate key value violates unique constraint (SQLSTATE 23505)"))
	mock.ExpectRollback()

	_, err := b.Book(validClient(), validRequest())
	require.Error(t, err)

	// Write failures surface as classified errors, not validation errors
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	category, _ := ClassifyBookingError(err)
	assert.Equal(t, ErrorCategoryConflict, category)
}

func TestClassifyBookingError(t *testing.T) {
	cases := []struct {
		err      error
		category string
	}{
		{errors.New("dial tcp: connection refused"), ErrorCategoryNetwork},
		{errors.New("request timeout exceeded"), ErrorCategoryNetwork},
		{errors.New("permission denied for table appointments"), ErrorCategoryPermission},
		{errors.New("duplicate key value violates unique constraint"), ErrorCategoryConflict},
		{errors.New("validation failed on field date"), ErrorCategoryValidation},
		{errors.New("ERROR: syntax error (SQLSTATE 42601)"), ErrorCategoryDatabase},
		{errors.New("something very strange"), ErrorCategoryGeneric},
	}
	for _, tc := range cases {
		category, message := ClassifyBookingError(tc.err)
		assert.Equal(t, tc.category, category, tc.err.Error())
		assert.NotEmpty(t, message)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	verr := invalid("Invalid Date", "Please select a valid appointment date.")
	assert.Equal(t, "Invalid Date: Please select a valid appointment date.", verr.Error())
}

func TestFlexFieldsAcceptStringNumbers(t *testing.T) {
	var d utils.FlexInt
	require.NoError(t, d.UnmarshalJSON([]byte(`"45"`)))
	assert.Equal(t, 45, int(d))
}
