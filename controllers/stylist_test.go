package controllers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"salonbook-backend/config"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	config.DB = db
	return mock
}

func TestGetStylistsListsActiveStylists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := setupMockDB(t)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "role", "branch_id"}).
			AddRow(id.String(), "Maya", "Lin", "stylist", "branch-a"))

	r := gin.New()
	r.GET("/api/stylists", GetStylists)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stylists?branchId=branch-a", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Maya")
	assert.Contains(t, w.Body.String(), id.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStylistsQueryFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnError(gorm.ErrInvalidDB)

	r := gin.New()
	r.GET("/api/stylists", GetStylists)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stylists", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
