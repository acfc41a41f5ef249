package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"itinerary-backend/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func adminDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	config.DB = gdb
	return mock
}

func TestGetCustomersGroupedDayCounts(t *testing.T) {
	mock := adminDB(t)
	first := uuid.New()
	second := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "destination", "slug"}).
			AddRow(first.String(), "Bali Family Trip", "Bali", "bali-trip-42").
			AddRow(second.String(), "Tokyo Weekend", "Tokyo", "tokyo-weekend"))

	// Day counts come from one grouped query; a customer without days
	// simply has no row.
	mock.ExpectQuery(`SELECT customer_id, COUNT\(\*\) AS count FROM "itineraries"`).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "count"}).
			AddRow(first.String(), 4))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/customers", GetCustomers)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/customers", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"day_count":4`)
	assert.Contains(t, w.Body.String(), `"day_count":0`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
