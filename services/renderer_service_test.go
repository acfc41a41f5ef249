package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"itinerary-backend/models"
	"itinerary-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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
	return gdb, mock
}

func TestRenderBySlugNotFound(t *testing.T) {
	gdb, mock := mockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}))
	mock.ExpectRollback()

	renderer := NewRendererService(gdb)
	view, err := renderer.RenderBySlug(context.Background(), "does-not-exist")

	assert.Nil(t, view)
	var nfErr *utils.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssembleViewOrdersEveryCollection(t *testing.T) {
	customer := &models.Customer{
		Name:        "Bali Family Trip",
		Destination: "Bali",
		Slug:        "bali-trip-42",
		UpdatedAt:   time.Now(),
		Hotels: []models.Hotel{
			{ID: 1, Name: "Second", Order: 2},
			{ID: 2, Name: "First", Order: 1},
			{ID: 3, Name: "Third", Order: 2},
		},
		Flights: []models.Flight{
			{ID: 9, FromLocation: "DPS", ToLocation: "DEL", FlightType: "inbound"},
			{ID: 4, FromLocation: "DEL", ToLocation: "DPS", FlightType: "outbound"},
		},
		Days: []models.Itinerary{
			{ID: 11, Day: 2, Title: "Temples", Details: []models.ItineraryDetail{
				{ID: 21, Time: "14:00", Activity: "Uluwatu tour"},
				{ID: 22, Time: "09:00", Activity: "Beach walk"},
			}},
			{ID: 10, Day: 1, Title: "Arrival"},
		},
		Inclusions: []models.PackageInclusion{
			{ID: 3, Item: "Dinner", Order: 2},
			{ID: 1, Item: "Breakfast", Order: 0},
			{ID: 2, Item: "Transfers", Order: 1},
		},
		Exclusions: []models.PackageExclusion{
			{ID: 6, Item: "Visa", Order: 1},
			{ID: 5, Item: "Insurance", Order: 0},
		},
	}

	view := AssembleView(customer)

	// Hotels: order ascending, id breaks the tie
	assert.Equal(t, []string{"First", "Second", "Third"},
		[]string{view.Hotels[0].Name, view.Hotels[1].Name, view.Hotels[2].Name})

	// Flights: insertion order
	assert.Equal(t, "outbound", view.Flights[0].FlightType)
	assert.Equal(t, "inbound", view.Flights[1].FlightType)

	// Days by day number, details by time
	assert.Equal(t, 1, view.Days[0].Day)
	assert.Equal(t, 2, view.Days[1].Day)
	assert.Equal(t, "09:00", view.Days[1].Details[0].Time)
	assert.Equal(t, "14:00", view.Days[1].Details[1].Time)

	// Package lists by their own order sequences
	assert.Equal(t, []string{"Breakfast", "Transfers", "Dinner"},
		[]string{view.Inclusions[0].Item, view.Inclusions[1].Item, view.Inclusions[2].Item})
	assert.Equal(t, "Insurance", view.Exclusions[0].Item)
}

func TestAssembleViewReorderSequenceSurvives(t *testing.T) {
	// After reorder([3,1,2]) the order fields are rewritten to positions
	customer := &models.Customer{
		Inclusions: []models.PackageInclusion{
			{ID: 1, Item: "one", Order: 1},
			{ID: 2, Item: "two", Order: 2},
			{ID: 3, Item: "three", Order: 0},
		},
	}

	view := AssembleView(customer)
	assert.Equal(t, []uint{3, 1, 2},
		[]uint{view.Inclusions[0].ID, view.Inclusions[1].ID, view.Inclusions[2].ID})
}

func TestAssembleViewAbsentSingletons(t *testing.T) {
	view := AssembleView(&models.Customer{Name: "Bare", Slug: "bare"})
	assert.Nil(t, view.Video)
	assert.Nil(t, view.WhatsApp)
	assert.Empty(t, view.Hotels)
	assert.Empty(t, view.Days)
}
