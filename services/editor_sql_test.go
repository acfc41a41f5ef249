package services

import (
	"errors"
	"testing"

	"itinerary-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func customerRow(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "destination", "slug"}).
		AddRow(id.String(), "Bali Family Trip", "Bali", "bali-trip-42")
}

func TestDeleteCustomerCascadesDepthFirst(t *testing.T) {
	gdb, mock := mockDB(t)
	customerID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(customerRow(customerID))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "itineraries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10).AddRow(11))
	mock.ExpectExec(`DELETE FROM "itinerary_details"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "itineraries"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "hotels"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "flights"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "videos"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "package_inclusions"`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "package_exclusions"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "whats_app_configs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "customers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	editor := NewEditorService(gdb)
	err := editor.DeleteCustomer(customerID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCustomerNotFound(t *testing.T) {
	gdb, mock := mockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	editor := NewEditorService(gdb)
	err := editor.DeleteCustomer(uuid.New())

	var nfErr *utils.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSubtreeSecondVideoWritesNothing(t *testing.T) {
	gdb, mock := mockDB(t)
	customerID := uuid.New()

	// Only the customer lookup runs; the capacity check fires before any
	// transaction is opened.
	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(customerRow(customerID))

	payload := validSubtree()
	payload.Video = append(payload.Video, VideoPayload{LocalSrc: "/media/second.mp4"})

	editor := NewEditorService(gdb)
	_, err := editor.SaveSubtree(customerID, payload)

	var capErr *utils.CapacityError
	assert.True(t, errors.As(err, &capErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSubtreeInvalidChildWritesNothing(t *testing.T) {
	gdb, mock := mockDB(t)
	customerID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(customerRow(customerID))

	payload := validSubtree()
	payload.Hotels[0].Nights = -1

	editor := NewEditorService(gdb)
	_, err := editor.SaveSubtree(customerID, payload)

	var ve *utils.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "hotels[0].nights")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSubtreeCreatesChildrenAndBumpsUpdatedAt(t *testing.T) {
	gdb, mock := mockDB(t)
	mock.MatchExpectationsInOrder(false)
	customerID := uuid.New()

	payload := SubtreePayload{
		Hotels: []HotelPayload{
			{Name: "Grand Hyatt", RoomType: "Deluxe", Stars: 5, Nights: 3},
		},
	}

	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(customerRow(customerID))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "hotels"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "hotels"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM "flights"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "videos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "itineraries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "package_inclusions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "package_exclusions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "whats_app_configs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`UPDATE "customers" SET "updated_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Reload of the saved subtree for the response body.
	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(customerRow(customerID))
	mock.ExpectQuery(`SELECT (.+) FROM "hotels"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "name", "order_index"}).
			AddRow(1, customerID.String(), "Grand Hyatt", 0))
	mock.ExpectQuery(`SELECT (.+) FROM "flights"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "videos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "itineraries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "package_inclusions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "package_exclusions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT (.+) FROM "whats_app_configs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	editor := NewEditorService(gdb)
	customer, err := editor.SaveSubtree(customerID, payload)

	assert.NoError(t, err)
	if assert.Len(t, customer.Hotels, 1) {
		assert.Equal(t, "Grand Hyatt", customer.Hotels[0].Name)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveDayForeignDetailRejected(t *testing.T) {
	gdb, mock := mockDB(t)
	customerID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(customerRow(customerID))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "itineraries"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "itineraries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`SELECT (.+) FROM "itinerary_details"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "itinerary_id"}))
	mock.ExpectRollback()

	editor := NewEditorService(gdb)
	_, err := editor.SaveDay(0, customerID, DayPayload{
		Day:   1,
		Title: "Arrival",
		Details: []DetailPayload{
			{ID: 999, Time: "09:00", Activity: "Airport pickup"},
		},
	})

	var ve *utils.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "day.details[0].id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveDayDuplicateDayRollsBack(t *testing.T) {
	gdb, mock := mockDB(t)
	customerID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(customerRow(customerID))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "itineraries"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	editor := NewEditorService(gdb)
	_, err := editor.SaveDay(0, customerID, DayPayload{Day: 1, Title: "Arrival"})

	var ve *utils.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "day.day")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveSubtreeUnknownCustomer(t *testing.T) {
	gdb, mock := mockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "customers"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	editor := NewEditorService(gdb)
	_, err := editor.SaveSubtree(uuid.New(), validSubtree())

	var nfErr *utils.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
	assert.NoError(t, mock.ExpectationsWereMet())
}
