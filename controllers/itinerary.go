// controllers/itinerary.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"itinerary-backend/config"
	"itinerary-backend/models"
	"itinerary-backend/services"
	"itinerary-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaveDayInput defines the JSON structure for creating or updating one
// itinerary day together with its detail rows
type SaveDayInput struct {
	CustomerID  uuid.UUID                `json:"customer_id" binding:"required"`
	Day         int                      `json:"day" binding:"required"`
	Icon        string                   `json:"icon"`
	Title       string                   `json:"title" binding:"required"`
	Description string                   `json:"description"`
	Details     []services.DetailPayload `json:"details"`
}

// GetCustomerItineraries lists the days of one customer, the admin's
// "Manage N Days of Itinerary" view
func GetCustomerItineraries(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.Where("id = ?", customerUUID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var days []models.Itinerary
	if err := config.DB.
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("time ASC, id ASC") }).
		Where("customer_id = ?", customerUUID).
		Order("day ASC").
		Find(&days).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve itinerary days")
		return
	}

	c.JSON(http.StatusOK, days)
}

// GetItinerary returns one day with its details
func GetItinerary(c *gin.Context) {
	itineraryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	var day models.Itinerary
	if err := config.DB.
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("time ASC, id ASC") }).
		Where("id = ?", uint(itineraryID)).
		First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Itinerary day not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, day)
}

// CreateItinerary creates one day and its details atomically
func CreateItinerary(c *gin.Context) {
	var input SaveDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.CanEditCustomer(c, input.CustomerID) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to edit this customer")
		return
	}

	editor := services.NewEditorService(config.DB)
	day, err := editor.SaveDay(0, input.CustomerID, dayPayload(input))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, day)
}

// UpdateItinerary rewrites one day and its details atomically
func UpdateItinerary(c *gin.Context) {
	itineraryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	var input SaveDayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.CanEditCustomer(c, input.CustomerID) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to edit this customer")
		return
	}

	editor := services.NewEditorService(config.DB)
	day, err := editor.SaveDay(uint(itineraryID), input.CustomerID, dayPayload(input))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

// DeleteItinerary removes one day and its details
func DeleteItinerary(c *gin.Context) {
	itineraryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	var day models.Itinerary
	if err := config.DB.Where("id = ?", uint(itineraryID)).First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Itinerary day not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CanEditCustomer(c, day.CustomerID) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to edit this customer")
		return
	}

	editor := services.NewEditorService(config.DB)
	if err := editor.DeleteDay(uint(itineraryID)); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Itinerary day deleted successfully"})
}

func dayPayload(input SaveDayInput) services.DayPayload {
	return services.DayPayload{
		Day:         input.Day,
		Icon:        input.Icon,
		Title:       input.Title,
		Description: input.Description,
		Details:     input.Details,
	}
}
