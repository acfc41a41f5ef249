package controllers

import (
	"errors"
	"net/http"
	"strings"

	"itinerary-backend/config"
	"itinerary-backend/models"
	"itinerary-backend/services"
	"itinerary-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name        string `json:"name" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Dates       string `json:"dates"`
	Guests      string `json:"guests"`
	Slug        string `json:"slug" binding:"required"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name        *string `json:"name"`
	Destination *string `json:"destination"`
	Dates       *string `json:"dates"`
	Guests      *string `json:"guests"`
	Slug        *string `json:"slug"`
}

// CustomerListEntry is one row of the admin list page: base fields plus
// the day count and the live-view link the staff click through to.
type CustomerListEntry struct {
	models.Customer
	DayCount int64  `json:"day_count"`
	LiveURL  string `json:"live_url"`
}

// CreateCustomer creates a new customer (trip) record
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	input.Slug = strings.TrimSpace(strings.ToLower(input.Slug))
	if !utils.ValidateSlug(input.Slug) {
		ve := utils.NewValidationError()
		ve.Add("slug", "must be lowercase words joined by hyphens")
		utils.RespondWithAppError(c, ve)
		return
	}

	// Slug is the public lookup key and must be globally unique
	var existing models.Customer
	if err := config.DB.Where("slug = ?", input.Slug).First(&existing).Error; err == nil {
		ve := utils.NewValidationError()
		ve.Add("slug", "already in use")
		utils.RespondWithAppError(c, ve)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		ID:          uuid.New(),
		Name:        input.Name,
		Destination: input.Destination,
		Dates:       input.Dates,
		Guests:      input.Guests,
		Slug:        input.Slug,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists all customers with day counts and live-view links
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	query := config.DB.Order("created_at DESC")
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ? OR destination ILIKE ?", like, like, like)
	}
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	// One grouped query instead of a count per row.
	type dayCountRow struct {
		CustomerID uuid.UUID
		Count      int64
	}
	var countRows []dayCountRow
	if err := config.DB.Model(&models.Itinerary{}).
		Select("customer_id, COUNT(*) AS count").
		Group("customer_id").
		Scan(&countRows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count itinerary days")
		return
	}
	dayCounts := make(map[uuid.UUID]int64, len(countRows))
	for _, row := range countRows {
		dayCounts[row.CustomerID] = row.Count
	}

	entries := make([]CustomerListEntry, 0, len(customers))
	for _, customer := range customers {
		entries = append(entries, CustomerListEntry{
			Customer: customer,
			DayCount: dayCounts[customer.ID],
			LiveURL:  services.PublicItineraryURL(customer.Slug),
		})
	}

	c.JSON(http.StatusOK, entries)
}

// GetCustomer returns one customer with its entire subtree preloaded
func GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	editor := services.NewEditorService(config.DB)
	customer, err := editor.GetSubtree(customerUUID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates the base fields of a customer
func UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if !utils.CanEditCustomer(c, customerUUID) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to edit this customer")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
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

	oldSlug := customer.Slug

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Destination != nil {
		customer.Destination = *input.Destination
	}
	if input.Dates != nil {
		customer.Dates = *input.Dates
	}
	if input.Guests != nil {
		customer.Guests = *input.Guests
	}
	if input.Slug != nil {
		// Changing a published slug breaks previously shared links;
		// uniqueness still applies.
		slug := strings.TrimSpace(strings.ToLower(*input.Slug))
		if !utils.ValidateSlug(slug) {
			ve := utils.NewValidationError()
			ve.Add("slug", "must be lowercase words joined by hyphens")
			utils.RespondWithAppError(c, ve)
			return
		}
		if slug != customer.Slug {
			var existing models.Customer
			if err := config.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
				ve := utils.NewValidationError()
				ve.Add("slug", "already in use")
				utils.RespondWithAppError(c, ve)
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Slug = slug
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	services.InvalidatePublicSnapshot(oldSlug)
	if customer.Slug != oldSlug {
		services.InvalidatePublicSnapshot(customer.Slug)
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer and every descendant entity
func DeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if !utils.CanEditCustomer(c, customerUUID) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to edit this customer")
		return
	}

	editor := services.NewEditorService(config.DB)
	if err := editor.DeleteCustomer(customerUUID); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// SaveCustomerSubtree commits one editor submission: the full desired
// state of every child collection, all-or-nothing
func SaveCustomerSubtree(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if !utils.CanEditCustomer(c, customerUUID) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to edit this customer")
		return
	}

	var payload services.SubtreePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	editor := services.NewEditorService(config.DB)
	customer, err := editor.SaveSubtree(customerUUID, payload)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ReorderInput carries the complete id sequence of one collection
type ReorderInput struct {
	IDs []uint `json:"ids" binding:"required"`
}

// ReorderCollection rewrites the order of a user-sortable collection
func ReorderCollection(collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}

		if !utils.CanEditCustomer(c, customerUUID) {
			utils.RespondWithError(c, http.StatusForbidden, "Not allowed to edit this customer")
			return
		}

		var input ReorderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		editor := services.NewEditorService(config.DB)
		if err := editor.Reorder(customerUUID, collection, input.IDs); err != nil {
			utils.RespondWithAppError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Reordered successfully"})
	}
}

// GetCustomerQRCode returns a QR code PNG of the public itinerary link,
// for printed handouts
func GetCustomerQRCode(c *gin.Context) {
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

	png, err := qrcode.Encode(services.PublicItineraryURL(customer.Slug), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// SendWhatsAppLink sends the itinerary link to the customer's configured
// WhatsApp number
func SendWhatsAppLink(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if !utils.CanEditCustomer(c, customerUUID) {
		utils.RespondWithError(c, http.StatusForbidden, "Not allowed to edit this customer")
		return
	}

	wa := services.NewWhatsAppService(config.DB)
	if err := wa.SendItineraryLink(customerUUID); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Itinerary link sent"})
}

// GetOverview returns the back-office landing numbers
func GetOverview(c *gin.Context) {
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Count(&totalCustomers)

	var totalDays int64
	config.DB.Model(&models.Itinerary{}).Count(&totalDays)

	var totalHotels int64
	config.DB.Model(&models.Hotel{}).Count(&totalHotels)

	var recent []models.Customer
	config.DB.Order("updated_at DESC").Limit(5).Find(&recent)

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":  totalCustomers,
		"totalDays":       totalDays,
		"totalHotels":     totalHotels,
		"recentCustomers": recent,
	})
}
