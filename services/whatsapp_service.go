// services/whatsapp_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"itinerary-backend/models"
	"itinerary-backend/utils"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// WhatsAppService sends the customer's itinerary link over WhatsApp using
// the stored message template. The template may carry [CustomerName],
// [Destination] and [Link] placeholders.
type WhatsAppService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewWhatsAppService(db *gorm.DB) *WhatsAppService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &WhatsAppService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// SendItineraryLink sends the public page link to the customer's
// configured WhatsApp number. NotFoundError when the customer or its
// WhatsApp config is absent.
func (s *WhatsAppService) SendItineraryLink(customerID uuid.UUID) error {
	var customer models.Customer
	if err := s.db.Where("id = ?", customerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &utils.NotFoundError{Resource: "customer"}
		}
		return err
	}

	var cfg models.WhatsAppConfig
	if err := s.db.Where("customer_id = ?", customerID).First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &utils.NotFoundError{Resource: "whatsapp config"}
		}
		return err
	}

	message := RenderWhatsAppMessage(cfg.Message, &customer, PublicItineraryURL(customer.Slug))

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + cfg.Phone)
	params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send WhatsApp message to %s: %v", cfg.Phone, err)
		return err
	}
	if resp.Sid != nil {
		log.Printf("WhatsApp message sent to %s, SID: %s", cfg.Phone, *resp.Sid)
	}
	return nil
}

// RenderWhatsAppMessage fills the template placeholders. An empty template
// falls back to a plain link message.
func RenderWhatsAppMessage(template string, customer *models.Customer, link string) string {
	if strings.TrimSpace(template) == "" {
		return fmt.Sprintf("Hi %s! Your %s itinerary is ready: %s", customer.Name, customer.Destination, link)
	}
	message := strings.ReplaceAll(template, "[CustomerName]", customer.Name)
	message = strings.ReplaceAll(message, "[Destination]", customer.Destination)
	message = strings.ReplaceAll(message, "[Link]", link)
	return message
}

// PublicItineraryURL builds the shareable link for a slug.
func PublicItineraryURL(slug string) string {
	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return strings.TrimRight(base, "/") + "/itinerary/" + slug + "/"
}
