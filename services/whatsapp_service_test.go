package services

import (
	"testing"

	"itinerary-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestRenderWhatsAppMessagePlaceholders(t *testing.T) {
	customer := &models.Customer{Name: "Asha", Destination: "Bali"}
	message := RenderWhatsAppMessage(
		"Hi [CustomerName], your [Destination] plan: [Link]",
		customer,
		"http://localhost:8080/itinerary/bali-trip-42/",
	)

	assert.Equal(t, "Hi Asha, your Bali plan: http://localhost:8080/itinerary/bali-trip-42/", message)
}

func TestRenderWhatsAppMessageEmptyTemplate(t *testing.T) {
	customer := &models.Customer{Name: "Asha", Destination: "Bali"}
	message := RenderWhatsAppMessage("  ", customer, "http://x/itinerary/s/")

	assert.Contains(t, message, "Asha")
	assert.Contains(t, message, "http://x/itinerary/s/")
}

func TestPublicItineraryURL(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "https://trips.example.com/")
	assert.Equal(t, "https://trips.example.com/itinerary/bali-trip-42/", PublicItineraryURL("bali-trip-42"))
}

func TestPublicItineraryURLDefault(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "")
	assert.Equal(t, "http://localhost:8080/itinerary/bali-trip-42/", PublicItineraryURL("bali-trip-42"))
}
