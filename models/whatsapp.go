package models

import "github.com/google/uuid"

// WhatsAppConfig holds the contact button shown on the public page and the
// message template used when sharing the itinerary link. At most one per
// customer.
type WhatsAppConfig struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"-"`

	Phone   string `gorm:"not null" json:"phone"` // E.164, e.g. +6281234567890
	Message string `gorm:"type:text" json:"message"`
}
