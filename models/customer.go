package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is the root aggregate: one record per trip. Every other entity
// hangs off it and is deleted with it. Slug is the public lookup key for
// the shareable itinerary page.
type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`

	Name        string `gorm:"not null" json:"name"`
	Destination string `gorm:"not null" json:"destination"`
	Dates       string `json:"dates"`  // display text, e.g. "12 – 19 March 2026"
	Guests      string `json:"guests"` // display text, e.g. "2 Adults, 1 Child"
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`

	Hotels     []Hotel            `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"hotels,omitempty"`
	Flights    []Flight           `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"flights,omitempty"`
	Video      *Video             `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"video,omitempty"`
	Days       []Itinerary        `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"days,omitempty"`
	Inclusions []PackageInclusion `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"inclusions,omitempty"`
	Exclusions []PackageExclusion `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"exclusions,omitempty"`
	WhatsApp   *WhatsAppConfig    `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"whatsapp,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
