package models

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is one day of the trip. (customer_id, day) uniqueness is
// enforced by the editor, not by a constraint, so a subtree save can swap
// two day numbers without tripping over itself mid-transaction. The public
// page orders days by day ascending.
type Itinerary struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`

	Day         int    `gorm:"not null" json:"day"`
	Icon        string `json:"icon"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Details []ItineraryDetail `gorm:"foreignKey:ItineraryID;constraint:OnDelete:CASCADE" json:"details,omitempty"`

	CreatedAt time.Time `json:"-"`
}

// ItineraryDetail is a timed activity within a day, ordered by time
// ascending with id as the tie-break.
type ItineraryDetail struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ItineraryID uint `gorm:"index;not null" json:"-"`

	Time     string `gorm:"type:varchar(5)" json:"time"` // HH:MM
	Activity string `gorm:"not null" json:"activity"`
}
