package models

import "github.com/google/uuid"

// Video is the promotional clip shown on the public page. At most one per
// customer; the editor rejects a second with a capacity error.
type Video struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"-"`

	Title    string `json:"title"`
	LocalSrc string `gorm:"not null" json:"local_src"`
}
