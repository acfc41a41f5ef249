package models

import (
	"time"

	"github.com/google/uuid"
)

type Hotel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	RoomType string `json:"room_type"`
	Stars    int    `gorm:"default:0" json:"stars"`
	Nights   int    `gorm:"default:1" json:"nights"`
	Image    string `json:"image"` // URL or local path
	MapURL   string `json:"map_url"`
	Order    int    `gorm:"column:order_index;default:0" json:"order"`

	CreatedAt time.Time `json:"-"`
}
