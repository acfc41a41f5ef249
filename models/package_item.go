package models

import "github.com/google/uuid"

// PackageInclusion and PackageExclusion are the "what's included" /
// "what's not included" lists. Each keeps its own user-sortable order
// sequence.

type PackageInclusion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	Item  string `gorm:"not null" json:"item"`
	Order int    `gorm:"column:order_index;default:0" json:"order"`
}

type PackageExclusion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	Item  string `gorm:"not null" json:"item"`
	Order int    `gorm:"column:order_index;default:0" json:"order"`
}
