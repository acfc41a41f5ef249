package models

import (
	"time"

	"github.com/google/uuid"
)

// Flight legs of the trip. Display order is insertion order; there is no
// user-sortable order field on flights.
const (
	FlightOutbound = "outbound"
	FlightInbound  = "inbound"
	FlightInternal = "internal"
)

type Flight struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`

	FlightType   string `gorm:"type:varchar(20);not null" json:"flight_type"` // outbound, inbound, internal
	FromLocation string `gorm:"not null" json:"from_location"`
	ToLocation   string `gorm:"not null" json:"to_location"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	Cabin        string `json:"cabin"`

	CreatedAt time.Time `json:"-"`
}
