package domain

import (
	"time"

	"github.com/google/uuid"
)

// VehicleType identifies a class of rentable vehicle.
type VehicleType string

const (
	VehicleScooter VehicleType = "scooter"
	VehicleBike    VehicleType = "bike"
	VehicleCar     VehicleType = "car"
)

// Valid reports whether t is one of the known vehicle types.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleScooter, VehicleBike, VehicleCar:
		return true
	}
	return false
}

// Vehicle is a single rentable vehicle in the resort's fleet.
// Prices are whole rupees. Deposit is refundable on return and is disclosed
// to the customer but never charged online; it is not part of any quote
// total. Only active vehicles are quotable from the public flow.
type Vehicle struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Type        VehicleType `json:"type"`
	PricePerDay int64       `json:"price_per_day"`
	Deposit     int64       `json:"deposit"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
