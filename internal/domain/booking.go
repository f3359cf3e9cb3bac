package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingKind distinguishes the two booking flows.
type BookingKind string

const (
	BookingRoom    BookingKind = "room"
	BookingVehicle BookingKind = "vehicle"
)

// BookingStatus is the lifecycle state of a booking.
// A booking is created pending by order creation and transitions to
// confirmed only after server-side signature verification succeeds.
// The client never assigns confirmed itself.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Customer carries the contact details collected at checkout.
// Phone is required for vehicle rentals and optional for room bookings.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Validate enforces the checkout contact rules: trimmed name must be
// non-empty, email must pass a simple @-presence check, and phone (when
// required) must be non-empty after trimming.
func (c Customer) Validate(phoneRequired bool) error {
	if strings.TrimSpace(c.Name) == "" {
		return wrapValidation("name is required")
	}
	if !strings.Contains(c.Email, "@") {
		return wrapValidation("email is invalid")
	}
	if phoneRequired && strings.TrimSpace(c.Phone) == "" {
		return wrapValidation("phone is required")
	}
	return nil
}

// Booking is the persisted record of a booking attempt.
// Category is set for room bookings, VehicleID for vehicle rentals; exactly
// one of the two is non-nil, matching Kind.
type Booking struct {
	ID   uuid.UUID   `json:"id"`
	Kind BookingKind `json:"kind"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	Category  *RoomCategory `json:"category,omitempty"`
	VehicleID *uuid.UUID    `json:"vehicle_id,omitempty"`

	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Days       int       `json:"days"`
	TotalPrice int64     `json:"total_price"`

	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id,omitempty"`
	Signature string `json:"-"` // never exposed over the API

	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
