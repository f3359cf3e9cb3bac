package domain

import "time"

// Quote is a derived, never-persisted price-and-date computation for one
// booking selection. A quote with TotalPrice <= 0 or Days <= 0 is invalid
// and must not proceed to payment.
type Quote struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`

	// UnitPrice is the per-day rate for vehicle rentals; 0 for room
	// bookings, which are priced by matrix lookup rather than per day.
	UnitPrice int64 `json:"unit_price,omitempty"`

	TotalPrice int64 `json:"total_price"`

	// Deposit is carried through from the vehicle record, informational
	// only. Always 0 for room bookings.
	Deposit int64 `json:"deposit,omitempty"`
}

// Bookable reports whether the quote may proceed to payment.
func (q Quote) Bookable() bool {
	return q.Days > 0 && q.TotalPrice > 0
}
