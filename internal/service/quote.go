// Package service contains the business logic for the resort booking API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// gateway calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"fmt"
	"math"
	"time"

	"github.com/nairp/resort-booking/internal/domain"
)

// ComputeRoomQuote derives the date range and total price for a fixed-length
// room booking against the pricing matrix.
//
// A stay is an inclusive date range: end = start + (days - 1), so a 7-day
// stay starting Feb 1 ends Feb 7. The matrix resolves unknown pairs to 0,
// and a zero-or-negative price means the pair is not currently bookable —
// the quote is rejected rather than charging zero.
//
// Start dates in the past are accepted; the booking desk takes walk-ins
// retroactively.
func ComputeRoomQuote(matrix domain.PriceMatrix, category domain.RoomCategory, days int, start time.Time) (domain.Quote, error) {
	if !category.Valid() {
		return domain.Quote{}, fmt.Errorf("%w: unknown room category %q", domain.ErrInvalidQuote, category)
	}
	if !domain.ValidStayLength(days) {
		return domain.Quote{}, fmt.Errorf("%w: %d is not an offered stay length", domain.ErrInvalidQuote, days)
	}
	if start.IsZero() {
		return domain.Quote{}, fmt.Errorf("%w: start date is required", domain.ErrInvalidQuote)
	}

	price := matrix.Price(category, days)
	if price <= 0 {
		return domain.Quote{}, fmt.Errorf("%w: pricing unavailable for %s/%d days", domain.ErrInvalidQuote, category, days)
	}

	return domain.Quote{
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, days-1),
		Days:       days,
		TotalPrice: price,
	}, nil
}

// ComputeVehicleQuote derives the rental length and total price for an
// open-ended vehicle rental.
//
// Unlike room stays, a rental's end date is exclusive of a final night:
// days = ceil(end - start), so Mar 1 → Mar 4 is a 3-day rental. The
// vehicle's deposit is carried through for disclosure only; it is never
// part of the total charged online.
func ComputeVehicleQuote(v domain.Vehicle, start, end time.Time) (domain.Quote, error) {
	if !v.IsActive {
		return domain.Quote{}, fmt.Errorf("%w: vehicle is not available", domain.ErrInvalidQuote)
	}
	if start.IsZero() || end.IsZero() {
		return domain.Quote{}, fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidQuote)
	}
	if !end.After(start) {
		return domain.Quote{}, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidQuote)
	}

	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days <= 0 {
		return domain.Quote{}, fmt.Errorf("%w: rental must cover at least one day", domain.ErrInvalidQuote)
	}

	total := int64(days) * v.PricePerDay
	if total <= 0 {
		return domain.Quote{}, fmt.Errorf("%w: pricing unavailable for this vehicle", domain.ErrInvalidQuote)
	}

	return domain.Quote{
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		UnitPrice:  v.PricePerDay,
		TotalPrice: total,
		Deposit:    v.Deposit,
	}, nil
}
