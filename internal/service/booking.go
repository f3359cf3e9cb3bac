package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/gateway"
	"github.com/nairp/resort-booking/internal/repo"
)

// currency is the only settlement currency the resort accepts.
const currency = "INR"

// CreateRoomOrderInput is the request to open payment for a room booking.
type CreateRoomOrderInput struct {
	Customer  domain.Customer
	Category  domain.RoomCategory
	Days      int
	StartDate time.Time
}

// CreateVehicleOrderInput is the request to open payment for a vehicle rental.
type CreateVehicleOrderInput struct {
	Customer  domain.Customer
	VehicleID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// VerifyPaymentInput is the triple the gateway hands the client on success,
// passed back verbatim for server-side verification.
type VerifyPaymentInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

// BookingService implements the server side of the payment confirmation
// protocol: it is the sole authority for order amounts (quotes are always
// recomputed here, never trusted from the client), it verifies gateway
// signatures, and it owns the pending → confirmed transition.
type BookingService struct {
	bookings repo.BookingRepo
	pricing  repo.PricingRepo
	vehicles repo.VehicleRepo
	gateway  gateway.Gateway

	gatewayTimeout time.Duration
	pendingTTL     time.Duration
}

// NewBookingService constructs a BookingService.
// gatewayTimeout bounds each outbound gateway call; pendingTTL is how long a
// pending booking may sit unverified before CancelExpired reaps it.
func NewBookingService(
	bookings repo.BookingRepo,
	pricing repo.PricingRepo,
	vehicles repo.VehicleRepo,
	gw gateway.Gateway,
	gatewayTimeout, pendingTTL time.Duration,
) *BookingService {
	return &BookingService{
		bookings:       bookings,
		pricing:        pricing,
		vehicles:       vehicles,
		gateway:        gw,
		gatewayTimeout: gatewayTimeout,
		pendingTTL:     pendingTTL,
	}
}

// CreateRoomOrder validates the customer, recomputes the room quote from the
// stored pricing matrix, creates a gateway order for the quoted total, and
// persists a pending booking keyed by the order ID.
//
// On gateway failure nothing is persisted; the caller may retry from scratch.
func (s *BookingService) CreateRoomOrder(ctx context.Context, in CreateRoomOrderInput) (domain.PaymentOrder, error) {
	if err := in.Customer.Validate(false); err != nil {
		return domain.PaymentOrder{}, err
	}

	matrix, err := s.pricing.GetMatrix(ctx)
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("service.BookingService.CreateRoomOrder: %w", err)
	}

	quote, err := ComputeRoomQuote(matrix, in.Category, in.Days, in.StartDate)
	if err != nil {
		return domain.PaymentOrder{}, err
	}

	order, err := s.createGatewayOrder(ctx, quote)
	if err != nil {
		return domain.PaymentOrder{}, err
	}

	category := in.Category
	booking := domain.Booking{
		Kind:          domain.BookingRoom,
		CustomerName:  in.Customer.Name,
		CustomerEmail: in.Customer.Email,
		CustomerPhone: in.Customer.Phone,
		Category:      &category,
		StartDate:     quote.StartDate,
		EndDate:       quote.EndDate,
		Days:          quote.Days,
		TotalPrice:    quote.TotalPrice,
		OrderID:       order.OrderID,
		Status:        domain.BookingPending,
	}
	if _, err := s.bookings.Create(ctx, booking); err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("service.BookingService.CreateRoomOrder: %w", err)
	}

	return order, nil
}

// CreateVehicleOrder is the vehicle-rental analogue of CreateRoomOrder.
// Phone is required for rentals (the desk calls before handover), and only
// active vehicles are quotable.
func (s *BookingService) CreateVehicleOrder(ctx context.Context, in CreateVehicleOrderInput) (domain.PaymentOrder, error) {
	if err := in.Customer.Validate(true); err != nil {
		return domain.PaymentOrder{}, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, in.VehicleID)
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("service.BookingService.CreateVehicleOrder: %w", err)
	}

	quote, err := ComputeVehicleQuote(vehicle, in.StartDate, in.EndDate)
	if err != nil {
		return domain.PaymentOrder{}, err
	}

	order, err := s.createGatewayOrder(ctx, quote)
	if err != nil {
		return domain.PaymentOrder{}, err
	}

	vehicleID := vehicle.ID
	booking := domain.Booking{
		Kind:          domain.BookingVehicle,
		CustomerName:  in.Customer.Name,
		CustomerEmail: in.Customer.Email,
		CustomerPhone: in.Customer.Phone,
		VehicleID:     &vehicleID,
		StartDate:     quote.StartDate,
		EndDate:       quote.EndDate,
		Days:          quote.Days,
		TotalPrice:    quote.TotalPrice,
		OrderID:       order.OrderID,
		Status:        domain.BookingPending,
	}
	if _, err := s.bookings.Create(ctx, booking); err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("service.BookingService.CreateVehicleOrder: %w", err)
	}

	return order, nil
}

// createGatewayOrder opens a gateway order for the quoted total.
// The gateway speaks the smallest currency unit, so rupees are converted to
// paise here and nowhere else. The call is bounded by the configured
// gateway timeout.
func (s *BookingService) createGatewayOrder(ctx context.Context, quote domain.Quote) (domain.PaymentOrder, error) {
	if !quote.Bookable() {
		return domain.PaymentOrder{}, fmt.Errorf("%w: quote is not bookable", domain.ErrInvalidQuote)
	}

	ctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	order, err := s.gateway.CreateOrder(ctx, quote.TotalPrice*100, currency, uuid.NewString())
	if err != nil {
		return domain.PaymentOrder{}, fmt.Errorf("%w: %v", domain.ErrOrderCreation, err)
	}

	return domain.PaymentOrder{
		OrderID:  order.ID,
		Amount:   quote.TotalPrice,
		Currency: currency,
		KeyID:    s.gateway.KeyID(),
	}, nil
}

// VerifyPayment checks the gateway signature for a completed payment and, on
// success, transitions the pending booking to confirmed.
//
// The call is idempotent for a finished order: re-verifying an
// already-confirmed booking with the same payment ID returns it unchanged.
// Any other mismatch — unknown order, cancelled booking, wrong payment ID,
// bad signature — is ErrVerificationFailed and the booking is not placed.
func (s *BookingService) VerifyPayment(ctx context.Context, in VerifyPaymentInput) (domain.Booking, error) {
	booking, err := s.bookings.GetByOrderID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Booking{}, fmt.Errorf("%w: unknown order", domain.ErrVerificationFailed)
		}
		return domain.Booking{}, fmt.Errorf("service.BookingService.VerifyPayment: %w", err)
	}

	switch booking.Status {
	case domain.BookingConfirmed:
		if booking.PaymentID == in.PaymentID {
			return booking, nil
		}
		return domain.Booking{}, fmt.Errorf("%w: order already settled", domain.ErrVerificationFailed)
	case domain.BookingCancelled:
		return domain.Booking{}, fmt.Errorf("%w: order expired", domain.ErrVerificationFailed)
	}

	if !s.gateway.VerifySignature(in.OrderID, in.PaymentID, in.Signature) {
		return domain.Booking{}, fmt.Errorf("%w: signature mismatch", domain.ErrVerificationFailed)
	}

	confirmed, err := s.bookings.Confirm(ctx, in.OrderID, in.PaymentID, in.Signature)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.VerifyPayment: %w", err)
	}
	return confirmed, nil
}

// ListPaged returns one admin page of bookings plus the total count.
// Always returns a non-nil slice.
func (s *BookingService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	bookings, total, err := s.bookings.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.BookingService.ListPaged: %w", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, total, nil
}

// CancelExpired cancels pending bookings older than the pending TTL and
// returns them. The gateway order behind a cancelled booking is left alone —
// unpaid orders lapse on the gateway side on their own.
func (s *BookingService) CancelExpired(ctx context.Context) ([]domain.Booking, error) {
	cancelled, err := s.bookings.CancelExpired(ctx, time.Now().Add(-s.pendingTTL))
	if err != nil {
		return nil, fmt.Errorf("service.BookingService.CancelExpired: %w", err)
	}
	return cancelled, nil
}
