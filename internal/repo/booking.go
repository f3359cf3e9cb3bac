package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/nairp/resort-booking/internal/domain"
)

// BookingRepo defines the persistence operations for bookings.
type BookingRepo interface {
	// Create inserts a new booking (normally pending, keyed by its gateway
	// order ID) and returns the persisted record.
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// GetByOrderID retrieves the booking tied to a gateway order.
	// Returns domain.ErrNotFound if no such booking exists.
	GetByOrderID(ctx context.Context, orderID string) (domain.Booking, error)

	// Confirm transitions the pending booking for orderID to confirmed,
	// recording the gateway payment ID and signature. Returns
	// domain.ErrNotFound if no pending booking with that order ID exists.
	Confirm(ctx context.Context, orderID, paymentID, signature string) (domain.Booking, error)

	// ListPaged returns bookings ordered by created_at descending, plus
	// the total row count for pagination.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)

	// CancelExpired cancels every pending booking created before cutoff
	// and returns the cancelled records.
	CancelExpired(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `id, kind, customer_name, customer_email, customer_phone,
		category, vehicle_id, start_date, end_date, days, total_price,
		order_id, payment_id, signature, status, created_at, updated_at`

// Create inserts a new booking row and returns the full persisted record.
func (r *pgBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	const q = `
		INSERT INTO bookings (kind, customer_name, customer_email, customer_phone,
			category, vehicle_id, start_date, end_date, days, total_price,
			order_id, status)
		VALUES (@kind, @customer_name, @customer_email, @customer_phone,
			@category, @vehicle_id, @start_date, @end_date, @days, @total_price,
			@order_id, @status)
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{
		"kind":           b.Kind,
		"customer_name":  b.CustomerName,
		"customer_email": b.CustomerEmail,
		"customer_phone": b.CustomerPhone,
		"category":       b.Category, // nil becomes NULL
		"vehicle_id":     b.VehicleID,
		"start_date":     b.StartDate,
		"end_date":       b.EndDate,
		"days":           b.Days,
		"total_price":    b.TotalPrice,
		"order_id":       b.OrderID,
		"status":         b.Status,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", err)
	}
	return result, nil
}

// GetByOrderID retrieves a booking by its gateway order ID.
func (r *pgBookingRepo) GetByOrderID(ctx context.Context, orderID string) (domain.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE order_id = @order_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"order_id": orderID})
	result, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByOrderID: %w", err)
	}
	return result, nil
}

// Confirm flips a pending booking to confirmed and stores the payment proof.
// The WHERE clause requires status = 'pending', so a booking can only be
// confirmed once; a repeat call falls through to ErrNotFound.
func (r *pgBookingRepo) Confirm(ctx context.Context, orderID, paymentID, signature string) (domain.Booking, error) {
	const q = `
		UPDATE bookings
		SET status     = 'confirmed',
		    payment_id = @payment_id,
		    signature  = @signature,
		    updated_at = now()
		WHERE order_id = @order_id
		  AND status = 'pending'
		RETURNING ` + bookingColumns

	args := pgx.NamedArgs{
		"order_id":   orderID,
		"payment_id": paymentID,
		"signature":  signature,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanBooking(row)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Confirm: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of bookings (newest first) and the total count.
func (r *pgBookingRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	const countQ = `SELECT count(*) FROM bookings`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.ListPaged: rows: %w", err)
	}

	return bookings, total, nil
}

// CancelExpired cancels stale pending bookings and returns them.
func (r *pgBookingRepo) CancelExpired(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	const q = `
		UPDATE bookings
		SET status     = 'cancelled',
		    updated_at = now()
		WHERE status = 'pending'
		  AND created_at < @cutoff
		RETURNING ` + bookingColumns

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"cutoff": cutoff})
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.CancelExpired: %w", err)
	}
	defer rows.Close()

	var cancelled []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.BookingRepo.CancelExpired: scan: %w", err)
		}
		cancelled = append(cancelled, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.CancelExpired: rows: %w", err)
	}

	return cancelled, nil
}

// scanBooking maps a single database row into a domain.Booking.
// It handles the UUID, nullable category/vehicle_id, and nullable payment
// proof conversions.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b         domain.Booking
		id        pgtype.UUID
		phone     pgtype.Text
		category  pgtype.Text
		vehicleID pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		paymentID pgtype.Text
		signature pgtype.Text
	)

	err := s.Scan(&id, &b.Kind, &b.CustomerName, &b.CustomerEmail, &phone,
		&category, &vehicleID, &startDate, &endDate, &b.Days, &b.TotalPrice,
		&b.OrderID, &paymentID, &signature, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.StartDate = startDate.Time
	b.EndDate = endDate.Time
	if phone.Valid {
		b.CustomerPhone = phone.String
	}
	if category.Valid {
		c := domain.RoomCategory(category.String)
		b.Category = &c
	}
	if vehicleID.Valid {
		v := uuid.UUID(vehicleID.Bytes)
		b.VehicleID = &v
	}
	if paymentID.Valid {
		b.PaymentID = paymentID.String
	}
	if signature.Valid {
		b.Signature = signature.String
	}

	return b, nil
}
