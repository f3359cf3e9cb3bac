// Package repo contains all database access logic for the resort booking API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nairp/resort-booking/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers in this package to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// PricingRepo defines the persistence operations for the room pricing matrix.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type PricingRepo interface {
	// GetMatrix returns the full category × stay-length price matrix.
	// Pairs with no row are simply absent (the matrix resolves them to 0).
	GetMatrix(ctx context.Context) (domain.PriceMatrix, error)

	// BulkUpsert writes every entry, inserting missing pairs and
	// overwriting existing ones.
	BulkUpsert(ctx context.Context, entries []domain.PricingEntry) error
}

// pgPricingRepo is the Postgres implementation of PricingRepo.
type pgPricingRepo struct {
	db db
}

// NewPricingRepo constructs a PricingRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPricingRepo(db db) PricingRepo {
	return &pgPricingRepo{db: db}
}

// GetMatrix loads every pricing row into a PriceMatrix.
func (r *pgPricingRepo) GetMatrix(ctx context.Context) (domain.PriceMatrix, error) {
	const q = `
		SELECT category, days, price
		FROM room_prices`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PricingRepo.GetMatrix: %w", err)
	}
	defer rows.Close()

	matrix := make(domain.PriceMatrix)
	for rows.Next() {
		var e domain.PricingEntry
		if err := rows.Scan(&e.Category, &e.Days, &e.Price); err != nil {
			return nil, fmt.Errorf("repo.PricingRepo.GetMatrix: scan: %w", err)
		}
		matrix.Set(e.Category, e.Days, e.Price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PricingRepo.GetMatrix: rows: %w", err)
	}

	return matrix, nil
}

// BulkUpsert inserts or overwrites each (category, days) price.
func (r *pgPricingRepo) BulkUpsert(ctx context.Context, entries []domain.PricingEntry) error {
	const q = `
		INSERT INTO room_prices (category, days, price)
		VALUES (@category, @days, @price)
		ON CONFLICT (category, days)
		DO UPDATE SET price = EXCLUDED.price, updated_at = now()`

	for _, e := range entries {
		args := pgx.NamedArgs{
			"category": e.Category,
			"days":     e.Days,
			"price":    e.Price,
		}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.PricingRepo.BulkUpsert: %w", err)
		}
	}
	return nil
}
