package service

import (
	"context"
	"fmt"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/repo"
)

// PriceUpdate is one cell edit from the admin pricing grid. RawPrice is the
// untrimmed text the admin typed; it goes through the lenient ParsePrice
// coercion rather than strict validation.
type PriceUpdate struct {
	Category domain.RoomCategory
	Days     int
	RawPrice string
}

// PricingService implements business logic for the room pricing matrix.
type PricingService struct {
	pricing repo.PricingRepo
}

// NewPricingService constructs a PricingService backed by the provided PricingRepo.
func NewPricingService(r repo.PricingRepo) *PricingService {
	return &PricingService{pricing: r}
}

// GetMatrix returns the full pricing matrix. Always returns a non-nil
// matrix so callers can look up pairs without a nil check.
func (s *PricingService) GetMatrix(ctx context.Context) (domain.PriceMatrix, error) {
	matrix, err := s.pricing.GetMatrix(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PricingService.GetMatrix: %w", err)
	}
	if matrix == nil {
		matrix = make(domain.PriceMatrix)
	}
	return matrix, nil
}

// BulkUpdate validates and persists a batch of admin grid edits, returning
// the entries as written (after coercion).
//
// Unknown categories and stay lengths are rejected with ErrValidation, but
// the price text itself is never rejected: non-numeric or negative input
// coerces to 0, which makes the pair unbookable until corrected. That
// coercion is the grid's contract, not a validation gap.
func (s *PricingService) BulkUpdate(ctx context.Context, updates []PriceUpdate) ([]domain.PricingEntry, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no entries to update", domain.ErrValidation)
	}

	entries := make([]domain.PricingEntry, 0, len(updates))
	for _, u := range updates {
		if !u.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown room category %q", domain.ErrValidation, u.Category)
		}
		if !domain.ValidStayLength(u.Days) {
			return nil, fmt.Errorf("%w: %d is not an offered stay length", domain.ErrValidation, u.Days)
		}
		entries = append(entries, domain.PricingEntry{
			Category: u.Category,
			Days:     u.Days,
			Price:    domain.ParsePrice(u.RawPrice).Value,
		})
	}

	if err := s.pricing.BulkUpsert(ctx, entries); err != nil {
		return nil, fmt.Errorf("service.PricingService.BulkUpdate: %w", err)
	}
	return entries, nil
}

// UpdatePriceDraft applies one grid edit to an in-memory draft matrix and
// returns the draft. Used by clients that batch edits before submitting a
// BulkUpdate. The same lenient coercion applies: bad input lands as 0.
func UpdatePriceDraft(draft domain.PriceMatrix, category domain.RoomCategory, days int, raw string) domain.PriceMatrix {
	if draft == nil {
		draft = make(domain.PriceMatrix)
	}
	draft.Set(category, days, domain.ParsePrice(raw).Value)
	return draft
}
