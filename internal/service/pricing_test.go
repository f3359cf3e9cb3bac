package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/repo"
	"github.com/nairp/resort-booking/internal/service"
)

// mockPricingRepo is a hand-written test double for repo.PricingRepo.
// Each method is a function field — set only the ones your test needs.
type mockPricingRepo struct {
	getMatrix  func(ctx context.Context) (domain.PriceMatrix, error)
	bulkUpsert func(ctx context.Context, entries []domain.PricingEntry) error
}

func (m *mockPricingRepo) GetMatrix(ctx context.Context) (domain.PriceMatrix, error) {
	return m.getMatrix(ctx)
}
func (m *mockPricingRepo) BulkUpsert(ctx context.Context, entries []domain.PricingEntry) error {
	return m.bulkUpsert(ctx, entries)
}

// compile-time check: mockPricingRepo must satisfy repo.PricingRepo.
var _ repo.PricingRepo = (*mockPricingRepo)(nil)

// acceptAllPricingRepo records what BulkUpsert receives and succeeds.
func acceptAllPricingRepo(written *[]domain.PricingEntry) *mockPricingRepo {
	return &mockPricingRepo{
		bulkUpsert: func(_ context.Context, entries []domain.PricingEntry) error {
			*written = entries
			return nil
		},
	}
}

// ---- GetMatrix -------------------------------------------------------------

func TestPricingService_GetMatrix_NeverNil(t *testing.T) {
	svc := service.NewPricingService(&mockPricingRepo{
		getMatrix: func(_ context.Context) (domain.PriceMatrix, error) { return nil, nil },
	})

	matrix, err := svc.GetMatrix(context.Background())

	require.NoError(t, err)
	require.NotNil(t, matrix)
	assert.EqualValues(t, 0, matrix.Price(domain.RoomSingle, 7))
}

func TestPricingService_GetMatrix_RepoError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := service.NewPricingService(&mockPricingRepo{
		getMatrix: func(_ context.Context) (domain.PriceMatrix, error) { return nil, boom },
	})

	_, err := svc.GetMatrix(context.Background())

	assert.ErrorIs(t, err, boom)
}

// ---- BulkUpdate ------------------------------------------------------------

func TestPricingService_BulkUpdate_Valid(t *testing.T) {
	var written []domain.PricingEntry
	svc := service.NewPricingService(acceptAllPricingRepo(&written))

	entries, err := svc.BulkUpdate(context.Background(), []service.PriceUpdate{
		{Category: domain.RoomSingle, Days: 7, RawPrice: "7500"},
		{Category: domain.RoomDouble, Days: 15, RawPrice: "18000"},
	})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.EqualValues(t, 7500, entries[0].Price)
	assert.EqualValues(t, 18000, entries[1].Price)
	assert.Equal(t, entries, written)
}

func TestPricingService_BulkUpdate_NonNumericCoercesToZero(t *testing.T) {
	var written []domain.PricingEntry
	svc := service.NewPricingService(acceptAllPricingRepo(&written))

	entries, err := svc.BulkUpdate(context.Background(), []service.PriceUpdate{
		{Category: domain.RoomSingle, Days: 7, RawPrice: "abc"},
	})

	// Garbage price text is not a validation failure — it lands as 0 and
	// the pair becomes unbookable until corrected.
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.EqualValues(t, 0, entries[0].Price)
}

func TestPricingService_BulkUpdate_NegativeCoercesToZero(t *testing.T) {
	var written []domain.PricingEntry
	svc := service.NewPricingService(acceptAllPricingRepo(&written))

	entries, err := svc.BulkUpdate(context.Background(), []service.PriceUpdate{
		{Category: domain.RoomSingle, Days: 7, RawPrice: "-100"},
	})

	require.NoError(t, err)
	assert.EqualValues(t, 0, entries[0].Price)
}

func TestPricingService_BulkUpdate_UnknownCategory(t *testing.T) {
	svc := service.NewPricingService(&mockPricingRepo{})

	_, err := svc.BulkUpdate(context.Background(), []service.PriceUpdate{
		{Category: "penthouse", Days: 7, RawPrice: "100"},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPricingService_BulkUpdate_UnofferedStayLength(t *testing.T) {
	svc := service.NewPricingService(&mockPricingRepo{})

	_, err := svc.BulkUpdate(context.Background(), []service.PriceUpdate{
		{Category: domain.RoomSingle, Days: 10, RawPrice: "100"},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPricingService_BulkUpdate_EmptyBatch(t *testing.T) {
	svc := service.NewPricingService(&mockPricingRepo{})

	_, err := svc.BulkUpdate(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- UpdatePriceDraft ------------------------------------------------------

func TestUpdatePriceDraft_SetsValue(t *testing.T) {
	draft := service.UpdatePriceDraft(nil, domain.RoomSingle, 7, "6400")

	assert.EqualValues(t, 6400, draft.Price(domain.RoomSingle, 7))
}

func TestUpdatePriceDraft_GarbageLandsAsZero(t *testing.T) {
	draft := make(domain.PriceMatrix)
	draft.Set(domain.RoomSingle, 7, 6400)

	draft = service.UpdatePriceDraft(draft, domain.RoomSingle, 7, "abc")

	assert.EqualValues(t, 0, draft.Price(domain.RoomSingle, 7))
}
