package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/repo"
	"github.com/nairp/resort-booking/testutil"
)

// newTestTx opens a transaction against the test database that is rolled
// back when the test finishes, giving free per-test isolation. All repos in
// a test share the same transaction so they see each other's writes.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

func newPricingRepo(t *testing.T) repo.PricingRepo {
	t.Helper()
	return repo.NewPricingRepo(newTestTx(t))
}

func TestPricingRepo_GetMatrix_Empty(t *testing.T) {
	r := newPricingRepo(t)

	matrix, err := r.GetMatrix(context.Background())

	require.NoError(t, err)
	require.NotNil(t, matrix)
	assert.EqualValues(t, 0, matrix.Price(domain.RoomSingle, 7))
}

func TestPricingRepo_BulkUpsert_InsertThenRead(t *testing.T) {
	r := newPricingRepo(t)
	ctx := context.Background()

	err := r.BulkUpsert(ctx, []domain.PricingEntry{
		{Category: domain.RoomSingle, Days: 7, Price: 7000},
		{Category: domain.RoomSingle, Days: 15, Price: 13500},
		{Category: domain.RoomDouble, Days: 7, Price: 10500},
	})
	require.NoError(t, err)

	matrix, err := r.GetMatrix(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 7000, matrix.Price(domain.RoomSingle, 7))
	assert.EqualValues(t, 13500, matrix.Price(domain.RoomSingle, 15))
	assert.EqualValues(t, 10500, matrix.Price(domain.RoomDouble, 7))
}

func TestPricingRepo_BulkUpsert_OverwritesExisting(t *testing.T) {
	r := newPricingRepo(t)
	ctx := context.Background()

	require.NoError(t, r.BulkUpsert(ctx, []domain.PricingEntry{
		{Category: domain.RoomSingle, Days: 7, Price: 7000},
	}))
	require.NoError(t, r.BulkUpsert(ctx, []domain.PricingEntry{
		{Category: domain.RoomSingle, Days: 7, Price: 7500},
	}))

	matrix, err := r.GetMatrix(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 7500, matrix.Price(domain.RoomSingle, 7))
}

func TestPricingRepo_BulkUpsert_ZeroPriceStored(t *testing.T) {
	// A coerced 0 is a real row: it marks the pair deliberately unbookable
	// rather than falling back to any previous price.
	r := newPricingRepo(t)
	ctx := context.Background()

	require.NoError(t, r.BulkUpsert(ctx, []domain.PricingEntry{
		{Category: domain.RoomSingle, Days: 7, Price: 7000},
	}))
	require.NoError(t, r.BulkUpsert(ctx, []domain.PricingEntry{
		{Category: domain.RoomSingle, Days: 7, Price: 0},
	}))

	matrix, err := r.GetMatrix(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, matrix.Price(domain.RoomSingle, 7))
}
