package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/repo"
)

func vehicleFixture() domain.Vehicle {
	return domain.Vehicle{
		Name:        "Honda Activa",
		Type:        domain.VehicleScooter,
		PricePerDay: 500,
		Deposit:     1000,
		IsActive:    true,
	}
}

func TestVehicleRepo_Create(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	got, err := r.Create(ctx, vehicleFixture())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated")
	assert.Equal(t, "Honda Activa", got.Name)
	assert.Equal(t, domain.VehicleScooter, got.Type)
	assert.EqualValues(t, 500, got.PricePerDay)
	assert.EqualValues(t, 1000, got.Deposit)
	assert.True(t, got.IsActive)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestVehicleRepo_GetByID(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestVehicleRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_List_ActiveOnly(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	_, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	inactive := vehicleFixture()
	inactive.Name = "Retired Bike"
	inactive.IsActive = false
	_, err = r.Create(ctx, inactive)
	require.NoError(t, err)

	active, err := r.List(ctx, true)
	require.NoError(t, err)
	all, err := r.List(ctx, false)
	require.NoError(t, err)

	assert.Len(t, active, 1)
	assert.Len(t, all, 2)
}

func TestVehicleRepo_Update(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	created.Name = "Honda Activa 6G"
	created.PricePerDay = 550
	created.IsActive = false

	got, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Honda Activa 6G", got.Name)
	assert.EqualValues(t, 550, got.PricePerDay)
	assert.False(t, got.IsActive)
}

func TestVehicleRepo_Update_NotFound(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))

	v := vehicleFixture()
	v.ID = uuid.New()

	_, err := r.Update(context.Background(), v)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_Delete(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, vehicleFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewVehicleRepo(newTestTx(t))

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
