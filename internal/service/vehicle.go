package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/repo"
)

// VehicleService implements business logic for the rental fleet.
type VehicleService struct {
	vehicles repo.VehicleRepo
}

// NewVehicleService constructs a VehicleService backed by the provided VehicleRepo.
func NewVehicleService(r repo.VehicleRepo) *VehicleService {
	return &VehicleService{vehicles: r}
}

// Create validates and persists a new vehicle.
func (s *VehicleService) Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return domain.Vehicle{}, err
	}
	result, err := s.vehicles.Create(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single vehicle by ID.
func (s *VehicleService) GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error) {
	result, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.GetByID: %w", err)
	}
	return result, nil
}

// ListPublic returns the active fleet — the only vehicles quotable from the
// public booking flow. Always returns a non-nil slice.
func (s *VehicleService) ListPublic(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.ListPublic: %w", err)
	}
	if vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

// ListAll returns the full fleet including inactive vehicles, for the admin
// console. Always returns a non-nil slice.
func (s *VehicleService) ListAll(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("service.VehicleService.ListAll: %w", err)
	}
	if vehicles == nil {
		return []domain.Vehicle{}, nil
	}
	return vehicles, nil
}

// Update validates and persists changes to an existing vehicle.
func (s *VehicleService) Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error) {
	if err := validateVehicle(v); err != nil {
		return domain.Vehicle{}, err
	}
	result, err := s.vehicles.Update(ctx, v)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("service.VehicleService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a vehicle by ID.
func (s *VehicleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.VehicleService.Delete: %w", err)
	}
	return nil
}

// validateVehicle enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Type must be a known vehicle type.
//   - PricePerDay must be positive; Deposit must not be negative.
func validateVehicle(v domain.Vehicle) error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !v.Type.Valid() {
		return fmt.Errorf("%w: unknown vehicle type %q", domain.ErrValidation, v.Type)
	}
	if v.PricePerDay <= 0 {
		return fmt.Errorf("%w: price per day must be positive", domain.ErrValidation)
	}
	if v.Deposit < 0 {
		return fmt.Errorf("%w: deposit must not be negative", domain.ErrValidation)
	}
	return nil
}
