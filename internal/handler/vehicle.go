package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nairp/resort-booking/internal/domain"
)

// vehicleListResponse is the success envelope for vehicle listings.
type vehicleListResponse struct {
	Success  bool             `json:"success"`
	Vehicles []domain.Vehicle `json:"vehicles"`
}

// vehicleResponse is the success envelope wrapping one vehicle.
type vehicleResponse struct {
	Success bool           `json:"success"`
	Vehicle domain.Vehicle `json:"vehicle"`
}

// vehicleRequest is the body of POST /vehicles and PUT /vehicles/{id}.
type vehicleRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	PricePerDay int64  `json:"price_per_day"`
	Deposit     int64  `json:"deposit"`
	IsActive    *bool  `json:"is_active"`
}

// ListVehicles handles GET /vehicles.
// Only active vehicles are returned; this is the public rental catalogue.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.ListPublic(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleListResponse{Success: true, Vehicles: vehicles})
}

// ListAllVehicles handles GET /vehicles/all (admin), including inactive fleet.
func (s *Server) ListAllVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleListResponse{Success: true, Vehicles: vehicles})
}

// CreateVehicle handles POST /vehicles (admin).
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := decodeVehicle(w, r, uuid.Nil)
	if !ok {
		return
	}

	created, err := s.vehicles.Create(r.Context(), vehicle)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, vehicleResponse{Success: true, Vehicle: created})
}

// UpdateVehicle handles PUT /vehicles/{id} (admin).
func (s *Server) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		requestError(w, "id is not a valid UUID")
		return
	}

	vehicle, ok := decodeVehicle(w, r, id)
	if !ok {
		return
	}

	updated, err := s.vehicles.Update(r.Context(), vehicle)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vehicleResponse{Success: true, Vehicle: updated})
}

// DeleteVehicle handles DELETE /vehicles/{id} (admin).
func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		requestError(w, "id is not a valid UUID")
		return
	}

	if err := s.vehicles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeVehicle decodes and maps a vehicle request body, writing the error
// response itself when the body is unusable. New vehicles default to active
// when is_active is omitted.
func decodeVehicle(w http.ResponseWriter, r *http.Request, id uuid.UUID) (domain.Vehicle, bool) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body is invalid JSON")
		return domain.Vehicle{}, false
	}

	v := domain.Vehicle{
		ID:          id,
		Name:        req.Name,
		Type:        domain.VehicleType(req.Type),
		PricePerDay: req.PricePerDay,
		Deposit:     req.Deposit,
		IsActive:    true,
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	return v, true
}
