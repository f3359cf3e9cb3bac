package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/service"
)

// pricingResponse is the success envelope for GET /pricing.
type pricingResponse struct {
	Success bool               `json:"success"`
	Matrix  domain.PriceMatrix `json:"matrix"`
}

// GetPricing handles GET /pricing.
// Returns the full category × stay-length matrix the booking UI quotes from.
func (s *Server) GetPricing(w http.ResponseWriter, r *http.Request) {
	matrix, err := s.pricing.GetMatrix(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pricingResponse{Success: true, Matrix: matrix})
}

// bulkPricingRequest is the body of PUT /pricing/bulk.
type bulkPricingRequest struct {
	Entries []bulkPricingEntry `json:"entries"`
}

// bulkPricingEntry is one cell edit. Price is kept raw: the admin grid is a
// lenient spreadsheet-style editor and the service coerces whatever was
// typed (number, quoted number, garbage) rather than rejecting the batch.
type bulkPricingEntry struct {
	Category string          `json:"category"`
	Days     int             `json:"days"`
	Price    json.RawMessage `json:"price"`
}

// bulkPricingResponse echoes the entries as written, after coercion.
type bulkPricingResponse struct {
	Success bool                  `json:"success"`
	Entries []domain.PricingEntry `json:"entries"`
}

// BulkUpdatePricing handles PUT /pricing/bulk (admin).
func (s *Server) BulkUpdatePricing(w http.ResponseWriter, r *http.Request) {
	var req bulkPricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body is invalid JSON")
		return
	}

	updates := make([]service.PriceUpdate, 0, len(req.Entries))
	for _, e := range req.Entries {
		updates = append(updates, service.PriceUpdate{
			Category: domain.RoomCategory(e.Category),
			Days:     e.Days,
			RawPrice: strings.Trim(string(e.Price), `"`),
		})
	}

	entries, err := s.pricing.BulkUpdate(r.Context(), updates)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bulkPricingResponse{Success: true, Entries: entries})
}
