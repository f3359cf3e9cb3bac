package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/service"
)

// ---- GET /pricing ----------------------------------------------------------

func TestGetPricing_200(t *testing.T) {
	matrix := make(domain.PriceMatrix)
	matrix.Set(domain.RoomSingle, 7, 7000)

	h := newTestRouter(deps{pricing: &mockPricingServicer{
		getMatrix: func(_ context.Context) (domain.PriceMatrix, error) { return matrix, nil },
	}})

	rec, body := doJSON(t, h, http.MethodGet, "/pricing", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	wire, ok := body["matrix"].(map[string]any)
	require.True(t, ok)
	single, ok := wire["single"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 7000, single["7"])
}

// ---- PUT /pricing/bulk -----------------------------------------------------

func TestBulkUpdatePricing_200(t *testing.T) {
	var received []service.PriceUpdate
	h := newTestRouter(deps{pricing: &mockPricingServicer{
		bulkUpdate: func(_ context.Context, updates []service.PriceUpdate) ([]domain.PricingEntry, error) {
			received = updates
			return []domain.PricingEntry{{Category: domain.RoomSingle, Days: 7, Price: 7500}}, nil
		},
	}})

	body := jsonBody(t, map[string]any{
		"entries": []map[string]any{
			{"category": "single", "days": 7, "price": 7500},
		},
	})
	rec, resp := doJSON(t, h, http.MethodPut, "/pricing/bulk", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["success"])
	require.Len(t, received, 1)
	assert.Equal(t, "7500", received[0].RawPrice)
}

func TestBulkUpdatePricing_RawStringPricePassedThrough(t *testing.T) {
	// The grid may submit prices as JSON strings, including garbage; the
	// handler strips the quotes and hands the raw text to the service for
	// lenient coercion instead of rejecting the batch.
	var received []service.PriceUpdate
	h := newTestRouter(deps{pricing: &mockPricingServicer{
		bulkUpdate: func(_ context.Context, updates []service.PriceUpdate) ([]domain.PricingEntry, error) {
			received = updates
			return []domain.PricingEntry{{Category: domain.RoomSingle, Days: 7, Price: 0}}, nil
		},
	}})

	body := jsonBody(t, map[string]any{
		"entries": []map[string]any{
			{"category": "single", "days": 7, "price": "abc"},
		},
	})
	rec, _ := doJSON(t, h, http.MethodPut, "/pricing/bulk", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, received, 1)
	assert.Equal(t, "abc", received[0].RawPrice)
}

func TestBulkUpdatePricing_ValidationError_422(t *testing.T) {
	h := newTestRouter(deps{pricing: &mockPricingServicer{
		bulkUpdate: func(_ context.Context, _ []service.PriceUpdate) ([]domain.PricingEntry, error) {
			return nil, domain.ErrValidation
		},
	}})

	body := jsonBody(t, map[string]any{
		"entries": []map[string]any{{"category": "penthouse", "days": 7, "price": 100}},
	})
	rec, resp := doJSON(t, h, http.MethodPut, "/pricing/bulk", body)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "validation_error", errorCode(t, resp))
}

func TestBulkUpdatePricing_MalformedBody_422(t *testing.T) {
	h := newTestRouter(deps{pricing: &mockPricingServicer{}})

	rec, resp := doJSON(t, h, http.MethodPut, "/pricing/bulk", jsonBodyRaw("{not json"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, resp))
}
