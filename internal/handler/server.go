// Package handler implements the HTTP handlers for the resort booking API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (pricing.go, booking.go, etc.) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/service"
)

// PricingServicer defines the business operations the pricing handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type PricingServicer interface {
	GetMatrix(ctx context.Context) (domain.PriceMatrix, error)
	BulkUpdate(ctx context.Context, updates []service.PriceUpdate) ([]domain.PricingEntry, error)
}

// VehicleServicer defines the business operations the vehicle handlers depend on.
type VehicleServicer interface {
	Create(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vehicle, error)
	ListPublic(ctx context.Context) ([]domain.Vehicle, error)
	ListAll(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, v domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingServicer defines the business operations the booking handlers depend on.
type BookingServicer interface {
	CreateRoomOrder(ctx context.Context, in service.CreateRoomOrderInput) (domain.PaymentOrder, error)
	CreateVehicleOrder(ctx context.Context, in service.CreateVehicleOrderInput) (domain.PaymentOrder, error)
	VerifyPayment(ctx context.Context, in service.VerifyPaymentInput) (domain.Booking, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)
}

// AuthServicer defines the login operation the auth handler depends on.
type AuthServicer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Server holds all handler dependencies.
type Server struct {
	pricing  PricingServicer
	vehicles VehicleServicer
	bookings BookingServicer
	auth     AuthServicer
	openapi  []byte
}

// NewServer constructs the Server with all its dependencies.
// openapi is the raw spec document served at /openapi.yaml; pass nil to
// disable that route.
func NewServer(pricing PricingServicer, vehicles VehicleServicer, bookings BookingServicer, auth AuthServicer, openapi []byte) *Server {
	return &Server{
		pricing:  pricing,
		vehicles: vehicles,
		bookings: bookings,
		auth:     auth,
		openapi:  openapi,
	}
}

// Routes mounts every endpoint on a fresh chi router. requireAdmin guards
// the admin console routes; pass the middleware built from the auth service.
func (s *Server) Routes(requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.openapi != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	// Public booking flow.
	r.Get("/pricing", s.GetPricing)
	r.Get("/vehicles", s.ListVehicles)
	r.Post("/bookings/create-order", s.CreateRoomOrder)
	r.Post("/bookings/verify-payment", s.VerifyPayment)
	r.Post("/vehicle-bookings/create-order", s.CreateVehicleOrder)
	r.Post("/vehicle-bookings/verify-payment", s.VerifyPayment)

	r.Post("/auth/login", s.Login)

	// Admin console.
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Put("/pricing/bulk", s.BulkUpdatePricing)
		r.Get("/bookings", s.ListBookings)
		r.Get("/vehicles/all", s.ListAllVehicles)
		r.Post("/vehicles", s.CreateVehicle)
		r.Put("/vehicles/{id}", s.UpdateVehicle)
		r.Delete("/vehicles/{id}", s.DeleteVehicle)
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetOpenAPI handles GET /openapi.yaml, serving the embedded API description.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck — nothing useful to do if the write fails.
	w.Write(s.openapi)
}

// parseDate parses a "2006-01-02" request field into a UTC midnight time.
// A native date control can still submit garbage; that becomes a zero time
// and the quote engine rejects it rather than the decoder panicking.
func parseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
