// Package handler — booking.go implements the payment endpoints for both
// booking flows plus the admin booking list, which supports content
// negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/nairp/resort-booking/internal/domain"
	"github.com/nairp/resort-booking/internal/service"
)

// createRoomOrderRequest is the body of POST /bookings/create-order.
type createRoomOrderRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Category  string `json:"category"`
	Days      int    `json:"days"`
	StartDate string `json:"startDate"`
}

// createVehicleOrderRequest is the body of POST /vehicle-bookings/create-order.
type createVehicleOrderRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	VehicleID string `json:"vehicleId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// orderResponse is the success envelope for both create-order endpoints.
// Amount is in whole rupees; the checkout script multiplies by 100 itself.
type orderResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// verifyPaymentRequest is the body of both verify-payment endpoints: the
// exact triple the gateway handed the client on success. Any extra booking
// fields clients send alongside are ignored — the server verifies against
// its own order record, never against client-supplied data.
type verifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// bookingResponse is the success envelope wrapping a booking record.
type bookingResponse struct {
	Success bool           `json:"success"`
	Booking domain.Booking `json:"booking"`
}

// CreateRoomOrder handles POST /bookings/create-order.
func (s *Server) CreateRoomOrder(w http.ResponseWriter, r *http.Request) {
	var req createRoomOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body is invalid JSON")
		return
	}

	order, err := s.bookings.CreateRoomOrder(r.Context(), service.CreateRoomOrderInput{
		Customer:  domain.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone},
		Category:  domain.RoomCategory(req.Category),
		Days:      req.Days,
		StartDate: parseDate(req.StartDate),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, orderToResponse(order))
}

// CreateVehicleOrder handles POST /vehicle-bookings/create-order.
func (s *Server) CreateVehicleOrder(w http.ResponseWriter, r *http.Request) {
	var req createVehicleOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body is invalid JSON")
		return
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		requestError(w, "vehicleId is not a valid UUID")
		return
	}

	order, err := s.bookings.CreateVehicleOrder(r.Context(), service.CreateVehicleOrderInput{
		Customer:  domain.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone},
		VehicleID: vehicleID,
		StartDate: parseDate(req.StartDate),
		EndDate:   parseDate(req.EndDate),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, orderToResponse(order))
}

// VerifyPayment handles POST /bookings/verify-payment and
// POST /vehicle-bookings/verify-payment. The two flows share one handler
// because verification is keyed purely by order ID.
func (s *Server) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "request body is invalid JSON")
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		requestError(w, "orderId, paymentId, and signature are required")
		return
	}

	booking, err := s.bookings.VerifyPayment(r.Context(), service.VerifyPaymentInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookingResponse{Success: true, Booking: booking})
}

// bookingListResponse is the success envelope for the admin booking list.
type bookingListResponse struct {
	Success    bool             `json:"success"`
	Data       []domain.Booking `json:"data"`
	Pagination pagination       `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"id", "kind", "customer_name", "customer_email", "customer_phone",
	"category", "vehicle_id", "start_date", "end_date", "days",
	"total_price", "order_id", "payment_id", "status", "created_at",
}

// ListBookings handles GET /bookings (admin).
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20,
// max=100). Use ?format=csv to receive the page as CSV; default is JSON.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	bookings, total, err := s.bookings.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeBookingsCSV(w, bookings)
		return
	}

	writeJSON(w, http.StatusOK, bookingListResponse{
		Success: true,
		Data:    bookings,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// writeBookingsCSV encodes bookings as a CSV attachment.
func writeBookingsCSV(w http.ResponseWriter, bookings []domain.Booking) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, b := range bookings {
		//nolint:errcheck
		cw.Write(bookingToCSVRecord(b))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// bookingToCSVRecord encodes a booking as a flat string slice.
// Nil category/vehicle pointers are encoded as empty strings.
func bookingToCSVRecord(b domain.Booking) []string {
	category := ""
	if b.Category != nil {
		category = string(*b.Category)
	}
	vehicleID := ""
	if b.VehicleID != nil {
		vehicleID = b.VehicleID.String()
	}
	return []string{
		b.ID.String(),
		string(b.Kind),
		b.CustomerName,
		b.CustomerEmail,
		b.CustomerPhone,
		category,
		vehicleID,
		b.StartDate.Format("2006-01-02"),
		b.EndDate.Format("2006-01-02"),
		strconv.Itoa(b.Days),
		strconv.FormatInt(b.TotalPrice, 10),
		b.OrderID,
		b.PaymentID,
		string(b.Status),
		b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// orderToResponse converts a domain.PaymentOrder into the wire envelope.
func orderToResponse(o domain.PaymentOrder) orderResponse {
	return orderResponse{
		Success:  true,
		OrderID:  o.OrderID,
		Amount:   o.Amount,
		Currency: o.Currency,
		KeyID:    o.KeyID,
	}
}

// queryInt parses an optional integer query parameter, returning nil when
// absent or malformed.
func queryInt(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
