// Package flow implements the client side of the payment confirmation
// protocol: a small state machine that sequences order creation, the hosted
// gateway checkout, and server-side verification for one booking attempt.
//
// It exists so anything driving a checkout (the web client's backend-for-
// frontend, a front-desk kiosk, an end-to-end test) gets the same
// guarantees: steps run strictly in order, one attempt in flight at a time,
// the checkout completion fires at most once, and a dismissed checkout never
// reaches verification.
package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nairp/resort-booking/internal/domain"
)

// State is the position of a booking attempt in the protocol.
type State string

const (
	StateIdle            State = "idle"
	StateOrderCreating   State = "order_creating"
	StateAwaitingGateway State = "awaiting_gateway"
	StateVerifying       State = "verifying"
	StateConfirmed       State = "confirmed"
	StateFailed          State = "failed"
)

// ErrAttemptInFlight is returned by Run when an attempt is already past
// Idle. Callers must wait for the attempt to resolve (and Reset after a
// failure) before starting another — this is what keeps repeated submits
// from creating duplicate orders.
var ErrAttemptInFlight = errors.New("booking attempt already in flight")

// CheckoutOptions is everything the hosted checkout needs to open.
// Amount is in the smallest currency unit (the order's rupee total × 100),
// because that is what the gateway script expects.
type CheckoutOptions struct {
	OrderID  string
	Amount   int64
	Currency string
	KeyID    string
	Prefill  domain.Customer
}

// CheckoutResult is the outcome of one checkout interaction. On success
// PaymentID and Signature are set; otherwise Err carries the reason —
// domain.ErrPaymentCancelled for a dismissal, domain.ErrGatewayFailed for a
// declined payment.
type CheckoutResult struct {
	PaymentID string
	Signature string
	Err       error
}

// Checkout abstracts the gateway's hosted payment UI. Open presents the
// checkout and arranges for done to be called exactly once with the
// outcome; implementations may call done from any goroutine. A non-nil
// return from Open itself means the checkout could not even be presented.
type Checkout interface {
	Open(ctx context.Context, opts CheckoutOptions, done func(CheckoutResult)) error
}

// Verifier abstracts the backend verification call (step 3 of the protocol).
type Verifier interface {
	VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (domain.Booking, error)
}

// OrderFunc creates the gateway order for this attempt (step 1). It is a
// closure so the same Flow works for room and vehicle bookings alike.
type OrderFunc func(ctx context.Context) (domain.PaymentOrder, error)

// Flow runs one booking attempt at a time through the protocol states.
type Flow struct {
	checkout Checkout
	verifier Verifier

	mu    sync.Mutex
	state State
}

// New constructs an idle Flow.
func New(checkout Checkout, verifier Verifier) *Flow {
	return &Flow{checkout: checkout, verifier: verifier, state: StateIdle}
}

// State returns the current protocol state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Reset returns a failed attempt to Idle so the user can retry. Retries are
// never automatic; each one is a fresh Run.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateFailed && f.state != StateIdle {
		return fmt.Errorf("flow.Flow.Reset: cannot reset from state %q", f.state)
	}
	f.state = StateIdle
	return nil
}

// Run executes one full booking attempt: create the order, open the
// checkout, verify the payment. It blocks until the attempt resolves and
// returns the confirmed booking or the first error encountered.
//
// Failure at any step moves the flow to Failed and returns; no step is
// retried and a verify call is never made for a checkout that did not
// succeed. Cancelling ctx abandons the attempt; an order created before the
// cancellation is left pending for the server-side sweeper to reap.
func (f *Flow) Run(ctx context.Context, createOrder OrderFunc, customer domain.Customer) (domain.Booking, error) {
	if err := f.transition(StateIdle, StateOrderCreating); err != nil {
		return domain.Booking{}, err
	}

	order, err := createOrder(ctx)
	if err != nil {
		f.fail()
		return domain.Booking{}, fmt.Errorf("flow.Flow.Run: create order: %w", err)
	}

	f.set(StateAwaitingGateway)

	result := f.openCheckout(ctx, order, customer)
	if result.Err != nil {
		f.fail()
		return domain.Booking{}, fmt.Errorf("flow.Flow.Run: checkout: %w", result.Err)
	}

	f.set(StateVerifying)

	booking, err := f.verifier.VerifyPayment(ctx, order.OrderID, result.PaymentID, result.Signature)
	if err != nil {
		f.fail()
		return domain.Booking{}, fmt.Errorf("flow.Flow.Run: %w", err)
	}

	f.set(StateConfirmed)
	return booking, nil
}

// openCheckout presents the checkout and waits for its single completion or
// for ctx to end. The done callback is guarded by a sync.Once: the gateway
// contract says completion fires at most once per attempt, and any late
// duplicate is ignored here rather than corrupting the state machine.
func (f *Flow) openCheckout(ctx context.Context, order domain.PaymentOrder, customer domain.Customer) CheckoutResult {
	opts := CheckoutOptions{
		OrderID:  order.OrderID,
		Amount:   order.Amount * 100,
		Currency: order.Currency,
		KeyID:    order.KeyID,
		Prefill:  customer,
	}

	ch := make(chan CheckoutResult, 1)
	var once sync.Once
	done := func(r CheckoutResult) {
		once.Do(func() { ch <- r })
	}

	if err := f.checkout.Open(ctx, opts, done); err != nil {
		return CheckoutResult{Err: err}
	}

	select {
	case <-ctx.Done():
		return CheckoutResult{Err: ctx.Err()}
	case r := <-ch:
		return r
	}
}

// transition moves from exactly one state to another, rejecting a Run that
// starts while an attempt is already in flight.
func (f *Flow) transition(from, to State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != from {
		return fmt.Errorf("%w: state is %q", ErrAttemptInFlight, f.state)
	}
	f.state = to
	return nil
}

func (f *Flow) set(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func (f *Flow) fail() {
	f.set(StateFailed)
}
