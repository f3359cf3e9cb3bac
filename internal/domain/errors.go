package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, unknown room category).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidQuote is returned by the quote engine when a selection cannot
// produce a bookable quote: bad date range, inactive vehicle, or a pricing
// matrix entry that resolves to zero. Recoverable by re-selecting.
var ErrInvalidQuote = errors.New("invalid quote")

// ErrOrderCreation is returned when the payment gateway rejects or fails
// order creation. No partial state is retained; the caller may retry.
var ErrOrderCreation = errors.New("order creation failed")

// ErrPaymentCancelled is returned when the customer dismisses the gateway
// checkout without completing payment. Recoverable by retry.
var ErrPaymentCancelled = errors.New("payment cancelled")

// ErrGatewayFailed is returned when the gateway reports a failed payment
// attempt. Recoverable by retry.
var ErrGatewayFailed = errors.New("payment gateway failed")

// ErrVerificationFailed is returned when the server rejects a completed
// payment (signature mismatch, unknown order, amount drift). Terminal for
// the attempt: money may have been captured without a confirmed booking,
// which is inherent to the two-phase design — surface it loudly.
var ErrVerificationFailed = errors.New("payment verification failed")

// ErrUnauthorized is returned on failed login or a missing/invalid admin
// session token. Handlers map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// wrapValidation wraps ErrValidation with a human-readable detail message.
func wrapValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
