// Package gateway abstracts the payment gateway behind a small port so the
// booking service and the checkout flow can be tested with a fake.
// The production implementation wraps the Razorpay client SDK.
package gateway

import "context"

// Order is a gateway-side payment order. Amount is in the smallest currency
// unit (paise for INR), matching what the gateway API speaks.
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway is the outbound payment-gateway port.
type Gateway interface {
	// CreateOrder creates a single-use order for the given amount.
	// amount is in the smallest currency unit. receipt is an opaque
	// merchant reference echoed back by the gateway.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error)

	// VerifySignature reports whether signature is a valid gateway
	// signature over (orderID, paymentID).
	VerifySignature(orderID, paymentID, signature string) bool

	// KeyID returns the public key identifier clients need to open the
	// hosted checkout.
	KeyID() string
}
