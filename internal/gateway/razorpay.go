package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// Razorpay implements Gateway on top of the official Razorpay client.
type Razorpay struct {
	client *razorpay.Client
	keyID  string
	secret string
}

// NewRazorpay constructs a Razorpay gateway for the given API credentials.
func NewRazorpay(keyID, secret string) *Razorpay {
	return &Razorpay{
		client: razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
	}
}

// CreateOrder creates a gateway order for amount (smallest currency unit).
// The SDK does not take a context, so the call is raced against ctx; a
// deadline or cancellation returns ctx.Err() and the in-flight HTTP request
// is left to finish in the background.
func (g *Razorpay) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error) {
	type result struct {
		body map[string]interface{}
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		body, err := g.client.Order.Create(map[string]interface{}{
			"amount":   amount,
			"currency": currency,
			"receipt":  receipt,
		}, nil)
		ch <- result{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return Order{}, fmt.Errorf("gateway.Razorpay.CreateOrder: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return Order{}, fmt.Errorf("gateway.Razorpay.CreateOrder: %w", r.err)
		}
		id, ok := r.body["id"].(string)
		if !ok || id == "" {
			return Order{}, fmt.Errorf("gateway.Razorpay.CreateOrder: response missing order id")
		}
		return Order{ID: id, Amount: amount, Currency: currency}, nil
	}
}

// VerifySignature checks the HMAC the gateway computed over "orderID|paymentID".
func (g *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	return utils.VerifyPaymentSignature(map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}, signature, g.secret)
}

// KeyID returns the public API key for client checkout initialization.
func (g *Razorpay) KeyID() string {
	return g.keyID
}

// compile-time check: Razorpay must satisfy Gateway.
var _ Gateway = (*Razorpay)(nil)
