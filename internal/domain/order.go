package domain

// PaymentOrder is the gateway order a checkout is opened against.
// It is single-use and tied to exactly one quote snapshot: Amount is fixed
// at creation time by the backend and must match at verification time —
// there is no renegotiation. Clients must hand Amount and Currency straight
// to the gateway rather than recomputing locally, so the server stays the
// sole price authority.
type PaymentOrder struct {
	OrderID string `json:"orderId"`

	// Amount is in whole rupees, matching the quote total. The gateway is
	// invoked with the smallest currency unit (Amount * 100 paise).
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`

	// KeyID is the public gateway key the client checkout script needs.
	KeyID string `json:"keyId"`
}
