package domain

import (
	"context"
	"errors"
)

// Processor settles a checkout payment against the payment rail. The
// simulated adapter stands in for the on-chain settlement program.
type Processor interface {
	Submit(ctx context.Context, req SubmitRequest) (*Result, error)
}

type SubmitRequest struct {
	MerchantID    string
	CheckoutID    string
	Amount        float64
	Currency      string
	PayerWallet   *string
	CustomerEmail string
}

type Result struct {
	Succeeded bool
	// Reference is the settlement reference (transaction signature on the
	// real rail).
	Reference string
}

var ErrUnavailable = errors.New("payment_unavailable")
