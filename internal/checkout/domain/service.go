package domain

import (
	"context"
	"errors"

	"github.com/elzapay/elza/internal/checkout/pricing"
	"github.com/elzapay/elza/internal/checkout/session"
	configdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
)

// Service is the checkout engine: resolution, pricing and the payment
// submission gate.
type Service interface {
	// Resolve maps a public lookup key to the checkout configuration plus
	// its purchasable product list and a default-quantity quote.
	Resolve(ctx context.Context, key configdomain.PublicKey) (*ResolvedCheckout, error)
	// Quote reprices a resolved checkout with buyer-chosen quantities.
	Quote(ctx context.Context, checkoutID string, quantities map[string]int) (*pricing.Quote, error)
	// Submit validates the contact form, prices the cart and runs the
	// payment. A settled payment issues receipts, updates counters and
	// opens subscriptions for subscription checkouts.
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
}

// ResolvedCheckout is the public checkout page payload.
type ResolvedCheckout struct {
	Config   configdomain.PublicConfig `json:"config"`
	Products []PublicProduct           `json:"products"`
	Quote    pricing.Quote             `json:"quote"`
}

// PublicProduct is the buyer-visible product view; gated content and
// sales counters never leave the admin surface.
type PublicProduct struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          *string  `json:"description,omitempty"`
	Price                float64  `json:"price"`
	Currency             string   `json:"currency"`
	Type                 string   `json:"type"`
	ImageURL             *string  `json:"image_url,omitempty"`
	ThumbnailURL         *string  `json:"thumbnail_url,omitempty"`
	PreviewURL           *string  `json:"preview_url,omitempty"`
	SubscriptionInterval *string  `json:"subscription_interval,omitempty"`
	SubscriptionPrice    *float64 `json:"subscription_price,omitempty"`
}

type SubmitRequest struct {
	CheckoutID    string          `json:"-"`
	Contact       session.Contact `json:"contact"`
	WalletAddress *string         `json:"wallet_address"`
	Quantities    map[string]int  `json:"quantities"`
}

type SubmitResult struct {
	State       session.State  `json:"state"`
	ReceiptIDs  []string       `json:"receipt_ids"`
	Total       float64        `json:"total"`
	Display     string         `json:"display_total"`
	Currency    string         `json:"currency"`
	RedirectURL *string        `json:"redirect_url,omitempty"`
	Reference   string         `json:"reference,omitempty"`
	Quote       *pricing.Quote `json:"quote,omitempty"`
}

// ValidationError carries the per-field messages from the contact gate.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation_failed"
}

var (
	ErrNotFound      = errors.New("not_found")
	ErrEmptyCheckout = errors.New("empty_checkout")
	ErrPaymentFailed = errors.New("payment_failed")
	ErrInvalidID     = errors.New("invalid_id")
	// ErrUpstream marks a config or catalog read that failed for reasons
	// other than the record being absent.
	ErrUpstream = errors.New("upstream_unavailable")
)
