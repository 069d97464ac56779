package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	SlugAvailable(ctx context.Context, slug, excludeID string) (bool, error)

	// Public resolves a checkout for the unauthenticated surface by
	// exactly one of id, slug or custom domain. Inactive configurations
	// are reported as ErrNotFound, indistinguishable from absent ones.
	Public(ctx context.Context, key PublicKey) (*PublicConfig, error)
}

// PublicKey carries exactly one lookup key.
type PublicKey struct {
	ID     string
	Slug   string
	Domain string
}

type CreateRequest struct {
	Name           string         `json:"name"`
	Description    *string        `json:"description"`
	Slug           *string        `json:"slug"`
	CustomDomain   *string        `json:"custom_domain"`
	Products       []string       `json:"products"`
	CheckoutType   string         `json:"checkout_type"`
	Customizations Customizations `json:"customizations"`
	Active         *bool          `json:"is_active"`
}

type UpdateRequest struct {
	ID             string          `json:"-"`
	Name           *string         `json:"name"`
	Description    *string         `json:"description"`
	Slug           *string         `json:"slug"`
	CustomDomain   *string         `json:"custom_domain"`
	Products       []string        `json:"products"`
	CheckoutType   *string         `json:"checkout_type"`
	Customizations *Customizations `json:"customizations"`
	Active         *bool           `json:"is_active"`
}

type Response struct {
	ID             string         `json:"id"`
	MerchantID     string         `json:"merchant_id"`
	Name           string         `json:"name"`
	Description    *string        `json:"description,omitempty"`
	Slug           string         `json:"slug"`
	CustomDomain   *string        `json:"custom_domain,omitempty"`
	Products       []string       `json:"products"`
	CheckoutType   CheckoutType   `json:"checkout_type"`
	Customizations Customizations `json:"customizations"`
	Active         bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// PublicConfig is the unauthenticated view: the configuration plus the
// merchant display block the checkout page renders.
type PublicConfig struct {
	Response
	Merchant PublicMerchant `json:"merchant"`
}

type PublicMerchant struct {
	ID           string  `json:"id"`
	BusinessName string  `json:"business_name"`
	Email        *string `json:"email,omitempty"`
	LogoURL      *string `json:"logo_url,omitempty"`
}

var (
	ErrInvalidMerchant = errors.New("invalid_merchant")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidType     = errors.New("invalid_type")
	ErrInvalidSlug     = errors.New("invalid_slug")
	ErrSlugTaken       = errors.New("slug_taken")
	ErrInvalidDomain   = errors.New("invalid_domain")
	ErrDomainTaken     = errors.New("domain_taken")
	ErrInvalidKey      = errors.New("invalid_key")
	ErrNotFound        = errors.New("not_found")
	ErrInvalidID       = errors.New("invalid_id")
)
