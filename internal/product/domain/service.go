package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Archive(ctx context.Context, id string) (*Response, error)
}

type ListRequest struct {
	Name    string
	Active  *bool
	SortBy  string
	OrderBy string
}

type CreateRequest struct {
	Name                 string         `json:"name"`
	Slug                 *string        `json:"slug"`
	Description          *string        `json:"description"`
	Type                 string         `json:"type"`
	Price                float64        `json:"price"`
	Currency             string         `json:"currency"`
	ImageURL             *string        `json:"image_url"`
	ThumbnailURL         *string        `json:"thumbnail_url"`
	PreviewURL           *string        `json:"preview_url"`
	DownloadURL          *string        `json:"download_url"`
	VideoURL             *string        `json:"video_url"`
	ContentURL           *string        `json:"content_url"`
	Active               *bool          `json:"is_active"`
	SubscriptionInterval *string        `json:"subscription_interval"`
	SubscriptionPrice    *float64       `json:"subscription_price"`
	MaxSubscriptions     *int64         `json:"max_subscriptions"`
	ExternalLinks        []ExternalLink `json:"external_links"`
	GatedContent         []GatedItem    `json:"gated_content"`
}

type UpdateRequest struct {
	ID                   string         `json:"-"`
	Name                 *string        `json:"name"`
	Slug                 *string        `json:"slug"`
	Description          *string        `json:"description"`
	Type                 *string        `json:"type"`
	Price                *float64       `json:"price"`
	Currency             *string        `json:"currency"`
	ImageURL             *string        `json:"image_url"`
	ThumbnailURL         *string        `json:"thumbnail_url"`
	Active               *bool          `json:"is_active"`
	SubscriptionInterval *string        `json:"subscription_interval"`
	SubscriptionPrice    *float64       `json:"subscription_price"`
	MaxSubscriptions     *int64         `json:"max_subscriptions"`
	ExternalLinks        []ExternalLink `json:"external_links"`
	GatedContent         []GatedItem    `json:"gated_content"`
}

// ExternalLink is a merchant-curated link or text blurb shown alongside a
// product.
type ExternalLink struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"` // link | text
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
}

// GatedItem is content delivered only after purchase.
type GatedItem struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"` // file | text | video | link
	Content     string         `json:"content"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type Response struct {
	ID                   string         `json:"id"`
	MerchantID           string         `json:"merchant_id"`
	Name                 string         `json:"name"`
	Slug                 *string        `json:"slug,omitempty"`
	Description          *string        `json:"description,omitempty"`
	Price                float64        `json:"price"`
	Currency             string         `json:"currency"`
	Type                 ProductType    `json:"type"`
	ImageURL             *string        `json:"image_url,omitempty"`
	ThumbnailURL         *string        `json:"thumbnail_url,omitempty"`
	PreviewURL           *string        `json:"preview_url,omitempty"`
	DownloadURL          *string        `json:"download_url,omitempty"`
	VideoURL             *string        `json:"video_url,omitempty"`
	ContentURL           *string        `json:"content_url,omitempty"`
	Active               bool           `json:"is_active"`
	TotalSales           int64          `json:"total_sales"`
	TotalRevenue         float64        `json:"total_revenue"`
	SubscriptionInterval *string        `json:"subscription_interval,omitempty"`
	SubscriptionPrice    *float64       `json:"subscription_price,omitempty"`
	MaxSubscriptions     *int64         `json:"max_subscriptions,omitempty"`
	ExternalLinks        []ExternalLink `json:"external_links,omitempty"`
	GatedContent         []GatedItem    `json:"gated_content,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

var (
	ErrInvalidMerchant     = errors.New("invalid_merchant")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidType         = errors.New("invalid_type")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidCurrency     = errors.New("invalid_currency")
	ErrInvalidSubscription = errors.New("invalid_subscription")
	ErrNotFound            = errors.New("not_found")
	ErrInvalidID           = errors.New("invalid_id")
)
