package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// FindOrCreate returns the existing customer matching the contact's
	// email (or wallet, when the email is unknown) or creates a new one.
	FindOrCreate(ctx context.Context, req FindOrCreateRequest) (*Customer, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	// RecordPurchase bumps totalSpent/totalOrders after a settled payment.
	RecordPurchase(ctx context.Context, id string, amount float64) error
}

type FindOrCreateRequest struct {
	MerchantID    string
	Email         string
	Name          *string
	WalletAddress *string
}

type Response struct {
	ID            string    `json:"id"`
	MerchantID    string    `json:"merchant_id"`
	Email         string    `json:"email"`
	Name          *string   `json:"name,omitempty"`
	WalletAddress *string   `json:"wallet_address,omitempty"`
	TotalSpent    float64   `json:"total_spent"`
	TotalOrders   int64     `json:"total_orders"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var (
	ErrInvalidMerchant = errors.New("invalid_merchant")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
