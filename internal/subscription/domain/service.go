package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// Start opens a subscription after a settled first payment. The next
	// payment falls one interval after now.
	Start(ctx context.Context, req StartRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Pause(ctx context.Context, id string) (*Response, error)
	Resume(ctx context.Context, id string) (*Response, error)
	Cancel(ctx context.Context, id string) (*Response, error)
}

type StartRequest struct {
	MerchantID      string
	CustomerID      string
	ProductID       string
	PlanID          string
	Amount          float64
	Currency        string
	IntervalSeconds int64
	MaxPayments     *int64
}

type Response struct {
	ID              string     `json:"id"`
	MerchantID      string     `json:"merchant_id"`
	CustomerID      string     `json:"customer_id"`
	ProductID       string     `json:"product_id"`
	PlanID          string     `json:"plan_id"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	IntervalSeconds int64      `json:"interval_seconds"`
	NextPaymentDue  time.Time  `json:"next_payment_due"`
	TotalPayments   int64      `json:"total_payments"`
	MaxPayments     *int64     `json:"max_payments,omitempty"`
	IsActive        bool       `json:"is_active"`
	IsPaused        bool       `json:"is_paused"`
	LastPaymentAt   *time.Time `json:"last_payment_at,omitempty"`
	PausedAt        *time.Time `json:"paused_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

var (
	ErrInvalidMerchant = errors.New("invalid_merchant")
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
	ErrNotActive       = errors.New("not_active")
	ErrNotPaused       = errors.New("not_paused")
	ErrAlreadyPaused   = errors.New("already_paused")
)
