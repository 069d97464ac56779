package domain

import (
	"context"
	"errors"
	"time"
)

// Service aggregates the merchant's sales data into the dashboard views.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
	Products(ctx context.Context) ([]ProductStats, error)
	Transactions(ctx context.Context, limit int) ([]Transaction, error)
}

type Stats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalSales     int64   `json:"total_sales"`
	TotalCustomers int64   `json:"total_customers"`
	TotalProducts  int64   `json:"total_products"`
}

type ProductStats struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Active       bool    `json:"is_active"`
	TotalSales   int64   `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
}

type Transaction struct {
	ReceiptID      string    `json:"receipt_id"`
	ProductName    string    `json:"product_name"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	IsSubscription bool      `json:"is_subscription"`
	CreatedAt      time.Time `json:"created_at"`
}

var ErrInvalidMerchant = errors.New("invalid_merchant")
