package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Subscription is a recurring purchase of a subscription-typed product.
// Billing intervals are stored in seconds, matching the on-chain plan
// representation.
type Subscription struct {
	ID              snowflake.ID `json:"id,string" gorm:"primaryKey"`
	MerchantID      snowflake.ID `json:"merchant_id,string" gorm:"index:idx_subscriptions_merchant"`
	CustomerID      snowflake.ID `json:"customer_id,string" gorm:"index:idx_subscriptions_customer"`
	ProductID       snowflake.ID `json:"product_id,string"`
	PlanID          string       `json:"plan_id"`
	Amount          float64      `json:"amount"`
	Currency        string       `json:"currency"`
	IntervalSeconds int64        `json:"interval_seconds"`
	NextPaymentDue  time.Time    `json:"next_payment_due"`
	TotalPayments   int64        `json:"total_payments"`
	MaxPayments     *int64       `json:"max_payments,omitempty"`
	IsActive        bool         `json:"is_active"`
	IsPaused        bool         `json:"is_paused"`
	LastPaymentAt   *time.Time   `json:"last_payment_at,omitempty"`
	PausedAt        *time.Time   `json:"paused_at,omitempty"`
	CancelledAt     *time.Time   `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
