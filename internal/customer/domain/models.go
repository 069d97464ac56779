package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Customer is a buyer record scoped to a merchant. A returning buyer is
// matched by email first, then by wallet address.
type Customer struct {
	ID            snowflake.ID `json:"id,string" gorm:"primaryKey"`
	MerchantID    snowflake.ID `json:"merchant_id,string" gorm:"index:idx_customers_merchant"`
	Email         string       `json:"email" gorm:"index:idx_customers_merchant_email"`
	Name          *string      `json:"name,omitempty"`
	WalletAddress *string      `json:"wallet_address,omitempty"`
	TotalSpent    float64      `json:"total_spent"`
	TotalOrders   int64        `json:"total_orders"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
