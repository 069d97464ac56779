package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Merchant is the owning tenant. The wallet address is the unique
// authentication key; revenue/customer totals are informational counters,
// not transactional aggregates.
type Merchant struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	WalletAddress  string       `gorm:"type:text;not null;uniqueIndex" json:"wallet_address"`
	Email          *string      `gorm:"type:text" json:"email,omitempty"`
	FirstName      *string      `gorm:"type:text" json:"first_name,omitempty"`
	LastName       *string      `gorm:"type:text" json:"last_name,omitempty"`
	BusinessName   string       `gorm:"type:text;not null;default:''" json:"business_name"`
	LogoURL        *string      `gorm:"type:text" json:"logo_url,omitempty"`
	Website        *string      `gorm:"type:text" json:"website,omitempty"`
	Description    string       `gorm:"type:text;not null;default:''" json:"description"`
	Active         bool         `gorm:"not null;default:true" json:"is_active"`
	TotalRevenue   float64      `gorm:"not null;default:0" json:"total_revenue"`
	TotalCustomers int64        `gorm:"not null;default:0" json:"total_customers"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Merchant) TableName() string { return "merchants" }
