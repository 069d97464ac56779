package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CheckoutType governs which price field the engine reads for every
// product in the checkout.
type CheckoutType string

const (
	CheckoutOneTime      CheckoutType = "one_time"
	CheckoutSubscription CheckoutType = "subscription"
	CheckoutMixed        CheckoutType = "mixed"
)

func (t CheckoutType) Valid() bool {
	switch t {
	case CheckoutOneTime, CheckoutSubscription, CheckoutMixed:
		return true
	default:
		return false
	}
}

// Customizations is the closed presentation-options structure. The
// upstream shape was an open record; fields are enumerated here with
// zero-value defaults.
type Customizations struct {
	ShowProductImages      bool    `json:"show_product_images"`
	ShowProductDescription bool    `json:"show_product_descriptions"`
	AllowQuantitySelection bool    `json:"allow_quantity_selection"`
	ShowMerchantInfo       bool    `json:"show_merchant_info"`
	CustomMessage          *string `json:"custom_message,omitempty"`
	SuccessRedirectURL     *string `json:"success_redirect_url,omitempty"`
	FailureRedirectURL     *string `json:"failure_redirect_url,omitempty"`
}

type CheckoutConfig struct {
	ID             snowflake.ID   `gorm:"primaryKey" json:"id"`
	MerchantID     snowflake.ID   `gorm:"not null;index" json:"merchant_id"`
	Name           string         `gorm:"type:text;not null" json:"name"`
	Description    *string        `gorm:"type:text" json:"description,omitempty"`
	Slug           string         `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	CustomDomain   *string        `gorm:"type:text;uniqueIndex" json:"custom_domain,omitempty"`
	ProductIDs     []string       `gorm:"type:jsonb;serializer:json;column:products" json:"products"`
	CheckoutType   CheckoutType   `gorm:"type:text;not null;default:'one_time'" json:"checkout_type"`
	Customizations Customizations `gorm:"type:jsonb;serializer:json" json:"customizations"`
	Active         bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CheckoutConfig) TableName() string { return "checkout_configs" }
