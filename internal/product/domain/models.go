package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ProductType categorizes the sellable content.
type ProductType string

const (
	TypeDigitalProduct ProductType = "digital_product"
	TypeCourse         ProductType = "course"
	TypeEbook          ProductType = "ebook"
	TypeMembership     ProductType = "membership"
	TypeBundle         ProductType = "bundle"
	TypeService        ProductType = "service"
	TypeSubscription   ProductType = "subscription"
)

func (t ProductType) Valid() bool {
	switch t {
	case TypeDigitalProduct, TypeCourse, TypeEbook, TypeMembership,
		TypeBundle, TypeService, TypeSubscription:
		return true
	default:
		return false
	}
}

type Product struct {
	ID                   snowflake.ID   `gorm:"primaryKey" json:"id"`
	MerchantID           snowflake.ID   `gorm:"not null;index" json:"merchant_id"`
	Name                 string         `gorm:"type:text;not null" json:"name"`
	Slug                 *string        `gorm:"type:text" json:"slug,omitempty"`
	Description          *string        `gorm:"type:text" json:"description,omitempty"`
	Price                float64        `gorm:"not null" json:"price"`
	Currency             string         `gorm:"type:text;not null" json:"currency"`
	Type                 ProductType    `gorm:"type:text;not null;default:'digital_product'" json:"type"`
	ImageURL             *string        `gorm:"type:text" json:"image_url,omitempty"`
	ThumbnailURL         *string        `gorm:"type:text" json:"thumbnail_url,omitempty"`
	PreviewURL           *string        `gorm:"type:text" json:"preview_url,omitempty"`
	DownloadURL          *string        `gorm:"type:text" json:"download_url,omitempty"`
	VideoURL             *string        `gorm:"type:text" json:"video_url,omitempty"`
	ContentURL           *string        `gorm:"type:text" json:"content_url,omitempty"`
	Active               bool           `gorm:"not null;default:true" json:"is_active"`
	TotalSales           int64          `gorm:"not null;default:0" json:"total_sales"`
	TotalRevenue         float64        `gorm:"not null;default:0" json:"total_revenue"`
	SubscriptionInterval *string        `gorm:"type:text" json:"subscription_interval,omitempty"`
	SubscriptionPrice    *float64       `gorm:"" json:"subscription_price,omitempty"`
	MaxSubscriptions     *int64         `gorm:"" json:"max_subscriptions,omitempty"`
	ExternalLinks        datatypes.JSON `gorm:"type:jsonb" json:"external_links,omitempty"`
	GatedContent         datatypes.JSON `gorm:"type:jsonb" json:"gated_content,omitempty"`
	CreatedAt            time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
