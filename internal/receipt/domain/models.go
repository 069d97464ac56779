package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Receipt is the durable proof of a settled payment. ReceiptID is the
// externally shared identifier printed on the confirmation page.
type Receipt struct {
	ID             snowflake.ID  `json:"id,string" gorm:"primaryKey"`
	ReceiptID      string        `json:"receipt_id" gorm:"uniqueIndex"`
	MerchantID     snowflake.ID  `json:"merchant_id,string" gorm:"index:idx_receipts_merchant"`
	CustomerID     snowflake.ID  `json:"customer_id,string" gorm:"index:idx_receipts_customer"`
	ProductID      snowflake.ID  `json:"product_id,string"`
	ProductName    string        `json:"product_name"`
	Quantity       int           `json:"quantity"`
	Amount         float64       `json:"amount"`
	Currency       string        `json:"currency"`
	MetadataURI    *string       `json:"metadata_uri,omitempty"`
	NFTMintAddress *string       `json:"nft_mint_address,omitempty" gorm:"column:nft_mint_address"`
	IsSubscription bool          `json:"is_subscription"`
	SubscriptionID *snowflake.ID `json:"subscription_id,string,omitempty"`
	CreatedAt      time.Time     `json:"created_at" gorm:"index:idx_receipts_created"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Receipt) TableName() string {
	return "receipts"
}
