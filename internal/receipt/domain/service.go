package domain

import (
	"context"
	"errors"
	"time"

	"github.com/elzapay/elza/pkg/db/pagination"
)

type Service interface {
	// Issue writes a receipt for a settled payment and returns the stored
	// record with its generated receiptId.
	Issue(ctx context.Context, req IssueRequest) (*Response, error)
	List(ctx context.Context, page pagination.Pagination) (*ListResponse, error)
	Get(ctx context.Context, id string) (*Response, error)
}

type IssueRequest struct {
	MerchantID     string
	CustomerID     string
	ProductID      string
	ProductName    string
	Quantity       int
	Amount         float64
	Currency       string
	IsSubscription bool
	SubscriptionID *string
}

type Response struct {
	ID             string    `json:"id"`
	ReceiptID      string    `json:"receipt_id"`
	MerchantID     string    `json:"merchant_id"`
	CustomerID     string    `json:"customer_id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	MetadataURI    *string   `json:"metadata_uri,omitempty"`
	NFTMintAddress *string   `json:"nft_mint_address,omitempty"`
	IsSubscription bool      `json:"is_subscription"`
	SubscriptionID *string   `json:"subscription_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListResponse struct {
	Receipts []Response           `json:"receipts"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

var (
	ErrInvalidMerchant = errors.New("invalid_merchant")
	ErrInvalidRequest  = errors.New("invalid_request")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidCursor   = errors.New("invalid_cursor")
	ErrNotFound        = errors.New("not_found")
)
