package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// FindOrCreateByWallet returns the merchant owning walletAddress,
	// creating an empty profile on first sight.
	FindOrCreateByWallet(ctx context.Context, walletAddress string) (*Merchant, error)
	GetProfile(ctx context.Context, id snowflake.ID) (*Profile, error)
	UpdateProfile(ctx context.Context, id snowflake.ID, req UpdateProfileRequest) (*Profile, error)
	// RecordSale bumps the merchant's informational revenue/customer
	// counters after a successful payment.
	RecordSale(ctx context.Context, id snowflake.ID, amount float64, newCustomer bool) error
}

type UpdateProfileRequest struct {
	Email        *string `json:"email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	BusinessName *string `json:"business_name"`
	LogoURL      *string `json:"logo_url"`
	Website      *string `json:"website"`
	Description  *string `json:"description"`
}

// Profile is the merchant-facing view of the account. Onboarded means
// email and both name fields are filled in.
type Profile struct {
	ID            string          `json:"id"`
	WalletAddress string          `json:"wallet_address"`
	Email         *string         `json:"email,omitempty"`
	FirstName     *string         `json:"first_name,omitempty"`
	LastName      *string         `json:"last_name,omitempty"`
	IsOnboarded   bool            `json:"is_onboarded"`
	Merchant      ProfileBusiness `json:"merchant"`
}

type ProfileBusiness struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	Description  string `json:"description"`
}

var (
	ErrInvalidWallet = errors.New("invalid_wallet")
	ErrNotFound      = errors.New("not_found")
)
