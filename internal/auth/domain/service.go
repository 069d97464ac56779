package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Connect signs a wallet in, creating the merchant account on first
	// sight. Concurrent connects for the same wallet share one flight.
	Connect(ctx context.Context, walletAddress string) (*Session, error)
	// Authenticate verifies a bearer token and returns the merchant it
	// was issued to.
	Authenticate(ctx context.Context, token string) (snowflake.ID, error)
}

// Session is the response to a successful wallet connect.
type Session struct {
	Token         string  `json:"token"`
	MerchantID    string  `json:"merchant_id"`
	WalletAddress string  `json:"wallet_address"`
	Email         *string `json:"email,omitempty"`
	IsOnboarded   bool    `json:"is_onboarded"`
}

var (
	ErrInvalidWallet = errors.New("invalid_wallet")
	ErrInvalidToken  = errors.New("invalid_token")
)
