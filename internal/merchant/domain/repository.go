package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, merchant *Merchant) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Merchant, error)
	FindByWallet(ctx context.Context, db *gorm.DB, walletAddress string) (*Merchant, error)
	Update(ctx context.Context, db *gorm.DB, merchant *Merchant) error
	AddSale(ctx context.Context, db *gorm.DB, id snowflake.ID, amount float64, newCustomers int64) error
}
