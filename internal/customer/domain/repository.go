package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*Customer, error)
	FindByEmail(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, email string) (*Customer, error)
	FindByWallet(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, wallet string) (*Customer, error)
	FindAll(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) ([]Customer, error)
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	// AddPurchase increments the spend counters after a settled payment.
	AddPurchase(ctx context.Context, db *gorm.DB, id snowflake.ID, amount float64) error
	CountByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (int64, error)
}
