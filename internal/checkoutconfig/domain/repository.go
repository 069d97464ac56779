package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, config *CheckoutConfig) error
	FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*CheckoutConfig, error)
	FindAll(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) ([]CheckoutConfig, error)
	Update(ctx context.Context, db *gorm.DB, config *CheckoutConfig) error
	Delete(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) error

	// Slug/domain lookups are global: both namespaces are unique across
	// all merchants.
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*CheckoutConfig, error)
	FindByDomain(ctx context.Context, db *gorm.DB, domain string) (*CheckoutConfig, error)
	// FindPublicByID ignores merchant scoping; used by the unauthenticated
	// checkout path.
	FindPublicByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*CheckoutConfig, error)
}
