package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*Product, error)
	List(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, filter ListRequest) ([]Product, error)
	// FindAll returns the full catalog with no merchant or activity
	// filtering; the public checkout engine filters client-side.
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	AddSale(ctx context.Context, db *gorm.DB, id snowflake.ID, amount float64) error
}
