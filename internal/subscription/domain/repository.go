package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, sub *Subscription) error
	FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*Subscription, error)
	FindAll(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) ([]Subscription, error)
	Update(ctx context.Context, db *gorm.DB, sub *Subscription) error
	CountActive(ctx context.Context, db *gorm.DB, productID snowflake.ID) (int64, error)
}
