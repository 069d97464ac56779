package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter drives keyset pagination over a merchant's receipts ordered
// newest first. After, when set, resumes past the given cursor row.
type ListFilter struct {
	Limit   int
	AfterID snowflake.ID
	AfterAt time.Time
}

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, receipt *Receipt) error
	FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*Receipt, error)
	List(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, filter ListFilter) ([]Receipt, error)
	SumByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (total float64, count int64, err error)
	Recent(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, limit int) ([]Receipt, error)
}
