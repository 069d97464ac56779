package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/receipt/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, receipt *domain.Receipt) error {
	return db.WithContext(ctx).Create(receipt).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := db.WithContext(ctx).
		Model(&domain.Receipt{}).
		Where("merchant_id = ? AND id = ?", merchantID, id).
		Take(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, filter domain.ListFilter) ([]domain.Receipt, error) {
	tx := db.WithContext(ctx).
		Model(&domain.Receipt{}).
		Where("merchant_id = ?", merchantID)

	if filter.AfterID != 0 {
		// Keyset: strictly older than the cursor row, id as tiebreaker.
		tx = tx.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.AfterAt, filter.AfterAt, filter.AfterID,
		)
	}

	var items []domain.Receipt
	err := tx.Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SumByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (float64, int64, error) {
	var row struct {
		Total float64
		Count int64
	}
	err := db.WithContext(ctx).
		Model(&domain.Receipt{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("merchant_id = ?", merchantID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Total, row.Count, nil
}

func (r *repo) Recent(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, limit int) ([]domain.Receipt, error) {
	var items []domain.Receipt
	err := db.WithContext(ctx).
		Model(&domain.Receipt{}).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
