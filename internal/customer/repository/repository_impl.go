package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*domain.Customer, error) {
	return r.take(ctx, db, "merchant_id = ? AND id = ?", merchantID, id)
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, email string) (*domain.Customer, error) {
	return r.take(ctx, db, "merchant_id = ? AND email = ?", merchantID, email)
}

func (r *repo) FindByWallet(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, wallet string) (*domain.Customer, error) {
	return r.take(ctx, db, "merchant_id = ? AND wallet_address = ?", merchantID, wallet)
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) ([]domain.Customer, error) {
	var items []domain.Customer
	err := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	if customer == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Save(customer).Error
}

func (r *repo) AddPurchase(ctx context.Context, db *gorm.DB, id snowflake.ID, amount float64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE customers
		 SET total_spent = total_spent + ?,
		     total_orders = total_orders + 1,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		amount,
		id,
	).Error
}

func (r *repo) CountByMerchant(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("merchant_id = ?", merchantID).
		Count(&count).Error
	return count, err
}

func (r *repo) take(ctx context.Context, db *gorm.DB, query string, args ...any) (*domain.Customer, error) {
	var c domain.Customer
	err := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where(query, args...).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
