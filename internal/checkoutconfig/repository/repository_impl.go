package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/checkoutconfig/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, config *domain.CheckoutConfig) error {
	return db.WithContext(ctx).Create(config).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*domain.CheckoutConfig, error) {
	return r.take(ctx, db, "merchant_id = ? AND id = ?", merchantID, id)
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB, merchantID snowflake.ID) ([]domain.CheckoutConfig, error) {
	var items []domain.CheckoutConfig
	err := db.WithContext(ctx).
		Model(&domain.CheckoutConfig{}).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, config *domain.CheckoutConfig) error {
	if config == nil {
		return gorm.ErrInvalidData
	}
	// Save so the JSON-serialized columns go through the model serializer.
	return db.WithContext(ctx).Save(config).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM checkout_configs WHERE merchant_id = ? AND id = ?`,
		merchantID,
		id,
	).Error
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.CheckoutConfig, error) {
	return r.take(ctx, db, "slug = ?", slug)
}

func (r *repo) FindByDomain(ctx context.Context, db *gorm.DB, customDomain string) (*domain.CheckoutConfig, error) {
	return r.take(ctx, db, "custom_domain = ?", customDomain)
}

func (r *repo) FindPublicByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.CheckoutConfig, error) {
	return r.take(ctx, db, "id = ?", id)
}

func (r *repo) take(ctx context.Context, db *gorm.DB, query string, args ...any) (*domain.CheckoutConfig, error) {
	var c domain.CheckoutConfig
	err := db.WithContext(ctx).
		Model(&domain.CheckoutConfig{}).
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
