package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/merchant/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, merchant *domain.Merchant) error {
	return db.WithContext(ctx).Create(merchant).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Merchant, error) {
	var m domain.Merchant
	err := db.WithContext(ctx).
		Model(&domain.Merchant{}).
		Where("id = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) FindByWallet(ctx context.Context, db *gorm.DB, walletAddress string) (*domain.Merchant, error) {
	var m domain.Merchant
	err := db.WithContext(ctx).
		Model(&domain.Merchant{}).
		Where("wallet_address = ?", walletAddress).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, merchant *domain.Merchant) error {
	if merchant == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE merchants
		 SET email = ?, first_name = ?, last_name = ?, business_name = ?, logo_url = ?,
		     website = ?, description = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		merchant.Email,
		merchant.FirstName,
		merchant.LastName,
		merchant.BusinessName,
		merchant.LogoURL,
		merchant.Website,
		merchant.Description,
		merchant.Active,
		merchant.UpdatedAt,
		merchant.ID,
	).Error
}

func (r *repo) AddSale(ctx context.Context, db *gorm.DB, id snowflake.ID, amount float64, newCustomers int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE merchants
		 SET total_revenue = total_revenue + ?, total_customers = total_customers + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		amount,
		newCustomers,
		id,
	).Error
}
