package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("merchant_id = ? AND id = ?", merchantID, id).
		Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, filter domain.ListRequest) ([]domain.Product, error) {
	var items []domain.Product
	stmt := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("merchant_id = ?", merchantID)

	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.Active != nil {
		stmt = stmt.Where("active = ?", *filter.Active)
	}

	stmt = stmt.Order(sortClause(filter.SortBy, filter.OrderBy))

	if err := stmt.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).
		Model(&domain.Product{}).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, slug = ?, description = ?, price = ?, currency = ?, type = ?,
		     image_url = ?, thumbnail_url = ?, preview_url = ?, download_url = ?,
		     video_url = ?, content_url = ?, active = ?, subscription_interval = ?,
		     subscription_price = ?, max_subscriptions = ?, external_links = ?,
		     gated_content = ?, updated_at = ?
		 WHERE merchant_id = ? AND id = ?`,
		product.Name,
		product.Slug,
		product.Description,
		product.Price,
		product.Currency,
		product.Type,
		product.ImageURL,
		product.ThumbnailURL,
		product.PreviewURL,
		product.DownloadURL,
		product.VideoURL,
		product.ContentURL,
		product.Active,
		product.SubscriptionInterval,
		product.SubscriptionPrice,
		product.MaxSubscriptions,
		product.ExternalLinks,
		product.GatedContent,
		product.UpdatedAt,
		product.MerchantID,
		product.ID,
	).Error
}

func (r *repo) AddSale(ctx context.Context, db *gorm.DB, id snowflake.ID, amount float64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET total_sales = total_sales + 1, total_revenue = total_revenue + ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		amount,
		id,
	).Error
}

func sortClause(sortBy, orderBy string) string {
	allowed := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
		"price":      true,
	}
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	if orderBy != "asc" {
		orderBy = "desc"
	}
	return sortBy + " " + orderBy
}
