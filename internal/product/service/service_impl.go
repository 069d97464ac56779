package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/merchantctx"
	"github.com/elzapay/elza/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	productType := domain.ProductType(strings.TrimSpace(req.Type))
	if !productType.Valid() {
		return nil, domain.ErrInvalidType
	}

	if req.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		return nil, domain.ErrInvalidCurrency
	}

	// Subscription products must declare pricing and cadence. This is an
	// input-time check only; stored rows are not revalidated.
	if productType == domain.TypeSubscription {
		if req.SubscriptionPrice == nil || *req.SubscriptionPrice < 0 ||
			req.SubscriptionInterval == nil || strings.TrimSpace(*req.SubscriptionInterval) == "" {
			return nil, domain.ErrInvalidSubscription
		}
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ID:                   s.genID.Generate(),
		MerchantID:           merchantID,
		Name:                 name,
		Slug:                 trimPtr(req.Slug),
		Description:          trimPtr(req.Description),
		Price:                req.Price,
		Currency:             currency,
		Type:                 productType,
		ImageURL:             trimPtr(req.ImageURL),
		ThumbnailURL:         trimPtr(req.ThumbnailURL),
		PreviewURL:           trimPtr(req.PreviewURL),
		DownloadURL:          trimPtr(req.DownloadURL),
		VideoURL:             trimPtr(req.VideoURL),
		ContentURL:           trimPtr(req.ContentURL),
		Active:               active,
		SubscriptionInterval: trimPtr(req.SubscriptionInterval),
		SubscriptionPrice:    req.SubscriptionPrice,
		MaxSubscriptions:     req.MaxSubscriptions,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if len(req.ExternalLinks) > 0 {
		p.ExternalLinks = mustJSON(req.ExternalLinks)
	}
	if len(req.GatedContent) > 0 {
		p.GatedContent = mustJSON(req.GatedContent)
	}

	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}

	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	filter := domain.ListRequest{
		Name:    strings.TrimSpace(req.Name),
		Active:  req.Active,
		SortBy:  strings.TrimSpace(req.SortBy),
		OrderBy: strings.TrimSpace(req.OrderBy),
	}

	items, err := s.repo.List(ctx, s.db, merchantID, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	item, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.Slug != nil {
		item.Slug = trimPtr(req.Slug)
	}
	if req.Description != nil {
		item.Description = trimPtr(req.Description)
	}
	if req.Type != nil {
		productType := domain.ProductType(strings.TrimSpace(*req.Type))
		if !productType.Valid() {
			return nil, domain.ErrInvalidType
		}
		item.Type = productType
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if currency == "" {
			return nil, domain.ErrInvalidCurrency
		}
		item.Currency = currency
	}
	if req.ImageURL != nil {
		item.ImageURL = trimPtr(req.ImageURL)
	}
	if req.ThumbnailURL != nil {
		item.ThumbnailURL = trimPtr(req.ThumbnailURL)
	}
	if req.Active != nil {
		item.Active = *req.Active
	}
	if req.SubscriptionInterval != nil {
		item.SubscriptionInterval = trimPtr(req.SubscriptionInterval)
	}
	if req.SubscriptionPrice != nil {
		item.SubscriptionPrice = req.SubscriptionPrice
	}
	if req.MaxSubscriptions != nil {
		item.MaxSubscriptions = req.MaxSubscriptions
	}
	if req.ExternalLinks != nil {
		item.ExternalLinks = mustJSON(req.ExternalLinks)
	}
	if req.GatedContent != nil {
		item.GatedContent = mustJSON(req.GatedContent)
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Archive(ctx context.Context, id string) (*domain.Response, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Active = false
	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Product, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, merchantID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func toResponse(p *domain.Product) domain.Response {
	resp := domain.Response{
		ID:                   p.ID.String(),
		MerchantID:           p.MerchantID.String(),
		Name:                 p.Name,
		Slug:                 p.Slug,
		Description:          p.Description,
		Price:                p.Price,
		Currency:             p.Currency,
		Type:                 p.Type,
		ImageURL:             p.ImageURL,
		ThumbnailURL:         p.ThumbnailURL,
		PreviewURL:           p.PreviewURL,
		DownloadURL:          p.DownloadURL,
		VideoURL:             p.VideoURL,
		ContentURL:           p.ContentURL,
		Active:               p.Active,
		TotalSales:           p.TotalSales,
		TotalRevenue:         p.TotalRevenue,
		SubscriptionInterval: p.SubscriptionInterval,
		SubscriptionPrice:    p.SubscriptionPrice,
		MaxSubscriptions:     p.MaxSubscriptions,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}

	if len(p.ExternalLinks) > 0 {
		_ = json.Unmarshal(p.ExternalLinks, &resp.ExternalLinks)
	}
	if len(p.GatedContent) > 0 {
		_ = json.Unmarshal(p.GatedContent, &resp.GatedContent)
	}

	return resp
}

func mustJSON(value any) datatypes.JSON {
	b, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
