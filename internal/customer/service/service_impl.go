package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/customer/domain"
	"github.com/elzapay/elza/internal/merchantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("customer.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) FindOrCreate(ctx context.Context, req domain.FindOrCreateRequest) (*domain.Customer, error) {
	merchantID, err := snowflake.ParseString(strings.TrimSpace(req.MerchantID))
	if err != nil || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}

	existing, err := s.repo.FindByEmail(ctx, s.db, merchantID, email)
	if err != nil {
		return nil, err
	}
	if existing == nil && req.WalletAddress != nil {
		wallet := strings.TrimSpace(*req.WalletAddress)
		if wallet != "" {
			existing, err = s.repo.FindByWallet(ctx, s.db, merchantID, wallet)
			if err != nil {
				return nil, err
			}
		}
	}

	if existing != nil {
		// Refresh the contact details a returning buyer supplied.
		changed := false
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			name := strings.TrimSpace(*req.Name)
			existing.Name = &name
			changed = true
		}
		if req.WalletAddress != nil && strings.TrimSpace(*req.WalletAddress) != "" {
			wallet := strings.TrimSpace(*req.WalletAddress)
			existing.WalletAddress = &wallet
			changed = true
		}
		if changed {
			existing.UpdatedAt = time.Now().UTC()
			if err := s.repo.Update(ctx, s.db, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	now := time.Now().UTC()
	c := &domain.Customer{
		ID:            s.genID.Generate(),
		MerchantID:    merchantID,
		Email:         email,
		Name:          trimPtr(req.Name),
		WalletAddress: trimPtr(req.WalletAddress),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, s.db, c); err != nil {
		return nil, err
	}

	s.log.Info("customer created",
		zap.String("customer_id", c.ID.String()),
		zap.String("merchant_id", merchantID.String()),
	)
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	items, err := s.repo.FindAll(ctx, s.db, merchantID)
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
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	customerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, merchantID, customerID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) RecordPurchase(ctx context.Context, id string, amount float64) error {
	customerID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}
	return s.repo.AddPurchase(ctx, s.db, customerID, amount)
}

func toResponse(c *domain.Customer) domain.Response {
	return domain.Response{
		ID:            c.ID.String(),
		MerchantID:    c.MerchantID.String(),
		Email:         c.Email,
		Name:          c.Name,
		WalletAddress: c.WalletAddress,
		TotalSpent:    c.TotalSpent,
		TotalOrders:   c.TotalOrders,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
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
