package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/merchantctx"
	"github.com/elzapay/elza/internal/subscription/domain"
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
		log:   p.Log.Named("subscription.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Start(ctx context.Context, req domain.StartRequest) (*domain.Response, error) {
	merchantID, err := snowflake.ParseString(strings.TrimSpace(req.MerchantID))
	if err != nil || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}
	customerID, err := snowflake.ParseString(strings.TrimSpace(req.CustomerID))
	if err != nil || customerID == 0 {
		return nil, domain.ErrInvalidRequest
	}
	productID, err := snowflake.ParseString(strings.TrimSpace(req.ProductID))
	if err != nil || productID == 0 {
		return nil, domain.ErrInvalidRequest
	}
	if req.Amount < 0 || req.IntervalSeconds <= 0 {
		return nil, domain.ErrInvalidRequest
	}

	now := time.Now().UTC()
	sub := &domain.Subscription{
		ID:              s.genID.Generate(),
		MerchantID:      merchantID,
		CustomerID:      customerID,
		ProductID:       productID,
		PlanID:          strings.TrimSpace(req.PlanID),
		Amount:          req.Amount,
		Currency:        strings.ToUpper(strings.TrimSpace(req.Currency)),
		IntervalSeconds: req.IntervalSeconds,
		NextPaymentDue:  now.Add(time.Duration(req.IntervalSeconds) * time.Second),
		TotalPayments:   1,
		MaxPayments:     req.MaxPayments,
		IsActive:        true,
		LastPaymentAt:   &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, s.db, sub); err != nil {
		return nil, err
	}

	s.log.Info("subscription started",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("merchant_id", merchantID.String()),
		zap.String("product_id", productID.String()),
	)

	resp := toResponse(sub)
	return &resp, nil
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
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(sub)
	return &resp, nil
}

func (s *Service) Pause(ctx context.Context, id string) (*domain.Response, error) {
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sub.IsActive {
		return nil, domain.ErrNotActive
	}
	if sub.IsPaused {
		return nil, domain.ErrAlreadyPaused
	}

	now := time.Now().UTC()
	sub.IsPaused = true
	sub.PausedAt = &now
	sub.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, sub); err != nil {
		return nil, err
	}

	resp := toResponse(sub)
	return &resp, nil
}

func (s *Service) Resume(ctx context.Context, id string) (*domain.Response, error) {
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sub.IsActive {
		return nil, domain.ErrNotActive
	}
	if !sub.IsPaused {
		return nil, domain.ErrNotPaused
	}

	now := time.Now().UTC()
	sub.IsPaused = false
	sub.PausedAt = nil
	// The billing clock restarts from the resume point.
	sub.NextPaymentDue = now.Add(time.Duration(sub.IntervalSeconds) * time.Second)
	sub.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, sub); err != nil {
		return nil, err
	}

	resp := toResponse(sub)
	return &resp, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*domain.Response, error) {
	sub, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sub.IsActive {
		return nil, domain.ErrNotActive
	}

	now := time.Now().UTC()
	sub.IsActive = false
	sub.IsPaused = false
	sub.CancelledAt = &now
	sub.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, sub); err != nil {
		return nil, err
	}

	s.log.Info("subscription cancelled", zap.String("subscription_id", sub.ID.String()))

	resp := toResponse(sub)
	return &resp, nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Subscription, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	subID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	sub, err := s.repo.FindByID(ctx, s.db, merchantID, subID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	return sub, nil
}

func toResponse(sub *domain.Subscription) domain.Response {
	return domain.Response{
		ID:              sub.ID.String(),
		MerchantID:      sub.MerchantID.String(),
		CustomerID:      sub.CustomerID.String(),
		ProductID:       sub.ProductID.String(),
		PlanID:          sub.PlanID,
		Amount:          sub.Amount,
		Currency:        sub.Currency,
		IntervalSeconds: sub.IntervalSeconds,
		NextPaymentDue:  sub.NextPaymentDue,
		TotalPayments:   sub.TotalPayments,
		MaxPayments:     sub.MaxPayments,
		IsActive:        sub.IsActive,
		IsPaused:        sub.IsPaused,
		LastPaymentAt:   sub.LastPaymentAt,
		PausedAt:        sub.PausedAt,
		CancelledAt:     sub.CancelledAt,
		CreatedAt:       sub.CreatedAt,
		UpdatedAt:       sub.UpdatedAt,
	}
}
