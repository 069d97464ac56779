package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/merchant/domain"
	"github.com/elzapay/elza/pkg/db"
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
		log:   p.Log.Named("merchant.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) FindOrCreateByWallet(ctx context.Context, walletAddress string) (*domain.Merchant, error) {
	wallet := strings.TrimSpace(walletAddress)
	if wallet == "" {
		return nil, domain.ErrInvalidWallet
	}

	existing, err := s.repo.FindByWallet(ctx, s.db, wallet)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	m := &domain.Merchant{
		ID:            s.genID.Generate(),
		WalletAddress: wallet,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, s.db, m); err != nil {
		// A concurrent connect from another instance can win the insert;
		// the wallet row is authoritative either way.
		if db.IsDuplicateKeyErr(err) {
			return s.repo.FindByWallet(ctx, s.db, wallet)
		}
		return nil, err
	}

	s.log.Info("merchant created",
		zap.String("merchant_id", m.ID.String()),
	)
	return m, nil
}

func (s *Service) GetProfile(ctx context.Context, id snowflake.ID) (*domain.Profile, error) {
	m, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toProfile(m), nil
}

func (s *Service) UpdateProfile(ctx context.Context, id snowflake.ID, req domain.UpdateProfileRequest) (*domain.Profile, error) {
	m, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}

	if req.Email != nil {
		m.Email = trimPtr(req.Email)
	}
	if req.FirstName != nil {
		m.FirstName = trimPtr(req.FirstName)
	}
	if req.LastName != nil {
		m.LastName = trimPtr(req.LastName)
	}
	if req.BusinessName != nil {
		m.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.LogoURL != nil {
		m.LogoURL = trimPtr(req.LogoURL)
	}
	if req.Website != nil {
		m.Website = trimPtr(req.Website)
	}
	if req.Description != nil {
		m.Description = strings.TrimSpace(*req.Description)
	}

	m.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, m); err != nil {
		return nil, err
	}
	return toProfile(m), nil
}

func (s *Service) RecordSale(ctx context.Context, id snowflake.ID, amount float64, newCustomer bool) error {
	var newCustomers int64
	if newCustomer {
		newCustomers = 1
	}
	return s.repo.AddSale(ctx, s.db, id, amount, newCustomers)
}

func toProfile(m *domain.Merchant) *domain.Profile {
	onboarded := m.Email != nil && *m.Email != "" &&
		m.FirstName != nil && *m.FirstName != "" &&
		m.LastName != nil && *m.LastName != ""

	return &domain.Profile{
		ID:            m.ID.String(),
		WalletAddress: m.WalletAddress,
		Email:         m.Email,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		IsOnboarded:   onboarded,
		Merchant: domain.ProfileBusiness{
			ID:           m.ID.String(),
			BusinessName: m.BusinessName,
			Description:  m.Description,
		},
	}
}

func trimPtr(value *string) *string {
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
