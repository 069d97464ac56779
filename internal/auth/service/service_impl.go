package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/auth/domain"
	"github.com/elzapay/elza/internal/config"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Params struct {
	fx.In

	Config    config.Config
	Log       *zap.Logger
	Merchants merchantdomain.Service
}

type Service struct {
	secret    []byte
	tokenTTL  time.Duration
	log       *zap.Logger
	merchants merchantdomain.Service

	// connects deduplicates concurrent sign-ins per wallet so a burst of
	// connects cannot race the find-or-create.
	connects singleflight.Group
}

func New(p Params) domain.Service {
	return &Service{
		secret:    []byte(p.Config.AuthJWTSecret),
		tokenTTL:  p.Config.AuthTokenTTL,
		log:       p.Log.Named("auth.service"),
		merchants: p.Merchants,
	}
}

type merchantClaims struct {
	WalletAddress string `json:"wallet_address"`
	Type          string `json:"type"`
	jwt.RegisteredClaims
}

func (s *Service) Connect(ctx context.Context, walletAddress string) (*domain.Session, error) {
	wallet := strings.TrimSpace(walletAddress)
	if wallet == "" {
		return nil, domain.ErrInvalidWallet
	}

	v, err, _ := s.connects.Do(wallet, func() (any, error) {
		return s.merchants.FindOrCreateByWallet(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}
	m := v.(*merchantdomain.Merchant)

	token, err := s.issueToken(m)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Token:         token,
		MerchantID:    m.ID.String(),
		WalletAddress: m.WalletAddress,
		Email:         m.Email,
		IsOnboarded:   isOnboarded(m),
	}, nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (snowflake.ID, error) {
	claims := &merchantClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, domain.ErrInvalidToken
	}
	if claims.Type != "merchant" {
		return 0, domain.ErrInvalidToken
	}

	merchantID, err := snowflake.ParseString(claims.Subject)
	if err != nil || merchantID == 0 {
		return 0, domain.ErrInvalidToken
	}
	return merchantID, nil
}

func (s *Service) issueToken(m *merchantdomain.Merchant) (string, error) {
	now := time.Now().UTC()
	claims := merchantClaims{
		WalletAddress: m.WalletAddress,
		Type:          "merchant",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   m.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func isOnboarded(m *merchantdomain.Merchant) bool {
	return notEmpty(m.Email) && notEmpty(m.FirstName) && notEmpty(m.LastName)
}

func notEmpty(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}
