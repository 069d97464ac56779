package service

import (
	"context"

	customerdomain "github.com/elzapay/elza/internal/customer/domain"
	"github.com/elzapay/elza/internal/dashboard/domain"
	"github.com/elzapay/elza/internal/merchantctx"
	productdomain "github.com/elzapay/elza/internal/product/domain"
	receiptdomain "github.com/elzapay/elza/internal/receipt/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const defaultTransactionLimit = 20

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Products  productdomain.Repository
	Customers customerdomain.Repository
	Receipts  receiptdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	products  productdomain.Repository
	customers customerdomain.Repository
	receipts  receiptdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("dashboard.service"),
		products:  p.Products,
		customers: p.Customers,
		receipts:  p.Receipts,
	}
}

func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	var (
		revenue   float64
		sales     int64
		customers int64
		products  []productdomain.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenue, sales, err = s.receipts.SumByMerchant(gctx, s.db, merchantID)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.customers.CountByMerchant(gctx, s.db, merchantID)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.List(gctx, s.db, merchantID, productdomain.ListRequest{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Stats{
		TotalRevenue:   revenue,
		TotalSales:     sales,
		TotalCustomers: customers,
		TotalProducts:  int64(len(products)),
	}, nil
}

func (s *Service) Products(ctx context.Context) ([]domain.ProductStats, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	products, err := s.products.List(ctx, s.db, merchantID, productdomain.ListRequest{})
	if err != nil {
		return nil, err
	}

	stats := make([]domain.ProductStats, 0, len(products))
	for i := range products {
		p := &products[i]
		stats = append(stats, domain.ProductStats{
			ProductID:    p.ID.String(),
			Name:         p.Name,
			Price:        p.Price,
			Currency:     p.Currency,
			Active:       p.Active,
			TotalSales:   p.TotalSales,
			TotalRevenue: p.TotalRevenue,
		})
	}
	return stats, nil
}

func (s *Service) Transactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}
	if limit <= 0 {
		limit = defaultTransactionLimit
	}

	receipts, err := s.receipts.Recent(ctx, s.db, merchantID, limit)
	if err != nil {
		return nil, err
	}

	txns := make([]domain.Transaction, 0, len(receipts))
	for i := range receipts {
		r := &receipts[i]
		txns = append(txns, domain.Transaction{
			ReceiptID:      r.ReceiptID,
			ProductName:    r.ProductName,
			Amount:         r.Amount,
			Currency:       r.Currency,
			IsSubscription: r.IsSubscription,
			CreatedAt:      r.CreatedAt,
		})
	}
	return txns, nil
}
