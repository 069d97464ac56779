package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/merchantctx"
	"github.com/elzapay/elza/internal/receipt/domain"
	"github.com/elzapay/elza/pkg/db/pagination"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultPageSize = 10

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
		log:   p.Log.Named("receipt.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Issue(ctx context.Context, req domain.IssueRequest) (*domain.Response, error) {
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
	if req.Amount < 0 || req.Quantity < 1 {
		return nil, domain.ErrInvalidRequest
	}

	var subscriptionID *snowflake.ID
	if req.SubscriptionID != nil {
		parsed, err := snowflake.ParseString(strings.TrimSpace(*req.SubscriptionID))
		if err != nil {
			return nil, domain.ErrInvalidRequest
		}
		subscriptionID = &parsed
	}

	now := time.Now().UTC()
	receipt := &domain.Receipt{
		ID:             s.genID.Generate(),
		ReceiptID:      uuid.NewString(),
		MerchantID:     merchantID,
		CustomerID:     customerID,
		ProductID:      productID,
		ProductName:    strings.TrimSpace(req.ProductName),
		Quantity:       req.Quantity,
		Amount:         req.Amount,
		Currency:       strings.ToUpper(strings.TrimSpace(req.Currency)),
		IsSubscription: req.IsSubscription,
		SubscriptionID: subscriptionID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, s.db, receipt); err != nil {
		return nil, err
	}

	s.log.Info("receipt issued",
		zap.String("receipt_id", receipt.ReceiptID),
		zap.String("merchant_id", merchantID.String()),
		zap.Float64("amount", receipt.Amount),
	)

	resp := toResponse(receipt)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (*domain.ListResponse, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	limit := page.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}

	filter := domain.ListFilter{Limit: limit + 1}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, domain.ErrInvalidCursor
		}
		afterID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, domain.ErrInvalidCursor
		}
		afterAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, domain.ErrInvalidCursor
		}
		filter.AfterID = afterID
		filter.AfterAt = afterAt
	}

	items, err := s.repo.List(ctx, s.db, merchantID, filter)
	if err != nil {
		return nil, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, limit, func(r domain.Receipt) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        r.ID.String(),
			CreatedAt: r.CreatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	return &domain.ListResponse{Receipts: resp, PageInfo: pageInfo}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	receiptID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	receipt, err := s.repo.FindByID(ctx, s.db, merchantID, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(receipt)
	return &resp, nil
}

func toResponse(r *domain.Receipt) domain.Response {
	var subscriptionID *string
	if r.SubscriptionID != nil {
		id := r.SubscriptionID.String()
		subscriptionID = &id
	}
	return domain.Response{
		ID:             r.ID.String(),
		ReceiptID:      r.ReceiptID,
		MerchantID:     r.MerchantID.String(),
		CustomerID:     r.CustomerID.String(),
		ProductID:      r.ProductID.String(),
		ProductName:    r.ProductName,
		Quantity:       r.Quantity,
		Amount:         r.Amount,
		Currency:       r.Currency,
		MetadataURI:    r.MetadataURI,
		NFTMintAddress: r.NFTMintAddress,
		IsSubscription: r.IsSubscription,
		SubscriptionID: subscriptionID,
		CreatedAt:      r.CreatedAt,
	}
}
