package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/elzapay/elza/internal/checkout/domain"
	"github.com/elzapay/elza/internal/checkout/pricing"
	"github.com/elzapay/elza/internal/checkout/session"
	configdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	customerdomain "github.com/elzapay/elza/internal/customer/domain"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	paymentdomain "github.com/elzapay/elza/internal/payment/domain"
	productdomain "github.com/elzapay/elza/internal/product/domain"
	"github.com/elzapay/elza/internal/providers/email"
	receiptdomain "github.com/elzapay/elza/internal/receipt/domain"
	subscriptiondomain "github.com/elzapay/elza/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Billing interval labels accepted on subscription products, mapped to
// plan seconds.
var intervalSeconds = map[string]int64{
	"daily":   86400,
	"weekly":  604800,
	"monthly": 2592000,
	"yearly":  31536000,
}

const defaultIntervalSeconds = 2592000 // monthly

type Params struct {
	fx.In

	DB            *gorm.DB
	Log           *zap.Logger
	Configs       configdomain.Service
	Products      productdomain.Repository
	Processor     paymentdomain.Processor
	Customers     customerdomain.Service
	Receipts      receiptdomain.Service
	Subscriptions subscriptiondomain.Service
	Merchants     merchantdomain.Service
	Email         email.Provider
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	configs       configdomain.Service
	products      productdomain.Repository
	processor     paymentdomain.Processor
	customers     customerdomain.Service
	receipts      receiptdomain.Service
	subscriptions subscriptiondomain.Service
	merchants     merchantdomain.Service
	email         email.Provider
}

func New(p Params) domain.Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("checkout.service"),
		configs:       p.Configs,
		products:      p.Products,
		processor:     p.Processor,
		customers:     p.Customers,
		receipts:      p.Receipts,
		subscriptions: p.Subscriptions,
		merchants:     p.Merchants,
		email:         p.Email,
	}
}

func (s *Service) Resolve(ctx context.Context, key configdomain.PublicKey) (*domain.ResolvedCheckout, error) {
	config, products, err := s.fetch(ctx, key)
	if err != nil {
		return nil, err
	}

	resolved := filterProducts(products, config.Products)
	quote := pricing.ComputeTotal(resolved, config.CheckoutType, nil, false)

	publicProducts := make([]domain.PublicProduct, 0, len(resolved))
	for i := range resolved {
		publicProducts = append(publicProducts, toPublicProduct(&resolved[i]))
	}

	return &domain.ResolvedCheckout{
		Config:   *config,
		Products: publicProducts,
		Quote:    quote,
	}, nil
}

func (s *Service) Quote(ctx context.Context, checkoutID string, quantities map[string]int) (*pricing.Quote, error) {
	config, products, err := s.fetch(ctx, configdomain.PublicKey{ID: checkoutID})
	if err != nil {
		return nil, err
	}

	resolved := filterProducts(products, config.Products)
	quote := pricing.ComputeTotal(resolved, config.CheckoutType, quantities, config.Customizations.AllowQuantitySelection)
	return &quote, nil
}

func (s *Service) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.SubmitResult, error) {
	machine := session.NewMachine()
	if err := machine.BeginValidation(); err != nil {
		return nil, err
	}

	if result := session.ValidateContact(req.Contact, true); !result.Valid() {
		_ = machine.Fail()
		return nil, &domain.ValidationError{Fields: result.FieldErrors}
	}

	config, products, err := s.fetch(ctx, configdomain.PublicKey{ID: req.CheckoutID})
	if err != nil {
		_ = machine.Fail()
		return nil, err
	}

	resolved := filterProducts(products, config.Products)
	if len(resolved) == 0 {
		_ = machine.Fail()
		return nil, domain.ErrEmptyCheckout
	}

	if err := machine.BeginSubmit(); err != nil {
		return nil, err
	}

	quote := pricing.ComputeTotal(resolved, config.CheckoutType, req.Quantities, config.Customizations.AllowQuantitySelection)

	payment, err := s.processor.Submit(ctx, paymentdomain.SubmitRequest{
		MerchantID:    config.MerchantID,
		CheckoutID:    config.ID,
		Amount:        quote.Total,
		Currency:      quote.Currency,
		PayerWallet:   req.WalletAddress,
		CustomerEmail: req.Contact.Email,
	})
	if err != nil {
		_ = machine.Fail()
		return nil, err
	}
	if !payment.Succeeded {
		_ = machine.Fail()
		s.log.Warn("checkout payment failed", zap.String("checkout_id", config.ID))
		return nil, domain.ErrPaymentFailed
	}

	result, err := s.settle(ctx, config, resolved, quote, req, payment)
	if err != nil {
		// The payment already settled; surface the bookkeeping error.
		_ = machine.Fail()
		return nil, err
	}

	if err := machine.Succeed(); err != nil {
		return nil, err
	}
	result.State = machine.State()
	return result, nil
}

// settle performs the post-payment bookkeeping: customer, receipts,
// subscriptions, counters and the receipt email.
func (s *Service) settle(
	ctx context.Context,
	config *configdomain.PublicConfig,
	resolved []productdomain.Product,
	quote pricing.Quote,
	req domain.SubmitRequest,
	payment *paymentdomain.Result,
) (*domain.SubmitResult, error) {
	customer, err := s.customers.FindOrCreate(ctx, customerdomain.FindOrCreateRequest{
		MerchantID:    config.MerchantID,
		Email:         req.Contact.Email,
		Name:          contactName(req.Contact),
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		return nil, err
	}
	newCustomer := customer.TotalOrders == 0

	productByID := make(map[string]*productdomain.Product, len(resolved))
	for i := range resolved {
		productByID[resolved[i].ID.String()] = &resolved[i]
	}

	receiptIDs := make([]string, 0, len(quote.LineItems))
	productNames := make([]string, 0, len(quote.LineItems))
	for _, line := range quote.LineItems {
		p := productByID[line.ProductID]

		var subscriptionID *string
		isSubscription := config.CheckoutType == configdomain.CheckoutSubscription && p.SubscriptionPrice != nil
		if isSubscription {
			sub, err := s.subscriptions.Start(ctx, subscriptiondomain.StartRequest{
				MerchantID:      config.MerchantID,
				CustomerID:      customer.ID.String(),
				ProductID:       line.ProductID,
				PlanID:          payment.Reference,
				Amount:          line.UnitPrice,
				Currency:        line.Currency,
				IntervalSeconds: planInterval(p.SubscriptionInterval),
				MaxPayments:     p.MaxSubscriptions,
			})
			if err != nil {
				return nil, err
			}
			subscriptionID = &sub.ID
		}

		receipt, err := s.receipts.Issue(ctx, receiptdomain.IssueRequest{
			MerchantID:     config.MerchantID,
			CustomerID:     customer.ID.String(),
			ProductID:      line.ProductID,
			ProductName:    line.Name,
			Quantity:       line.Quantity,
			Amount:         line.LineTotal,
			Currency:       line.Currency,
			IsSubscription: isSubscription,
			SubscriptionID: subscriptionID,
		})
		if err != nil {
			return nil, err
		}
		receiptIDs = append(receiptIDs, receipt.ReceiptID)
		productNames = append(productNames, line.Name)

		if err := s.products.AddSale(ctx, s.db, p.ID, line.LineTotal); err != nil {
			return nil, err
		}
	}

	merchantID, err := snowflakeID(config.MerchantID)
	if err != nil {
		return nil, err
	}
	if err := s.merchants.RecordSale(ctx, merchantID, quote.Total, newCustomer); err != nil {
		return nil, err
	}
	if err := s.customers.RecordPurchase(ctx, customer.ID.String(), quote.Total); err != nil {
		return nil, err
	}

	if err := s.email.SendReceipt(ctx, email.ReceiptMessage{
		To:           customer.Email,
		MerchantName: config.Merchant.BusinessName,
		ProductNames: productNames,
		ReceiptIDs:   receiptIDs,
		Total:        pricing.FormatAmount(quote.Total),
		Currency:     quote.Currency,
	}); err != nil {
		// Mail failures never unwind a settled purchase.
		s.log.Warn("receipt email failed", zap.Error(err))
	}

	s.log.Info("checkout settled",
		zap.String("checkout_id", config.ID),
		zap.Float64("total", quote.Total),
		zap.String("currency", quote.Currency),
		zap.Int("items", len(receiptIDs)),
	)

	return &domain.SubmitResult{
		ReceiptIDs:  receiptIDs,
		Total:       quote.Total,
		Display:     pricing.FormatAmount(quote.Total),
		Currency:    quote.Currency,
		RedirectURL: config.Customizations.SuccessRedirectURL,
		Reference:   payment.Reference,
		Quote:       &quote,
	}, nil
}

// fetch runs the configuration lookup and the catalog fetch concurrently
// and joins both before any pricing happens.
func (s *Service) fetch(ctx context.Context, key configdomain.PublicKey) (*configdomain.PublicConfig, []productdomain.Product, error) {
	var (
		config   *configdomain.PublicConfig
		products []productdomain.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		config, err = s.configs.Public(gctx, key)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.FindAll(gctx, s.db)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, configdomain.ErrNotFound) || errors.Is(err, configdomain.ErrInvalidKey) {
			return nil, nil, err
		}
		// Storage failures on the public surface read as an upstream
		// outage, not an internal fault.
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return config, products, nil
}

// filterProducts keeps the catalog entries the configuration references
// that are still active. Referenced products that were deleted or
// deactivated silently drop out.
func filterProducts(catalog []productdomain.Product, ids []string) []productdomain.Product {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	resolved := make([]productdomain.Product, 0, len(ids))
	for i := range catalog {
		p := &catalog[i]
		if _, ok := wanted[p.ID.String()]; ok && p.Active {
			resolved = append(resolved, *p)
		}
	}
	return resolved
}

func toPublicProduct(p *productdomain.Product) domain.PublicProduct {
	return domain.PublicProduct{
		ID:                   p.ID.String(),
		Name:                 p.Name,
		Description:          p.Description,
		Price:                p.Price,
		Currency:             p.Currency,
		Type:                 string(p.Type),
		ImageURL:             p.ImageURL,
		ThumbnailURL:         p.ThumbnailURL,
		PreviewURL:           p.PreviewURL,
		SubscriptionInterval: p.SubscriptionInterval,
		SubscriptionPrice:    p.SubscriptionPrice,
	}
}

func contactName(contact session.Contact) *string {
	name := strings.TrimSpace(strings.TrimSpace(contact.FirstName) + " " + strings.TrimSpace(contact.LastName))
	if name == "" {
		return nil
	}
	return &name
}

func snowflakeID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}

func planInterval(label *string) int64 {
	if label == nil {
		return defaultIntervalSeconds
	}
	if seconds, ok := intervalSeconds[strings.ToLower(strings.TrimSpace(*label))]; ok {
		return seconds
	}
	return defaultIntervalSeconds
}
