package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	checkoutdomain "github.com/elzapay/elza/internal/checkout/domain"
	checkoutservice "github.com/elzapay/elza/internal/checkout/service"
	"github.com/elzapay/elza/internal/checkout/session"
	configdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	customerdomain "github.com/elzapay/elza/internal/customer/domain"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	paymentdomain "github.com/elzapay/elza/internal/payment/domain"
	productdomain "github.com/elzapay/elza/internal/product/domain"
	"github.com/elzapay/elza/internal/providers/email"
	receiptdomain "github.com/elzapay/elza/internal/receipt/domain"
	subscriptiondomain "github.com/elzapay/elza/internal/subscription/domain"
	"github.com/elzapay/elza/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeConfigService struct {
	configs   map[string]*configdomain.PublicConfig
	publicErr error
}

func (f *fakeConfigService) Public(ctx context.Context, key configdomain.PublicKey) (*configdomain.PublicConfig, error) {
	if f.publicErr != nil {
		return nil, f.publicErr
	}
	lookup := key.ID
	if lookup == "" {
		lookup = key.Slug
	}
	if lookup == "" {
		lookup = key.Domain
	}
	if cfg, ok := f.configs[lookup]; ok {
		return cfg, nil
	}
	return nil, configdomain.ErrNotFound
}

func (f *fakeConfigService) Create(ctx context.Context, req configdomain.CreateRequest) (*configdomain.Response, error) {
	return nil, configdomain.ErrInvalidMerchant
}

func (f *fakeConfigService) List(ctx context.Context) ([]configdomain.Response, error) {
	return nil, nil
}

func (f *fakeConfigService) Get(ctx context.Context, id string) (*configdomain.Response, error) {
	return nil, configdomain.ErrNotFound
}

func (f *fakeConfigService) Update(ctx context.Context, req configdomain.UpdateRequest) (*configdomain.Response, error) {
	return nil, configdomain.ErrNotFound
}

func (f *fakeConfigService) Delete(ctx context.Context, id string) error {
	return configdomain.ErrNotFound
}

func (f *fakeConfigService) SlugAvailable(ctx context.Context, slug, excludeID string) (bool, error) {
	return true, nil
}

type fakeProductRepo struct {
	catalog   []productdomain.Product
	saleCalls int
}

func (f *fakeProductRepo) Create(ctx context.Context, db *gorm.DB, product *productdomain.Product) error {
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, db *gorm.DB, merchantID, id snowflake.ID) (*productdomain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) List(ctx context.Context, db *gorm.DB, merchantID snowflake.ID, filter productdomain.ListRequest) ([]productdomain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, db *gorm.DB) ([]productdomain.Product, error) {
	return f.catalog, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, db *gorm.DB, product *productdomain.Product) error {
	return nil
}

func (f *fakeProductRepo) AddSale(ctx context.Context, db *gorm.DB, id snowflake.ID, amount float64) error {
	f.saleCalls++
	return nil
}

type fakeProcessor struct {
	calls    int
	succeeds bool
}

func (f *fakeProcessor) Submit(ctx context.Context, req paymentdomain.SubmitRequest) (*paymentdomain.Result, error) {
	f.calls++
	return &paymentdomain.Result{Succeeded: f.succeeds, Reference: "ref-1"}, nil
}

type fakeCustomerService struct {
	created *customerdomain.Customer
}

func (f *fakeCustomerService) FindOrCreate(ctx context.Context, req customerdomain.FindOrCreateRequest) (*customerdomain.Customer, error) {
	f.created = &customerdomain.Customer{
		ID:    snowflake.ID(900),
		Email: req.Email,
	}
	return f.created, nil
}

func (f *fakeCustomerService) List(ctx context.Context) ([]customerdomain.Response, error) {
	return nil, nil
}

func (f *fakeCustomerService) Get(ctx context.Context, id string) (*customerdomain.Response, error) {
	return nil, customerdomain.ErrNotFound
}

func (f *fakeCustomerService) RecordPurchase(ctx context.Context, id string, amount float64) error {
	return nil
}

type fakeReceiptService struct {
	issued []receiptdomain.IssueRequest
}

func (f *fakeReceiptService) Issue(ctx context.Context, req receiptdomain.IssueRequest) (*receiptdomain.Response, error) {
	f.issued = append(f.issued, req)
	return &receiptdomain.Response{ReceiptID: "rcpt-1"}, nil
}

func (f *fakeReceiptService) List(ctx context.Context, page pagination.Pagination) (*receiptdomain.ListResponse, error) {
	return &receiptdomain.ListResponse{}, nil
}

func (f *fakeReceiptService) Get(ctx context.Context, id string) (*receiptdomain.Response, error) {
	return nil, receiptdomain.ErrNotFound
}

type fakeSubscriptionService struct {
	started []subscriptiondomain.StartRequest
}

func (f *fakeSubscriptionService) Start(ctx context.Context, req subscriptiondomain.StartRequest) (*subscriptiondomain.Response, error) {
	f.started = append(f.started, req)
	return &subscriptiondomain.Response{ID: "7001"}, nil
}

func (f *fakeSubscriptionService) List(ctx context.Context) ([]subscriptiondomain.Response, error) {
	return nil, nil
}

func (f *fakeSubscriptionService) Get(ctx context.Context, id string) (*subscriptiondomain.Response, error) {
	return nil, subscriptiondomain.ErrNotFound
}

func (f *fakeSubscriptionService) Pause(ctx context.Context, id string) (*subscriptiondomain.Response, error) {
	return nil, subscriptiondomain.ErrNotFound
}

func (f *fakeSubscriptionService) Resume(ctx context.Context, id string) (*subscriptiondomain.Response, error) {
	return nil, subscriptiondomain.ErrNotFound
}

func (f *fakeSubscriptionService) Cancel(ctx context.Context, id string) (*subscriptiondomain.Response, error) {
	return nil, subscriptiondomain.ErrNotFound
}

type fakeMerchantService struct {
	sales []float64
}

func (f *fakeMerchantService) FindOrCreateByWallet(ctx context.Context, walletAddress string) (*merchantdomain.Merchant, error) {
	return nil, merchantdomain.ErrNotFound
}

func (f *fakeMerchantService) GetProfile(ctx context.Context, id snowflake.ID) (*merchantdomain.Profile, error) {
	return nil, merchantdomain.ErrNotFound
}

func (f *fakeMerchantService) UpdateProfile(ctx context.Context, id snowflake.ID, req merchantdomain.UpdateProfileRequest) (*merchantdomain.Profile, error) {
	return nil, merchantdomain.ErrNotFound
}

func (f *fakeMerchantService) RecordSale(ctx context.Context, id snowflake.ID, amount float64, newCustomer bool) error {
	f.sales = append(f.sales, amount)
	return nil
}

type fakeEmailProvider struct {
	sent []email.ReceiptMessage
}

func (f *fakeEmailProvider) SendReceipt(ctx context.Context, msg email.ReceiptMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

type fixture struct {
	svc           checkoutdomain.Service
	configs       *fakeConfigService
	products      *fakeProductRepo
	processor     *fakeProcessor
	customers     *fakeCustomerService
	receipts      *fakeReceiptService
	subscriptions *fakeSubscriptionService
	merchants     *fakeMerchantService
	email         *fakeEmailProvider
}

func newFixture(configs map[string]*configdomain.PublicConfig, catalog []productdomain.Product) *fixture {
	f := &fixture{
		configs:       &fakeConfigService{configs: configs},
		products:      &fakeProductRepo{catalog: catalog},
		processor:     &fakeProcessor{succeeds: true},
		customers:     &fakeCustomerService{},
		receipts:      &fakeReceiptService{},
		subscriptions: &fakeSubscriptionService{},
		merchants:     &fakeMerchantService{},
		email:         &fakeEmailProvider{},
	}
	f.svc = checkoutservice.New(checkoutservice.Params{
		DB:            nil,
		Log:           zap.NewNop(),
		Configs:       f.configs,
		Products:      f.products,
		Processor:     f.processor,
		Customers:     f.customers,
		Receipts:      f.receipts,
		Subscriptions: f.subscriptions,
		Merchants:     f.merchants,
		Email:         f.email,
	})
	return f
}

func publicConfig(id string, checkoutType configdomain.CheckoutType, productIDs ...string) *configdomain.PublicConfig {
	return &configdomain.PublicConfig{
		Response: configdomain.Response{
			ID:           id,
			MerchantID:   "500",
			Name:         "Checkout",
			Slug:         "checkout",
			Products:     productIDs,
			CheckoutType: checkoutType,
			Active:       true,
		},
		Merchant: configdomain.PublicMerchant{ID: "500", BusinessName: "Test Shop"},
	}
}

func buyerContact(email string) session.Contact {
	return session.Contact{Email: email, FirstName: "Ada", LastName: "Lovelace"}
}

func catalogProduct(id int64, price float64, active bool) productdomain.Product {
	return productdomain.Product{
		ID:       snowflake.ID(id),
		Name:     "Product " + snowflake.ID(id).String(),
		Price:    price,
		Currency: "USDC",
		Type:     productdomain.TypeDigitalProduct,
		Active:   active,
	}
}

func TestResolveFiltersInactiveAndUnreferencedProducts(t *testing.T) {
	p1 := catalogProduct(1, 10, true)
	p2 := catalogProduct(2, 5, false)
	p3 := catalogProduct(3, 99, true) // not referenced

	f := newFixture(map[string]*configdomain.PublicConfig{
		"10": publicConfig("10", configdomain.CheckoutOneTime, "1", "2"),
	}, []productdomain.Product{p1, p2, p3})

	resolved, err := f.svc.Resolve(context.Background(), configdomain.PublicKey{ID: "10"})
	require.NoError(t, err)

	require.Len(t, resolved.Products, 1)
	assert.Equal(t, "1", resolved.Products[0].ID)
	assert.Equal(t, 10.0, resolved.Quote.Total)
	assert.Equal(t, "USDC", resolved.Quote.Currency)
}

func TestResolveMissingConfigReturnsNotFound(t *testing.T) {
	f := newFixture(map[string]*configdomain.PublicConfig{}, nil)

	_, err := f.svc.Resolve(context.Background(), configdomain.PublicKey{ID: "999"})
	assert.ErrorIs(t, err, configdomain.ErrNotFound)
}

func TestResolveStorageFailureReadsAsUpstreamOutage(t *testing.T) {
	f := newFixture(map[string]*configdomain.PublicConfig{
		"10": publicConfig("10", configdomain.CheckoutOneTime, "1"),
	}, []productdomain.Product{catalogProduct(1, 10, true)})
	f.configs.publicErr = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

	_, err := f.svc.Resolve(context.Background(), configdomain.PublicKey{ID: "10"})
	assert.ErrorIs(t, err, checkoutdomain.ErrUpstream)

	// A missing record is still a plain not-found, never an outage.
	f.configs.publicErr = nil
	_, err = f.svc.Resolve(context.Background(), configdomain.PublicKey{ID: "999"})
	assert.ErrorIs(t, err, configdomain.ErrNotFound)
	assert.NotErrorIs(t, err, checkoutdomain.ErrUpstream)
}

func TestSubmitInvalidEmailNeverInvokesProcessor(t *testing.T) {
	f := newFixture(map[string]*configdomain.PublicConfig{
		"10": publicConfig("10", configdomain.CheckoutOneTime, "1"),
	}, []productdomain.Product{catalogProduct(1, 10, true)})

	for _, badEmail := range []string{"bad", "a@b", "", "a b@c.co"} {
		_, err := f.svc.Submit(context.Background(), checkoutdomain.SubmitRequest{
			CheckoutID: "10",
			Contact:    buyerContact(badEmail),
		})

		var vErr *checkoutdomain.ValidationError
		assert.ErrorAs(t, err, &vErr, badEmail)
	}
	assert.Zero(t, f.processor.calls)
	assert.Empty(t, f.receipts.issued)
}

func TestSubmitMissingNameNeverInvokesProcessor(t *testing.T) {
	f := newFixture(map[string]*configdomain.PublicConfig{
		"10": publicConfig("10", configdomain.CheckoutOneTime, "1"),
	}, []productdomain.Product{catalogProduct(1, 10, true)})

	_, err := f.svc.Submit(context.Background(), checkoutdomain.SubmitRequest{
		CheckoutID: "10",
		Contact:    session.Contact{Email: "buyer@example.com"},
	})

	var vErr *checkoutdomain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "first_name")
	assert.Contains(t, vErr.Fields, "last_name")
	assert.Zero(t, f.processor.calls)
	assert.Empty(t, f.receipts.issued)
}

func TestSubmitSettlesAndIssuesReceipts(t *testing.T) {
	f := newFixture(map[string]*configdomain.PublicConfig{
		"10": publicConfig("10", configdomain.CheckoutOneTime, "1", "2"),
	}, []productdomain.Product{
		catalogProduct(1, 10, true),
		catalogProduct(2, 5, true),
	})

	result, err := f.svc.Submit(context.Background(), checkoutdomain.SubmitRequest{
		CheckoutID: "10",
		Contact:    buyerContact("buyer@example.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, session.Success, result.State)
	assert.Equal(t, 15.0, result.Total)
	assert.Equal(t, "15.00", result.Display)
	assert.Len(t, result.ReceiptIDs, 2)
	assert.Equal(t, 1, f.processor.calls)
	assert.Len(t, f.receipts.issued, 2)
	assert.Equal(t, 2, f.products.saleCalls)
	assert.Equal(t, []float64{15}, f.merchants.sales)
	assert.Empty(t, f.subscriptions.started)
	require.Len(t, f.email.sent, 1)
	assert.Equal(t, "buyer@example.com", f.email.sent[0].To)
}

func TestSubmitSubscriptionCheckoutOpensSubscriptions(t *testing.T) {
	sub := 7.0
	p1 := catalogProduct(1, 10, true)
	p1.SubscriptionPrice = &sub
	monthly := "monthly"
	p1.SubscriptionInterval = &monthly

	f := newFixture(map[string]*configdomain.PublicConfig{
		"10": publicConfig("10", configdomain.CheckoutSubscription, "1"),
	}, []productdomain.Product{p1})

	result, err := f.svc.Submit(context.Background(), checkoutdomain.SubmitRequest{
		CheckoutID: "10",
		Contact:    buyerContact("buyer@example.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, 7.0, result.Total)
	require.Len(t, f.subscriptions.started, 1)
	assert.Equal(t, 7.0, f.subscriptions.started[0].Amount)
	assert.Equal(t, int64(2592000), f.subscriptions.started[0].IntervalSeconds)
	require.Len(t, f.receipts.issued, 1)
	assert.True(t, f.receipts.issued[0].IsSubscription)
}

func TestSubmitPaymentFailureHasNoSideEffects(t *testing.T) {
	f := newFixture(map[string]*configdomain.PublicConfig{
		"10": publicConfig("10", configdomain.CheckoutOneTime, "1"),
	}, []productdomain.Product{catalogProduct(1, 10, true)})
	f.processor.succeeds = false

	_, err := f.svc.Submit(context.Background(), checkoutdomain.SubmitRequest{
		CheckoutID: "10",
		Contact:    buyerContact("buyer@example.com"),
	})

	assert.ErrorIs(t, err, checkoutdomain.ErrPaymentFailed)
	assert.Empty(t, f.receipts.issued)
	assert.Empty(t, f.merchants.sales)
	assert.Zero(t, f.products.saleCalls)
	assert.Empty(t, f.email.sent)
}

func TestSubmitEmptyCheckoutRejected(t *testing.T) {
	f := newFixture(map[string]*configdomain.PublicConfig{
		"10": publicConfig("10", configdomain.CheckoutOneTime, "1"),
	}, []productdomain.Product{catalogProduct(1, 10, false)})

	_, err := f.svc.Submit(context.Background(), checkoutdomain.SubmitRequest{
		CheckoutID: "10",
		Contact:    buyerContact("buyer@example.com"),
	})

	assert.ErrorIs(t, err, checkoutdomain.ErrEmptyCheckout)
	assert.Zero(t, f.processor.calls)
}

func TestQuoteHonorsQuantitySelection(t *testing.T) {
	cfg := publicConfig("10", configdomain.CheckoutOneTime, "1")
	cfg.Customizations.AllowQuantitySelection = true

	f := newFixture(map[string]*configdomain.PublicConfig{"10": cfg},
		[]productdomain.Product{catalogProduct(1, 10, true)})

	quote, err := f.svc.Quote(context.Background(), "10", map[string]int{"1": 4})
	require.NoError(t, err)
	assert.Equal(t, 40.0, quote.Total)

	// Floor-clamped client quantities.
	quote, err = f.svc.Quote(context.Background(), "10", map[string]int{"1": -2})
	require.NoError(t, err)
	assert.Equal(t, 10.0, quote.Total)
}
