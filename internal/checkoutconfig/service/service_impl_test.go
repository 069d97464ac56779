package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	configdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	configrepo "github.com/elzapay/elza/internal/checkoutconfig/repository"
	configservice "github.com/elzapay/elza/internal/checkoutconfig/service"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	merchantrepo "github.com/elzapay/elza/internal/merchant/repository"
	"github.com/elzapay/elza/internal/merchantctx"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&merchantdomain.Merchant{},
		&configdomain.CheckoutConfig{},
	))
	return db
}

func newService(t *testing.T, db *gorm.DB) configdomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(7)
	require.NoError(t, err)

	return configservice.New(configservice.Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         configrepo.Provide(),
		MerchantRepo: merchantrepo.Provide(),
	})
}

func seedMerchant(t *testing.T, db *gorm.DB, id int64) *merchantdomain.Merchant {
	t.Helper()

	m := &merchantdomain.Merchant{
		ID:            snowflake.ID(id),
		WalletAddress: "wallet-" + snowflake.ID(id).String(),
		BusinessName:  "Test Shop",
		Active:        true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func merchantContext(id int64) context.Context {
	return merchantctx.WithMerchantID(context.Background(), id)
}

func TestCreateGeneratesSlugFromName(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	seedMerchant(t, db, 100)

	resp, err := svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "My Summer Course!",
		CheckoutType: "one_time",
	})
	require.NoError(t, err)

	assert.Equal(t, "my-summer-course", resp.Slug)
	assert.True(t, resp.Active)
}

func TestCreateTruncatesLongSlugs(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	seedMerchant(t, db, 100)

	resp, err := svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         strings.Repeat("very long name ", 10),
		CheckoutType: "one_time",
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(resp.Slug), 50)
	assert.False(t, strings.HasSuffix(resp.Slug, "-"))
}

func TestCreateRejectsTakenSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	seedMerchant(t, db, 100)

	slug := "shared-slug"
	_, err := svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "First",
		Slug:         &slug,
		CheckoutType: "one_time",
	})
	require.NoError(t, err)

	_, err = svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "Second",
		Slug:         &slug,
		CheckoutType: "one_time",
	})
	assert.ErrorIs(t, err, configdomain.ErrSlugTaken)
}

func TestCreateValidatesSlugAndDomain(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	seedMerchant(t, db, 100)

	badSlug := "Bad Slug!"
	_, err := svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "Checkout",
		Slug:         &badSlug,
		CheckoutType: "one_time",
	})
	assert.ErrorIs(t, err, configdomain.ErrInvalidSlug)

	badDomain := "not a domain"
	_, err = svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "Checkout",
		CustomDomain: &badDomain,
		CheckoutType: "one_time",
	})
	assert.ErrorIs(t, err, configdomain.ErrInvalidDomain)

	_, err = svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "Checkout",
		CheckoutType: "weekly",
	})
	assert.ErrorIs(t, err, configdomain.ErrInvalidType)
}

func TestSlugAvailable(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	seedMerchant(t, db, 100)

	taken := "taken-slug"
	created, err := svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "Checkout",
		Slug:         &taken,
		CheckoutType: "one_time",
	})
	require.NoError(t, err)

	available, err := svc.SlugAvailable(context.Background(), "taken-slug", "")
	require.NoError(t, err)
	assert.False(t, available)

	// The owning config may keep its own slug on update.
	available, err = svc.SlugAvailable(context.Background(), "taken-slug", created.ID)
	require.NoError(t, err)
	assert.True(t, available)

	available, err = svc.SlugAvailable(context.Background(), "free-slug", "")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestPublicLookupBySlugAndDomain(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	seedMerchant(t, db, 100)

	domain := "shop.example.com"
	created, err := svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "Storefront",
		CustomDomain: &domain,
		Products:     []string{"1", "2"},
		CheckoutType: "one_time",
	})
	require.NoError(t, err)

	bySlug, err := svc.Public(context.Background(), configdomain.PublicKey{Slug: created.Slug})
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)
	assert.Equal(t, "Test Shop", bySlug.Merchant.BusinessName)

	byDomain, err := svc.Public(context.Background(), configdomain.PublicKey{Domain: domain})
	require.NoError(t, err)
	assert.Equal(t, created.ID, byDomain.ID)

	byID, err := svc.Public(context.Background(), configdomain.PublicKey{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)
}

func TestPublicHidesInactiveConfigs(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	seedMerchant(t, db, 100)

	inactive := false
	created, err := svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "Hidden",
		CheckoutType: "one_time",
		Active:       &inactive,
	})
	require.NoError(t, err)

	_, err = svc.Public(context.Background(), configdomain.PublicKey{ID: created.ID})
	assert.ErrorIs(t, err, configdomain.ErrNotFound)

	_, err = svc.Public(context.Background(), configdomain.PublicKey{Slug: created.Slug})
	assert.ErrorIs(t, err, configdomain.ErrNotFound)

	// Missing configurations report identically.
	_, err = svc.Public(context.Background(), configdomain.PublicKey{Slug: "does-not-exist"})
	assert.ErrorIs(t, err, configdomain.ErrNotFound)
}

func TestUpdateAndDeleteScopedToMerchant(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	seedMerchant(t, db, 100)
	seedMerchant(t, db, 200)

	created, err := svc.Create(merchantContext(100), configdomain.CreateRequest{
		Name:         "Mine",
		CheckoutType: "one_time",
	})
	require.NoError(t, err)

	_, err = svc.Get(merchantContext(200), created.ID)
	assert.ErrorIs(t, err, configdomain.ErrNotFound)

	name := "Renamed"
	updated, err := svc.Update(merchantContext(100), configdomain.UpdateRequest{
		ID:   created.ID,
		Name: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	require.NoError(t, svc.Delete(merchantContext(100), created.ID))

	_, err = svc.Get(merchantContext(100), created.ID)
	assert.ErrorIs(t, err, configdomain.ErrNotFound)
}
