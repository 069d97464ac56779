package service_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	merchantrepo "github.com/elzapay/elza/internal/merchant/repository"
	merchantservice "github.com/elzapay/elza/internal/merchant/service"
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
	require.NoError(t, db.AutoMigrate(&merchantdomain.Merchant{}))
	return db
}

func newService(t *testing.T, db *gorm.DB) merchantdomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(3)
	require.NoError(t, err)

	return merchantservice.New(merchantservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  merchantrepo.Provide(),
	})
}

func TestFindOrCreateByWalletCreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	first, err := svc.FindOrCreateByWallet(ctx, "wallet-abc")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.FindOrCreateByWallet(ctx, " wallet-abc ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&merchantdomain.Merchant{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindOrCreateByWalletRejectsEmpty(t *testing.T) {
	svc := newService(t, setupTestDB(t))

	_, err := svc.FindOrCreateByWallet(context.Background(), "  ")
	assert.ErrorIs(t, err, merchantdomain.ErrInvalidWallet)
}

func TestProfileOnboardingFlag(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	m, err := svc.FindOrCreateByWallet(ctx, "wallet-abc")
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsOnboarded)

	email := "owner@example.com"
	first := "Ada"
	last := "Lovelace"
	business := "Ada Digital"
	profile, err = svc.UpdateProfile(ctx, m.ID, merchantdomain.UpdateProfileRequest{
		Email:        &email,
		FirstName:    &first,
		LastName:     &last,
		BusinessName: &business,
	})
	require.NoError(t, err)

	assert.True(t, profile.IsOnboarded)
	assert.Equal(t, "Ada Digital", profile.Merchant.BusinessName)
}

func TestGetProfileUnknownMerchant(t *testing.T) {
	svc := newService(t, setupTestDB(t))

	_, err := svc.GetProfile(context.Background(), snowflake.ID(12345))
	assert.ErrorIs(t, err, merchantdomain.ErrNotFound)
}

func TestRecordSaleBumpsCounters(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(t, db)
	ctx := context.Background()

	m, err := svc.FindOrCreateByWallet(ctx, "wallet-abc")
	require.NoError(t, err)

	require.NoError(t, svc.RecordSale(ctx, m.ID, 15, true))
	require.NoError(t, svc.RecordSale(ctx, m.ID, 5, false))

	var stored merchantdomain.Merchant
	require.NoError(t, db.First(&stored, "id = ?", m.ID).Error)
	assert.Equal(t, 20.0, stored.TotalRevenue)
	assert.Equal(t, int64(1), stored.TotalCustomers)
}
