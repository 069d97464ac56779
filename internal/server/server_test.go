package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/elzapay/elza/internal/auth/domain"
	checkoutdomain "github.com/elzapay/elza/internal/checkout/domain"
	"github.com/elzapay/elza/internal/checkout/pricing"
	"github.com/elzapay/elza/internal/checkout/session"
	checkoutconfigdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	"github.com/elzapay/elza/internal/config"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	"github.com/elzapay/elza/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthService struct {
	session    *authdomain.Session
	connectErr error
	merchantID snowflake.ID
	authErr    error
}

func (f *fakeAuthService) Connect(ctx context.Context, walletAddress string) (*authdomain.Session, error) {
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return f.session, nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, token string) (snowflake.ID, error) {
	if f.authErr != nil {
		return 0, f.authErr
	}
	return f.merchantID, nil
}

type fakeCheckoutService struct {
	resolved   *checkoutdomain.ResolvedCheckout
	resolveErr error
	resolvedBy checkoutconfigdomain.PublicKey

	quote      *pricing.Quote
	quoteErr   error
	quantities map[string]int

	submitResult *checkoutdomain.SubmitResult
	submitErr    error
	submitted    *checkoutdomain.SubmitRequest
}

func (f *fakeCheckoutService) Resolve(ctx context.Context, key checkoutconfigdomain.PublicKey) (*checkoutdomain.ResolvedCheckout, error) {
	f.resolvedBy = key
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.resolved, nil
}

func (f *fakeCheckoutService) Quote(ctx context.Context, checkoutID string, quantities map[string]int) (*pricing.Quote, error) {
	f.quantities = quantities
	if f.quoteErr != nil {
		return nil, f.quoteErr
	}
	return f.quote, nil
}

func (f *fakeCheckoutService) Submit(ctx context.Context, req checkoutdomain.SubmitRequest) (*checkoutdomain.SubmitResult, error) {
	f.submitted = &req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submitResult, nil
}

type fakeMerchantService struct {
	profile *merchantdomain.Profile
}

func (f *fakeMerchantService) FindOrCreateByWallet(ctx context.Context, walletAddress string) (*merchantdomain.Merchant, error) {
	return nil, merchantdomain.ErrInvalidWallet
}

func (f *fakeMerchantService) GetProfile(ctx context.Context, id snowflake.ID) (*merchantdomain.Profile, error) {
	if f.profile == nil {
		return nil, merchantdomain.ErrNotFound
	}
	return f.profile, nil
}

func (f *fakeMerchantService) UpdateProfile(ctx context.Context, id snowflake.ID, req merchantdomain.UpdateProfileRequest) (*merchantdomain.Profile, error) {
	return f.profile, nil
}

func (f *fakeMerchantService) RecordSale(ctx context.Context, id snowflake.ID, amount float64, newCustomer bool) error {
	return nil
}

type testServer struct {
	engine   *gin.Engine
	auth     *fakeAuthService
	checkout *fakeCheckoutService
	merchant *fakeMerchantService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		engine:   server.NewEngine(),
		auth:     &fakeAuthService{merchantID: 42},
		checkout: &fakeCheckoutService{},
		merchant: &fakeMerchantService{},
	}

	server.NewServer(server.ServerParams{
		Gin:         ts.engine,
		Cfg:         config.Config{},
		AuthSvc:     ts.auth,
		MerchantSvc: ts.merchant,
		CheckoutSvc: ts.checkout,
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorPart(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	part, ok := decodeBody(t, w)["error"].(map[string]any)
	require.True(t, ok, w.Body.String())
	return part
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestConnectWalletReturnsSession(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.session = &authdomain.Session{
		Token:         "jwt-token",
		MerchantID:    "42",
		WalletAddress: "wallet-abc",
	}

	w := ts.do(t, http.MethodPost, "/v1/auth/wallet", `{"wallet_address":"wallet-abc"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := decodeBody(t, w)["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jwt-token", data["token"])
	assert.Equal(t, "42", data["merchant_id"])
}

func TestConnectWalletRejectsEmptyWallet(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.connectErr = authdomain.ErrInvalidWallet

	w := ts.do(t, http.MethodPost, "/v1/auth/wallet", `{"wallet_address":""}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", errorPart(t, w)["type"])
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", errorPart(t, w)["type"])
}

func TestAuthRequiredRejectsBadToken(t *testing.T) {
	ts := newTestServer(t)
	ts.auth.authErr = authdomain.ErrInvalidToken

	w := ts.do(t, http.MethodGet, "/v1/auth/me", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfilePassesAuthenticatedMerchant(t *testing.T) {
	ts := newTestServer(t)
	ts.merchant.profile = &merchantdomain.Profile{
		ID:            "42",
		WalletAddress: "wallet-abc",
		IsOnboarded:   true,
	}

	w := ts.do(t, http.MethodGet, "/v1/auth/me", "", "valid-token")
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := decodeBody(t, w)["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["is_onboarded"])
}

func TestResolveCheckoutNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.checkout.resolveErr = checkoutdomain.ErrNotFound

	w := ts.do(t, http.MethodGet, "/checkout/public/slug/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", errorPart(t, w)["type"])
	assert.Equal(t, "missing", ts.checkout.resolvedBy.Slug)
}

func TestResolveCheckoutUpstreamFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.checkout.resolveErr = fmt.Errorf("%w: connection refused", checkoutdomain.ErrUpstream)

	w := ts.do(t, http.MethodGet, "/checkout/public/10", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "service_unavailable", errorPart(t, w)["type"])
}

func TestResolveCheckoutByDomainAndID(t *testing.T) {
	ts := newTestServer(t)
	ts.checkout.resolved = &checkoutdomain.ResolvedCheckout{
		Config: checkoutconfigdomain.PublicConfig{
			Response: checkoutconfigdomain.Response{ID: "10", Name: "Store"},
		},
		Quote: pricing.Quote{Currency: "USDC"},
	}

	w := ts.do(t, http.MethodGet, "/checkout/public/domain/shop.example.com", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shop.example.com", ts.checkout.resolvedBy.Domain)

	w = ts.do(t, http.MethodGet, "/checkout/public/10", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10", ts.checkout.resolvedBy.ID)

	data, ok := decodeBody(t, w)["data"].(map[string]any)
	require.True(t, ok)
	cfg, ok := data["config"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Store", cfg["name"])
}

func TestQuoteCheckoutForwardsQuantities(t *testing.T) {
	ts := newTestServer(t)
	ts.checkout.quote = &pricing.Quote{Total: 30, Currency: "USDC"}

	w := ts.do(t, http.MethodPost, "/checkout/public/10/quote", `{"quantities":{"800":3}}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{"800": 3}, ts.checkout.quantities)
}

func TestSubmitCheckoutValidationFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.checkout.submitErr = &checkoutdomain.ValidationError{
		Fields: map[string]string{"email": "enter a valid email address"},
	}

	w := ts.do(t, http.MethodPost, "/checkout/public/10/pay", `{"email":"a@b"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	part := errorPart(t, w)
	assert.Equal(t, "validation_error", part["type"])
	fields, ok := part["errors"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	first, ok := fields[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "email", first["field"])
	assert.Equal(t, "invalid_email", first["code"])
}

func TestSubmitCheckoutPaymentFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.checkout.submitErr = checkoutdomain.ErrPaymentFailed

	w := ts.do(t, http.MethodPost, "/checkout/public/10/pay", `{"email":"a@b.co"}`, "")
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "payment_failure", errorPart(t, w)["type"])
}

func TestSubmitCheckoutSuccess(t *testing.T) {
	ts := newTestServer(t)
	ts.checkout.submitResult = &checkoutdomain.SubmitResult{
		State:      session.Success,
		ReceiptIDs: []string{"r-1"},
		Total:      15,
		Display:    "15.00",
		Currency:   "USDC",
		Reference:  "tx-1",
	}

	body := `{"email":" buyer@example.com ","first_name":"Ada","last_name":"Lovelace","quantities":{"800":2}}`
	w := ts.do(t, http.MethodPost, "/checkout/public/10/pay", body, "")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, ts.checkout.submitted)
	assert.Equal(t, "10", ts.checkout.submitted.CheckoutID)
	// Contact fields arrive trimmed.
	assert.Equal(t, "buyer@example.com", ts.checkout.submitted.Contact.Email)
	assert.Equal(t, map[string]int{"800": 2}, ts.checkout.submitted.Quantities)

	data, ok := decodeBody(t, w)["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "15.00", data["display_total"])
}
