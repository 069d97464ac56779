package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elzapay/elza/internal/auth"
	authdomain "github.com/elzapay/elza/internal/auth/domain"
	"github.com/elzapay/elza/internal/checkout"
	checkoutdomain "github.com/elzapay/elza/internal/checkout/domain"
	"github.com/elzapay/elza/internal/checkoutconfig"
	checkoutconfigdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	"github.com/elzapay/elza/internal/config"
	"github.com/elzapay/elza/internal/customer"
	customerdomain "github.com/elzapay/elza/internal/customer/domain"
	"github.com/elzapay/elza/internal/dashboard"
	dashboarddomain "github.com/elzapay/elza/internal/dashboard/domain"
	"github.com/elzapay/elza/internal/merchant"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	"github.com/elzapay/elza/internal/payment"
	"github.com/elzapay/elza/internal/product"
	productdomain "github.com/elzapay/elza/internal/product/domain"
	"github.com/elzapay/elza/internal/providers/email"
	"github.com/elzapay/elza/internal/receipt"
	receiptdomain "github.com/elzapay/elza/internal/receipt/domain"
	"github.com/elzapay/elza/internal/subscription"
	subscriptiondomain "github.com/elzapay/elza/internal/subscription/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	merchant.Module,
	product.Module,
	checkoutconfig.Module,
	customer.Module,
	subscription.Module,
	receipt.Module,
	dashboard.Module,
	payment.Module,
	email.Module,
	checkout.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin() *gin.Engine {
	return NewEngine()
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine            *gin.Engine
	cfg               config.Config
	authSvc           authdomain.Service
	merchantSvc       merchantdomain.Service
	productSvc        productdomain.Service
	checkoutConfigSvc checkoutconfigdomain.Service
	checkoutSvc       checkoutdomain.Service
	customerSvc       customerdomain.Service
	subscriptionSvc   subscriptiondomain.Service
	receiptSvc        receiptdomain.Service
	dashboardSvc      dashboarddomain.Service
}

type ServerParams struct {
	fx.In

	Gin               *gin.Engine
	Cfg               config.Config
	AuthSvc           authdomain.Service
	MerchantSvc       merchantdomain.Service
	ProductSvc        productdomain.Service
	CheckoutConfigSvc checkoutconfigdomain.Service
	CheckoutSvc       checkoutdomain.Service
	CustomerSvc       customerdomain.Service
	SubscriptionSvc   subscriptiondomain.Service
	ReceiptSvc        receiptdomain.Service
	DashboardSvc      dashboarddomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:            p.Gin,
		cfg:               p.Cfg,
		authSvc:           p.AuthSvc,
		merchantSvc:       p.MerchantSvc,
		productSvc:        p.ProductSvc,
		checkoutConfigSvc: p.CheckoutConfigSvc,
		checkoutSvc:       p.CheckoutSvc,
		customerSvc:       p.CustomerSvc,
		subscriptionSvc:   p.SubscriptionSvc,
		receiptSvc:        p.ReceiptSvc,
		dashboardSvc:      p.DashboardSvc,
	}

	svc.registerAuthRoutes()
	svc.registerAdminRoutes()
	svc.registerPublicRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/v1/auth")

	auth.POST("/wallet", s.ConnectWallet)
	auth.GET("/me", s.AuthRequired(), s.GetProfile)
	auth.PATCH("/me", s.AuthRequired(), s.UpdateProfile)
}

func (s *Server) registerAdminRoutes() {
	v1 := s.engine.Group("/v1", s.AuthRequired())

	products := v1.Group("/products")
	products.POST("", s.CreateProduct)
	products.GET("", s.ListProducts)
	products.GET("/:id", s.GetProduct)
	products.PATCH("/:id", s.UpdateProduct)
	products.DELETE("/:id", s.ArchiveProduct)

	configs := v1.Group("/checkout-configs")
	configs.POST("", s.CreateCheckoutConfig)
	configs.GET("", s.ListCheckoutConfigs)
	configs.GET("/slug-availability", s.CheckSlugAvailability)
	configs.GET("/:id", s.GetCheckoutConfig)
	configs.PATCH("/:id", s.UpdateCheckoutConfig)
	configs.DELETE("/:id", s.DeleteCheckoutConfig)

	customers := v1.Group("/customers")
	customers.GET("", s.ListCustomers)
	customers.GET("/:id", s.GetCustomer)

	subscriptions := v1.Group("/subscriptions")
	subscriptions.GET("", s.ListSubscriptions)
	subscriptions.GET("/:id", s.GetSubscription)
	subscriptions.POST("/:id/pause", s.PauseSubscription)
	subscriptions.POST("/:id/resume", s.ResumeSubscription)
	subscriptions.POST("/:id/cancel", s.CancelSubscription)

	receipts := v1.Group("/receipts")
	receipts.GET("", s.ListReceipts)
	receipts.GET("/:id", s.GetReceipt)

	dash := v1.Group("/dashboard")
	dash.GET("/stats", s.DashboardStats)
	dash.GET("/products", s.DashboardProducts)
	dash.GET("/transactions", s.DashboardTransactions)
}

func (s *Server) registerPublicRoutes() {
	pub := s.engine.Group("/checkout/public")

	pub.GET("/slug/:slug", s.ResolveCheckoutBySlug)
	pub.GET("/domain/:domain", s.ResolveCheckoutByDomain)
	pub.GET("/:id", s.ResolveCheckoutByID)
	pub.POST("/:id/quote", s.QuoteCheckout)
	pub.POST("/:id/pay", s.SubmitCheckout)
}
