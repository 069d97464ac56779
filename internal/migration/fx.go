package migration

import (
	checkoutconfigdomain "github.com/elzapay/elza/internal/checkoutconfig/domain"
	"github.com/elzapay/elza/internal/config"
	customerdomain "github.com/elzapay/elza/internal/customer/domain"
	merchantdomain "github.com/elzapay/elza/internal/merchant/domain"
	productdomain "github.com/elzapay/elza/internal/product/domain"
	receiptdomain "github.com/elzapay/elza/internal/receipt/domain"
	subscriptiondomain "github.com/elzapay/elza/internal/subscription/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations cover the primary postgres deployment;
		// other dialects (sqlite for local runs) sync the schema directly.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&merchantdomain.Merchant{},
				&productdomain.Product{},
				&checkoutconfigdomain.CheckoutConfig{},
				&customerdomain.Customer{},
				&subscriptiondomain.Subscription{},
				&receiptdomain.Receipt{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
