package customer

import (
	"github.com/elzapay/elza/internal/customer/repository"
	"github.com/elzapay/elza/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
