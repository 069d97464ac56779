package product

import (
	"github.com/elzapay/elza/internal/product/repository"
	"github.com/elzapay/elza/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
