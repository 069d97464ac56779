package merchant

import (
	"github.com/elzapay/elza/internal/merchant/repository"
	"github.com/elzapay/elza/internal/merchant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("merchant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
