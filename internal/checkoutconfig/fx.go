package checkoutconfig

import (
	"github.com/elzapay/elza/internal/checkoutconfig/repository"
	"github.com/elzapay/elza/internal/checkoutconfig/service"
	"go.uber.org/fx"
)

var Module = fx.Module("checkoutconfig.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
