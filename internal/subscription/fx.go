package subscription

import (
	"github.com/elzapay/elza/internal/subscription/repository"
	"github.com/elzapay/elza/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
