package receipt

import (
	"github.com/elzapay/elza/internal/receipt/repository"
	"github.com/elzapay/elza/internal/receipt/service"
	"go.uber.org/fx"
)

var Module = fx.Module("receipt.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
