package payment

import (
	"github.com/elzapay/elza/internal/payment/simulated"
	"go.uber.org/fx"
)

var Module = fx.Module("payment",
	fx.Provide(simulated.New),
)
