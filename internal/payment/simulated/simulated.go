package simulated

import (
	"context"
	"math/rand"

	"github.com/elzapay/elza/internal/config"
	"github.com/elzapay/elza/internal/payment/domain"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

// Processor simulates settlement: it waits out the configured delay and
// succeeds unless the configured failure rate fires.
type Processor struct {
	cfg config.PaymentConfig
	log *zap.Logger
}

func New(p Params) domain.Processor {
	return &Processor{
		cfg: p.Config.Payment,
		log: p.Log.Named("payment.simulated"),
	}
}

func (p *Processor) Submit(ctx context.Context, req domain.SubmitRequest) (*domain.Result, error) {
	timer := newTimer(p.cfg.SettleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	if p.cfg.FailureRate > 0 && rand.Float64() < p.cfg.FailureRate {
		p.log.Warn("payment declined",
			zap.String("checkout_id", req.CheckoutID),
			zap.Float64("amount", req.Amount),
		)
		return &domain.Result{Succeeded: false}, nil
	}

	result := &domain.Result{
		Succeeded: true,
		Reference: uuid.NewString(),
	}
	p.log.Info("payment settled",
		zap.String("checkout_id", req.CheckoutID),
		zap.Float64("amount", req.Amount),
		zap.String("reference", result.Reference),
	)
	return result, nil
}
