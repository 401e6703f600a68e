package worker

import (
	"context"
	"log"
	"time"

	"github.com/agriverse/storefront-gateway/internal/checkout"
	"github.com/agriverse/storefront-gateway/internal/payment"
)

// ReconciliationWorker sweeps checkout attempts the payment widget never
// reported back on. The gateway's answer is the source of truth: a paid
// attempt is captured and confirmed as if the callback had arrived, an
// unpaid one is failed so it stops occupying the registry as live.
type ReconciliationWorker struct {
	orch         *checkout.Orchestrator
	gateway      payment.Gateway
	interval     time.Duration
	abandonAfter time.Duration
}

func NewReconciliationWorker(orch *checkout.Orchestrator, gateway payment.Gateway, interval, abandonAfter time.Duration) *ReconciliationWorker {
	return &ReconciliationWorker{
		orch:         orch,
		gateway:      gateway,
		interval:     interval,
		abandonAfter: abandonAfter,
	}
}

func (w *ReconciliationWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Println("reconciliation worker started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Process(ctx)
		}
	}
}

// Process is one sweep. Errors on individual attempts are logged and the
// attempt left for the next pass.
func (w *ReconciliationWorker) Process(ctx context.Context) {
	stuck := w.orch.Stuck(w.abandonAfter)
	if len(stuck) == 0 {
		return
	}

	log.Printf("found %d checkout(s) stuck at the gateway", len(stuck))
	for _, a := range stuck {
		if err := w.orch.SettleStuck(ctx, a, w.gateway); err != nil {
			log.Printf("could not settle checkout %s: %v", a.ID, err)
		}
	}
}
