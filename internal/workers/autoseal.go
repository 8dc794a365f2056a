package workers

import (
	"context"
	"time"

	"github.com/Mixik7/moltis/internal/logger"
)

// Sealable is the slice of the vault the watchdog needs: idle time
// observation and the seal transition.
type Sealable interface {
	IsUnsealed() bool
	IdleSince() time.Duration
	Seal()
}

// AutoSealWorker seals the vault after a configured idle period, limiting
// how long the DEK stays in memory on an abandoned host.
type AutoSealWorker struct {
	vault       Sealable
	idleTimeout time.Duration
	interval    time.Duration
	logger      *logger.Logger
	ctx         context.Context
}

// NewAutoSealWorker constructs the watchdog. A zero idleTimeout disables
// it: Run returns immediately.
func NewAutoSealWorker(ctx context.Context, vault Sealable, idleTimeout time.Duration, log *logger.Logger) *AutoSealWorker {
	return &AutoSealWorker{
		vault:       vault,
		idleTimeout: idleTimeout,
		interval:    idleTimeout / 4,
		logger:      log,
		ctx:         ctx,
	}
}

// Run implements [Worker]. It polls the vault's idle clock and seals once
// the timeout elapses, then keeps watching for the next unseal.
func (w *AutoSealWorker) Run() {
	if w.idleTimeout <= 0 {
		w.logger.Debug().Msg("auto-seal disabled")
		return
	}

	interval := w.interval
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info().Dur("idle_timeout", w.idleTimeout).Msg("auto-seal watchdog started")
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if w.vault.IsUnsealed() && w.vault.IdleSince() >= w.idleTimeout {
				w.logger.Info().Dur("idle", w.vault.IdleSince()).Msg("idle timeout reached, sealing vault")
				w.vault.Seal()
			}
		}
	}
}
