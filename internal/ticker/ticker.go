// Package ticker periodically pushes registry totals to connected
// WebSocket clients so dashboards can stay current without polling.
package ticker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/callscope/backend/internal/dataset"
	"github.com/callscope/backend/internal/progress"
)

// Ticker broadcasts registry snapshots to the hub at a fixed interval
type Ticker struct {
	hub      *progress.Hub
	registry *dataset.Registry
	interval time.Duration
	logger   zerolog.Logger
}

// NewTicker creates a new Ticker
func NewTicker(hub *progress.Hub, registry *dataset.Registry, interval time.Duration, logger zerolog.Logger) *Ticker {
	return &Ticker{
		hub:      hub,
		registry: registry,
		interval: interval,
		logger:   logger,
	}
}

// Start begins broadcasting registry snapshots
func (t *Ticker) Start(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info().Dur("interval", t.interval).Msg("ticker started")

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("ticker stopped")
			return

		case <-ticker.C:
			stats := t.registry.Stats()
			t.hub.BroadcastEvent(progress.EventRegistrySnapshot, progress.RegistrySnapshot{
				Datasets: stats.Datasets,
				Records:  stats.Records,
			})
			t.logger.Debug().
				Int("datasets", stats.Datasets).
				Int("records", stats.Records).
				Int("clients", t.hub.ClientCount()).
				Msg("broadcasted registry snapshot")
		}
	}
}
