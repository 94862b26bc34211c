package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coinwatchbot/coinwatch/internal/domain"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Watcher drives the poll cycle: read every alert, fetch one deduplicated
// price batch, evaluate thresholds, notify and retire what triggered.
type Watcher struct {
	alerts   domain.AlertRepository
	source   domain.PriceSource
	notifier domain.Notifier
	interval time.Duration
	logger   *zap.Logger
}

func NewWatcher(alerts domain.AlertRepository, source domain.PriceSource, notifier domain.Notifier, interval time.Duration, logger *zap.Logger) *Watcher {
	return &Watcher{
		alerts:   alerts,
		source:   source,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Run executes poll cycles on a fixed interval until ctx is cancelled.
// Cycles run sequentially on this goroutine; a tick that fires while a
// cycle is still in flight is dropped, never run in parallel with it.
func (w *Watcher) Run(ctx context.Context) {
	w.logger.Info("watcher started", zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return
		case <-ticker.C:
			if err := w.RunCycle(ctx); err != nil {
				w.logger.Warn("poll cycle skipped", zap.Error(err))
			}
		}
	}
}

// RunCycle performs one fetch-evaluate-retire pass. A fetch failure aborts
// the whole cycle before any alert is evaluated, so no alert can be lost to
// a transient quote outage. An alert whose coin is absent from the fetched
// batch is left untouched for the next cycle.
func (w *Watcher) RunCycle(ctx context.Context) error {
	alerts, err := w.alerts.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list alerts: %w", err)
	}
	if len(alerts) == 0 {
		return nil
	}

	coinIDs := lo.Uniq(lo.Map(alerts, func(a domain.Alert, _ int) string { return a.Coin }))

	prices, err := w.source.Fetch(ctx, coinIDs)
	if err != nil {
		return fmt.Errorf("fetch prices: %w", err)
	}

	for _, alert := range alerts {
		current, ok := prices[alert.Coin]
		if !ok {
			continue
		}
		if !alert.Triggered(current) {
			continue
		}

		// At-most-once: the alert is retired whether or not the message
		// went out, so a flaky chat channel cannot re-trigger it forever.
		text := fmt.Sprintf(
			"%s is $%s, hit your %s target of $%s",
			strings.ToUpper(alert.Symbol),
			current.StringFixed(5),
			alert.Direction,
			alert.Threshold.String(),
		)
		if err := w.notifier.Notify(alert.UserID, text); err != nil {
			w.logger.Warn("alert notification failed",
				zap.Uint("alert_id", alert.ID),
				zap.Int64("user_id", alert.UserID),
				zap.Error(err),
			)
		}

		if err := w.alerts.DeleteByID(ctx, alert.UserID, alert.ID); err != nil {
			if err == domain.ErrNotFound {
				// Owner removed it mid-cycle; nothing left to retire.
				continue
			}
			w.logger.Error("failed to retire triggered alert",
				zap.Uint("alert_id", alert.ID),
				zap.Int64("user_id", alert.UserID),
				zap.Error(err),
			)
			continue
		}

		w.logger.Info("alert triggered",
			zap.Uint("alert_id", alert.ID),
			zap.Int64("user_id", alert.UserID),
			zap.String("symbol", alert.Symbol),
			zap.String("price", current.String()),
			zap.String("threshold", alert.Threshold.String()),
			zap.String("direction", string(alert.Direction)),
		)
	}

	return nil
}
