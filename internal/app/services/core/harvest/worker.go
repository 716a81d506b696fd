package harvest

import (
	"context"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type harvester interface {
	EnabledScraperIDs() []string
	HarvestByID(ctx context.Context, runID, scraperID string) (*HarvestOutput, error)
}

// Worker periodically harvests every enabled scraper.
type Worker struct {
	log      *zap.Logger
	cronSpec string
	service  harvester
	stop     chan struct{}
	stopOnce sync.Once
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
}

func NewWorker(log *zap.Logger, cronSpec string, service harvester) *Worker {
	return &Worker{log: log, cronSpec: cronSpec, service: service, stop: make(chan struct{})}
}

// Start schedules the harvest loop. An invalid cron spec falls back to hourly.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cronSpec, func() { w.RunOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("harvest.worker: failed to schedule with provided cron spec; falling back to default",
			zap.String(constvars.LoggingCronSpecKey, w.cronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(constvars.DefaultHarvestCronSpec, func() { w.RunOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels in-flight harvests and waits for the running job to return.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

// RunOnce harvests the enabled scrapers one after another. A scraper whose
// harvest is already running elsewhere is skipped.
func (w *Worker) RunOnce(ctx context.Context) {
	for _, scraperID := range w.service.EnabledScraperIDs() {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		default:
		}

		out, err := w.service.HarvestByID(ctx, "", scraperID)
		if exceptions.IsKind(err, exceptions.KindLocked) {
			w.log.Info("harvest.worker: harvest already running elsewhere; skipping",
				zap.String(constvars.LoggingScraperIDKey, scraperID),
			)
			continue
		}
		if err != nil {
			w.log.Warn("harvest.worker: harvest failed",
				zap.String(constvars.LoggingScraperIDKey, scraperID),
				zap.Error(err),
			)
			continue
		}
		w.log.Info("harvest.worker: harvest finished",
			zap.String(constvars.LoggingScraperIDKey, scraperID),
			zap.String(constvars.LoggingStateKey, string(out.State)),
			zap.Int(constvars.LoggingPendingCountKey, len(out.Pending)),
		)
	}
}
