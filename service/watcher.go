package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rustyeddy/stockbrief/config"
	"github.com/rustyeddy/stockbrief/logging"
	"github.com/rustyeddy/stockbrief/pkg/id"
	"github.com/rustyeddy/stockbrief/report"
)

// Watcher runs the watchlist on a cron schedule and writes one report file
// per symbol.
type Watcher struct {
	Cron *cron.Cron

	svc *Service
	cfg config.WatchConfig
	ctx context.Context
}

// NewWatcher creates a Watcher. ctx bounds every scheduled run.
func NewWatcher(ctx context.Context, svc *Service, cfg config.WatchConfig) *Watcher {
	return &Watcher{
		Cron: cron.New(cron.WithSeconds()),
		svc:  svc,
		cfg:  cfg,
		ctx:  ctx,
	}
}

// Register adds the watchlist run under cfg.Schedule.
func (w *Watcher) Register() error {
	if _, err := w.Cron.AddFunc(w.cfg.Schedule, w.run); err != nil {
		return fmt.Errorf("register watch schedule %q: %w", w.cfg.Schedule, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Watcher) Start() {
	w.Cron.Start()
	w.svc.log(w.ctx).Info("watcher started", "schedule", w.cfg.Schedule, "symbols", len(w.cfg.Symbols))
}

// Stop stops the scheduler and waits for a running job to finish.
func (w *Watcher) Stop() {
	<-w.Cron.Stop().Done()
	w.svc.log(w.ctx).Info("watcher stopped")
}

func (w *Watcher) run() {
	if _, err := w.RunOnce(w.ctx); err != nil {
		w.svc.log(w.ctx).Error("watch run had failures", "error", err)
	}
}

// RunOnce summarizes the watchlist now and writes the reports. It returns
// the files written and the joined per-symbol errors.
func (w *Watcher) RunOnce(ctx context.Context) ([]string, error) {
	ctx = logging.WithRunID(ctx, id.New())
	logger := logging.FromContext(ctx, w.svc.Logger)
	start := w.svc.clock()
	logger.Info("watch run", "symbols", w.cfg.Symbols)

	dir := w.cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var (
		files []string
		errs  []error
	)
	for _, res := range w.svc.Batch(ctx, w.cfg.Symbols, w.cfg.Workers) {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Symbol, res.Err))
			continue
		}
		out, err := report.Format(w.cfg.Format, res.Symbol, res.AsOf, res.Summary)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		path := filepath.Join(dir, reportName(res.Symbol, res.AsOf, w.cfg.Format))
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, path)
	}

	logger.Info("watch run done", "written", len(files), "failed", len(errs), "elapsed", w.svc.clock().Sub(start))
	return files, errors.Join(errs...)
}

func reportName(symbol string, asOf time.Time, format string) string {
	return fmt.Sprintf("%s-%s%s", symbol, asOf.Format("20060102"), report.Ext(format))
}
