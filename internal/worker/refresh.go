package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"benefitdesk/internal/service"
)

// RefreshWorker re-runs the master data import when a source file changes,
// with an interval fallback for filesystems where change events are
// unreliable. Re-importing at any time is safe: import never overwrites
// existing keys.
type RefreshWorker struct {
	importSvc    *service.ImportService
	customerFile string
	benefitFile  string
	interval     time.Duration
}

func NewRefreshWorker(importSvc *service.ImportService, customerFile, benefitFile string, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		importSvc:    importSvc,
		customerFile: customerFile,
		benefitFile:  benefitFile,
		interval:     interval,
	}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	slog.Info("starting refresh worker", "interval", w.interval)

	var events <-chan fsnotify.Event
	var watchErrs <-chan error

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("file watcher unavailable, interval refresh only", "error", err)
	} else {
		defer watcher.Close()
		for _, path := range []string{w.customerFile, w.benefitFile} {
			if path == "" {
				continue
			}
			if err := watcher.Add(path); err != nil {
				slog.Warn("cannot watch master file", "path", path, "error", err)
			}
		}
		events = watcher.Events
		watchErrs = watcher.Errors
	}

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh worker stopped")
			return
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			slog.Info("master file changed", "path", ev.Name)
			w.refresh(ctx)
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			slog.Error("file watcher error", "error", err)
		case <-tick:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	report, err := w.importSvc.ImportFiles(ctx, w.customerFile, w.benefitFile)
	if err != nil {
		slog.Error("master data refresh failed", "error", err)
		return
	}
	slog.Info("master data refreshed",
		"customers_inserted", report.Customers.Inserted,
		"customers_skipped", report.Customers.Skipped,
		"benefits_inserted", report.Benefits.Inserted,
		"benefits_skipped", report.Benefits.Skipped,
	)
}
