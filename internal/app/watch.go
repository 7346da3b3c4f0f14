// # internal/app/watch.go
package app

import (
	"context"
	"log/slog"

	"bundlelens/internal/analysis"
	"bundlelens/internal/util"
	"bundlelens/internal/watch"
)

// StartWatch re-runs the whole pipeline whenever the stats document is
// rewritten. Every run processes the complete document from scratch;
// there is no incremental state between runs. The handler receives the
// fresh result after outputs are written.
func (a *App) StartWatch(ctx context.Context, handler func(*analysis.ReportData)) (*watch.Watcher, error) {
	limiter := util.NewLimiter(a.Config.Watch.MaxRate, 1)

	rerun := func() {
		if !limiter.Allow(1) {
			slog.Debug("re-analysis suppressed by rate limit")
			return
		}
		_, data, err := a.Analyze(ctx, a.Config.StatsPath)
		if err != nil {
			slog.Error("re-analysis failed", "path", a.Config.StatsPath, "error", err)
			return
		}
		if _, err := a.WriteOutputs(ctx, data); err != nil {
			slog.Error("failed to write outputs", "error", err)
		}
		if handler != nil {
			handler(data)
		}
	}

	watcher, err := watch.NewWatcher(a.Config.StatsPath, a.Config.Watch.Debounce, rerun)
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	slog.Info("watching stats document", "path", a.Config.StatsPath)
	return watcher, nil
}
