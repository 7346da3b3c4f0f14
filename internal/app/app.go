// # internal/app/app.go
package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bundlelens/internal/analysis"
	"bundlelens/internal/config"
	"bundlelens/internal/errors"
	"bundlelens/internal/history"
	"bundlelens/internal/observability"
	"bundlelens/internal/stats"
	"bundlelens/internal/validate"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"
)

const sessionCacheSize = 16

// App wires the analysis pipeline to configuration, outputs, history
// and watch mode. One App serves many analyses; each stats document
// gets its own memoized session, cached by content hash so re-reading
// an unchanged file costs nothing.
type App struct {
	Config *config.Config

	patterns []glob.Glob
	sessions *lru.Cache[string, *analysis.Session]
	store    *history.Store
}

func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	patterns := make([]glob.Glob, 0, len(cfg.Assets.ScriptPatterns))
	for _, pattern := range cfg.Assets.ScriptPatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile script pattern %q: %w", pattern, err)
		}
		patterns = append(patterns, g)
	}

	sessions, err := lru.New[string, *analysis.Session](sessionCacheSize)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		patterns: patterns,
		sessions: sessions,
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		a.store = store
	}

	return a, nil
}

func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// LoadSession reads, validates and decodes one stats document, reusing
// a cached session when the file content is unchanged.
func (a *App) LoadSession(ctx context.Context, path string) (*analysis.Session, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.LoadSession")
	defer span.End()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeNotFound, "read stats document")
	}

	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])
	if session, ok := a.sessions.Get(key); ok {
		slog.Debug("session cache hit", "path", path, "session", session.ID)
		return session, nil
	}

	if err := validate.Document(data); err != nil {
		observability.AnalysisErrorsTotal.Inc()
		return nil, errors.Wrap(err, errors.CodeValidation, "stats document failed validation")
	}

	doc, err := stats.Decode(data)
	if err != nil {
		observability.AnalysisErrorsTotal.Inc()
		return nil, errors.Wrap(err, errors.CodeValidation, "decode stats document")
	}

	session := analysis.NewSession(doc, a.patterns)
	a.sessions.Add(key, session)
	slog.Debug("session created", "path", path, "session", session.ID,
		"modules", len(doc.Modules), "assets", len(doc.Assets))
	return session, nil
}

// Analyze runs the full pipeline for one document and returns the
// renderer-agnostic result.
func (a *App) Analyze(ctx context.Context, path string) (*analysis.Session, *analysis.ReportData, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Analyze")
	defer span.End()

	start := time.Now()
	session, err := a.LoadSession(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	data, err := session.Data(ctx)
	if err != nil {
		observability.AnalysisErrorsTotal.Inc()
		return nil, nil, errors.AddContext(err, errors.CtxPath, path)
	}
	observability.AnalysesTotal.Inc()

	for _, warning := range session.Warnings() {
		slog.Warn("unresolved module path", "session", session.ID, "detail", warning.String())
	}

	if a.store != nil {
		run := history.Run{
			ProjectKey:        a.Config.History.ProjectKey,
			StatsPath:         path,
			ModuleCount:       data.Summary.Modules,
			AssetCount:        data.Summary.Assets,
			DependencyModules: data.Summary.DependencyModules,
			SyntheticModules:  data.Summary.SyntheticModules,
			TotalModuleSize:   data.Summary.TotalModuleSize,
			WarningCount:      data.Summary.Warnings,
			Duration:          time.Since(start),
		}
		if err := a.store.SaveRun(run); err != nil {
			slog.Warn("failed to record analysis run", "error", err)
		}
	}

	return session, data, nil
}

// RecentRuns lists recorded runs for the configured project.
func (a *App) RecentRuns(since time.Time) ([]history.Run, error) {
	if a.store == nil {
		return nil, errors.New(errors.CodeNotSupported, "history store not configured (set history.path)")
	}
	return a.store.LoadRuns(a.Config.History.ProjectKey, since)
}
