// # internal/app/outputs.go
package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"bundlelens/internal/analysis"
	"bundlelens/internal/observability"
	"bundlelens/internal/report"
)

type outputTarget struct {
	format string
	path   string
}

// WriteOutputs renders the configured file targets for one analysis.
// Returns the paths written.
func (a *App) WriteOutputs(ctx context.Context, data *analysis.ReportData) ([]string, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.WriteOutputs")
	defer span.End()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targets := []outputTarget{
		{format: "json", path: a.Config.Output.JSON},
		{format: "text", path: a.Config.Output.Text},
		{format: "tsv", path: a.Config.Output.TSV},
	}

	written := make([]string, 0, len(targets))
	for _, target := range targets {
		if target.path == "" {
			continue
		}
		renderer, err := report.ForFormat(target.format)
		if err != nil {
			return written, err
		}
		out, err := report.Render(renderer, data)
		if err != nil {
			return written, err
		}
		if dir := filepath.Dir(target.path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, err
			}
		}
		if err := os.WriteFile(target.path, []byte(out), 0o644); err != nil {
			return written, err
		}
		slog.Info("report written", "format", target.format, "path", target.path)
		written = append(written, target.path)
	}

	return written, nil
}

// RenderTo renders one format to a string, for stdout or the UI.
func (a *App) RenderTo(format string, data *analysis.ReportData) (string, error) {
	renderer, err := report.ForFormat(format)
	if err != nil {
		return "", err
	}
	return report.Render(renderer, data)
}
