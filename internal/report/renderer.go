// # internal/report/renderer.go
package report

import (
	"fmt"
	"strings"
	"time"

	"bundlelens/internal/analysis"
	"bundlelens/internal/errors"
	"bundlelens/internal/observability"
)

// Renderer turns the analysis result into one concrete output format.
// Renderers receive the data, they do not reach back into the session.
type Renderer interface {
	Format() string
	Render(data *analysis.ReportData) (string, error)
}

// ForFormat returns the renderer registered under the given name.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return NewJSONRenderer(), nil
	case "text", "":
		return NewTextRenderer(), nil
	case "tsv":
		return NewTSVRenderer(), nil
	}
	return nil, errors.New(errors.CodeNotSupported, fmt.Sprintf("unknown report format %q", format))
}

// Render runs a renderer and records its duration.
func Render(r Renderer, data *analysis.ReportData) (string, error) {
	start := time.Now()
	out, err := r.Render(data)
	observability.RenderDuration.WithLabelValues(r.Format()).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", errors.AddContext(err, errors.CtxFormat, r.Format())
	}
	return out, nil
}

func formatSize(size int64) string {
	const kib = 1024
	switch {
	case size >= kib*kib:
		return fmt.Sprintf("%.2f MiB", float64(size)/(kib*kib))
	case size >= kib:
		return fmt.Sprintf("%.2f KiB", float64(size)/kib)
	}
	return fmt.Sprintf("%d B", size)
}
