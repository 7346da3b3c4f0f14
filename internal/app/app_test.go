// # internal/app/app_test.go
package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bundlelens/internal/config"
	"bundlelens/internal/errors"

	"github.com/stretchr/testify/require"
)

const testStats = `{
	"modules": [
		{"identifier": "/root/node_modules/lodash/index.js", "name": "./node_modules/lodash/index.js", "size": 500, "source": "", "chunks": [0]},
		{"identifier": "./src/app.js", "name": "./src/app.js", "size": 120, "source": "", "chunks": [0]}
	],
	"assets": [
		{"name": "main.js", "chunks": [0], "size": 1200}
	]
}`

func writeStats(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	return application
}

func TestAnalyze_EndToEnd(t *testing.T) {
	application := newTestApp(t, nil)
	path := writeStats(t, testStats)

	session, data, err := application.Analyze(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, session)

	require.Equal(t, 2, data.Summary.Modules)
	require.Equal(t, 1, data.Summary.Assets)
	require.Equal(t, 1, data.Summary.DependencyModules)
	require.Equal(t, int64(620), data.Summary.TotalModuleSize)
	require.Len(t, data.Assets[0].Modules, 2)
}

func TestLoadSession_CacheHitOnUnchangedContent(t *testing.T) {
	application := newTestApp(t, nil)
	path := writeStats(t, testStats)
	ctx := context.Background()

	first, err := application.LoadSession(ctx, path)
	require.NoError(t, err)
	second, err := application.LoadSession(ctx, path)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, first.ID, second.ID)
}

func TestLoadSession_NewSessionOnChangedContent(t *testing.T) {
	application := newTestApp(t, nil)
	path := writeStats(t, testStats)
	ctx := context.Background()

	first, err := application.LoadSession(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"modules": [], "assets": []}`), 0o644))
	second, err := application.LoadSession(ctx, path)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestLoadSession_MissingFile(t *testing.T) {
	application := newTestApp(t, nil)

	_, err := application.LoadSession(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestLoadSession_InvalidDocument(t *testing.T) {
	application := newTestApp(t, nil)
	path := writeStats(t, `{"assets": []}`)

	_, err := application.LoadSession(context.Background(), path)
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.CodeValidation))
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.JSON = filepath.Join(dir, "out", "report.json")
	cfg.Output.TSV = filepath.Join(dir, "report.tsv")

	application := newTestApp(t, cfg)
	path := writeStats(t, testStats)

	_, data, err := application.Analyze(context.Background(), path)
	require.NoError(t, err)

	written, err := application.WriteOutputs(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, written, 2)
	for _, out := range written {
		info, err := os.Stat(out)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
}

func TestAnalyze_RecordsHistory(t *testing.T) {
	cfg := config.Default()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	cfg.History.ProjectKey = "test"

	application := newTestApp(t, cfg)
	path := writeStats(t, testStats)

	_, _, err := application.Analyze(context.Background(), path)
	require.NoError(t, err)

	runs, err := application.RecentRuns(time.Time{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "test", runs[0].ProjectKey)
	require.Equal(t, 2, runs[0].ModuleCount)
	require.Equal(t, path, runs[0].StatsPath)
}

func TestRecentRuns_WithoutStore(t *testing.T) {
	application := newTestApp(t, nil)

	_, err := application.RecentRuns(time.Time{})
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.CodeNotSupported))
}

func TestNew_RejectsBadPattern(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.ScriptPatterns = []string{"[unclosed"}

	_, err := New(cfg)
	require.Error(t, err)
}

func TestRenderTo_UnknownFormat(t *testing.T) {
	application := newTestApp(t, nil)
	path := writeStats(t, testStats)

	_, data, err := application.Analyze(context.Background(), path)
	require.NoError(t, err)

	_, err = application.RenderTo("yaml", data)
	require.Error(t, err)
	require.True(t, errors.IsCode(err, errors.CodeNotSupported))
}
