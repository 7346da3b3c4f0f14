// # cmd/bundlelens/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"bundlelens/internal/app"
	"bundlelens/internal/config"
	"bundlelens/internal/diff"
	"bundlelens/internal/observability"

	"github.com/joho/godotenv"
)

var (
	configPath  = flag.String("config", "./bundlelens.toml", "Path to config file")
	statsPath   = flag.String("stats", "", "Path to the stats document (overrides config)")
	format      = flag.String("format", "text", "Report format for stdout: text, json or tsv")
	watchMode   = flag.Bool("watch", false, "Re-analyze when the stats document changes")
	ui          = flag.Bool("ui", false, "Enable terminal UI mode")
	diffAgainst = flag.String("diff", "", "Diff module lists against this older stats document")
	showHistory = flag.Bool("history", false, "Print recorded analysis runs")
	since       = flag.String("since", "", "Include history runs at/after this timestamp (RFC3339 or YYYY-MM-DD)")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("bundlelens v%s\n", VERSION)
		os.Exit(0)
	}

	_ = godotenv.Load()

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stderr
	if *ui {
		// In UI mode, avoid terminal logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
			output = f
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath != "./bundlelens.toml" {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}

	if *statsPath != "" {
		cfg.StatsPath = *statsPath
	} else if flag.NArg() > 0 {
		cfg.StatsPath = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	if cfg.Observability.MetricsAddr != "" {
		server := observability.NewServer(cfg.Observability.MetricsAddr)
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
		defer func() { _ = server.Stop(context.Background()) }()
	}

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	if *diffAgainst != "" {
		if err := runDiff(ctx, application, *diffAgainst, cfg.StatsPath); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		return
	}

	_, data, err := application.Analyze(ctx, cfg.StatsPath)
	if err != nil {
		slog.Error("analysis failed", "path", cfg.StatsPath, "error", err)
		os.Exit(1)
	}
	if _, err := application.WriteOutputs(ctx, data); err != nil {
		slog.Error("failed to write outputs", "error", err)
		os.Exit(1)
	}

	if *showHistory {
		if err := printHistory(application, *since); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	if *ui {
		if err := runUI(ctx, application, data, *watchMode); err != nil {
			slog.Error("terminal UI failed", "error", err)
			os.Exit(1)
		}
		return
	}

	out, err := application.RenderTo(*format, data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	fmt.Print(out)

	if *watchMode {
		watcher, err := application.StartWatch(ctx, nil)
		if err != nil {
			slog.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
		defer func() { _ = watcher.Close() }()
		<-ctx.Done()
	}
}

func runDiff(ctx context.Context, application *app.App, oldPath, newPath string) error {
	oldSession, err := application.LoadSession(ctx, oldPath)
	if err != nil {
		return err
	}
	newSession, err := application.LoadSession(ctx, newPath)
	if err != nil {
		return err
	}
	oldModules, err := oldSession.Modules()
	if err != nil {
		return err
	}
	newModules, err := newSession.Modules()
	if err != nil {
		return err
	}
	out, err := diff.ModuleLists(oldPath, newPath, oldModules, newModules)
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Println("module lists are identical")
		return nil
	}
	fmt.Print(out)
	return nil
}

func printHistory(application *app.App, sinceRaw string) error {
	var sinceTime time.Time
	if sinceRaw != "" {
		var err error
		sinceTime, err = parseSince(sinceRaw)
		if err != nil {
			return err
		}
	}
	runs, err := application.RecentRuns(sinceTime)
	if err != nil {
		return err
	}
	fmt.Println("Timestamp\tModules\tAssets\tDependency\tSynthetic\tSize\tWarnings\tDuration")
	for _, run := range runs {
		fmt.Printf("%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
			run.Timestamp.Format(time.RFC3339),
			run.ModuleCount,
			run.AssetCount,
			run.DependencyModules,
			run.SyntheticModules,
			run.TotalModuleSize,
			run.WarningCount,
			run.Duration,
		)
	}
	return nil
}

func parseSince(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --since value %q (expected RFC3339 or YYYY-MM-DD)", raw)
}

func resolveLogPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "bundlelens", "bundlelens.log")
	}
	return "./bundlelens.log"
}
