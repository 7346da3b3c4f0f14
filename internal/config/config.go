// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	StatsPath     string        `toml:"stats_path"`
	Assets        Assets        `toml:"assets"`
	Output        Output        `toml:"output"`
	Watch         Watch         `toml:"watch"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
}

type Assets struct {
	// Glob patterns selecting which asset names count as script
	// output. Non-matching assets never enter a report.
	ScriptPatterns []string `toml:"script_patterns"`
}

type Output struct {
	JSON string `toml:"json"`
	Text string `toml:"text"`
	TSV  string `toml:"tsv"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// Re-analysis rate limit, runs per second.
	MaxRate float64 `toml:"max_rate"`
}

type History struct {
	Path       string `toml:"path"`
	ProjectKey string `toml:"project_key"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.StatsPath == "" {
		c.StatsPath = "./stats.json"
	}
	if len(c.Assets.ScriptPatterns) == 0 {
		c.Assets.ScriptPatterns = []string{"*.js", "*.mjs"}
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Watch.MaxRate == 0 {
		c.Watch.MaxRate = 2
	}
	if c.History.ProjectKey == "" {
		c.History.ProjectKey = "default"
	}
}
