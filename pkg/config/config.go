package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/plugcompat/pkg/feed"
	"github.com/platinummonkey/plugcompat/pkg/observability"
	"github.com/platinummonkey/plugcompat/pkg/version"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all run configuration
type Config struct {
	// Input and output files
	PluginsFile  string `yaml:"plugins_file"`
	ManifestPath string `yaml:"manifest_path"`

	// Target platform and runtime
	PlatformVersion  string `yaml:"platform_version"`
	PlatformFallback string `yaml:"platform_fallback"`
	RuntimeVersion   string `yaml:"runtime_version"`

	// Update feed endpoints
	Feed FeedConfig `yaml:"feed"`

	// Platform -> runtime requirement table
	Bands []version.Band `yaml:"bands"`

	// Report output
	Output OutputConfig `yaml:"output"`

	// Observability
	LogLevel string                   `yaml:"log_level"`
	OTel     observability.OTelConfig `yaml:"otel"`
}

// FeedConfig holds update feed endpoints
type FeedConfig struct {
	LatestCoreURL string        `yaml:"latest_core_url"`
	CatalogURLs   []string      `yaml:"catalog_urls"`
	Envelope      feed.Envelope `yaml:",inline"`
	UserAgent     string        `yaml:"user_agent"`
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format      string `yaml:"format"`
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the built-in configuration
func Default() *Config {
	fc := feed.DefaultConfig()
	bands := make([]version.Band, len(version.DefaultBands))
	copy(bands, version.DefaultBands)

	return &Config{
		PluginsFile:      "plugins.list",
		ManifestPath:     "plugins.txt",
		PlatformFallback: feed.DefaultPlatformFallback,
		RuntimeVersion:   "21",
		Feed: FeedConfig{
			LatestCoreURL: fc.LatestCoreURL,
			CatalogURLs:   fc.CatalogURLs,
			Envelope:      fc.Envelope,
			UserAgent:     fc.UserAgent,
		},
		Bands: bands,
		Output: OutputConfig{
			Format: FormatText,
		},
		LogLevel: "info",
		OTel: observability.OTelConfig{
			Endpoint:    "localhost:4317",
			ServiceName: "plugcompat",
			Insecure:    true,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence. It does not validate; callers
// apply flag overrides first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// loadFile overlays the keys present in a YAML file
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnv overlays PLUGCOMPAT_* environment variables
func (c *Config) applyEnv() {
	c.PluginsFile = getEnv("PLUGCOMPAT_PLUGINS_FILE", c.PluginsFile)
	c.ManifestPath = getEnv("PLUGCOMPAT_MANIFEST", c.ManifestPath)
	c.PlatformVersion = getEnv("PLUGCOMPAT_PLATFORM_VERSION", c.PlatformVersion)
	c.PlatformFallback = getEnv("PLUGCOMPAT_PLATFORM_FALLBACK", c.PlatformFallback)
	c.RuntimeVersion = getEnv("PLUGCOMPAT_RUNTIME_VERSION", c.RuntimeVersion)

	c.Feed.LatestCoreURL = getEnv("PLUGCOMPAT_LATEST_CORE_URL", c.Feed.LatestCoreURL)
	c.Feed.CatalogURLs = getEnvList("PLUGCOMPAT_CATALOG_URLS", c.Feed.CatalogURLs)

	c.Output.Format = getEnv("PLUGCOMPAT_FORMAT", c.Output.Format)
	c.Output.MetricsFile = getEnv("PLUGCOMPAT_METRICS_FILE", c.Output.MetricsFile)

	c.LogLevel = getEnv("PLUGCOMPAT_LOG_LEVEL", c.LogLevel)
	c.OTel.Enabled = getEnvBool("PLUGCOMPAT_OTEL_ENABLED", c.OTel.Enabled)
	c.OTel.Endpoint = getEnv("PLUGCOMPAT_OTEL_ENDPOINT", c.OTel.Endpoint)
	c.OTel.Insecure = getEnvBool("PLUGCOMPAT_OTEL_INSECURE", c.OTel.Insecure)
}

// FeedConfig returns the fetcher configuration
func (c *Config) FeedConfig() feed.Config {
	return feed.Config{
		LatestCoreURL:    c.Feed.LatestCoreURL,
		CatalogURLs:      c.Feed.CatalogURLs,
		Envelope:         c.Feed.Envelope,
		PlatformFallback: c.PlatformFallback,
		UserAgent:        c.Feed.UserAgent,
	}
}

// BandTable builds the validated band table
func (c *Config) BandTable() (version.BandTable, error) {
	return version.NewBandTable(c.Bands)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Feed.CatalogURLs) == 0 {
		return fmt.Errorf("at least one catalog URL is required")
	}
	for _, u := range c.Feed.CatalogURLs {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("invalid catalog URL %q: must be http or https", u)
		}
	}

	if c.ManifestPath == "" {
		return fmt.Errorf("manifest path is required")
	}

	if _, err := version.ParseRuntime(c.RuntimeVersion); err != nil {
		return fmt.Errorf("invalid runtime version: %w", err)
	}

	if _, err := version.Parse(c.PlatformFallback); err != nil {
		return fmt.Errorf("invalid platform fallback: %w", err)
	}

	if c.PlatformVersion != "" {
		if _, err := version.Parse(c.PlatformVersion); err != nil {
			return fmt.Errorf("invalid platform version: %w", err)
		}
	}

	if _, err := c.BandTable(); err != nil {
		return fmt.Errorf("invalid bands: %w", err)
	}

	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid output format: %s (must be text or json)", c.Output.Format)
	}

	if c.OTel.Enabled {
		if c.OTel.Endpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.OTel.ServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvList returns a comma-separated environment variable or a default
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
