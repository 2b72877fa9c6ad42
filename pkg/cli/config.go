package cli

import (
	"github.com/spf13/cobra"

	"github.com/platinummonkey/plugcompat/pkg/config"
)

// loadConfig layers flags that were explicitly set on top of the file and
// environment configuration, then validates the result.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("plugins") {
		cfg.PluginsFile = opts.pluginsFile
	}
	if flags.Changed("output") {
		cfg.ManifestPath = opts.manifestPath
	}
	if flags.Changed("platform-version") {
		cfg.PlatformVersion = opts.platformVersion
	}
	if flags.Changed("runtime-version") {
		cfg.RuntimeVersion = opts.runtimeVersion
	}
	if flags.Changed("latest-core-url") {
		cfg.Feed.LatestCoreURL = opts.latestCoreURL
	}
	if flags.Changed("catalog-url") {
		cfg.Feed.CatalogURLs = opts.catalogURLs
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("metrics-file") {
		cfg.Output.MetricsFile = opts.metricsFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
