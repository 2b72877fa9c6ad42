package cli

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/plugcompat/pkg/compatibility"
	"github.com/platinummonkey/plugcompat/pkg/config"
	"github.com/platinummonkey/plugcompat/pkg/feed"
	"github.com/platinummonkey/plugcompat/pkg/observability"
	"github.com/platinummonkey/plugcompat/pkg/pluginlist"
	"github.com/platinummonkey/plugcompat/pkg/report"
)

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check plugins against the update feed and write the manifest",
		Long: `Resolve the target platform version, fetch the plugin catalog and evaluate
every listed plugin. Compatible plugins are pinned in the manifest; the
others are reported and written as comments.

Exits with status 1 when any plugin has an issue or the catalog cannot be
fetched from any source.`,
		Example: `  # Check the plugins in plugins.list against the latest platform
  plugcompat check

  # Check against a specific platform release and runtime
  plugcompat check --platform-version 2.462.3 --runtime-version 17

  # Machine-readable report
  plugcompat check --format json > report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}
}

func runCheck(cmd *cobra.Command, opts *options) error {
	started := time.Now()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	log := observability.WithRun(logger, observability.NewRunID())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	otelCfg := cfg.OTel
	otelCfg.ServiceVersion = Version
	tp, err := observability.InitTracing(ctx, otelCfg, log)
	if err != nil {
		log.WithError(err).Warn("Failed to initialize tracing, continuing without it")
	}
	defer func() { _ = observability.ShutdownTracing(context.Background(), tp, log) }()

	metrics := observability.NewMetrics()
	defer writeMetrics(cfg, metrics, log)

	bands, err := cfg.BandTable()
	if err != nil {
		metrics.RecordRun(false, started, time.Now())
		return err
	}

	plugins := pluginlist.Load(cfg.PluginsFile, log)

	fetcher, err := feed.NewFetcher(cfg.FeedConfig(), nil, metrics, log)
	if err != nil {
		metrics.RecordRun(false, started, time.Now())
		return err
	}

	platform := cfg.PlatformVersion
	if platform == "" {
		platform = fetcher.ResolvePlatformVersion(ctx)
	} else {
		log.Infof("Using configured platform version %s", platform)
	}

	textOut := cfg.Output.Format == config.FormatText
	printer := report.NewPrinter(cmd.OutOrStdout())
	if textOut {
		printer.Banner(platform, cfg.RuntimeVersion)
	}

	catalog, err := fetcher.FetchCatalog(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch plugin catalog from all sources")
		metrics.RecordRun(false, started, time.Now())
		return err
	}

	evaluator := compatibility.NewEvaluator(bands, cfg.RuntimeVersion, metrics, log)
	result := evaluator.Evaluate(plugins, platform, catalog)

	manifestErr := report.WriteManifest(cfg.ManifestPath, result)
	if manifestErr != nil {
		log.WithError(manifestErr).Errorf("Failed to write manifest %s", cfg.ManifestPath)
	} else {
		log.Debugf("Wrote manifest %s", cfg.ManifestPath)
	}

	if textOut {
		printer.Results(result)
		if manifestErr != nil {
			printer.ManifestFailed(cfg.ManifestPath, manifestErr)
		} else {
			printer.ManifestWritten(cfg.ManifestPath)
		}
		printer.Summary(result)
	} else if err := report.WriteJSON(cmd.OutOrStdout(), result, cfg.ManifestPath, manifestErr); err != nil {
		metrics.RecordRun(false, started, time.Now())
		return err
	}

	log.WithFields(logrus.Fields{
		"total":        result.Summary.Total,
		"compatible":   result.Summary.Compatible,
		"incompatible": result.Summary.Incompatible,
		"not_found":    result.Summary.NotFound,
	}).Info("Compatibility check complete")

	metrics.RecordRun(!result.HasIssues(), started, time.Now())

	if result.HasIssues() {
		return ErrIssuesFound
	}
	return nil
}

func writeMetrics(cfg *config.Config, metrics *observability.Metrics, log logrus.FieldLogger) {
	if cfg.Output.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Output.MetricsFile); err != nil {
		log.Warnf("Failed to write metrics: %v", err)
	}
}
