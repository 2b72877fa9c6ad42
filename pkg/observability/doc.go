// Package observability provides logging, Prometheus metrics and OpenTelemetry
// tracing for plugcompat runs.
//
// # Logging
//
// Loggers are logrus text loggers writing to stderr:
//
//	logger := observability.NewLogger("info", nil)
//	log := observability.WithRun(logger, observability.NewRunID())
//	log.Infof("Checking %d plugins", n)
//
// # Metrics
//
// A run is short-lived, so metrics are not served over HTTP. They are written
// once at the end of the run in the node_exporter textfile format:
//
//	metrics := observability.NewMetrics()
//	metrics.RecordFeedRequest("catalog", "success", time.Since(start))
//	_ = metrics.WriteTextfile("/var/lib/node_exporter/plugcompat.prom")
//
// All Record* methods are no-ops on a nil *Metrics.
//
// # OpenTelemetry
//
// Tracing is off unless enabled in config. When on, spans are exported over
// OTLP/gRPC and flushed by ShutdownTracing before the process exits:
//
//	tp, err := observability.InitTracing(ctx, cfg.OTel, logger)
//	defer observability.ShutdownTracing(ctx, tp, logger)
//
// # Related Packages
//
//   - pkg/config: observability settings
//   - pkg/feed: records request metrics and spans
package observability
