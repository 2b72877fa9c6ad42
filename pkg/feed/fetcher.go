package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/plugcompat/pkg/observability"
	"github.com/platinummonkey/plugcompat/pkg/version"
)

const (
	sourceLatestCore = "latest_core"
	sourceCatalog    = "catalog"

	// bodies memoized per Fetcher; a run touches at most a handful of URLs
	bodyCacheSize = 8
)

// Fetcher reads the platform version and plugin catalog from the update feed.
// Requests are issued sequentially and are never retried beyond the
// configured list of candidate URLs.
type Fetcher struct {
	cfg     Config
	client  *http.Client
	bodies  *lru.Cache[string, []byte]
	metrics *observability.Metrics
	tracer  trace.Tracer
	log     logrus.FieldLogger
}

// NewFetcher creates a fetcher. A nil client gets a default client whose
// transport is instrumented with OpenTelemetry. Metrics may be nil.
func NewFetcher(cfg Config, client *http.Client, metrics *observability.Metrics, log logrus.FieldLogger) (*Fetcher, error) {
	if log == nil {
		log = logrus.New()
	}
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if cfg.Envelope == (Envelope{}) {
		cfg.Envelope = DefaultEnvelope
	}
	if cfg.PlatformFallback == "" {
		cfg.PlatformFallback = DefaultPlatformFallback
	}

	bodies, err := lru.New[string, []byte](bodyCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create body cache: %w", err)
	}

	return &Fetcher{
		cfg:     cfg,
		client:  client,
		bodies:  bodies,
		metrics: metrics,
		tracer:  otel.Tracer("github.com/platinummonkey/plugcompat/pkg/feed"),
		log:     log,
	}, nil
}

// ResolvePlatformVersion returns the current platform version. It tries the
// plain-text latest-core endpoint, then the core version in the first catalog
// candidate, then the configured fallback constant. It never fails.
func (f *Fetcher) ResolvePlatformVersion(ctx context.Context) string {
	ctx, span := f.tracer.Start(ctx, "feed.ResolvePlatformVersion")
	defer span.End()

	log := observability.LoggerWithTraceContext(ctx, f.log)

	if f.cfg.LatestCoreURL != "" {
		v, err := f.fetchLatestCore(ctx)
		if err == nil {
			span.SetAttributes(attribute.String("platform.source", sourceLatestCore))
			return v
		}
		log.Warnf("Error fetching latest platform version from %s: %v", f.cfg.LatestCoreURL, err)
	}

	if len(f.cfg.CatalogURLs) > 0 {
		url := f.cfg.CatalogURLs[0]
		log.Info("Falling back to catalog for platform version info")

		v, err := f.fetchCatalogCoreVersion(ctx, url)
		if err == nil {
			span.SetAttributes(attribute.String("platform.source", sourceCatalog))
			return v
		}
		log.Warnf("Error reading platform version from catalog %s: %v", url, err)
	}

	log.Warnf("Using fallback platform version %s", f.cfg.PlatformFallback)
	span.SetAttributes(attribute.String("platform.source", "fallback"))
	return f.cfg.PlatformFallback
}

func (f *Fetcher) fetchLatestCore(ctx context.Context) (string, error) {
	body, err := f.get(ctx, sourceLatestCore, f.cfg.LatestCoreURL)
	if err != nil {
		return "", err
	}

	return platformVersion(string(body))
}

func (f *Fetcher) fetchCatalogCoreVersion(ctx context.Context, url string) (string, error) {
	body, err := f.get(ctx, sourceCatalog, url)
	if err != nil {
		return "", err
	}

	catalog, err := DecodeCatalog(body, f.cfg.Envelope)
	if err != nil {
		return "", err
	}

	return platformVersion(catalog.Core.Version)
}

// platformVersion accepts raw only if it reads as a version, so an error page
// served with a 2xx status never becomes the platform being checked against.
func platformVersion(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", ErrEmptyVersion
	}
	if _, err := version.Parse(v); err != nil {
		return "", err
	}
	return v, nil
}

// FetchCatalog tries each catalog URL in order and returns the first that
// decodes. When every candidate fails the error wraps ErrCatalogUnavailable.
func (f *Fetcher) FetchCatalog(ctx context.Context) (*Catalog, error) {
	ctx, span := f.tracer.Start(ctx, "feed.FetchCatalog")
	defer span.End()

	log := observability.LoggerWithTraceContext(ctx, f.log)

	var errs []error
	for _, url := range f.cfg.CatalogURLs {
		log.Infof("Trying to fetch catalog from: %s", url)

		body, err := f.get(ctx, sourceCatalog, url)
		if err != nil {
			log.Warnf("Request error with %s: %v", url, err)
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
			continue
		}

		catalog, err := DecodeCatalog(body, f.cfg.Envelope)
		if err != nil {
			log.Warnf("Parse error with %s: %v", url, err)
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
			continue
		}

		log.Infof("Fetched catalog with %d plugins from %s", len(catalog.Plugins), url)
		f.metrics.RecordCatalogSize(len(catalog.Plugins))
		span.SetAttributes(
			attribute.String("catalog.url", url),
			attribute.Int("catalog.plugins", len(catalog.Plugins)),
		)
		return catalog, nil
	}

	err := fmt.Errorf("%w: %w", ErrCatalogUnavailable, errors.Join(errs...))
	if len(errs) == 0 {
		err = fmt.Errorf("%w: no catalog URLs configured", ErrCatalogUnavailable)
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "catalog unavailable")
	return nil, err
}

// get performs a GET and returns the body. Successful bodies are memoized
// per URL for the lifetime of the Fetcher.
func (f *Fetcher) get(ctx context.Context, source, url string) ([]byte, error) {
	if body, ok := f.bodies.Get(url); ok {
		f.log.Debugf("Reusing response body for %s", url)
		return body, nil
	}

	start := time.Now()
	body, err := f.doGet(ctx, url)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	f.metrics.RecordFeedRequest(source, outcome, time.Since(start))

	if err != nil {
		return nil, err
	}

	f.bodies.Add(url, body)
	return body, nil
}

func (f *Fetcher) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
