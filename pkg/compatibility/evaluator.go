package compatibility

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/plugcompat/pkg/feed"
	"github.com/platinummonkey/plugcompat/pkg/observability"
	"github.com/platinummonkey/plugcompat/pkg/version"
)

// Evaluator decides, plugin by plugin, whether the latest catalog release can
// be installed on a platform/runtime pair.
type Evaluator struct {
	bands      version.BandTable
	runtime    string
	runtimeN   int
	runtimeErr error
	metrics    *observability.Metrics
	log        logrus.FieldLogger
}

// NewEvaluator creates an evaluator for the given runtime. An unparseable
// runtime is logged and makes every runtime check permissive.
func NewEvaluator(bands version.BandTable, runtime string, metrics *observability.Metrics, log logrus.FieldLogger) *Evaluator {
	if log == nil {
		log = logrus.New()
	}

	n, err := version.ParseRuntime(runtime)
	if err != nil {
		log.Errorf("Cannot parse runtime version %q, runtime checks will allow every plugin: %v", runtime, err)
	}

	return &Evaluator{
		bands:      bands,
		runtime:    runtime,
		runtimeN:   n,
		runtimeErr: err,
		metrics:    metrics,
		log:        log,
	}
}

// Evaluate checks every requested plugin against platform and the catalog.
// The result holds exactly one verdict per entry in plugins, in the same order.
func (e *Evaluator) Evaluate(plugins []string, platform string, catalog *feed.Catalog) *Result {
	result := &Result{
		Platform: platform,
		Runtime:  e.runtime,
		Verdicts: make([]Verdict, 0, len(plugins)),
	}

	for _, id := range plugins {
		v := e.Check(id, platform, catalog)
		e.metrics.RecordVerdict(v.Status.String())
		result.add(v)
	}

	return result
}

// Check evaluates a single plugin. The platform check runs before the
// runtime check and the first failure is the only one reported.
func (e *Evaluator) Check(id, platform string, catalog *feed.Catalog) Verdict {
	meta, ok := catalog.Lookup(id)
	if !ok {
		return Verdict{
			Plugin:      id,
			Status:      StatusNotFound,
			FailedCheck: CheckCatalog,
			Reason:      fmt.Sprintf("Plugin %s not found in catalog", id),
		}
	}

	if strings.TrimSpace(meta.Version) == "" {
		e.log.Warnf("Catalog entry for %s has no version", id)
		return Verdict{
			Plugin:       id,
			Status:       StatusIncompatible,
			FailedCheck:  CheckCatalog,
			Reason:       fmt.Sprintf("Plugin %s has no release version in catalog", id),
			RequiredCore: meta.RequiredCore,
		}
	}

	verdict := Verdict{
		Plugin:       id,
		Version:      meta.Version,
		Status:       StatusCompatible,
		RequiredCore: meta.RequiredCore,
	}

	if reason := e.checkPlatform(id, meta, platform); reason != "" {
		verdict.Status = StatusIncompatible
		verdict.FailedCheck = CheckPlatform
		verdict.Reason = reason
		return verdict
	}

	if reason := e.checkRuntime(id, meta); reason != "" {
		verdict.Status = StatusIncompatible
		verdict.FailedCheck = CheckRuntime
		verdict.Reason = reason
		return verdict
	}

	return verdict
}

func (e *Evaluator) checkPlatform(id string, meta feed.PluginMetadata, platform string) string {
	cmp, err := version.Compare(meta.RequiredCore, platform)
	if err != nil {
		e.log.Warnf("Skipping platform check for %s: %v", id, err)
		return ""
	}

	if cmp > 0 {
		return fmt.Sprintf("Plugin %s:%s requires platform %s but you have %s",
			id, meta.Version, meta.RequiredCore, platform)
	}
	return ""
}

func (e *Evaluator) checkRuntime(id string, meta feed.PluginMetadata) string {
	if e.runtimeErr != nil {
		return ""
	}

	// an explicit hint from the catalog wins over the band table
	if meta.MinimumJavaVersion != "" {
		minimum, err := version.ParseRuntime(meta.MinimumJavaVersion)
		if err == nil {
			if minimum > e.runtimeN {
				return fmt.Sprintf("Plugin %s:%s requires %s but you have runtime %s",
					id, meta.Version, meta.MinimumJavaVersion, e.runtime)
			}
			return ""
		}
		e.log.Debugf("Ignoring unparseable runtime hint %q for %s", meta.MinimumJavaVersion, id)
	}

	required, err := version.Parse(meta.RequiredCore)
	if err != nil {
		e.log.Warnf("Cannot parse required platform version %q for %s, allowing all runtimes: %v",
			meta.RequiredCore, id, err)
		return ""
	}

	band, ok := e.bands.Match(required)
	if !ok {
		e.log.Debugf("No runtime band covers %s (requires %s), allowing all runtimes", id, meta.RequiredCore)
		return ""
	}

	if !band.Allows(e.runtimeN) {
		return fmt.Sprintf("Plugin %s:%s requires runtime %s (allowed: %s) but you have runtime %s",
			id, meta.Version, band.MinRuntime(), strings.Join(band.Runtimes, ", "), e.runtime)
	}
	return ""
}
