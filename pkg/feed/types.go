package feed

import "errors"

const (
	// DefaultRequiredCore applies when a catalog entry declares no requiredCore
	DefaultRequiredCore = "1.0"

	// DefaultPlatformFallback is used when no endpoint yields a platform version
	DefaultPlatformFallback = "2.479.1"

	DefaultLatestCoreURL = "https://updates.jenkins.io/stable/latestCore.txt"
)

// DefaultCatalogURLs are tried in order until one decodes
var DefaultCatalogURLs = []string{
	"https://updates.jenkins.io/stable/update-center.json",
	"https://updates.jenkins.io/stable/update-center.actual.json",
}

var (
	// ErrCatalogUnavailable means every catalog candidate failed. The run cannot continue.
	ErrCatalogUnavailable = errors.New("catalog unavailable from all sources")

	// ErrUnexpectedStatus is returned for non-2xx responses
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrEmptyVersion is returned when an endpoint answers without a version string
	ErrEmptyVersion = errors.New("empty platform version")
)

// Envelope describes a callback wrapper around a JSON document,
// e.g. updateCenter.post( {...} );
type Envelope struct {
	Prefix string `yaml:"envelope_prefix"`
	Suffix string `yaml:"envelope_suffix"`
}

// DefaultEnvelope is the wrapper used by the Jenkins update center
var DefaultEnvelope = Envelope{
	Prefix: "updateCenter.post(",
	Suffix: ");",
}

// PluginMetadata is one catalog entry
type PluginMetadata struct {
	Name               string `json:"name"`
	Version            string `json:"version"`
	RequiredCore       string `json:"requiredCore,omitempty"`
	MinimumJavaVersion string `json:"minimumJavaVersion,omitempty"`
}

// CoreInfo describes the platform release the catalog was published for
type CoreInfo struct {
	Version string `json:"version"`
}

// Catalog is the decoded update-center document
type Catalog struct {
	Core    CoreInfo                  `json:"core"`
	Plugins map[string]PluginMetadata `json:"plugins"`
}

// Lookup returns the metadata for a plugin identifier (case-sensitive)
func (c *Catalog) Lookup(id string) (PluginMetadata, bool) {
	if c == nil || c.Plugins == nil {
		return PluginMetadata{}, false
	}
	meta, ok := c.Plugins[id]
	return meta, ok
}

// Config holds feed endpoint configuration
type Config struct {
	LatestCoreURL    string
	CatalogURLs      []string
	Envelope         Envelope
	PlatformFallback string
	UserAgent        string
}

// DefaultConfig returns the Jenkins stable update-center endpoints
func DefaultConfig() Config {
	urls := make([]string, len(DefaultCatalogURLs))
	copy(urls, DefaultCatalogURLs)

	return Config{
		LatestCoreURL:    DefaultLatestCoreURL,
		CatalogURLs:      urls,
		Envelope:         DefaultEnvelope,
		PlatformFallback: DefaultPlatformFallback,
		UserAgent:        "plugcompat",
	}
}
