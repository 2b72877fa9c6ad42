package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/plugcompat/pkg/compatibility"
	"github.com/platinummonkey/plugcompat/pkg/feed"
	"github.com/platinummonkey/plugcompat/pkg/version"
)

func evaluate(t *testing.T, plugins ...string) *compatibility.Result {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	catalog := &feed.Catalog{
		Plugins: map[string]feed.PluginMetadata{
			"git":         {Name: "git", Version: "5.2.1", RequiredCore: "2.400"},
			"sshd":        {Name: "sshd", Version: "3.330", RequiredCore: "2.500"},
			"timestamper": {Name: "timestamper", Version: "1.27", RequiredCore: "2.479.1"},
		},
	}

	eval := compatibility.NewEvaluator(version.MustBandTable(version.DefaultBands), "21", nil, log)
	return eval.Evaluate(plugins, "2.479.1", catalog)
}

func TestRenderManifest(t *testing.T) {
	result := evaluate(t, "git", "sshd", "dark-theme", "timestamper")

	want := "git:5.2.1\n" +
		"# sshd - NOT FOUND OR INCOMPATIBLE\n" +
		"# dark-theme - NOT FOUND OR INCOMPATIBLE\n" +
		"timestamper:1.27\n"
	assert.Equal(t, want, string(RenderManifest(result)))
}

func TestRenderManifest_Empty(t *testing.T) {
	assert.Empty(t, RenderManifest(evaluate(t)))
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.txt")
	result := evaluate(t, "timestamper", "dark-theme", "git")

	require.NoError(t, WriteManifest(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Equal(t, []string{
		"timestamper:1.27",
		"# dark-theme - NOT FOUND OR INCOMPATIBLE",
		"git:5.2.1",
	}, lines)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteManifest_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.txt")

	require.NoError(t, WriteManifest(path, evaluate(t, "git", "sshd", "dark-theme")))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteManifest(path, evaluate(t, "git", "sshd", "dark-theme")))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriteManifest_OverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugins.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale:1.0\nother:2.0\nmore:3.0\n"), 0644))

	require.NoError(t, WriteManifest(path, evaluate(t, "git")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "git:5.2.1\n", string(data))
}

func TestWriteManifest_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "plugins.txt")

	err := WriteManifest(path, evaluate(t, "git"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create manifest")
}

func TestWriteManifest_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteManifest(filepath.Join(dir, "plugins.txt"), evaluate(t, "git")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plugins.txt", entries[0].Name())
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := evaluate(t, "git", "sshd", "dark-theme")
	p.Banner("2.479.1", "21")
	p.Results(result)
	p.ManifestWritten("plugins.txt")
	p.Summary(result)

	out := buf.String()
	assert.Contains(t, out, "Checking plugin compatibility with platform 2.479.1 and runtime 21")
	assert.Contains(t, out, "COMPATIBLE PLUGINS:\n  - git:5.2.1\n")
	assert.Contains(t, out, "COMPATIBILITY ISSUES FOUND:\n")
	assert.Contains(t, out, "  - Plugin sshd:3.330 requires platform 2.500 but you have 2.479.1\n")
	assert.Contains(t, out, "  - Plugin dark-theme not found in catalog\n")
	assert.Contains(t, out, "Generated plugins.txt with compatible plugin versions")
	assert.Contains(t, out, "2 of 3 plugins have issues (1 incompatible, 1 not found)")

	// a buffer is not a terminal
	assert.NotContains(t, out, "\x1b[")
	assert.Less(t, strings.Index(out, "COMPATIBLE PLUGINS"), strings.Index(out, "COMPATIBILITY ISSUES"))
}

func TestPrinter_AllCompatible(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := evaluate(t, "git", "timestamper")
	p.Results(result)
	p.Summary(result)

	out := buf.String()
	assert.NotContains(t, out, "COMPATIBILITY ISSUES FOUND")
	assert.Contains(t, out, "All 2 plugins are compatible with platform 2.479.1 and runtime 21")
}

func TestPrinter_ManifestFailed(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).ManifestFailed("plugins.txt", errors.New("read-only file system"))
	assert.Contains(t, buf.String(), "Failed to write plugins.txt: read-only file system")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	result := evaluate(t, "git", "dark-theme")

	require.NoError(t, WriteJSON(&buf, result, "plugins.txt", nil))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2.479.1", doc["platform"])
	assert.Equal(t, "21", doc["runtime"])

	verdicts := doc["verdicts"].([]any)
	require.Len(t, verdicts, 2)
	first := verdicts[0].(map[string]any)
	assert.Equal(t, "git", first["plugin"])
	assert.Equal(t, "compatible", first["status"])
	second := verdicts[1].(map[string]any)
	assert.Equal(t, "not_found", second["status"])
	assert.Equal(t, "catalog", second["failed_check"])

	manifest := doc["manifest"].(map[string]any)
	assert.Equal(t, true, manifest["written"])
	assert.NotContains(t, manifest, "error")
}

func TestWriteJSON_ManifestError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, evaluate(t, "git"), "plugins.txt", errors.New("disk full")))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.False(t, doc.Manifest.Written)
	assert.Equal(t, "disk full", doc.Manifest.Error)
}
