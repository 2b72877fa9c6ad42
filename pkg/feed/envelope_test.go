package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
  "core": {"version": "2.479.1"},
  "plugins": {
    "git": {"name": "git", "version": "5.2.1", "requiredCore": "2.400"},
    "sshd": {"name": "sshd", "version": "3.330", "requiredCore": "2.500"},
    "legacy": {"version": "0.9"},
    "hinted": {"name": "hinted", "version": "1.0", "requiredCore": "2.401", "minimumJavaVersion": "Java 11"}
  }
}`

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"wrapped", "updateCenter.post(\n{\"a\":1}\n);", `{"a":1}`},
		{"wrapped with trailing newline", "updateCenter.post(\n{\"a\":1}\n);\n", `{"a":1}`},
		{"wrapped without suffix", "updateCenter.post({\"a\":1}", `{"a":1}`},
		{"plain json", "  {\"a\":1}\n", `{"a":1}`},
		{"prefix not at start", `{"x":"updateCenter.post("}`, `{"x":"updateCenter.post("}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Unwrap([]byte(tt.body), DefaultEnvelope)))
		})
	}
}

func TestUnwrap_CustomEnvelope(t *testing.T) {
	env := Envelope{Prefix: "callback(", Suffix: ")"}
	assert.Equal(t, `[1,2]`, string(Unwrap([]byte("callback([1,2])"), env)))

	// an empty prefix disables unwrapping
	assert.Equal(t, "callback([1,2])", string(Unwrap([]byte("callback([1,2])"), Envelope{})))
}

func TestDecodeCatalog(t *testing.T) {
	for name, body := range map[string]string{
		"plain":   catalogJSON,
		"wrapped": "updateCenter.post(\n" + catalogJSON + "\n);",
	} {
		t.Run(name, func(t *testing.T) {
			catalog, err := DecodeCatalog([]byte(body), DefaultEnvelope)
			require.NoError(t, err)

			assert.Equal(t, "2.479.1", catalog.Core.Version)
			assert.Len(t, catalog.Plugins, 4)

			git, ok := catalog.Lookup("git")
			require.True(t, ok)
			assert.Equal(t, "5.2.1", git.Version)
			assert.Equal(t, "2.400", git.RequiredCore)

			legacy, ok := catalog.Lookup("legacy")
			require.True(t, ok)
			assert.Equal(t, DefaultRequiredCore, legacy.RequiredCore)
			assert.Equal(t, "legacy", legacy.Name)

			hinted, _ := catalog.Lookup("hinted")
			assert.Equal(t, "Java 11", hinted.MinimumJavaVersion)

			_, ok = catalog.Lookup("Git")
			assert.False(t, ok, "lookup is case-sensitive")
		})
	}
}

func TestDecodeCatalog_Errors(t *testing.T) {
	_, err := DecodeCatalog([]byte("<html>502 Bad Gateway</html>"), DefaultEnvelope)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog")

	_, err = DecodeCatalog([]byte("updateCenter.post(\n);"), DefaultEnvelope)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty body")
}

func TestDecodeCatalog_NoPlugins(t *testing.T) {
	catalog, err := DecodeCatalog([]byte(`{"core":{"version":"2.479.1"}}`), DefaultEnvelope)
	require.NoError(t, err)
	assert.NotNil(t, catalog.Plugins)
	assert.Empty(t, catalog.Plugins)
}

func TestCatalog_LookupNil(t *testing.T) {
	var c *Catalog
	_, ok := c.Lookup("git")
	assert.False(t, ok)
}
