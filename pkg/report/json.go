package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/platinummonkey/plugcompat/pkg/compatibility"
)

// Document is the JSON form of a run report
type Document struct {
	*compatibility.Result
	Manifest ManifestStatus `json:"manifest"`
}

// ManifestStatus records the outcome of the manifest write
type ManifestStatus struct {
	Path    string `json:"path"`
	Written bool   `json:"written"`
	Error   string `json:"error,omitempty"`
}

// WriteJSON writes the result and manifest status as an indented JSON document
func WriteJSON(w io.Writer, result *compatibility.Result, manifestPath string, manifestErr error) error {
	doc := Document{
		Result: result,
		Manifest: ManifestStatus{
			Path:    manifestPath,
			Written: manifestErr == nil,
		},
	}
	if manifestErr != nil {
		doc.Manifest.Error = manifestErr.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
