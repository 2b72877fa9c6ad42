package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/platinummonkey/plugcompat/pkg/compatibility"
)

// RenderManifest renders one line per verdict, in request order. Compatible
// plugins become "id:version"; everything else becomes a comment line.
func RenderManifest(result *compatibility.Result) []byte {
	var buf bytes.Buffer
	for _, v := range result.Verdicts {
		if v.Compatible() {
			fmt.Fprintf(&buf, "%s:%s\n", v.Plugin, v.Version)
		} else {
			fmt.Fprintf(&buf, "# %s - NOT FOUND OR INCOMPATIBLE\n", v.Plugin)
		}
	}
	return buf.Bytes()
}

// WriteManifest replaces the file at path with the rendered manifest. The
// content is written to a temporary file in the same directory and renamed
// into place, so readers see either the old manifest or the complete new one.
func WriteManifest(path string, result *compatibility.Result) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(RenderManifest(result)); err != nil {
		cleanup()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace manifest %s: %w", path, err)
	}

	return nil
}
