package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/platinummonkey/plugcompat/pkg/compatibility"
)

// Printer writes the human-readable report. Colours are only emitted when
// the writer is a terminal.
type Printer struct {
	w io.Writer

	heading lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a printer for w
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)

	return &Printer{
		w:       w,
		heading: r.NewStyle().Bold(true),
		good:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		bad:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Banner announces the platform and runtime being checked against
func (p *Printer) Banner(platform, runtime string) {
	fmt.Fprintln(p.w, p.heading.Render(
		fmt.Sprintf("Checking plugin compatibility with platform %s and runtime %s", platform, runtime)))
}

// Results prints the compatible plugins followed by the issues. Empty
// sections are omitted.
func (p *Printer) Results(result *compatibility.Result) {
	if compatible := result.Compatible(); len(compatible) > 0 {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, p.good.Render("COMPATIBLE PLUGINS:"))
		for _, v := range compatible {
			fmt.Fprintf(p.w, "  - %s\n", v.Entry())
		}
	}

	if issues := result.Issues(); len(issues) > 0 {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, p.bad.Render("COMPATIBILITY ISSUES FOUND:"))
		for _, v := range issues {
			fmt.Fprintf(p.w, "  - %s\n", v.Reason)
		}
	}
}

// ManifestWritten reports where the manifest went
func (p *Printer) ManifestWritten(path string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf("Generated %s with compatible plugin versions", path)))
}

// ManifestFailed reports a manifest that could not be written
func (p *Printer) ManifestFailed(path string, err error) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.bad.Render(fmt.Sprintf("Failed to write %s: %v", path, err)))
}

// Summary prints the final one-line verdict
func (p *Printer) Summary(result *compatibility.Result) {
	fmt.Fprintln(p.w)
	if !result.HasIssues() {
		fmt.Fprintln(p.w, p.good.Render(fmt.Sprintf(
			"All %d plugins are compatible with platform %s and runtime %s",
			result.Summary.Total, result.Platform, result.Runtime)))
		return
	}

	fmt.Fprintln(p.w, p.bad.Render(fmt.Sprintf(
		"%d of %d plugins have issues (%d incompatible, %d not found)",
		result.Summary.Incompatible+result.Summary.NotFound, result.Summary.Total,
		result.Summary.Incompatible, result.Summary.NotFound)))
}
