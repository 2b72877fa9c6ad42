package compatibility

import "fmt"

// Status is the outcome of checking one plugin
type Status int

const (
	StatusCompatible Status = iota
	StatusIncompatible
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusCompatible:
		return "compatible"
	case StatusIncompatible:
		return "incompatible"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText renders the status name in JSON reports
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "compatible":
		*s = StatusCompatible
	case "incompatible":
		*s = StatusIncompatible
	case "not_found":
		*s = StatusNotFound
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// Check names the check that rejected a plugin
type Check string

const (
	CheckNone     Check = ""
	CheckCatalog  Check = "catalog"
	CheckPlatform Check = "platform"
	CheckRuntime  Check = "runtime"
)

// Verdict is the result for one requested plugin
type Verdict struct {
	Plugin       string `json:"plugin"`
	Version      string `json:"version,omitempty"`
	Status       Status `json:"status"`
	FailedCheck  Check  `json:"failed_check,omitempty"`
	Reason       string `json:"reason,omitempty"`
	RequiredCore string `json:"required_core,omitempty"`
}

// Compatible reports whether the plugin passed every check
func (v Verdict) Compatible() bool {
	return v.Status == StatusCompatible
}

// Entry renders the plugin as "id:version"
func (v Verdict) Entry() string {
	return v.Plugin + ":" + v.Version
}

// Result holds one verdict per requested plugin, in request order
type Result struct {
	Platform string    `json:"platform"`
	Runtime  string    `json:"runtime"`
	Verdicts []Verdict `json:"verdicts"`
	Summary  Summary   `json:"summary"`
}

// Summary counts verdicts by status
type Summary struct {
	Total        int `json:"total"`
	Compatible   int `json:"compatible"`
	Incompatible int `json:"incompatible"`
	NotFound     int `json:"not_found"`
}

// Compatible returns the compatible verdicts in request order
func (r *Result) Compatible() []Verdict {
	return r.filter(func(v Verdict) bool { return v.Compatible() })
}

// Issues returns the incompatible and not-found verdicts in request order
func (r *Result) Issues() []Verdict {
	return r.filter(func(v Verdict) bool { return !v.Compatible() })
}

// HasIssues reports whether any plugin was incompatible or missing
func (r *Result) HasIssues() bool {
	return r.Summary.Incompatible+r.Summary.NotFound > 0
}

// Versions maps each compatible plugin to its resolved version
func (r *Result) Versions() map[string]string {
	out := make(map[string]string)
	for _, v := range r.Verdicts {
		if v.Compatible() {
			out[v.Plugin] = v.Version
		}
	}
	return out
}

func (r *Result) filter(keep func(Verdict) bool) []Verdict {
	var out []Verdict
	for _, v := range r.Verdicts {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (r *Result) add(v Verdict) {
	r.Verdicts = append(r.Verdicts, v)
	r.Summary.Total++
	switch v.Status {
	case StatusCompatible:
		r.Summary.Compatible++
	case StatusIncompatible:
		r.Summary.Incompatible++
	case StatusNotFound:
		r.Summary.NotFound++
	}
}
