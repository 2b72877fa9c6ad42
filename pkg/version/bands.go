package version

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Band maps a minimum platform version to the runtimes a plugin built
// against that platform line can run on.
type Band struct {
	MinPlatform string   `yaml:"min_platform" json:"min_platform"`
	Runtimes    []string `yaml:"runtimes" json:"runtimes"`

	min      Version
	runtimes []int
}

// Allows reports whether the runtime major version is in the band
func (b Band) Allows(runtime int) bool {
	for _, r := range b.runtimes {
		if r == runtime {
			return true
		}
	}
	return false
}

// MinRuntime returns the first (lowest) runtime allowed by the band
func (b Band) MinRuntime() string {
	if len(b.Runtimes) == 0 {
		return ""
	}
	return b.Runtimes[0]
}

// String renders the band as "2.361+ -> 11, 17, 21"
func (b Band) String() string {
	return fmt.Sprintf("%s+ -> %s", b.MinPlatform, strings.Join(b.Runtimes, ", "))
}

// BandTable is an ordered list of bands, highest MinPlatform first.
// The first band whose lower bound is <= a required platform version wins.
type BandTable struct {
	bands []Band
}

// DefaultBands is the built-in platform -> runtime requirement table
var DefaultBands = []Band{
	{MinPlatform: "2.463", Runtimes: []string{"17", "21"}},
	{MinPlatform: "2.361", Runtimes: []string{"11", "17", "21"}},
	{MinPlatform: "2.164", Runtimes: []string{"8", "11"}},
	{MinPlatform: "2.54", Runtimes: []string{"8"}},
	{MinPlatform: "1.0", Runtimes: []string{"7", "8"}},
}

// NewBandTable validates the bands and sorts them in descending order of
// MinPlatform. Runtimes inside each band are sorted ascending so that
// MinRuntime is always the lowest entry.
func NewBandTable(bands []Band) (BandTable, error) {
	if len(bands) == 0 {
		return BandTable{}, fmt.Errorf("band table is empty")
	}

	parsed := make([]Band, 0, len(bands))

	for i, b := range bands {
		lower, err := Parse(b.MinPlatform)
		if err != nil {
			return BandTable{}, fmt.Errorf("band %d: min_platform: %w", i, err)
		}
		if len(b.Runtimes) == 0 {
			return BandTable{}, fmt.Errorf("band %d (%s): no runtimes listed", i, b.MinPlatform)
		}

		runtimes := make([]int, 0, len(b.Runtimes))
		for _, r := range b.Runtimes {
			n, err := ParseRuntime(r)
			if err != nil {
				return BandTable{}, fmt.Errorf("band %d (%s): %w", i, b.MinPlatform, err)
			}
			runtimes = append(runtimes, n)
		}
		sort.Ints(runtimes)

		names := make([]string, len(runtimes))
		for j, n := range runtimes {
			names[j] = strconv.Itoa(n)
		}

		parsed = append(parsed, Band{
			MinPlatform: b.MinPlatform,
			Runtimes:    names,
			min:         lower,
			runtimes:    runtimes,
		})
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].min.Compare(parsed[j].min) > 0
	})

	// equal bounds are adjacent once sorted, and 2.400 equals 2.400.0
	for i := 1; i < len(parsed); i++ {
		if parsed[i-1].min.Compare(parsed[i].min) == 0 {
			return BandTable{}, fmt.Errorf("duplicate min_platform %s and %s",
				parsed[i-1].MinPlatform, parsed[i].MinPlatform)
		}
	}

	return BandTable{bands: parsed}, nil
}

// MustBandTable is like NewBandTable but panics on error
func MustBandTable(bands []Band) BandTable {
	t, err := NewBandTable(bands)
	if err != nil {
		panic(err)
	}
	return t
}

// Bands returns the bands in evaluation order
func (t BandTable) Bands() []Band {
	out := make([]Band, len(t.bands))
	copy(out, t.bands)
	return out
}

// Match returns the band governing a plugin that requires the given platform
// version. ok is false when the requirement is below every band.
func (t BandTable) Match(required Version) (Band, bool) {
	for _, b := range t.bands {
		if b.min.Compare(required) <= 0 {
			return b, true
		}
	}
	return Band{}, false
}
