// Package version orders platform and runtime versions and maps platform
// versions to the runtimes they support.
//
// # Ordering
//
// Every version comparison in plugcompat goes through this package. Versions
// are compared as dotted integer tuples, never as strings, so "2.54" sorts
// below "2.164":
//
//	c, err := version.Compare("2.400", "2.479.1") // c == -1
//
// Parsing is backed by github.com/hashicorp/go-version. Trailing zeros are
// insignificant, a pre-release ("-rc1") sorts before the plain release and
// build metadata ("+build5") is ignored.
//
// # Bands
//
// A BandTable holds (minimum platform version -> allowed runtimes) rules,
// highest first. Match returns the first band whose lower bound does not
// exceed the plugin's required platform version:
//
//	table := version.MustBandTable(version.DefaultBands)
//	band, ok := table.Match(version.MustParse("2.400"))
//	// band.MinPlatform == "2.361", band.Allows(21) == true
//
// The table is plain data and can be replaced from the config file.
package version
