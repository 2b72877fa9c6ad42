// Package compatibility decides which catalog plugin releases can be installed
// on a given platform version and runtime.
//
// # Checks
//
// Each requested plugin goes through up to three steps, stopping at the first
// failure so a plugin is reported under one reason only:
//
//  1. Catalog: the identifier must exist in the catalog (case-sensitive) and
//     its entry must name a release version.
//  2. Platform: the plugin's requiredCore must not exceed the platform version.
//  3. Runtime: an explicit minimumJavaVersion hint is honoured when present.
//     Otherwise the plugin's requiredCore selects a band from the
//     version.BandTable, and the configured runtime must be in that band.
//
// Versions are always ordered with pkg/version, never as strings.
//
// # Permissive fallbacks
//
// A version that cannot be parsed never aborts a run. An unparseable
// requiredCore or runtime is logged and the runtime check allows the plugin,
// and an unparseable platform comparison skips the platform check.
//
// # Usage
//
//	eval := compatibility.NewEvaluator(bands, "21", metrics, log)
//	result := eval.Evaluate([]string{"git", "sshd"}, "2.479.1", catalog)
//	for _, v := range result.Issues() {
//		fmt.Println(v.Reason)
//	}
package compatibility
