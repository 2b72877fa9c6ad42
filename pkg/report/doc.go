// Package report renders the outcome of a compatibility run: a terminal
// report, an optional JSON document, and the plugins.txt manifest consumed
// by install-plugins tooling.
//
// The manifest has exactly one line per requested plugin, in request order:
//
//	git:5.2.1
//	# sshd - NOT FOUND OR INCOMPATIBLE
//
// WriteManifest replaces the file atomically.
package report
