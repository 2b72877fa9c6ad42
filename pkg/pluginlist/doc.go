// Package pluginlist reads the list of plugin identifiers to check.
//
// The list file is newline-delimited. Lines starting with '#' and blank lines
// are ignored, and the "name:version" form used by plugins.txt is accepted
// with the version dropped, so a previous manifest can be fed straight back in:
//
//	git:5.2.1
//	# sshd - NOT FOUND OR INCOMPATIBLE
//	timestamper
//
// When the file is missing or empty the built-in DefaultPlugins list is used.
package pluginlist
