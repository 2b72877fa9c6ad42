/*
Package cli implements the plugcompat command line.

# Commands

	plugcompat [check]   evaluate plugins and write the manifest (default)
	plugcompat bands     print the platform to runtime band table
	plugcompat version   print the build version

# Configuration

Settings are layered: built-in defaults, then the YAML file named by
--config, then PLUGCOMPAT_* environment variables, then flags that were
explicitly set on the command line. See package config for the keys.

# Output

The report goes to stdout, as text or JSON depending on --format. Logs go
to stderr. The manifest is written to --output (default plugins.txt) even
when some plugins have issues; it is not written when the catalog could
not be fetched at all.

# Exit Status

Execute returns 0 when every plugin is compatible and 1 otherwise. A run
that found issues returns ErrIssuesFound from the command so that callers
embedding NewRootCommand can tell it apart from an operational failure
such as feed.ErrCatalogUnavailable.
*/
package cli
