package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the build version, overridden by ldflags
var Version = "dev"

// ErrIssuesFound is returned when at least one plugin is incompatible or
// missing from the catalog. The report has already been printed.
var ErrIssuesFound = errors.New("compatibility issues found")

// options holds flag values shared by all commands
type options struct {
	configFile      string
	pluginsFile     string
	manifestPath    string
	platformVersion string
	runtimeVersion  string
	latestCoreURL   string
	catalogURLs     []string
	format          string
	metricsFile     string
	logLevel        string
}

// NewRootCommand creates the root command. Running it without a subcommand
// is the same as running "check".
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "plugcompat",
		Short: "Check plugin compatibility against a platform and runtime version",
		Long: `plugcompat reads a list of plugins, looks each one up in the update-center
catalog and writes a plugins.txt manifest pinning every plugin whose latest
release supports the target platform and runtime.

The exit status is 1 when any plugin is incompatible or missing, so the
command can gate a pipeline step.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	flags.StringVarP(&opts.pluginsFile, "plugins", "p", "", "Plugin list file (default plugins.list, built-in list if missing)")
	flags.StringVarP(&opts.manifestPath, "output", "o", "", "Manifest file to write (default plugins.txt)")
	flags.StringVar(&opts.platformVersion, "platform-version", "", "Check against this platform version instead of resolving the latest")
	flags.StringVar(&opts.runtimeVersion, "runtime-version", "", "Runtime major version (default 21)")
	flags.StringVar(&opts.latestCoreURL, "latest-core-url", "", "Plain-text endpoint returning the latest platform version")
	flags.StringSliceVar(&opts.catalogURLs, "catalog-url", nil, "Catalog URL to try, in order (repeatable)")
	flags.StringVar(&opts.format, "format", "", "Report format: text, json")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newCheckCommand(opts))
	root.AddCommand(newBandsCommand(opts))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the root command and returns the process exit status
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, ErrIssuesFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the plugcompat version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plugcompat %s\n", Version)
		},
	}
}
