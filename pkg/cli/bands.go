package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newBandsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "Print the platform to runtime requirement table",
		Long: `Print the band table used to infer which runtimes a plugin supports from
the platform version it requires. Bands are listed in evaluation order;
the first band whose minimum does not exceed the plugin's requirement wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			table, err := cfg.BandTable()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MIN PLATFORM\tRUNTIMES")
			for _, b := range table.Bands() {
				fmt.Fprintf(tw, "%s\t%s\n", b.MinPlatform, strings.Join(b.Runtimes, ", "))
			}
			return tw.Flush()
		},
	}
}
