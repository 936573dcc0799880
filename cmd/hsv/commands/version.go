package commands

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/cmd"
	"github.com/thoreinstein/hsv/internal/migration"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the build information of hsv and the range of document
versions it can read.`,
	RunE: func(c *cobra.Command, _ []string) error {
		chain := migration.Default()
		fmt.Fprintf(c.OutOrStdout(), "hsv version %s\n", cmd.Version)

		w := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 1, ' ', 0)
		fmt.Fprintf(w, "  commit:\t%s\n", cmd.Commit)
		fmt.Fprintf(w, "  built:\t%s\n", cmd.Date)
		fmt.Fprintf(w, "  go:\t%s\n", runtime.Version())
		fmt.Fprintf(w, "  documents:\t%s to %s\n", chain.MinimumMigratableVersion(), cmd.Version)
		fmt.Fprintf(w, "  migrates:\tup to %s\n", chain.MaximumMigrationNeededVersion())
		return w.Flush()
	},
}
