package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/internal/errors"
)

var migrateDryRun bool

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "print the upgraded document without saving it")
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <name>",
	Short: "Upgrade a document written by an older release",
	Long: `Upgrade a configuration document to this release's format and save it.

Selecting a document upgrades it automatically; migrate does so without
activating it.`,
	Example: `  # Preview the upgrade
  hsv migrate old --dry-run

  # Upgrade in place
  hsv migrate old

  See Also: hsv validate, hsv select`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func runMigrate(c *cobra.Command, args []string) error {
	s, err := newStore(c)
	if err != nil {
		return err
	}

	cfg, applied, err := s.Migrate(c.Context(), args[0], migrateDryRun)
	if err != nil {
		return userError(err)
	}

	w := c.OutOrStdout()
	if migrateDryRun {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "marshaling document")
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "Migrated %s to %s\n", args[0], cfg.Version)
	for _, name := range applied {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	return nil
}
