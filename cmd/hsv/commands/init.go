package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/internal/config"
	"github.com/thoreinstein/hsv/internal/errors"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration directory and settings file",
	Long: `Create the configuration directory with a default document, and the
settings file if it does not exist yet. Existing files are left untouched.`,
	Example: `  # Set up hsv
  hsv init

  # Use a custom directory
  hsv init --configs-dir ~/scoring

  See Also: hsv settings, hsv list`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(c *cobra.Command, _ []string) error {
	s, err := newStore(c)
	if err != nil {
		return err
	}
	if err := s.Bootstrap(); err != nil {
		return errors.NewSystemError(err, "Check permissions on "+s.Dir())
	}

	w := c.OutOrStdout()
	fmt.Fprintf(w, "Configurations: %s\n", s.Dir())

	settings := config.Path()
	if _, err := os.Stat(settings); err == nil {
		fmt.Fprintf(w, "Settings:       %s (exists)\n", settings)
		return nil
	}
	if err := config.Save(); err != nil {
		return errors.NewSystemError(err, "Check permissions on "+settings)
	}
	fmt.Fprintf(w, "Settings:       %s\n", settings)
	return nil
}
