package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/internal/editor"
	"github.com/thoreinstein/hsv/internal/errors"
)

// openEditor is replaced in tests.
var openEditor = editor.Open

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Open a configuration document in your editor",
	Long: `Open a configuration document in $EDITOR (or $VISUAL, nano, vi) and
report its state once the editor exits.`,
	Example: `  hsv edit default
  EDITOR="code --wait" hsv edit mine

  See Also: hsv validate`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(c *cobra.Command, args []string) error {
	s, err := newStore(c)
	if err != nil {
		return err
	}
	info, err := s.Find(c.Context(), args[0])
	if err != nil {
		return userError(err)
	}

	if err := openEditor(c.Context(), info.Path); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to an installed editor")
	}

	info, err = s.Find(c.Context(), args[0])
	if err != nil {
		return userError(err)
	}

	w := c.OutOrStdout()
	fmt.Fprintf(w, "%s is %s\n", info.Name, stateColor(info.State).Sprint(info.State))
	if !info.Selectable() {
		fmt.Fprintf(w, "%s\n", color.YellowString("Run: hsv validate %s for details", info.Name))
	}
	return nil
}
