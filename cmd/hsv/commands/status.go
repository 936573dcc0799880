package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/internal/store"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active configuration document",
	Long: `Run the startup sequence and show which document is active.

This restores the remembered selection exactly as the application does at
launch, upgrading the document if needed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(c *cobra.Command, _ []string) error {
	s, err := newStore(c)
	if err != nil {
		return err
	}
	if err := s.Initialize(c.Context()); err != nil {
		return userError(err)
	}

	w := c.OutOrStdout()
	fmt.Fprintf(w, "Directory: %s\n", s.Dir())
	fmt.Fprintf(w, "Release:   %s\n", s.Current())

	cfg, path := s.Active().Get()
	if cfg == nil {
		fmt.Fprintf(w, "Active:    %s\n", color.New(color.FgHiBlack).Sprint("none"))
		return nil
	}

	fmt.Fprintf(w, "Active:    %s\n", color.New(color.FgGreen).Sprint(store.DisplayName(path)))
	fmt.Fprintf(w, "Path:      %s\n", path)
	fmt.Fprintf(w, "Judgments: %d\n", len(cfg.Judgments))
	return nil
}
