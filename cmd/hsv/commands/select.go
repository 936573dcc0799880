package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/internal/classify"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/store"
)

func init() {
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(unselectCmd)
}

var selectCmd = &cobra.Command{
	Use:   "select [name]",
	Short: "Activate a configuration document",
	Long: `Activate a configuration document by name.

Documents written by an older release are upgraded and saved before they
become active. Without a name, an interactive finder lists the documents
that can be selected.`,
	Example: `  # Select by name
  hsv select default

  # Pick interactively
  hsv select

  See Also: hsv list, hsv unselect`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSelect,
}

var unselectCmd = &cobra.Command{
	Use:   "unselect",
	Short: "Clear the active configuration document",
	Args:  cobra.NoArgs,
	RunE:  runUnselect,
}

// pickDocument chooses among selectable documents. Replaced in tests.
var pickDocument = fuzzyPick

func runSelect(c *cobra.Command, args []string) error {
	s, err := newStore(c)
	if err != nil {
		return err
	}
	if err := s.Initialize(c.Context()); err != nil {
		return userError(err)
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		infos, err := s.ListAvailable(c.Context())
		if err != nil {
			return userError(err)
		}
		name, err = pickDocument(selectableOnly(infos))
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
	}

	before := s.Active().Path()
	info, err := s.SelectByName(c.Context(), name)
	if err != nil {
		return userError(err)
	}

	reportSelected(c.OutOrStdout(), info, before)
	return nil
}

func reportSelected(w io.Writer, info store.ConfigFileInfo, before string) {
	if before == info.Path {
		fmt.Fprintf(w, "%s is already active\n", info.Name)
		return
	}
	fmt.Fprintf(w, "Selected %s (%s)\n", info.Name, info.Config.Version)
}

func selectableOnly(infos []store.ConfigFileInfo) []store.ConfigFileInfo {
	out := make([]store.ConfigFileInfo, 0, len(infos))
	for _, info := range infos {
		if info.Selectable() {
			out = append(out, info)
		}
	}
	return out
}

// fuzzyPick opens an interactive finder. It returns "" if the user aborts.
func fuzzyPick(infos []store.ConfigFileInfo) (string, error) {
	if len(infos) == 0 {
		return "", errors.NewUserError(errors.New("no selectable configurations"), "Run: hsv list")
	}

	idx, err := fuzzyfinder.Find(
		infos,
		func(i int) string {
			return infos[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return previewDocument(infos[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}
	return infos[idx].Name, nil
}

// previewDocument summarizes a document for the finder's preview pane.
func previewDocument(info store.ConfigFileInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:    %s\nPath:    %s\nState:   %s\n", info.Name, info.Path, info.State)
	cfg := info.Config
	if cfg == nil {
		return sb.String()
	}
	fmt.Fprintf(&sb, "Version: %s\n", cfg.Version)
	if info.State == classify.NeedsMigration {
		sb.WriteString("         (will be upgraded on select)\n")
	}
	sb.WriteString("\nJudgments:\n")
	for _, j := range cfg.Judgments {
		fmt.Fprintf(&sb, "  %4d  %s\n", j.Threshold, j.Text)
	}
	return sb.String()
}

func runUnselect(c *cobra.Command, _ []string) error {
	s, err := newStore(c)
	if err != nil {
		return err
	}
	if err := s.Unselect(); err != nil {
		return errors.NewSystemError(err, "")
	}
	fmt.Fprintln(c.OutOrStdout(), "No configuration selected")
	return nil
}
