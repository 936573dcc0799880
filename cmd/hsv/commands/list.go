package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/internal/classify"
	"github.com/thoreinstein/hsv/internal/store"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration documents",
	Long: `List every document in the configuration directory with its state.

States:
  compatible         usable as-is
  needs-migration    usable; upgraded on select
  validation-failed  duplicate thresholds or a bad color
  incompatible       older than any supported upgrade
  newer-version      written by a newer release
  broken             unreadable or missing a version

The active document is marked with *.`,
	Example: `  # List documents
  hsv list

  # Output as JSON
  hsv list --json

  See Also: hsv select, hsv validate`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listItemJSON represents a document in JSON output format.
type listItemJSON struct {
	Name    string         `json:"name"`
	Path    string         `json:"path"`
	State   classify.State `json:"state"`
	Version string         `json:"version,omitempty"`
	Active  bool           `json:"active"`
	Error   string         `json:"error,omitempty"`
}

func runList(c *cobra.Command, _ []string) error {
	s, err := newStore(c)
	if err != nil {
		return err
	}
	if err := s.Initialize(c.Context()); err != nil {
		return userError(err)
	}

	infos, err := s.ListAvailable(c.Context())
	if err != nil {
		return userError(err)
	}

	active := s.Active().Path()
	if listJSON {
		return outputListJSON(c.OutOrStdout(), infos, active)
	}
	return outputListTabular(c.OutOrStdout(), infos, active)
}

func outputListJSON(w io.Writer, infos []store.ConfigFileInfo, active string) error {
	items := make([]listItemJSON, len(infos))
	for i, info := range infos {
		items[i] = listItemJSON{
			Name:   info.Name,
			Path:   info.Path,
			State:  info.State,
			Active: info.Path == active,
		}
		if info.Config != nil && info.Config.Version != nil {
			items[i].Version = info.Config.Version.String()
		}
		if info.Err != nil {
			items[i].Error = info.Err.Error()
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// stateColor picks the color a state is listed in.
func stateColor(s classify.State) *color.Color {
	switch s {
	case classify.Compatible:
		return color.New(color.FgGreen)
	case classify.NeedsMigration:
		return color.New(color.FgYellow)
	case classify.ValidationFailed, classify.Broken:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgHiBlack)
	}
}

func outputListTabular(w io.Writer, infos []store.ConfigFileInfo, active string) error {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No configurations found")
		return nil
	}

	bold := color.New(color.Bold)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\n", bold.Sprint("NAME"), bold.Sprint("VERSION"), bold.Sprint("STATE"))
	for _, info := range infos {
		marker := " "
		if info.Path == active {
			marker = "*"
		}
		ver := "-"
		if info.Config != nil && info.Config.Version != nil {
			ver = info.Config.Version.String()
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\n", marker, info.Name, ver, stateColor(info.State).Sprint(info.State))
	}
	return tw.Flush()
}
