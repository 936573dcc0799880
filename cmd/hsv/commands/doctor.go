package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/internal/config"
	"github.com/thoreinstein/hsv/internal/doctor"
	"github.com/thoreinstein/hsv/internal/errors"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false, "show passed and informational checks too")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "repair fixable issues, then check again")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose settings and configuration documents",
	Long: `Check the settings file, the configuration directory, every document in
it, and the remembered selection.

With --fix, a missing directory is recreated and a selection that can no
longer be restored is forgotten.

Exit codes:
  0 - All checks passed
  1 - Warnings present, no errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var (
	errDoctorWarnings = errors.New("doctor found warnings")
	errDoctorErrors   = errors.New("doctor found errors")
)

func runDoctor(c *cobra.Command, _ []string) error {
	if doctorJSON && doctorAll {
		return errors.NewUserError(errors.New("--json and --all are mutually exclusive"), "")
	}

	s, err := newStore(c)
	if err != nil {
		return err
	}

	runner := doctor.NewRunner(
		doctor.NewSettingsCheck(config.Path(), loadedSettings),
		doctor.NewDirectoryCheck(s),
		doctor.NewDocumentsCheck(s),
		doctor.NewSelectionCheck(s, selectionMemory),
	)

	w := c.OutOrStdout()
	if quiet {
		w = io.Discard
	}

	report := runner.Run(c.Context())
	if doctorFix {
		fixes := runner.Fix()
		if !doctorJSON {
			for _, f := range fixes {
				printFix(w, f)
			}
		}
		if len(fixes) > 0 {
			report = runner.Run(c.Context())
		}
	}

	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else {
		printDoctorReport(w, report)
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

// loadedSettings reports the settings as loaded at startup.
func loadedSettings() (*config.Config, error) {
	if configLoadErr != nil && !errors.Is(configLoadErr, errors.ErrInvalidConfig) {
		return nil, configLoadErr
	}
	return config.Current()
}

func printFix(w io.Writer, f doctor.FixResult) {
	if f.Fixed {
		fmt.Fprintf(w, "%s fixed %s: %s\n", color.GreenString("✓"), f.Path, f.Description)
		return
	}
	fmt.Fprintf(w, "%s could not fix %s: %s (%v)\n", color.RedString("✗"), f.Path, f.Description, f.Error)
}

func printDoctorReport(w io.Writer, report *doctor.Report) {
	shown := 0
	for _, result := range report.Results {
		if !doctorAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}
		shown++
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && result.Status >= doctor.SeverityWarning {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}
	if shown > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
