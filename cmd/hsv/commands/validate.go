package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/hsv/internal/classify"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/store"
	"github.com/thoreinstein/hsv/internal/validator"
)

var validateFormat string

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "output format: text, json")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <name>",
	Short: "Check whether a configuration document can be used",
	Long: `Check a configuration document and report every reason it cannot be
selected, or the upgrades it will receive when it is.

Exits non-zero if the document cannot be selected.`,
	Example: `  # Validate a document
  hsv validate mine

  # Machine-readable report
  hsv validate mine --format json

  See Also: hsv list, hsv migrate`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(c *cobra.Command, args []string) error {
	format := validator.Format(validateFormat)
	if format != validator.FormatText && format != validator.FormatJSON {
		return errors.NewUserError(errors.Newf("unknown format %q", validateFormat), "Use --format text or --format json")
	}

	s, err := newStore(c)
	if err != nil {
		return err
	}
	info, err := s.Find(c.Context(), args[0])
	if err != nil {
		return userError(err)
	}

	result := validationResult(s, info)
	if err := validator.NewReporter(c.OutOrStdout(), format).Report(info.Name, result); err != nil {
		return errors.Wrap(err, "writing report")
	}

	if result.HasErrors() {
		return errors.NewExitError(errors.Newf("%s cannot be selected", info.Name), errors.ExitUser)
	}
	return nil
}

// validationResult explains info's state as validator issues.
func validationResult(s *store.Store, info store.ConfigFileInfo) *validator.Result {
	result := &validator.Result{}
	bounds := s.Classifier().Bounds

	switch info.State {
	case classify.Broken:
		msg := "document has no version"
		if info.Err != nil {
			msg = info.Err.Error()
		}
		result.AddError("document", msg, nil)

	case classify.NewerVersion:
		result.AddError("version",
			fmt.Sprintf("written by a newer release than %s", s.Current()), info.Config.Version.String())

	case classify.Incompatible:
		result.AddError("version",
			fmt.Sprintf("older than %s, the oldest version that can be upgraded", bounds.MinimumMigratable),
			info.Config.Version.String())

	case classify.ValidationFailed:
		var issue *validator.Issue
		if errors.As(info.Err, &issue) {
			result.Add(*issue)
		} else {
			result.AddError("document", info.Err.Error(), nil)
		}

	case classify.NeedsMigration:
		result.AddWarning("version",
			fmt.Sprintf("will be upgraded to %s when selected", s.Current()), info.Config.Version.String())
		for _, step := range s.Chain().Pending(*info.Config.Version) {
			result.AddInfo("migration", step.Name, step.Version.String())
		}

	case classify.Compatible:
		result.AddInfo("version", "compatible with this release", info.Config.Version.String())
	}

	return result
}
