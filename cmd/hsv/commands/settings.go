package commands

import (
	"fmt"
	"slices"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/hsv/internal/config"
	"github.com/thoreinstein/hsv/internal/errors"
)

var settingsFormat string

func init() {
	settingsCmd.PersistentFlags().StringVar(&settingsFormat, "format", "yaml", "output format for list: yaml, toml")
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsListCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage hsv settings",
	Long: `Manage hsv settings stored in ~/.config/hsv/config.yaml.

Without a subcommand, lists all settings. Any setting can be overridden
with an HSV_ environment variable, e.g. HSV_CONFIGS_DIR.`,
	Example: `  # List all settings
  hsv settings

  # Get a specific value
  hsv settings get configs_dir

  # Set a value
  hsv settings set configs_dir ~/scoring/configs

See Also: hsv init`,
	RunE: runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a setting",
	Example: `  hsv settings get selected_config_path

See Also: hsv settings set, hsv settings list`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Long: `Set a setting and save the settings file.

Valid keys: version, configs_dir, selected_config_path, log_level.
log_level accepts trace, debug, info, warn, or error.`,
	Example: `  hsv settings set log_level debug

See Also: hsv settings get, hsv settings list`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	Long:  `List all settings in YAML, or TOML with --format toml.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

func runSettingsGet(c *cobra.Command, args []string) error {
	key := args[0]
	if !slices.Contains(config.Keys, key) {
		return errors.NewUserError(errors.Wrapf(config.ErrUnknownKey, "%s", key), "Run: hsv settings list")
	}

	if value := viper.GetString(key); value != "" {
		fmt.Fprintln(c.OutOrStdout(), value)
	} else {
		fmt.Fprintln(c.OutOrStdout(), "not set")
	}
	return nil
}

func runSettingsSet(c *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := config.Set(key, value); err != nil {
		return errors.NewConfigError(err)
	}
	fmt.Fprintf(c.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func runSettingsList(c *cobra.Command, _ []string) error {
	cfg, err := config.Current()
	if err != nil {
		return errors.NewConfigError(err)
	}

	var data []byte
	switch settingsFormat {
	case "yaml":
		data, err = yaml.Marshal(cfg)
	case "toml":
		data, err = toml.Marshal(cfg)
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", settingsFormat), "Use --format yaml or --format toml")
	}
	if err != nil {
		return errors.Wrap(err, "marshaling settings")
	}

	fmt.Fprint(c.OutOrStdout(), string(data))
	return nil
}
