// Package commands implements the CLI commands for hsv.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/hsv/cmd"
	"github.com/thoreinstein/hsv/internal/config"
	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// colorFlag holds the value of the --color flag.
var colorFlag string

// configsDirFlag overrides the configs_dir setting for one invocation.
var configsDirFlag string

// configLoadErr holds any error that occurred during settings loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&configsDirFlag, "configs-dir", "",
		"directory holding configuration documents (default from settings)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("hsv version {{.Version}}\n")

	// Errors are printed by main so the exit code and suggestion stay together.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	configLoadErr = nil
	if err := config.Init(); err != nil {
		configLoadErr = err
		return
	}
	cfg, err := config.Load("")
	if err != nil {
		configLoadErr = err
		return
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		configLoadErr = errors.Mark(errors.Join(errs...), errors.ErrInvalidConfig)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hsv",
	Short: "Manage score display judgment configurations",
	Long: `hsv manages the judgment configuration documents that control how
hit scores are displayed.

It lists the documents in the configuration directory, reports which can be
used by this release, upgrades documents written by older releases, and
remembers which one is active.`,
	Example: `  # See every document and its state
  hsv list

  # Activate a document, migrating it if needed
  hsv select default

  # Check why a document cannot be selected
  hsv validate mine

  See Also: hsv status, hsv settings`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger from the verbosity, format,
// color, and log file flags, and stores it in the command context.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	mode, err := logging.ParseColorMode(colorFlag)
	if err != nil {
		return errors.NewUserError(err, "Use --color auto, always, or never")
	}
	if mode != logging.ColorAuto {
		color.NoColor = mode == logging.ColorNever
	}

	var level slog.Level
	switch {
	case quiet:
		level = slog.LevelError
	case verbosity > 0:
		level = logging.LevelFromVerbosity(verbosity)
	default:
		level = defaultLevel()
	}

	console := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
		Color:  mode,
	}).Handler()

	var file slog.Handler
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		file = slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(logging.Tee(console, file))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// defaultLevel is the level used without -v or -q: HSV_DEBUG first, then
// the log_level setting, then Warn.
func defaultLevel() slog.Level {
	if val, ok := os.LookupEnv("HSV_DEBUG"); ok {
		switch val {
		case "1", "true":
			return slog.LevelDebug
		case "2":
			return logging.LevelTrace
		}
	}
	if name := viper.GetString(config.KeyLogLevel); name != "" {
		if level, err := logging.ParseLevel(name); err == nil {
			return level
		}
	}
	return logging.LevelFromVerbosity(0)
}

// checkConfig reports settings that failed to load. Commands that repair
// settings or print static information run regardless.
func checkConfig(cmd *cobra.Command, _ []string) error {
	if configLoadErr == nil {
		return nil
	}
	if cmd.Name() == "help" || cmd.Name() == "version" || cmd == doctorCmd || isSettingsCommand(cmd) {
		return nil
	}
	return errors.NewConfigError(configLoadErr)
}

func isSettingsCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == settingsCmd {
			return true
		}
	}
	return false
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
