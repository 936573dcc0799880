// Package config provides settings management for hsv using Viper.
package config

import (
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/paths"
	"github.com/thoreinstein/hsv/pkg/fileutil"
)

// EnvPrefix is prepended to setting keys to form environment variable names,
// e.g. HSV_CONFIGS_DIR.
const EnvPrefix = "HSV"

// Setting keys.
const (
	KeyVersion            = "version"
	KeyConfigsDir         = "configs_dir"
	KeySelectedConfigPath = "selected_config_path"
	KeyLogLevel           = "log_level"
)

// Keys lists every setting in display order.
var Keys = []string{KeyVersion, KeyConfigsDir, KeySelectedConfigPath, KeyLogLevel}

// Config represents the settings file.
type Config struct {
	Version            int    `mapstructure:"version" yaml:"version" toml:"version"`
	ConfigsDir         string `mapstructure:"configs_dir" yaml:"configs_dir,omitempty" toml:"configs_dir,omitempty"`
	SelectedConfigPath string `mapstructure:"selected_config_path" yaml:"selected_config_path,omitempty" toml:"selected_config_path,omitempty"`
	LogLevel           string `mapstructure:"log_level" yaml:"log_level,omitempty" toml:"log_level,omitempty"`
}

// Init initializes Viper with default settings.
// Call this once at application startup before accessing settings.
//
// A .env file in the working directory is loaded first so its values are
// visible to Viper's environment lookup. Variables already set in the
// environment win over the file.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "loading .env")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(paths.AppDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault(KeyVersion, 1)
	viper.SetDefault(KeyConfigsDir, "")
	viper.SetDefault(KeySelectedConfigPath, "")
	viper.SetDefault(KeyLogLevel, "")
	return nil
}

// Load reads the settings file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches the default location and falls back to
// defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load with no file: defaults apply.
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(err, "settings file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading settings file")
		}
	}

	return Current()
}

// Current returns the settings as Viper currently sees them, including
// environment overrides and values set since Load.
func Current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}
	return &cfg, nil
}

// Path returns the settings file Viper loaded, or the default location if
// none was found.
func Path() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.SettingsFile()
}

// Save writes the current settings to Path atomically, creating the parent
// directory if needed.
func Save() error {
	cfg, err := Current()
	if err != nil {
		return err
	}

	path := Path()
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating settings directory")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrap(err, "writing settings file")
	}
	return nil
}

// ConfigsDir returns the directory configuration documents are stored in:
// the configs_dir setting with "~" expanded, or paths.DefaultConfigsDir.
func ConfigsDir() (string, error) {
	dir := viper.GetString(KeyConfigsDir)
	if dir == "" {
		return paths.DefaultConfigsDir(), nil
	}
	expanded, err := paths.Expand(dir)
	if err != nil {
		return "", errors.Wrap(err, KeyConfigsDir)
	}
	return expanded, nil
}
