package config

import (
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/hsv/internal/errors"
	"github.com/thoreinstein/hsv/internal/logging"
)

// Validation errors for settings fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidLogLevel indicates an unrecognized log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrUnknownKey indicates a setting key hsv does not define.
	ErrUnknownKey = errors.New("unknown setting")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	for _, f := range []struct{ field, path string }{
		{KeyConfigsDir, cfg.ConfigsDir},
		{KeySelectedConfigPath, cfg.SelectedConfigPath},
	} {
		if err := validatePath(f.path); err != nil {
			errs = append(errs, &PathError{Field: f.field, Path: f.path, Err: err})
		}
	}

	if cfg.LogLevel != "" {
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			errs = append(errs, errors.Wrapf(ErrInvalidLogLevel, "%s", cfg.LogLevel))
		}
	}

	return errs
}

// Set assigns a setting from its string form, validates the result, and
// saves the settings file. The previous value is restored if validation fails.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return errors.Wrapf(ErrUnknownKey, "%s (valid: %s)", key, strings.Join(Keys, ", "))
	}

	var typed any = value
	if key == KeyVersion {
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "%s must be an integer", key)
		}
		typed = n
	}

	previous := viper.Get(key)
	viper.Set(key, typed)

	cfg, err := Current()
	if err == nil {
		if errs := Validate(cfg); len(errs) > 0 {
			err = errors.Join(errs...)
		}
	}
	if err != nil {
		viper.Set(key, previous)
		return err
	}

	return Save()
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths mean "use default"
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}

	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
