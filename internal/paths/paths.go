package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "hsv"

// SettingsFileName is the name of the settings file inside AppDir.
const SettingsFileName = "config.yaml"

// ConfigsDirName is the name of the default documents directory inside AppDir.
const ConfigsDirName = "configs"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// AppDir returns <ConfigHome>/hsv.
func AppDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// SettingsFile returns the path of the settings file.
func SettingsFile() string {
	return filepath.Join(AppDir(), SettingsFileName)
}

// DefaultConfigsDir returns the directory documents are stored in when the
// settings do not name one.
func DefaultConfigsDir() string {
	return filepath.Join(AppDir(), ConfigsDirName)
}

// Expand resolves a leading "~" to the home directory and cleans the path.
// It rejects empty paths and paths containing NUL bytes.
func Expand(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.Wrap(ErrInvalidPath, "empty path")
	}
	if strings.ContainsRune(path, 0) {
		return "", errors.Wrapf(ErrInvalidPath, "%q contains a NUL byte", path)
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := ResolveHome()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}
