// Package paths resolves the directories hsv reads and writes.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance.
// On Linux the settings file lives under ~/.config/hsv and configuration
// documents default to ~/.config/hsv/configs.
//
//	paths.AppDir()            // <ConfigHome>/hsv
//	paths.SettingsFile()      // <ConfigHome>/hsv/config.yaml
//	paths.DefaultConfigsDir() // <ConfigHome>/hsv/configs
package paths
