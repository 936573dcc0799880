package config

import "github.com/spf13/viper"

// Selection remembers the active document path in the settings file.
type Selection struct{}

// SelectedPath returns the remembered path, or "" if none.
func (Selection) SelectedPath() string {
	return viper.GetString(KeySelectedConfigPath)
}

// RememberSelected stores path, or forgets the selection when path is "",
// and saves the settings file.
func (Selection) RememberSelected(path string) error {
	viper.Set(KeySelectedConfigPath, path)
	return Save()
}
