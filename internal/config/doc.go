// Package config provides settings management for the hsv CLI.
//
// Settings live in ~/.config/hsv/config.yaml (see [paths.SettingsFile]) and
// are distinct from the configuration documents hsv manages:
//
//	version: 1
//	configs_dir: ~/scoring/configs      # optional
//	selected_config_path: /path/to.json # written by hsv select
//	log_level: info                     # optional
//
// Every key can be overridden from the environment with the HSV_ prefix,
// e.g. HSV_CONFIGS_DIR. A .env file in the working directory is read at
// [Init].
//
// # Loading
//
//	if err := config.Init(); err != nil {
//	    return err
//	}
//	cfg, err := config.Load("")
//
// # Selection
//
// [Selection] persists the active document path so the next run can restore
// it. It is the store's selection memory in production.
package config
