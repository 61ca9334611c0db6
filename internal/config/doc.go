// Package config provides user settings for formguard.
//
// Settings live in a YAML file that follows OS-specific conventions:
//   - Linux: $XDG_CONFIG_HOME/formguard/config.yaml or $HOME/.config/formguard/config.yaml
//   - macOS: $HOME/.config/formguard/config.yaml
//   - Windows: %LOCALAPPDATA%\formguard\config.yaml
//
// A missing file is not an error; defaults are used. After the file is read,
// FORMGUARD_* environment variables override individual values:
//
//	FORMGUARD_LOG_LEVEL=debug
//	FORMGUARD_SCROLL_VERTICAL_OFFSET=4
//	FORMGUARD_SERVER_PORT=9090
//
// # Usage Example
//
//	settings, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	reg := registry.New(registry.WithScroll(settings.Scroll))
//
// # Thread Safety
//
// Save writes atomically (temporary file plus rename) and is serialized by a
// package mutex.
package config
