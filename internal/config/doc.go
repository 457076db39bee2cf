// Package config provides persisted user settings for the Beast X mouse.
//
// This package manages a YAML-based settings file holding the DPI profile
// list, the active profile index, the polling rate, and the lift-off
// distance. The file location follows OS-specific conventions.
//
// # Settings File Location
//
// The settings file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/beastx/config.yaml or $HOME/.config/beastx/config.yaml
//   - macOS: $HOME/.config/beastx/config.yaml
//   - Windows: %LOCALAPPDATA%\beastx\config.yaml
//
// # Load Semantics
//
// Loading never fails on account of the file's contents. A missing file
// yields the defaults; a partial file keeps defaults for absent keys; a
// malformed file is discarded in favor of the defaults. Loaded values are
// normalized back into range, so a hand-edited file cannot put the store
// into an invalid state.
//
// # Mutation Semantics
//
// Every mutation validates first and persists immediately on success.
// Validation failures (invalid setting, index out of range, profile list
// full or at minimum) leave both memory and disk untouched. A persistence
// failure after a successful validation keeps the in-memory change and is
// reported as a write-failed error.
//
// # Usage Example
//
//	store, err := config.Open("", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := store.SetPollRate(2000); err != nil {
//	    // config.IsInvalidSetting(err) for unsupported rates
//	}
//
//	fmt.Print(store.Config().FormatDetailed())
package config
