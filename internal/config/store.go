package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wlmouse/beastx/internal/catalog"
)

const (
	appName    = "beastx"
	configFile = "config.yaml"
)

// GetConfigDir returns the OS-appropriate configuration directory for the
// application. This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/beastx or $HOME/.config/beastx
//   - macOS: $HOME/.config/beastx (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\beastx
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			// Fallback to USERPROFILE\AppData\Local if LOCALAPPDATA not set
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		// Linux and other Unix-like systems: XDG_CONFIG_HOME or $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the settings file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Store holds the current configuration in memory and persists every
// mutation to a single YAML file. All mutations funnel through its methods;
// the embedded mutex is the only serialization point for the shared record.
type Store struct {
	mu      sync.Mutex
	path    string
	log     *zap.Logger
	current Config
}

// Open loads the configuration at path and returns a store backed by it.
// An empty path selects the per-user default location. Open never fails on
// account of the file's contents: a missing, unreadable, or malformed file
// yields the default configuration.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve settings path: %w", err)
		}
		path = p
	}

	s := &Store{
		path:    path,
		log:     log,
		current: load(path, log),
	}
	return s, nil
}

// load reads persisted settings. Read and parse failures are recoverable by
// design: they log at debug level and fall back to defaults.
func load(path string, log *zap.Logger) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug("settings file not readable, using defaults",
			zap.String("path", path), zap.Error(err))
		return Default()
	}

	// Unmarshal over the defaults so that keys missing from the file keep
	// their default values (per-key merge).
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Debug("settings file malformed, using defaults",
			zap.String("path", path), zap.Error(err))
		return Default()
	}

	return cfg.normalize()
}

// Path returns the location of the settings file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Save persists the current configuration.
// Performs an atomic write to prevent corruption on crash.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the full configuration, superseding the previous file.
// Callers must hold s.mu.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return NewWriteFailedError("failed to create settings directory", err)
	}

	data, err := yaml.Marshal(s.current)
	if err != nil {
		return NewWriteFailedError("failed to marshal settings", err)
	}

	header := []byte(`# Beast X settings
# Managed by beastx-cfg; edits are overwritten on the next change.

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return NewWriteFailedError("failed to write temporary settings file", err)
	}

	// Atomic rename (this is atomic on all platforms)
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return NewWriteFailedError("failed to replace settings file", err)
	}

	s.log.Debug("settings persisted", zap.String("path", s.path))
	return nil
}

// SetActiveProfile selects the DPI profile at idx and persists.
// Fails with an out-of-range error for indexes outside the profile list.
func (s *Store) SetActiveProfile(idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.current.DPIProfiles) {
		return NewOutOfRangeError(fmt.Sprintf("profile index %d outside profile list of length %d", idx, len(s.current.DPIProfiles)))
	}

	s.current.ActiveDPI = idx
	return s.save()
}

// AddProfile appends a new DPI profile (clamped to the valid range) and
// persists. Fails with a capacity error when the list already holds the
// maximum number of profiles.
func (s *Store) AddProfile(value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.current.DPIProfiles) >= MaxProfiles {
		return NewCapacityExceededError(fmt.Sprintf("profile list is full (%d profiles)", MaxProfiles))
	}

	s.current.DPIProfiles = append(s.current.DPIProfiles, ClampDPI(value))
	return s.save()
}

// RemoveProfile deletes the profile at idx and persists. Fails with a
// minimum-profiles error when only one profile remains, and an out-of-range
// error for bad indexes. The active index is clamped so it never dangles.
func (s *Store) RemoveProfile(idx int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.current.DPIProfiles) <= MinProfiles {
		return NewMinimumProfilesError("at least one DPI profile must remain")
	}
	if idx < 0 || idx >= len(s.current.DPIProfiles) {
		return NewOutOfRangeError(fmt.Sprintf("profile index %d outside profile list of length %d", idx, len(s.current.DPIProfiles)))
	}

	s.current.DPIProfiles = append(s.current.DPIProfiles[:idx], s.current.DPIProfiles[idx+1:]...)
	if s.current.ActiveDPI >= len(s.current.DPIProfiles) {
		s.current.ActiveDPI = len(s.current.DPIProfiles) - 1
	}
	return s.save()
}

// SetProfileValue stores a sensitivity for the profile at idx, clamped to
// [MinDPI, MaxDPI] and rounded to the nearest multiple of DPIStep, then
// persists. Fails with an out-of-range error for bad indexes.
func (s *Store) SetProfileValue(idx, raw int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx < 0 || idx >= len(s.current.DPIProfiles) {
		return NewOutOfRangeError(fmt.Sprintf("profile index %d outside profile list of length %d", idx, len(s.current.DPIProfiles)))
	}

	s.current.DPIProfiles[idx] = ClampDPI(raw)
	return s.save()
}

// SetPollRate stores a new polling rate and persists. Fails with an
// invalid-setting error when hz is not a catalog key; the configuration is
// unchanged in that case.
func (s *Store) SetPollRate(hz int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !catalog.ValidPollRate(hz) {
		return NewInvalidSettingError(fmt.Sprintf("unsupported polling rate: %d Hz (supported: %v)", hz, catalog.PollRates()))
	}

	s.current.PollRate = hz
	return s.save()
}

// SetLiftOff stores a new lift-off distance code and persists. Fails with
// an invalid-setting error when code is not a catalog key.
func (s *Store) SetLiftOff(code int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !catalog.ValidLiftOff(code) {
		return NewInvalidSettingError(fmt.Sprintf("unsupported lift-off distance code: %d (supported: %v)", code, catalog.LiftOffDistances()))
	}

	s.current.LiftOff = code
	return s.save()
}
