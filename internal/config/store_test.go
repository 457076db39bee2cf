package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

// TestOpenMissingFile tests that a missing file yields the defaults.
func TestOpenMissingFile(t *testing.T) {
	s := newTestStore(t)
	if !s.Config().Equal(Default()) {
		t.Errorf("Config() = %+v, want defaults", s.Config())
	}
}

// TestOpenMalformedFile tests that unparseable content yields the defaults.
func TestOpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not: [valid: yaml"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !s.Config().Equal(Default()) {
		t.Errorf("Config() = %+v, want defaults", s.Config())
	}
}

// TestOpenPartialFileMergesDefaults tests the per-key merge on load.
func TestOpenPartialFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(`{"poll_rate": 500}`), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	cfg := s.Config()
	if cfg.PollRate != 500 {
		t.Errorf("PollRate = %d, want 500", cfg.PollRate)
	}
	def := Default()
	if len(cfg.DPIProfiles) != len(def.DPIProfiles) {
		t.Errorf("DPIProfiles = %v, want defaults %v", cfg.DPIProfiles, def.DPIProfiles)
	}
	if cfg.ActiveDPI != def.ActiveDPI {
		t.Errorf("ActiveDPI = %d, want %d", cfg.ActiveDPI, def.ActiveDPI)
	}
	if cfg.LiftOff != def.LiftOff {
		t.Errorf("LiftOff = %d, want %d", cfg.LiftOff, def.LiftOff)
	}
}

// TestOpenNormalizesLoadedValues tests coercion of a hand-edited file.
func TestOpenNormalizesLoadedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "dpi_profiles: [137, 40, 30000]\nactive_dpi: 9\npoll_rate: 750\nlift_off_distance: 5\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	cfg := s.Config()
	want := []int{150, 50, 26000}
	for i := range want {
		if cfg.DPIProfiles[i] != want[i] {
			t.Errorf("DPIProfiles = %v, want %v", cfg.DPIProfiles, want)
			break
		}
	}
	if cfg.ActiveDPI != 2 {
		t.Errorf("ActiveDPI = %d, want 2 (clamped)", cfg.ActiveDPI)
	}
	if cfg.PollRate != 1000 {
		t.Errorf("PollRate = %d, want default 1000", cfg.PollRate)
	}
	if cfg.LiftOff != 0 {
		t.Errorf("LiftOff = %d, want default 0", cfg.LiftOff)
	}
}

// TestSaveRoundTrip tests that a saved configuration loads back identically.
func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.SetPollRate(2000); err != nil {
		t.Fatalf("SetPollRate() error = %v", err)
	}
	if err := s.SetLiftOff(1); err != nil {
		t.Fatalf("SetLiftOff() error = %v", err)
	}
	if err := s.AddProfile(6400); err != nil {
		t.Fatalf("AddProfile() error = %v", err)
	}
	if err := s.SetActiveProfile(4); err != nil {
		t.Fatalf("SetActiveProfile() error = %v", err)
	}

	reloaded, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if !reloaded.Config().Equal(s.Config()) {
		t.Errorf("reloaded config = %+v, want %+v", reloaded.Config(), s.Config())
	}
}

// TestSaveCreatesDirectory tests persistence into a not-yet-existing directory.
func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	s, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("settings file not created: %v", err)
	}
}

// TestSaveWritesHeader tests that the persisted file carries its comment header.
func TestSaveWritesHeader(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# Beast X settings") {
		t.Errorf("persisted file does not start with the expected header:\n%s", data)
	}
}

// TestSetActiveProfile tests profile selection and index validation.
func TestSetActiveProfile(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetActiveProfile(3); err != nil {
		t.Fatalf("SetActiveProfile(3) error = %v", err)
	}
	if got := s.Config().ActiveDPI; got != 3 {
		t.Errorf("ActiveDPI = %d, want 3", got)
	}

	for _, idx := range []int{-1, 4, 99} {
		err := s.SetActiveProfile(idx)
		if !IsOutOfRange(err) {
			t.Errorf("SetActiveProfile(%d) error = %v, want out-of-range", idx, err)
		}
	}
	if got := s.Config().ActiveDPI; got != 3 {
		t.Errorf("ActiveDPI changed by a rejected mutation: %d", got)
	}
}

// TestAddProfile tests appending with clamping and the capacity limit.
func TestAddProfile(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddProfile(137); err != nil {
		t.Fatalf("AddProfile(137) error = %v", err)
	}
	cfg := s.Config()
	if got := cfg.DPIProfiles[len(cfg.DPIProfiles)-1]; got != 150 {
		t.Errorf("appended profile = %d, want 150 (clamped)", got)
	}

	// List now holds 5 profiles (the maximum).
	err := s.AddProfile(800)
	if !IsCapacityExceeded(err) {
		t.Errorf("AddProfile() at capacity error = %v, want capacity-exceeded", err)
	}
	if got := len(s.Config().DPIProfiles); got != MaxProfiles {
		t.Errorf("profile count = %d, want %d", got, MaxProfiles)
	}
}

// TestRemoveProfile tests removal, index validation, and the minimum count.
func TestRemoveProfile(t *testing.T) {
	s := newTestStore(t)

	if err := s.RemoveProfile(0); err != nil {
		t.Fatalf("RemoveProfile(0) error = %v", err)
	}
	cfg := s.Config()
	if len(cfg.DPIProfiles) != 3 || cfg.DPIProfiles[0] != 800 {
		t.Errorf("DPIProfiles = %v, want [800 1600 3200]", cfg.DPIProfiles)
	}

	if err := s.RemoveProfile(5); !IsOutOfRange(err) {
		t.Errorf("RemoveProfile(5) error = %v, want out-of-range", err)
	}

	if err := s.RemoveProfile(0); err != nil {
		t.Fatalf("RemoveProfile() error = %v", err)
	}
	if err := s.RemoveProfile(0); err != nil {
		t.Fatalf("RemoveProfile() error = %v", err)
	}

	err := s.RemoveProfile(0)
	if !IsMinimumProfiles(err) {
		t.Errorf("RemoveProfile() of last profile error = %v, want minimum-profiles", err)
	}
	if got := len(s.Config().DPIProfiles); got != 1 {
		t.Errorf("profile count = %d, want 1", got)
	}
}

// TestRemoveProfileClampsActiveIndex tests that removing the tail profile
// pulls the active index back into range.
func TestRemoveProfileClampsActiveIndex(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetActiveProfile(3); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveProfile(3); err != nil {
		t.Fatalf("RemoveProfile(3) error = %v", err)
	}

	cfg := s.Config()
	if cfg.ActiveDPI != 2 {
		t.Errorf("ActiveDPI = %d, want 2 (clamped after removal)", cfg.ActiveDPI)
	}
}

// TestSetProfileValue tests per-profile sensitivity updates.
func TestSetProfileValue(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		raw  int
		want int
	}{
		{137, 150},
		{40, 50},
		{30000, 26000},
		{1600, 1600},
	}
	for _, tt := range tests {
		if err := s.SetProfileValue(0, tt.raw); err != nil {
			t.Fatalf("SetProfileValue(0, %d) error = %v", tt.raw, err)
		}
		if got := s.Config().DPIProfiles[0]; got != tt.want {
			t.Errorf("SetProfileValue(0, %d): profile = %d, want %d", tt.raw, got, tt.want)
		}
	}

	if err := s.SetProfileValue(9, 800); !IsOutOfRange(err) {
		t.Errorf("SetProfileValue(9, ...) error = %v, want out-of-range", err)
	}
}

// TestSetPollRate tests catalog membership validation for polling rates.
func TestSetPollRate(t *testing.T) {
	s := newTestStore(t)

	for _, hz := range []int{125, 250, 500, 1000, 2000, 4000} {
		if err := s.SetPollRate(hz); err != nil {
			t.Errorf("SetPollRate(%d) error = %v", hz, err)
		}
		if got := s.Config().PollRate; got != hz {
			t.Errorf("PollRate = %d, want %d", got, hz)
		}
	}

	err := s.SetPollRate(750)
	if !IsInvalidSetting(err) {
		t.Errorf("SetPollRate(750) error = %v, want invalid-setting", err)
	}
	if got := s.Config().PollRate; got != 4000 {
		t.Errorf("PollRate changed by a rejected mutation: %d", got)
	}
}

// TestSetLiftOff tests catalog membership validation for lift-off codes.
func TestSetLiftOff(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetLiftOff(1); err != nil {
		t.Fatalf("SetLiftOff(1) error = %v", err)
	}
	if got := s.Config().LiftOff; got != 1 {
		t.Errorf("LiftOff = %d, want 1", got)
	}

	err := s.SetLiftOff(2)
	if !IsInvalidSetting(err) {
		t.Errorf("SetLiftOff(2) error = %v, want invalid-setting", err)
	}
}

// TestConfigReturnsCopy tests that the accessor does not leak internal state.
func TestConfigReturnsCopy(t *testing.T) {
	s := newTestStore(t)

	cfg := s.Config()
	cfg.DPIProfiles[0] = 12000

	if got := s.Config().DPIProfiles[0]; got == 12000 {
		t.Error("mutating a Config() result changed the store")
	}
}
