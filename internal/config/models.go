package config

import (
	"fmt"

	"github.com/wlmouse/beastx/internal/catalog"
)

const (
	// MaxProfiles is the maximum number of DPI profiles the mouse exposes
	MaxProfiles = 5

	// MinProfiles is the minimum number of DPI profiles (the active profile
	// must always exist)
	MinProfiles = 1

	// MinDPI is the lowest sensitivity the sensor supports
	MinDPI = 50

	// MaxDPI is the highest sensitivity the sensor supports
	MaxDPI = 26000

	// DPIStep is the sensor's sensitivity granularity; all stored values
	// are multiples of this
	DPIStep = 50
)

// Config is the persisted user configuration for the mouse.
//
// Invariants (enforced by the Store's mutation methods and restored by
// normalize on load):
//   - 1 <= len(DPIProfiles) <= 5
//   - every profile value is in [50, 26000] and a multiple of 50
//   - 0 <= ActiveDPI < len(DPIProfiles)
//   - PollRate and LiftOff are members of their catalog key sets
type Config struct {
	// DPIProfiles are the stored sensitivity values, in profile order
	DPIProfiles []int `yaml:"dpi_profiles" json:"dpi_profiles"`

	// ActiveDPI is the index of the currently selected profile
	ActiveDPI int `yaml:"active_dpi" json:"active_dpi"`

	// PollRate is the polling rate in Hz
	PollRate int `yaml:"poll_rate" json:"poll_rate"`

	// LiftOff is the lift-off distance code (0 = 1 mm, 1 = 2 mm)
	LiftOff int `yaml:"lift_off_distance" json:"lift_off_distance"`
}

// Default returns the factory configuration used when no settings file
// exists or the existing one cannot be read.
func Default() Config {
	return Config{
		DPIProfiles: []int{400, 800, 1600, 3200},
		ActiveDPI:   1,
		PollRate:    1000,
		LiftOff:     0,
	}
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := c
	out.DPIProfiles = make([]int, len(c.DPIProfiles))
	copy(out.DPIProfiles, c.DPIProfiles)
	return out
}

// Equal reports whether two configurations are identical.
func (c Config) Equal(other Config) bool {
	if c.ActiveDPI != other.ActiveDPI || c.PollRate != other.PollRate || c.LiftOff != other.LiftOff {
		return false
	}
	if len(c.DPIProfiles) != len(other.DPIProfiles) {
		return false
	}
	for i := range c.DPIProfiles {
		if c.DPIProfiles[i] != other.DPIProfiles[i] {
			return false
		}
	}
	return true
}

// ActiveProfileDPI returns the sensitivity of the active profile.
func (c Config) ActiveProfileDPI() int {
	if c.ActiveDPI < 0 || c.ActiveDPI >= len(c.DPIProfiles) {
		return 0
	}
	return c.DPIProfiles[c.ActiveDPI]
}

// ClampDPI clamps raw into [MinDPI, MaxDPI] and rounds it to the nearest
// multiple of DPIStep. 137 becomes 150, 40 becomes 50, 30000 becomes 26000.
func ClampDPI(raw int) int {
	v := (raw + DPIStep/2) / DPIStep * DPIStep
	if v < MinDPI {
		return MinDPI
	}
	if v > MaxDPI {
		return MaxDPI
	}
	return v
}

// Validate checks every invariant of the configuration.
// Returns a slice of validation errors (empty if valid).
func (c Config) Validate() []error {
	var errs []error

	if len(c.DPIProfiles) < MinProfiles {
		errs = append(errs, NewMinimumProfilesError("at least one DPI profile is required"))
	}
	if len(c.DPIProfiles) > MaxProfiles {
		errs = append(errs, NewCapacityExceededError(fmt.Sprintf("too many DPI profiles: %d (max %d)", len(c.DPIProfiles), MaxProfiles)))
	}
	for i, dpi := range c.DPIProfiles {
		if dpi < MinDPI || dpi > MaxDPI {
			errs = append(errs, NewOutOfRangeError(fmt.Sprintf("profile %d: DPI %d outside [%d, %d]", i+1, dpi, MinDPI, MaxDPI)))
		} else if dpi%DPIStep != 0 {
			errs = append(errs, NewInvalidSettingError(fmt.Sprintf("profile %d: DPI %d is not a multiple of %d", i+1, dpi, DPIStep)))
		}
	}
	if c.ActiveDPI < 0 || c.ActiveDPI >= len(c.DPIProfiles) {
		errs = append(errs, NewOutOfRangeError(fmt.Sprintf("active profile index %d outside profile list of length %d", c.ActiveDPI, len(c.DPIProfiles))))
	}
	if !catalog.ValidPollRate(c.PollRate) {
		errs = append(errs, NewInvalidSettingError(fmt.Sprintf("unsupported polling rate: %d Hz (supported: %v)", c.PollRate, catalog.PollRates())))
	}
	if !catalog.ValidLiftOff(c.LiftOff) {
		errs = append(errs, NewInvalidSettingError(fmt.Sprintf("unsupported lift-off distance code: %d (supported: %v)", c.LiftOff, catalog.LiftOffDistances())))
	}

	return errs
}

// normalize coerces a loaded configuration back into a valid state. It is
// applied after reading persisted settings so that a hand-edited or stale
// file degrades to sane values instead of failing the load.
func (c Config) normalize() Config {
	def := Default()
	out := c.Clone()

	if len(out.DPIProfiles) < MinProfiles {
		out.DPIProfiles = def.DPIProfiles
		out.ActiveDPI = def.ActiveDPI
	}
	if len(out.DPIProfiles) > MaxProfiles {
		out.DPIProfiles = out.DPIProfiles[:MaxProfiles]
	}
	for i, dpi := range out.DPIProfiles {
		out.DPIProfiles[i] = ClampDPI(dpi)
	}
	if out.ActiveDPI < 0 {
		out.ActiveDPI = 0
	}
	if out.ActiveDPI >= len(out.DPIProfiles) {
		out.ActiveDPI = len(out.DPIProfiles) - 1
	}
	if !catalog.ValidPollRate(out.PollRate) {
		out.PollRate = def.PollRate
	}
	if !catalog.ValidLiftOff(out.LiftOff) {
		out.LiftOff = def.LiftOff
	}

	return out
}
