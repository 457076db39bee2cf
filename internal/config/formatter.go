package config

import (
	"fmt"
	"strings"
)

// FormatPollRate returns a human-readable polling rate, e.g. "1000 Hz (1 ms)".
func FormatPollRate(hz int) string {
	if hz <= 0 {
		return fmt.Sprintf("%d Hz", hz)
	}
	intervalUs := 1000000 / hz
	if intervalUs%1000 == 0 {
		return fmt.Sprintf("%d Hz (%d ms)", hz, intervalUs/1000)
	}
	return fmt.Sprintf("%d Hz (%.2f ms)", hz, float64(intervalUs)/1000)
}

// FormatLiftOff returns a human-readable lift-off distance for a catalog code.
func FormatLiftOff(code int) string {
	switch code {
	case 0:
		return "1 mm"
	case 1:
		return "2 mm"
	default:
		return fmt.Sprintf("code %d", code)
	}
}

// Summary returns a one-line summary of the configuration
func (c Config) Summary() string {
	return fmt.Sprintf("DPI %d (profile %d/%d), %s, lift-off %s",
		c.ActiveProfileDPI(), c.ActiveDPI+1, len(c.DPIProfiles),
		FormatPollRate(c.PollRate), FormatLiftOff(c.LiftOff))
}

// FormatDPIProfiles returns a formatted string with the DPI profile list
func (c Config) FormatDPIProfiles() string {
	var b strings.Builder

	b.WriteString("=== DPI Profiles ===\n")
	for i, dpi := range c.DPIProfiles {
		marker := " "
		if i == c.ActiveDPI {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("%s Profile %d: %d DPI\n", marker, i+1, dpi))
	}

	return b.String()
}

// FormatSensorConfig returns a formatted string with the sensor settings
func (c Config) FormatSensorConfig() string {
	var b strings.Builder

	b.WriteString("=== Sensor Configuration ===\n")
	b.WriteString(fmt.Sprintf("Polling Rate:      %s\n", FormatPollRate(c.PollRate)))
	b.WriteString(fmt.Sprintf("Lift-Off Distance: %s\n", FormatLiftOff(c.LiftOff)))

	return b.String()
}

// FormatCompact returns a compact multi-line format suitable for terminal display
func (c Config) FormatCompact() string {
	var b strings.Builder

	profiles := make([]string, len(c.DPIProfiles))
	for i, dpi := range c.DPIProfiles {
		if i == c.ActiveDPI {
			profiles[i] = fmt.Sprintf("[%d]", dpi)
		} else {
			profiles[i] = fmt.Sprintf("%d", dpi)
		}
	}

	b.WriteString(fmt.Sprintf("DPI:      %s\n", strings.Join(profiles, " ")))
	b.WriteString(fmt.Sprintf("Rate:     %s\n", FormatPollRate(c.PollRate)))
	b.WriteString(fmt.Sprintf("Lift-Off: %s\n", FormatLiftOff(c.LiftOff)))

	return b.String()
}

// FormatDetailed returns a comprehensive formatted string with all settings
func (c Config) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("╔════════════════════════════════════════════════════════════════╗\n")
	b.WriteString("║                 BEAST X MOUSE CONFIGURATION                    ║\n")
	b.WriteString("╚════════════════════════════════════════════════════════════════╝\n")
	b.WriteString("\n")

	b.WriteString(c.FormatDPIProfiles())
	b.WriteString("\n")
	b.WriteString(c.FormatSensorConfig())

	return b.String()
}
