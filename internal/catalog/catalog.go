package catalog

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// ReportSize is the payload size of every configuration report.
	ReportSize = 64

	// WireSize is the on-wire size of a report: a one-byte transport-level
	// report ID followed by the 64-byte payload.
	WireSize = ReportSize + 1

	// CommandClass is the first payload byte of every configuration report.
	CommandClass = 0x04
)

// Report is a complete 64-byte configuration report, zero-padded beyond the
// captured bytes. Byte 0 is always CommandClass.
type Report [ReportSize]byte

// Bytes returns the report payload as a fresh slice.
func (r Report) Bytes() []byte {
	out := make([]byte, ReportSize)
	copy(out, r[:])
	return out
}

// Domain identifies which setting table a key belongs to.
type Domain int

const (
	// DomainPollRate keys are polling rates in Hz.
	DomainPollRate Domain = iota
	// DomainLiftOff keys are lift-off distance codes (0 = 1 mm, 1 = 2 mm).
	DomainLiftOff
)

// String returns a human-readable name for the domain.
func (d Domain) String() string {
	switch d {
	case DomainPollRate:
		return "poll_rate"
	case DomainLiftOff:
		return "lift_off_distance"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// ErrInvalidSetting is returned (wrapped) when a lookup key is not a member
// of the requested domain's table.
var ErrInvalidSetting = errors.New("invalid setting")

// Lookup returns the exact captured report for the given domain and key.
//
// Unknown keys fail with an error wrapping ErrInvalidSetting. This is an
// input error, not a hardware fault, and is always detected before any
// transport call.
func Lookup(domain Domain, key int) (Report, error) {
	var table map[int]Report
	switch domain {
	case DomainPollRate:
		table = pollRateReports
	case DomainLiftOff:
		table = liftOffReports
	default:
		return Report{}, fmt.Errorf("%w: unknown domain %d", ErrInvalidSetting, int(domain))
	}

	report, ok := table[key]
	if !ok {
		return Report{}, fmt.Errorf("%w: no %s report for value %d", ErrInvalidSetting, domain, key)
	}
	return report, nil
}

// ValidPollRate reports whether hz is a supported polling rate.
func ValidPollRate(hz int) bool {
	_, ok := pollRateReports[hz]
	return ok
}

// ValidLiftOff reports whether code is a supported lift-off distance code.
func ValidLiftOff(code int) bool {
	_, ok := liftOffReports[code]
	return ok
}

// PollRates returns the supported polling rates in ascending order.
func PollRates() []int {
	rates := make([]int, 0, len(pollRateReports))
	for hz := range pollRateReports {
		rates = append(rates, hz)
	}
	sort.Ints(rates)
	return rates
}

// LiftOffDistances returns the supported lift-off distance codes in
// ascending order.
func LiftOffDistances() []int {
	codes := make([]int, 0, len(liftOffReports))
	for code := range liftOffReports {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
