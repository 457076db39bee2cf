// Package catalog holds the fixed binary reports understood by the Beast X
// firmware, keyed by logical setting value.
//
// The reports were captured from USB traffic between the stock vendor
// software and the mouse. Their internal structure (checksums, field
// boundaries) is unconfirmed, so the package deliberately stores each report
// as an opaque literal byte row rather than computing packets from the
// setting value. Doubling a polling rate does not predictably transform the
// byte pattern; the only safe operation is exact reproduction.
//
// # Domains
//
// Two setting domains exist:
//   - Polling rate: 125, 250, 500, 1000, 2000, 4000 Hz
//   - Lift-off distance: 0 (1 mm), 1 (2 mm)
//
// # Usage Example
//
//	report, err := catalog.Lookup(catalog.DomainPollRate, 1000)
//	if err != nil {
//	    // key is not a member of the catalog; nothing was sent anywhere
//	}
//	// hand report to the transport
//
// Lookup failures are programming or input errors, never hardware faults:
// they are detected before any device communication is attempted.
package catalog
