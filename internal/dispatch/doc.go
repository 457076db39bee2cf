// Package dispatch coordinates the settings store and the HID transport.
//
// Every setting change follows the same sequence: validate, persist, then
// queue the matching hardware report. Persistence happens before the send
// and is never rolled back on a transport failure; the stored configuration
// is the source of truth and the device is reconciled to it, not the other
// way around.
//
// Sends run on one worker goroutine, so reports reach the device strictly
// in submission order. Each attempted send produces one Result on the
// Results channel with a user-facing description of the operation.
package dispatch
