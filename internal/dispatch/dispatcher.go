package dispatch

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wlmouse/beastx/internal/catalog"
	"github.com/wlmouse/beastx/internal/config"
)

// resultBuffer bounds the outcome channel. A consumer that stops reading
// loses the oldest outcomes rather than blocking the worker.
const resultBuffer = 16

// Device is the hardware side the dispatcher drives. *transport.Transport
// satisfies it; tests substitute a fixture.
type Device interface {
	Connect() error
	Disconnect()
	Connected() bool
	Send(report catalog.Report) error
}

// Result is the outcome of one hardware send, delivered asynchronously on
// the Results channel.
type Result struct {
	// Description names the operation in user terms, e.g.
	// "polling rate set to 1000 Hz (1 ms)"
	Description string

	// Err is nil on success
	Err error
}

// Ok reports whether the operation reached the device.
func (r Result) Ok() bool {
	return r.Err == nil
}

type job struct {
	connectOnly bool
	report      catalog.Report
	description string
}

// Dispatcher applies setting changes: it commits them to the store first,
// then ships the matching report to the device from a single worker
// goroutine, preserving submission order.
//
// Commits are optimistic. The store is the source of truth the moment a
// mutation validates; a hardware send that later fails does not roll it
// back, it just surfaces as a failed Result. Reconciliation is re-running
// Apply once the device is back.
type Dispatcher struct {
	log     *zap.Logger
	store   *config.Store
	dev     Device
	jobs    chan job
	results chan Result

	closeOnce sync.Once
	done      chan struct{}
}

// New creates a dispatcher and starts its worker.
func New(log *zap.Logger, store *config.Store, dev Device) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		log:     log,
		store:   store,
		dev:     dev,
		jobs:    make(chan job, resultBuffer),
		results: make(chan Result, resultBuffer),
		done:    make(chan struct{}),
	}
	go d.worker()
	return d
}

// Results delivers one Result per attempted hardware send, in submission
// order. The channel closes after Close once all pending work has drained.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Connect opens the device synchronously, bypassing the queue. Intended for
// explicit user-driven connection toggles.
func (d *Dispatcher) Connect() error {
	return d.dev.Connect()
}

// Disconnect closes the device synchronously.
func (d *Dispatcher) Disconnect() {
	d.dev.Disconnect()
}

// Connected reports whether the device is currently open.
func (d *Dispatcher) Connected() bool {
	return d.dev.Connected()
}

// Config returns a copy of the current stored configuration.
func (d *Dispatcher) Config() config.Config {
	return d.store.Config()
}

// Close stops accepting work, lets queued sends finish, disconnects the
// device, and closes the Results channel.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
	})
	<-d.done
}

// AutoConnect queues a connection attempt. Failures are logged, not
// reported: at startup the mouse being unplugged is an ordinary state, and
// the first real send will retry and surface the error if it persists.
func (d *Dispatcher) AutoConnect() {
	d.jobs <- job{connectOnly: true}
}

// SetPollRate commits a new polling rate and queues the report that applies
// it. Validation errors return synchronously with nothing queued; a
// persistence error still queues the send, since the in-memory commit
// already happened.
func (d *Dispatcher) SetPollRate(hz int) error {
	err := d.store.SetPollRate(hz)
	if err != nil && !config.IsWriteFailed(err) {
		return err
	}

	report, lookupErr := catalog.Lookup(catalog.DomainPollRate, hz)
	if lookupErr != nil {
		return config.NewInvalidSettingError(lookupErr.Error())
	}

	d.jobs <- job{
		report:      report,
		description: fmt.Sprintf("polling rate set to %s", config.FormatPollRate(hz)),
	}
	return err
}

// SetLiftOff commits a new lift-off distance and queues the report that
// applies it. Error semantics match SetPollRate.
func (d *Dispatcher) SetLiftOff(code int) error {
	err := d.store.SetLiftOff(code)
	if err != nil && !config.IsWriteFailed(err) {
		return err
	}

	report, lookupErr := catalog.Lookup(catalog.DomainLiftOff, code)
	if lookupErr != nil {
		return config.NewInvalidSettingError(lookupErr.Error())
	}

	d.jobs <- job{
		report:      report,
		description: fmt.Sprintf("lift-off distance set to %s", config.FormatLiftOff(code)),
	}
	return err
}

// SetActiveProfile selects a DPI profile. The sensor reads the active
// profile from onboard memory, so this is a store-only change.
func (d *Dispatcher) SetActiveProfile(idx int) error {
	return d.store.SetActiveProfile(idx)
}

// AddProfile appends a DPI profile. Store-only.
func (d *Dispatcher) AddProfile(value int) error {
	return d.store.AddProfile(value)
}

// RemoveProfile deletes a DPI profile. Store-only.
func (d *Dispatcher) RemoveProfile(idx int) error {
	return d.store.RemoveProfile(idx)
}

// SetProfileValue updates one profile's sensitivity. Store-only.
func (d *Dispatcher) SetProfileValue(idx, raw int) error {
	return d.store.SetProfileValue(idx, raw)
}

// Apply re-sends every hardware-backed setting from the store, restating
// the persisted configuration on the device.
func (d *Dispatcher) Apply() error {
	cfg := d.store.Config()

	rateReport, err := catalog.Lookup(catalog.DomainPollRate, cfg.PollRate)
	if err != nil {
		return config.NewInvalidSettingError(err.Error())
	}
	lodReport, err := catalog.Lookup(catalog.DomainLiftOff, cfg.LiftOff)
	if err != nil {
		return config.NewInvalidSettingError(err.Error())
	}

	d.jobs <- job{
		report:      rateReport,
		description: fmt.Sprintf("polling rate set to %s", config.FormatPollRate(cfg.PollRate)),
	}
	d.jobs <- job{
		report:      lodReport,
		description: fmt.Sprintf("lift-off distance set to %s", config.FormatLiftOff(cfg.LiftOff)),
	}
	return nil
}

// worker drains the job queue one entry at a time. Running sends on a
// single goroutine is what serializes hardware access and keeps outcomes
// in submission order.
func (d *Dispatcher) worker() {
	defer close(d.done)
	defer close(d.results)
	defer d.dev.Disconnect()

	for j := range d.jobs {
		if j.connectOnly {
			if err := d.dev.Connect(); err != nil {
				d.log.Debug("auto-connect failed", zap.Error(err))
			}
			continue
		}
		d.emit(Result{
			Description: j.description,
			Err:         d.send(j.report),
		})
	}
}

// send delivers one report, reconnecting first if the device was lost.
func (d *Dispatcher) send(report catalog.Report) error {
	if !d.dev.Connected() {
		if err := d.dev.Connect(); err != nil {
			return err
		}
	}
	return d.dev.Send(report)
}

// emit pushes a Result without ever blocking the worker. When the consumer
// has fallen behind, the oldest buffered outcome is dropped to make room.
func (d *Dispatcher) emit(r Result) {
	for {
		select {
		case d.results <- r:
			return
		default:
		}
		select {
		case old := <-d.results:
			d.log.Warn("result buffer full, dropping oldest outcome",
				zap.String("description", old.Description))
		default:
		}
	}
}
