package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/sstallion/go-hid"
	"go.uber.org/zap"

	"github.com/wlmouse/beastx/internal/catalog"
)

// DefaultSendTimeout bounds a single report write. The protocol has no
// acknowledgements, so a write that does not complete promptly means the
// handle has gone stale (dongle unplugged, device suspended).
const DefaultSendTimeout = 3 * time.Second

// State is the connection state of the transport.
type State int

const (
	// StateDisconnected means no HID handle is held
	StateDisconnected State = iota
	// StateConnecting means enumeration or open is in progress
	StateConnecting
	// StateConnected means a handle is open and writable
	StateConnected
)

// String returns a human-readable name for the state
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// deviceHandle is the subset of an open HID device the transport uses.
type deviceHandle interface {
	Write(p []byte) (int, error)
	Close() error
}

// Opener opens an HID handle by path. Tests substitute a fixture.
type Opener func(path string) (deviceHandle, error)

func hidOpen(path string) (deviceHandle, error) {
	d, err := hid.OpenPath(path)
	if err != nil {
		return nil, err
	}
	// Non-blocking reads; this transport never reads, but a handle left in
	// blocking mode can wedge Close on some platforms.
	if err := d.SetNonblock(true); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Option configures a Transport.
type Option func(*options)

type options struct {
	enumerate   Enumerator
	open        Opener
	sendTimeout time.Duration
}

// WithEnumerator replaces the HID enumeration used to discover the mouse.
func WithEnumerator(e Enumerator) Option {
	return func(o *options) {
		o.enumerate = e
	}
}

// WithOpener replaces the HID open function.
func WithOpener(open Opener) Option {
	return func(o *options) {
		o.open = open
	}
}

// WithSendTimeout overrides the per-write timeout.
func WithSendTimeout(d time.Duration) Option {
	return func(o *options) {
		o.sendTimeout = d
	}
}

// Transport owns the single HID handle to the mouse and pushes configuration
// reports through it. The protocol is fire-and-forget: reports are written,
// never read back, and success means only that the write completed.
type Transport struct {
	mu          sync.Mutex
	state       State
	handle      deviceHandle
	path        string
	log         *zap.Logger
	enumerate   Enumerator
	open        Opener
	sendTimeout time.Duration
}

// New creates a disconnected transport.
func New(log *zap.Logger, opts ...Option) *Transport {
	if log == nil {
		log = zap.NewNop()
	}

	o := options{
		enumerate:   hidEnumerate,
		open:        hidOpen,
		sendTimeout: DefaultSendTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Transport{
		state:       StateDisconnected,
		log:         log,
		enumerate:   o.enumerate,
		open:        o.open,
		sendTimeout: o.sendTimeout,
	}
}

// Init initializes the hidapi library. Call once at program start.
func Init() error {
	return hid.Init()
}

// Exit releases the hidapi library. Call once at program exit.
func Exit() error {
	return hid.Exit()
}

// Discover enumerates the mouse without opening it. Returns nil when no
// matching interface is attached.
func (t *Transport) Discover() (*DeviceDescriptor, error) {
	devices, err := t.enumerate()
	if err != nil {
		return nil, NewOpenFailedError("HID enumeration failed", "", err)
	}
	return selectCandidate(devices), nil
}

// State returns the current connection state.
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Connected reports whether a handle is currently open.
func (t *Transport) Connected() bool {
	return t.State() == StateConnected
}

// Path returns the HID path of the open handle, or "" when disconnected.
func (t *Transport) Path() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path
}

// Connect enumerates the mouse and opens its configuration interface.
// Connecting while connected is a no-op. Fails with a device-not-found
// error when no interface is present and an open-failed error when the
// OS refuses the handle.
func (t *Transport) Connect() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateConnected {
		return nil
	}
	t.state = StateConnecting

	devices, err := t.enumerate()
	if err != nil {
		t.state = StateDisconnected
		return NewOpenFailedError("HID enumeration failed", "", err)
	}

	candidate := selectCandidate(devices)
	if candidate == nil {
		t.state = StateDisconnected
		return NewDeviceNotFoundError(
			fmt.Sprintf("no Beast X found (vendor 0x%04X, product 0x%04X)", VendorID, ProductID))
	}

	handle, err := t.open(candidate.Path)
	if err != nil {
		t.state = StateDisconnected
		return NewOpenFailedError("failed to open HID device", candidate.Path, err)
	}

	t.handle = handle
	t.path = candidate.Path
	t.state = StateConnected
	t.log.Info("device connected",
		zap.String("path", candidate.Path),
		zap.String("product", candidate.Product),
		zap.Uint16("usage_page", candidate.UsagePage),
		zap.Int("interface", candidate.Interface))
	return nil
}

// Disconnect closes the handle if one is open. Safe to call in any state;
// close errors are logged and swallowed since the handle is gone either way.
func (t *Transport) Disconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dropLocked("disconnect requested")
}

// dropLocked closes the handle and returns to the disconnected state.
// Callers must hold t.mu.
func (t *Transport) dropLocked(reason string) {
	if t.handle != nil {
		if err := t.handle.Close(); err != nil {
			t.log.Warn("error closing HID handle", zap.Error(err))
		}
		t.handle = nil
	}
	if t.state != StateDisconnected {
		t.log.Info("device disconnected",
			zap.String("path", t.path), zap.String("reason", reason))
	}
	t.path = ""
	t.state = StateDisconnected
}

// Send writes one configuration report to the device. The payload is
// prefixed with the report ID byte (0x00) on the wire. A failed or short
// write drops the connection, since the handle cannot be trusted afterward.
func (t *Transport) Send(report catalog.Report) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateConnected {
		return NewNotConnectedError("no device connection")
	}

	buf := make([]byte, 0, catalog.WireSize)
	buf = append(buf, 0x00)
	buf = append(buf, report.Bytes()...)

	n, err := t.writeWithTimeout(buf)
	if err != nil {
		path := t.path
		t.dropLocked("write failed")
		return NewWriteFailedError("report write failed", path, err)
	}
	if n != len(buf) {
		path := t.path
		t.dropLocked("short write")
		return NewWriteFailedError(
			fmt.Sprintf("short write: %d of %d bytes", n, len(buf)), path, nil)
	}

	t.log.Debug("report sent",
		zap.String("path", t.path), zap.Int("bytes", n))
	return nil
}

// writeWithTimeout performs the blocking HID write on a separate goroutine
// so a wedged handle cannot hang the caller. On timeout the handle is closed
// out from under the write, which unblocks it on every supported platform.
// Callers must hold t.mu.
func (t *Transport) writeWithTimeout(buf []byte) (int, error) {
	type writeResult struct {
		n   int
		err error
	}

	handle := t.handle
	done := make(chan writeResult, 1)
	go func() {
		n, err := handle.Write(buf)
		done <- writeResult{n, err}
	}()

	timer := time.NewTimer(t.sendTimeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.n, res.err
	case <-timer.C:
		t.log.Warn("report write timed out",
			zap.String("path", t.path), zap.Duration("timeout", t.sendTimeout))
		return 0, fmt.Errorf("write timed out after %s", t.sendTimeout)
	}
}
