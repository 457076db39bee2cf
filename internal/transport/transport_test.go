package transport

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/wlmouse/beastx/internal/catalog"
)

// fakeHandle records writes and simulates failures.
type fakeHandle struct {
	writes   [][]byte
	writeErr error
	shortBy  int
	block    chan struct{} // when set, Write blocks until closed
	closed   bool
	closeErr error
}

func (f *fakeHandle) Write(p []byte) (int, error) {
	if f.block != nil {
		<-f.block
	}
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	f.writes = append(f.writes, cp)
	return len(p) - f.shortBy, nil
}

func (f *fakeHandle) Close() error {
	f.closed = true
	if f.block != nil {
		select {
		case <-f.block:
		default:
			close(f.block)
		}
	}
	return f.closeErr
}

func fixedEnumerator(devices ...DeviceDescriptor) Enumerator {
	return func() ([]DeviceDescriptor, error) {
		return devices, nil
	}
}

func fixedOpener(h deviceHandle, err error) Opener {
	return func(path string) (deviceHandle, error) {
		if err != nil {
			return nil, err
		}
		return h, nil
	}
}

func vendorInterface(path string) DeviceDescriptor {
	return DeviceDescriptor{
		Path:      path,
		VendorID:  VendorID,
		ProductID: ProductID,
		UsagePage: vendorUsagePage,
		Interface: 2,
		Product:   "BEAST X",
	}
}

// TestConnectOpensSelectedInterface tests the happy path.
func TestConnectOpensSelectedInterface(t *testing.T) {
	h := &fakeHandle{}
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(fixedOpener(h, nil)))

	if err := tr.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if !tr.Connected() {
		t.Error("Connected() = false after successful Connect")
	}
	if got := tr.State(); got != StateConnected {
		t.Errorf("State() = %v, want %v", got, StateConnected)
	}
	if got := tr.Path(); got != "fake:1" {
		t.Errorf("Path() = %q, want %q", got, "fake:1")
	}
}

// TestConnectIdempotent tests that connecting twice keeps the first handle.
func TestConnectIdempotent(t *testing.T) {
	opens := 0
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(func(path string) (deviceHandle, error) {
			opens++
			return &fakeHandle{}, nil
		}))

	if err := tr.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := tr.Connect(); err != nil {
		t.Fatalf("second Connect() error = %v", err)
	}
	if opens != 1 {
		t.Errorf("opener called %d times, want 1", opens)
	}
}

// TestConnectNoDevice tests enumeration coming up empty.
func TestConnectNoDevice(t *testing.T) {
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator()),
		WithOpener(fixedOpener(&fakeHandle{}, nil)))

	err := tr.Connect()
	if !IsDeviceNotFound(err) {
		t.Errorf("Connect() error = %v, want device-not-found", err)
	}
	if tr.State() != StateDisconnected {
		t.Errorf("State() = %v after failed Connect, want disconnected", tr.State())
	}
}

// TestConnectOpenFailure tests an OS open refusal.
func TestConnectOpenFailure(t *testing.T) {
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(fixedOpener(nil, fmt.Errorf("permission denied"))))

	err := tr.Connect()
	if !IsOpenFailed(err) {
		t.Errorf("Connect() error = %v, want open-failed", err)
	}
	if tr.Connected() {
		t.Error("Connected() = true after failed open")
	}
}

// TestCandidateSelection tests interface preference ordering.
func TestCandidateSelection(t *testing.T) {
	vendor := DeviceDescriptor{Path: "vendor", UsagePage: vendorUsagePage, Interface: 2}
	ifaceOne := DeviceDescriptor{Path: "iface1", UsagePage: 0, Interface: 1}
	mouse := DeviceDescriptor{Path: "mouse", UsagePage: 0x0001, Interface: 0}

	tests := []struct {
		name    string
		devices []DeviceDescriptor
		want    string
	}{
		{"Vendor usage page wins", []DeviceDescriptor{mouse, ifaceOne, vendor}, "vendor"},
		{"Interface number fallback", []DeviceDescriptor{mouse, ifaceOne}, "iface1"},
		{"First match as last resort", []DeviceDescriptor{mouse}, "mouse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectCandidate(tt.devices)
			if got == nil || got.Path != tt.want {
				t.Errorf("selectCandidate() = %+v, want path %q", got, tt.want)
			}
		})
	}

	if selectCandidate(nil) != nil {
		t.Error("selectCandidate(nil) != nil")
	}
}

// TestDiscover tests enumeration without opening.
func TestDiscover(t *testing.T) {
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(fixedOpener(&fakeHandle{}, nil)))

	desc, err := tr.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if desc == nil || desc.Path != "fake:1" {
		t.Errorf("Discover() = %+v, want path fake:1", desc)
	}
	if tr.Connected() {
		t.Error("Discover() opened a connection")
	}

	empty := New(zap.NewNop(), WithEnumerator(fixedEnumerator()))
	desc, err = empty.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if desc != nil {
		t.Errorf("Discover() = %+v with nothing attached, want nil", desc)
	}
}

// TestSendPrependsReportID tests the wire framing of a report.
func TestSendPrependsReportID(t *testing.T) {
	h := &fakeHandle{}
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(fixedOpener(h, nil)))
	if err := tr.Connect(); err != nil {
		t.Fatal(err)
	}

	report, err := catalog.Lookup(catalog.DomainPollRate, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.Send(report); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(h.writes) != 1 {
		t.Fatalf("device saw %d writes, want 1", len(h.writes))
	}
	wire := h.writes[0]
	if len(wire) != catalog.WireSize {
		t.Errorf("wire length = %d, want %d", len(wire), catalog.WireSize)
	}
	if wire[0] != 0x00 {
		t.Errorf("report ID byte = 0x%02x, want 0x00", wire[0])
	}
	if wire[1] != catalog.CommandClass {
		t.Errorf("payload byte 0 = 0x%02x, want 0x%02x", wire[1], catalog.CommandClass)
	}
}

// TestSendWithoutConnection tests the not-connected guard.
func TestSendWithoutConnection(t *testing.T) {
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator()),
		WithOpener(fixedOpener(&fakeHandle{}, nil)))

	report, _ := catalog.Lookup(catalog.DomainLiftOff, 0)
	err := tr.Send(report)
	if !IsNotConnected(err) {
		t.Errorf("Send() error = %v, want not-connected", err)
	}
}

// TestSendWriteErrorDropsConnection tests failure handling on a dead handle.
func TestSendWriteErrorDropsConnection(t *testing.T) {
	h := &fakeHandle{writeErr: fmt.Errorf("device unplugged")}
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(fixedOpener(h, nil)))
	if err := tr.Connect(); err != nil {
		t.Fatal(err)
	}

	report, _ := catalog.Lookup(catalog.DomainPollRate, 500)
	err := tr.Send(report)
	if !IsWriteFailed(err) {
		t.Errorf("Send() error = %v, want write-failed", err)
	}
	if tr.Connected() {
		t.Error("Connected() = true after failed write")
	}
	if !h.closed {
		t.Error("handle not closed after failed write")
	}
}

// TestSendShortWriteDropsConnection tests the short-write guard.
func TestSendShortWriteDropsConnection(t *testing.T) {
	h := &fakeHandle{shortBy: 3}
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(fixedOpener(h, nil)))
	if err := tr.Connect(); err != nil {
		t.Fatal(err)
	}

	report, _ := catalog.Lookup(catalog.DomainPollRate, 500)
	err := tr.Send(report)
	if !IsWriteFailed(err) {
		t.Errorf("Send() error = %v, want write-failed", err)
	}
	if tr.Connected() {
		t.Error("Connected() = true after short write")
	}
}

// TestSendTimeout tests that a wedged handle is abandoned.
func TestSendTimeout(t *testing.T) {
	h := &fakeHandle{block: make(chan struct{})}
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(fixedOpener(h, nil)),
		WithSendTimeout(20*time.Millisecond))
	if err := tr.Connect(); err != nil {
		t.Fatal(err)
	}

	report, _ := catalog.Lookup(catalog.DomainPollRate, 125)
	start := time.Now()
	err := tr.Send(report)
	if !IsWriteFailed(err) {
		t.Errorf("Send() error = %v, want write-failed", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Send() blocked for %s despite timeout", elapsed)
	}
	if tr.Connected() {
		t.Error("Connected() = true after write timeout")
	}
	if !h.closed {
		t.Error("handle not closed after write timeout")
	}
}

// TestDisconnectIdempotent tests repeated Disconnect calls.
func TestDisconnectIdempotent(t *testing.T) {
	h := &fakeHandle{closeErr: fmt.Errorf("already gone")}
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(fixedOpener(h, nil)))
	if err := tr.Connect(); err != nil {
		t.Fatal(err)
	}

	tr.Disconnect()
	tr.Disconnect()

	if tr.State() != StateDisconnected {
		t.Errorf("State() = %v, want disconnected", tr.State())
	}
	if tr.Path() != "" {
		t.Errorf("Path() = %q after Disconnect, want empty", tr.Path())
	}
}

// TestReconnectAfterDrop tests the connect-drop-connect cycle.
func TestReconnectAfterDrop(t *testing.T) {
	handles := []*fakeHandle{
		{writeErr: fmt.Errorf("unplugged")},
		{},
	}
	i := 0
	tr := New(zap.NewNop(),
		WithEnumerator(fixedEnumerator(vendorInterface("fake:1"))),
		WithOpener(func(path string) (deviceHandle, error) {
			h := handles[i]
			i++
			return h, nil
		}))

	if err := tr.Connect(); err != nil {
		t.Fatal(err)
	}
	report, _ := catalog.Lookup(catalog.DomainLiftOff, 1)
	if err := tr.Send(report); !IsWriteFailed(err) {
		t.Fatalf("Send() error = %v, want write-failed", err)
	}

	if err := tr.Connect(); err != nil {
		t.Fatalf("reconnect error = %v", err)
	}
	if err := tr.Send(report); err != nil {
		t.Fatalf("Send() after reconnect error = %v", err)
	}
	if len(handles[1].writes) != 1 {
		t.Errorf("second handle saw %d writes, want 1", len(handles[1].writes))
	}
}

// TestStateString tests the state names.
func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDisconnected, "disconnected"},
		{StateConnecting, "connecting"},
		{StateConnected, "connected"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
