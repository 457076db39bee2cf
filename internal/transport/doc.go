// Package transport owns the USB HID connection to the Beast X mouse.
//
// The mouse exposes several HID interfaces; configuration reports go to the
// vendor-defined one (usage page 0xFF00, interface 1 on platforms that do
// not report usage pages). The transport enumerates by VID/PID, opens that
// interface, and writes 64-byte reports prefixed with a zero report ID.
//
// The protocol is strictly fire-and-forget. Nothing is ever read back from
// the device, so a successful Send means only that the OS accepted the
// write. Any write failure, short write, or timeout drops the connection;
// callers reconnect with Connect.
//
// At most one handle is held at a time and all methods are safe for
// concurrent use.
package transport
