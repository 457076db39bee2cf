//go:build ignore

// List every HID interface the OS exposes, flagging Beast X candidates.
// Run directly with: go run tools/list_hid.go
package main

import (
	"fmt"

	"github.com/sstallion/go-hid"
)

const (
	beastVID = 0x36A7
	beastPID = 0xA887
)

func main() {
	hid.Init()
	defer hid.Exit()

	fmt.Println("HID Devices:")
	hid.Enumerate(0, 0, func(info *hid.DeviceInfo) error {
		marker := "  "
		if info.VendorID == beastVID && info.ProductID == beastPID {
			marker = "* "
		}
		fmt.Printf("%sVID: 0x%04x, PID: 0x%04x, Path: %s, Product: %s, UsagePage: 0x%04x, Usage: 0x%02x, Interface: %d\n",
			marker, info.VendorID, info.ProductID, info.Path, info.ProductStr, info.UsagePage, info.Usage, info.InterfaceNbr)
		return nil
	})
	fmt.Println("\n* = Beast X interface; the configuration endpoint is the one on usage page 0xff00")
}
