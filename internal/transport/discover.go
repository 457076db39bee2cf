package transport

import (
	"github.com/sstallion/go-hid"
)

const (
	// VendorID is the WL Mouse USB vendor ID
	VendorID = 0x36A7

	// ProductID is the Beast X wired/dongle product ID
	ProductID = 0xA887

	// vendorUsagePage is the vendor-defined usage page carrying the
	// configuration interface
	vendorUsagePage = 0xFF00

	// configInterface is the interface number the stock software talks to
	configInterface = 1
)

// DeviceDescriptor identifies one enumerated HID interface of the mouse.
type DeviceDescriptor struct {
	Path      string
	VendorID  uint16
	ProductID uint16
	UsagePage uint16
	Interface int
	Product   string
}

// Enumerator lists candidate HID interfaces for the mouse. The default
// implementation asks hidapi; tests substitute a fixture.
type Enumerator func() ([]DeviceDescriptor, error)

// hidEnumerate lists every interface the OS exposes for the Beast X VID/PID.
func hidEnumerate() ([]DeviceDescriptor, error) {
	var found []DeviceDescriptor
	err := hid.Enumerate(VendorID, ProductID, func(info *hid.DeviceInfo) error {
		found = append(found, DeviceDescriptor{
			Path:      info.Path,
			VendorID:  info.VendorID,
			ProductID: info.ProductID,
			UsagePage: info.UsagePage,
			Interface: info.InterfaceNbr,
			Product:   info.ProductStr,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// selectCandidate picks the interface to open from an enumeration result.
// The mouse exposes several HID interfaces; the configuration endpoint is
// the one on the vendor usage page. Some platforms report a zero usage page,
// so the interface number is the fallback discriminator, and failing both we
// take the first match rather than none.
func selectCandidate(devices []DeviceDescriptor) *DeviceDescriptor {
	if len(devices) == 0 {
		return nil
	}
	for i := range devices {
		if devices[i].UsagePage == vendorUsagePage {
			return &devices[i]
		}
	}
	for i := range devices {
		if devices[i].Interface == configInterface {
			return &devices[i]
		}
	}
	return &devices[0]
}
