package catalog

// Captured configuration reports, byte-for-byte from USB traffic between the
// stock WL Mouse software and the Beast X. Rows are the non-zero prefix of
// each 64-byte report; padReport zero-fills the remainder.
//
// Report layout (observed, unverified):
//
//	[0]     0x04    command class
//	[1-2]   varies  opaque, likely a checksum over the remainder
//	[3+]    varies  setting payload, exact field boundaries unknown
//
// Do not parameterize these rows. Byte 19 looks like a rate index and byte
// 21 like a LOD flag, but the accompanying bytes 1-2 change with them in a
// way that has not been reverse engineered.

var pollRateRows = map[int][]byte{
	125:  {0x04, 0x73, 0x02, 0x06, 0x18, 0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x04, 0x00, 0x00, 0x21, 0x00, 0x95, 0x01, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x40, 0x06, 0x40, 0x06, 0x10, 0x00, 0xc8, 0x01},
	250:  {0x04, 0x71, 0x83, 0x06, 0x18, 0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x04, 0x00, 0x00, 0x21, 0x00, 0x95, 0x01, 0x00, 0x01, 0x00, 0x00, 0x01, 0x00, 0x40, 0x06, 0x40, 0x06, 0x10, 0x00, 0xc8, 0x01},
	500:  {0x04, 0x74, 0x40, 0x06, 0x18, 0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x04, 0x00, 0x00, 0x21, 0x00, 0x95, 0x01, 0x00, 0x02, 0x00, 0x00, 0x01, 0x00, 0x40, 0x06, 0x40, 0x06, 0x10, 0x00, 0xc8, 0x01},
	1000: {0x04, 0x76, 0xc1, 0x06, 0x18, 0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x04, 0x00, 0x00, 0x21, 0x00, 0x95, 0x01, 0x00, 0x03, 0x00, 0x00, 0x01, 0x00, 0x40, 0x06, 0x40, 0x06, 0x10, 0x00, 0xc8, 0x01},
	2000: {0x04, 0x7d, 0x86, 0x06, 0x18, 0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x04, 0x00, 0x00, 0x21, 0x00, 0x95, 0x01, 0x00, 0x04, 0x00, 0x00, 0x01, 0x00, 0x40, 0x06, 0x40, 0x06, 0x10, 0x00, 0xc8, 0x01},
	4000: {0x04, 0x7f, 0x07, 0x06, 0x18, 0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x04, 0x00, 0x00, 0x21, 0x00, 0x95, 0x01, 0x00, 0x05, 0x00, 0x00, 0x01, 0x00, 0x40, 0x06, 0x40, 0x06, 0x10, 0x00, 0xc8, 0x01},
}

// The 1 mm row is byte-identical to the 1000 Hz row in the captures; the
// firmware appears to treat it as "restate current rate, LOD low".
var liftOffRows = map[int][]byte{
	0: {0x04, 0x76, 0xc1, 0x06, 0x18, 0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x04, 0x00, 0x00, 0x21, 0x00, 0x95, 0x01, 0x00, 0x03, 0x00, 0x00, 0x01, 0x00, 0x40, 0x06, 0x40, 0x06, 0x10, 0x00, 0xc8, 0x01},
	1: {0x04, 0x72, 0x3d, 0x06, 0x18, 0x00, 0x00, 0x00, 0x00, 0x04, 0x04, 0x04, 0x00, 0x00, 0x21, 0x00, 0x95, 0x01, 0x00, 0x03, 0x00, 0x01, 0x01, 0x00, 0x40, 0x06, 0x40, 0x06, 0x10, 0x00, 0xc8, 0x01},
}

var (
	pollRateReports map[int]Report
	liftOffReports  map[int]Report
)

func init() {
	pollRateReports = make(map[int]Report, len(pollRateRows))
	for hz, row := range pollRateRows {
		pollRateReports[hz] = padReport(row)
	}
	liftOffReports = make(map[int]Report, len(liftOffRows))
	for code, row := range liftOffRows {
		liftOffReports[code] = padReport(row)
	}
}

// padReport zero-fills a captured row out to the full report size.
func padReport(row []byte) Report {
	var r Report
	copy(r[:], row)
	return r
}
