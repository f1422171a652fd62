package mcp

import (
	"strconv"
	"strings"
)

// NumberBase names the textual base a device's offset digits are written in.
type NumberBase int

const (
	Decimal NumberBase = iota
	Hex
)

type deviceEntry struct {
	prefix string
	code   byte
	base   NumberBase
}

// maxOffset is the largest value that fits the 24-bit offset field at wire offset
// 15-17 of the request header (see header.go).
const maxOffset = 0xFFFFFF

// deviceTable is the full Mitsubishi-native device map (spec.md §6.3). splitAddress
// keeps the longest entry that matches, so the order of the entries does not
// affect how an address splits (e.g. "SM10" splits as SM+10). None of the
// two-letter prefixes here begins with one of the one-letter prefixes.
var deviceTable = []deviceEntry{
	{"SM", 0x91, Decimal},
	{"SD", 0xA9, Decimal},
	{"ZR", 0xB0, Hex},
	{"TN", 0xC2, Decimal},
	{"TS", 0xC1, Decimal},
	{"CN", 0xC5, Decimal},
	{"CS", 0xC4, Decimal},
	{"X", 0x9C, Hex},
	{"Y", 0x9D, Hex},
	{"M", 0x90, Decimal},
	{"L", 0x92, Decimal},
	{"F", 0x93, Decimal},
	{"D", 0xA8, Decimal},
	{"R", 0xAF, Decimal},
	{"B", 0xA0, Hex},
	{"W", 0xB4, Hex},
}

func findByPrefix(prefix string) (deviceEntry, bool) {
	for _, e := range deviceTable {
		if e.prefix == prefix {
			return e, true
		}
	}
	return deviceEntry{}, false
}

func findByCode(code byte) (deviceEntry, bool) {
	for _, e := range deviceTable {
		if e.code == code {
			return e, true
		}
	}
	return deviceEntry{}, false
}

// splitAddress splits address text into a device prefix and the remaining digits,
// trying the longest known prefixes first so two-letter devices are never
// mis-split into a one-letter prefix plus a bogus remainder.
func splitAddress(address string) (prefix, rest string, ok bool) {
	best := ""
	for _, e := range deviceTable {
		if len(e.prefix) <= len(best) {
			continue
		}
		if strings.HasPrefix(address, e.prefix) && len(address) > len(e.prefix) {
			best = e.prefix
		}
	}
	if best == "" {
		return "", "", false
	}
	return best, address[len(best):], true
}

// parseOffset parses rest in base according to the device's number base and checks
// it fits the wire format's 24-bit offset field.
func parseOffset(rest string, base NumberBase) (uint32, error) {
	radix := 10
	if base == Hex {
		radix = 16
	}
	v, err := strconv.ParseUint(rest, radix, 32)
	if err != nil {
		return 0, newAddressErr("invalid device offset \""+rest+"\"", err)
	}
	if v > maxOffset {
		return 0, newRangeErr("device offset " + rest + " exceeds the 24-bit wire field")
	}
	return uint32(v), nil
}

// ParseAddress splits, looks up, and parses address text in the Mitsubishi-native
// device table, returning the device's prefix (e.g. "D") and numeric offset. It is
// exported for callers (such as package refserver) that need to bucket storage by
// zone rather than encode a wire frame.
func ParseAddress(address string) (prefix string, offset uint32, err error) {
	p, rest, ok := splitAddress(address)
	if !ok {
		return "", 0, newAddressErr("unrecognized device prefix in \""+address+"\"", nil)
	}
	entry, ok := findByPrefix(p)
	if !ok {
		return "", 0, newAddressErr("unrecognized device prefix \""+p+"\"", nil)
	}
	offset, err = parseOffset(rest, entry.base)
	if err != nil {
		return "", 0, err
	}
	return p, offset, nil
}

// resolveAddress splits, looks up, and parses address text in the Mitsubishi-native
// device table, returning the device code byte and the numeric offset.
func resolveAddress(address string) (code byte, offset uint32, err error) {
	prefix, rest, ok := splitAddress(address)
	if !ok {
		return 0, 0, newAddressErr("unrecognized device prefix in \""+address+"\"", nil)
	}
	entry, ok := findByPrefix(prefix)
	if !ok {
		return 0, 0, newAddressErr("unrecognized device prefix \""+prefix+"\"", nil)
	}
	offset, err = parseOffset(rest, entry.base)
	if err != nil {
		return 0, 0, err
	}
	return entry.code, offset, nil
}

// addressFromCode reconstructs address text (e.g. "D100") from a wire device code
// and numeric offset, the reverse of resolveAddress. It is used on the server side,
// where only the code byte and offset are available off the wire, to hand service
// implementations the same address-string shape a client would have used to build
// the request.
func addressFromCode(code byte, offset uint32) (string, error) {
	entry, ok := findByCode(code)
	if !ok {
		return "", newAddressErr("unrecognized device code", nil)
	}
	if entry.base == Hex {
		return entry.prefix + strconv.FormatUint(uint64(offset), 16), nil
	}
	return entry.prefix + strconv.FormatUint(uint64(offset), 10), nil
}
