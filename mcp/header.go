package mcp

import "encoding/binary"

// The 3E frame header carries a handful of fields (network number, PC number, unit
// I/O number, unit station number) that in principle address a station on a
// MELSECNET/CC-Link IE multidrop link. This library only targets a directly
// connected ("local station") PLC - spec.md's non-goals exclude multidrop/access-
// path addressing (see DESIGN.md on the teacher's dropped, unused
// BuildAccessPath) - so those fields are the fixed constants the MC reference
// documents for a local station, matching spec.md §6.1/§6.2's wire tables exactly.
const (
	requestSubHeader  = 0x5000
	responseSubHeader = 0xD000

	localNetworkNum     = 0x00
	localPCNum          = 0xFF
	localUnitIONum      = 0x03FF
	localUnitStationNum = 0x00

	monitoringTimer = 0x0010 // 4 seconds, in 250ms units per the MC reference; wire bytes 10 00

	requestHeaderLen  = 21 // bytes 0-20: fixed fields + monitor timer + function code + address + device code + count
	responseHeaderLen = 11 // bytes 0-10: fixed fields + end code
	lengthFieldOffset = 7
	outerHeaderLen    = 9 // bytes 0-8: fixed fields + data-length field
)

// writeHeaderPrefix appends the 7 fixed bytes common to both request and response
// headers: sub-header (2), network number (1), PC number (1), unit I/O number (2,
// little-endian), unit station number (1).
func writeHeaderPrefix(buf []byte, subHeader uint16) []byte {
	buf = append(buf, byte(subHeader>>8), byte(subHeader))
	buf = append(buf, localNetworkNum, localPCNum)
	var io [2]byte
	binary.LittleEndian.PutUint16(io[:], localUnitIONum)
	buf = append(buf, io[:]...)
	buf = append(buf, localUnitStationNum)
	return buf
}

// dataLength computes the value of the data-length field: the byte count of
// everything in the frame after that field itself.
func dataLength(tailLen int) uint16 { return uint16(tailLen) }
