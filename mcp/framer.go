package mcp

import "bytes"

// FramerRole selects which frame prefix a Framer expects on the stream it reads.
type FramerRole int

const (
	// RoleClient reads server-originated response frames (D0 00 00 FF FF 03 00...).
	RoleClient FramerRole = iota
	// RoleServer reads client-originated request frames (50 00 00 FF FF 03 00...).
	RoleServer
)

func (r FramerRole) prefix() []byte {
	if r == RoleServer {
		return []byte{0x50, 0x00, localNetworkNum, localPCNum, 0xFF, 0x03, localUnitStationNum}
	}
	return []byte{0xD0, 0x00, localNetworkNum, localPCNum, 0xFF, 0x03, localUnitStationNum}
}

// Framer is a stateful pull-parser that brackets 3E frames on a byte stream. Feed
// appends newly read bytes; Next pulls one complete frame's tail (everything after
// the fixed 9-byte prefix+length header) once enough bytes have arrived.
type Framer struct {
	role FramerRole
	buf  []byte
}

// NewFramer returns a Framer configured for role.
func NewFramer(role FramerRole) *Framer {
	return &Framer{role: role}
}

// Feed appends newly read bytes to the framer's internal buffer.
func (f *Framer) Feed(data []byte) {
	f.buf = append(f.buf, data...)
}

// Next attempts to pull one complete frame from the buffered bytes. ok is false
// (with a nil error) when more bytes are needed; err is non-nil when the buffered
// prefix doesn't match the expected frame prefix for this role.
func (f *Framer) Next() (tail []byte, ok bool, err error) {
	if len(f.buf) < outerHeaderLen {
		return nil, false, nil
	}
	prefix := f.role.prefix()
	if !bytes.Equal(f.buf[:len(prefix)], prefix) {
		return nil, false, newFramingErr("frame does not start with the expected prefix")
	}
	dataLen := int(f.buf[lengthFieldOffset]) | int(f.buf[lengthFieldOffset+1])<<8
	total := outerHeaderLen + dataLen
	if len(f.buf) < total {
		return nil, false, nil
	}
	tail = append([]byte(nil), f.buf[outerHeaderLen:total]...)
	f.buf = f.buf[total:]
	return tail, true, nil
}
