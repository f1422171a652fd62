package mcp

import "encoding/binary"

// healthCheckProbe is the 5-byte payload the MC reference's "loopback test"
// (11.4折返しテスト) echoes back unchanged; this is the teacher's hardcoded "ABCDE"
// probe (mcp/client.go's HealthCheck), kept verbatim since it's just an arbitrary
// echo payload, not protocol-significant data.
var healthCheckProbe = []byte("ABCDE")

var healthCheckFunctionCode = FunctionCode{0x19, 0x06, 0x00, 0x00}

// buildHealthCheckRequest builds the full wire frame for the loopback test command.
func buildHealthCheckRequest() []byte {
	var tail []byte
	tail = append(tail, monitoringTimerBytes()...)
	tail = append(tail, healthCheckFunctionCode.Bytes()...)
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], uint16(len(healthCheckProbe)))
	tail = append(tail, n[:]...)
	tail = append(tail, healthCheckProbe...)

	buf := writeHeaderPrefix(nil, requestSubHeader)
	var lenField [2]byte
	binary.LittleEndian.PutUint16(lenField[:], dataLength(len(tail)))
	buf = append(buf, lenField[:]...)
	buf = append(buf, tail...)
	return buf
}

func monitoringTimerBytes() []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], monitoringTimer)
	return b[:]
}

// parseHealthCheckResponse validates the loopback test's echoed response tail (the
// bytes a Framer configured for the client role hands back: end code + payload).
func parseHealthCheckResponse(tail []byte) error {
	endCode, payload, err := decodeResponseTail(tail)
	if err != nil {
		return err
	}
	if err := mapEndCode(endCode); err != nil {
		return err
	}
	if len(payload) != 2+len(healthCheckProbe) {
		return newFramingErr("loopback test response has the wrong length")
	}
	n := binary.LittleEndian.Uint16(payload[0:2])
	if int(n) != len(healthCheckProbe) {
		return newFramingErr("loopback test response count header is wrong")
	}
	echoed := payload[2:]
	for i, b := range healthCheckProbe {
		if echoed[i] != b {
			return newFramingErr("loopback test response body does not match the probe")
		}
	}
	return nil
}
