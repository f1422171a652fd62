package mcp

import "encoding/binary"

// decodeResponseTail parses the bytes a Framer configured for the client role hands
// back for one frame - end code (2 bytes, little-endian) followed by payload - the
// part of the response header/body that lives after the outer 9-byte prefix+length
// field a Framer already stripped.
func decodeResponseTail(tail []byte) (endCode uint16, payload []byte, err error) {
	if len(tail) < 2 {
		return 0, nil, newFramingErr("response frame shorter than the end-code field")
	}
	endCode = binary.LittleEndian.Uint16(tail[0:2])
	return endCode, tail[2:], nil
}

// decodeRequestTail parses the bytes a Framer configured for the server role hands
// back for one frame into a Request: monitoring timer (ignored), function code,
// device offset, device code, point count, and (for writes) the write payload.
func decodeRequestTail(tail []byte) (Request, error) {
	const fixedLen = 2 /*timer*/ + 4 /*fc*/ + 3 /*addr*/ + 1 /*devcode*/ + 2 /*count*/
	if len(tail) < fixedLen {
		return Request{}, newFramingErr("request frame shorter than its fixed fields")
	}
	var fc FunctionCode
	copy(fc[:], tail[2:6])
	kind, ok := parseFunctionCode(fc)
	if !ok {
		return Request{}, newFramingErr("unrecognized function code in request frame")
	}

	offset := uint32(tail[6]) | uint32(tail[7])<<8 | uint32(tail[8])<<16
	deviceCode := tail[9]
	n := binary.LittleEndian.Uint16(tail[10:12])
	rest := tail[12:]

	address, err := addressFromCode(deviceCode, offset)
	if err != nil {
		return Request{}, err
	}

	req := Request{Kind: kind, Address: address, Quantity: uint32(n)}
	switch kind {
	case KindWriteWords:
		want := int(n) * 2
		if len(rest) < want {
			return Request{}, newFramingErr("request frame shorter than its write payload")
		}
		req.Data = append([]byte(nil), rest[:want]...)
	case KindWriteBits:
		want := (int(n) + 1) / 2
		if len(rest) < want {
			return Request{}, newFramingErr("request frame shorter than its write payload")
		}
		req.Bits = unpackBits(rest, int(n))
	}
	return req, nil
}

// decodeResponse validates and reassembles the logical Response for req from the
// per-frame tails its (possibly chunked) request produced, using each frame's own
// point count to correctly unpack bit padding at every chunk boundary, not just the
// tail end of the whole call (spec.md §4.3).
func decodeResponse(req Request, tails [][]byte, points []uint32) (Response, error) {
	resp := Response{Kind: req.Kind}
	for i, tail := range tails {
		endCode, payload, err := decodeResponseTail(tail)
		if err != nil {
			return Response{}, err
		}
		if err := mapEndCode(endCode); err != nil {
			return Response{}, err
		}
		switch req.Kind {
		case KindReadWords:
			resp.Data = append(resp.Data, payload...)
		case KindReadBits:
			resp.Bits = append(resp.Bits, unpackBits(payload, int(points[i]))...)
		}
	}
	return resp, nil
}
