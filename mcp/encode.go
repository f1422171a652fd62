package mcp

import "encoding/binary"

// DefaultPointLimit is the maximum number of device points (words or bits) the
// encoder will put in a single frame before splitting a request into contiguous
// sub-requests. spec.md flags 900 vs 960 as an open question and resolves it in
// favor of 960 for the encoder (see SPEC_FULL.md); PointLimit is a var, not an
// inlined literal, precisely so a caller targeting older firmware that only
// tolerates 900 can lower it before dialing.
const DefaultPointLimit uint32 = 960

// PointLimit is the per-frame point limit encodeRequest chunks against. It
// defaults to DefaultPointLimit and may be overridden by a caller before any
// Client is constructed.
var PointLimit = DefaultPointLimit

type frameChunk struct {
	bytes  []byte
	points uint32
}

// encodeRequest resolves req's address, then builds one or more wire frames,
// splitting into contiguous sub-requests of at most PointLimit points each so no
// single frame exceeds the protocol's per-frame limit (spec.md §3.3/§4.2).
func encodeRequest(req Request, dialect Dialect) ([]frameChunk, error) {
	address := req.Address
	if dialect == DialectKeyence {
		rewritten, err := RewriteKeyence(address)
		if err != nil {
			return nil, err
		}
		address = rewritten
	}
	deviceCode, offset, err := resolveAddress(address)
	if err != nil {
		return nil, err
	}

	total, writeBytes, writeBits, err := requestPayload(req)
	if err != nil {
		return nil, err
	}

	limit := PointLimit
	if limit == 0 {
		limit = DefaultPointLimit
	}

	var chunks []frameChunk
	remaining := total
	cursor := offset
	wordCursor := uint32(0)
	bitCursor := uint32(0)
	for {
		n := remaining
		if n > limit {
			n = limit
		}
		if cursor+n > maxOffset+1 {
			return nil, newRangeErr("chunked request offset exceeds the 24-bit wire field")
		}

		var payload []byte
		switch req.Kind {
		case KindWriteWords:
			payload = writeBytes[wordCursor*2 : (wordCursor+n)*2]
		case KindWriteBits:
			payload = packBits(writeBits[bitCursor : bitCursor+n])
		}

		frame, err := buildRequestFrame(req.Kind, cursor, deviceCode, n, payload)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, frameChunk{bytes: frame, points: n})

		cursor += n
		wordCursor += n
		bitCursor += n
		remaining -= n
		if remaining == 0 {
			break
		}
	}
	// The loop above always appends at least one chunk before its break check
	// (n == remaining == 0 still builds a single zero-point frame), so chunks
	// is never empty here.
	return chunks, nil
}

// requestPayload validates and extracts the total point count plus the raw write
// payload (whichever of writeBytes/writeBits is relevant to req.Kind).
func requestPayload(req Request) (total uint32, writeBytes []byte, writeBits []bool, err error) {
	switch req.Kind {
	case KindReadWords, KindReadBits:
		return req.Quantity, nil, nil, nil
	case KindWriteWords:
		if len(req.Data)%2 != 0 {
			return 0, nil, nil, newRangeErr("write payload must have an even byte length")
		}
		return uint32(len(req.Data) / 2), req.Data, nil, nil
	case KindWriteBits:
		return uint32(len(req.Bits)), nil, req.Bits, nil
	default:
		return 0, nil, nil, newRangeErr("unknown request kind")
	}
}

// buildRequestFrame builds one complete request wire frame covering n points
// starting at offset.
func buildRequestFrame(kind RequestKind, offset uint32, deviceCode byte, n uint32, writePayload []byte) ([]byte, error) {
	var tail []byte
	tail = append(tail, monitoringTimerBytes()...)
	tail = append(tail, kind.functionCode().Bytes()...)

	var addr [3]byte
	addr[0] = byte(offset)
	addr[1] = byte(offset >> 8)
	addr[2] = byte(offset >> 16)
	tail = append(tail, addr[:]...)
	tail = append(tail, deviceCode)

	var count [2]byte
	binary.LittleEndian.PutUint16(count[:], uint16(n))
	tail = append(tail, count[:]...)

	if kind.isWrite() {
		tail = append(tail, writePayload...)
	}

	buf := writeHeaderPrefix(nil, requestSubHeader)
	var lenField [2]byte
	binary.LittleEndian.PutUint16(lenField[:], dataLength(len(tail)))
	buf = append(buf, lenField[:]...)
	buf = append(buf, tail...)
	return buf, nil
}

// encodeResponse builds the wire frame a server sends back for a successful resp.
func encodeResponse(resp Response) []byte {
	var payload []byte
	switch resp.Kind {
	case KindReadWords:
		payload = resp.Data
	case KindReadBits:
		payload = packBits(resp.Bits)
	}
	return encodeResponseFrame(0, payload)
}

// encodeExceptionResponse builds a response frame carrying a non-zero end code and
// no payload, for when a Service call fails.
func encodeExceptionResponse(code uint16) []byte {
	return encodeResponseFrame(code, nil)
}

func encodeResponseFrame(endCode uint16, payload []byte) []byte {
	var tail []byte
	var ec [2]byte
	binary.LittleEndian.PutUint16(ec[:], endCode)
	tail = append(tail, ec[:]...)
	tail = append(tail, payload...)

	buf := writeHeaderPrefix(nil, responseSubHeader)
	var lenField [2]byte
	binary.LittleEndian.PutUint16(lenField[:], dataLength(len(tail)))
	buf = append(buf, lenField[:]...)
	buf = append(buf, tail...)
	return buf
}
