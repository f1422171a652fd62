package mcp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeRequestReadWordsSingleFrame(t *testing.T) {
	chunks, err := encodeRequest(Request{Kind: KindReadWords, Address: "D100", Quantity: 10}, DialectMitsubishi)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	want := []byte{
		0x50, 0x00, 0x00, 0xFF, 0xFF, 0x03, 0x00, // fixed prefix
		0x0C, 0x00, // data length = 12 (no write payload)
		0x10, 0x00, // monitoring timer
		0x01, 0x04, 0x00, 0x00, // function code: read words
		0x64, 0x00, 0x00, // offset 100, 3 bytes LE
		0xA8,       // device code D
		0x0A, 0x00, // count 10
	}
	if diff := cmp.Diff(want, chunks[0].bytes); diff != "" {
		t.Errorf("frame bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeRequestWriteWordsIncludesPayload(t *testing.T) {
	chunks, err := encodeRequest(Request{Kind: KindWriteWords, Address: "D0", Data: []byte{0x2A, 0x00}}, DialectMitsubishi)
	if err != nil {
		t.Fatal(err)
	}
	frame := chunks[0].bytes
	// Last two bytes are the write payload.
	if got, want := frame[len(frame)-2:], []byte{0x2A, 0x00}; !cmp.Equal(got, want) {
		t.Errorf("payload = % X, want % X", got, want)
	}
}

func TestEncodeRequestChunksOverPointLimit(t *testing.T) {
	old := PointLimit
	PointLimit = 10
	defer func() { PointLimit = old }()

	chunks, err := encodeRequest(Request{Kind: KindReadWords, Address: "D0", Quantity: 25}, DialectMitsubishi)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	wantPoints := []uint32{10, 10, 5}
	for i, c := range chunks {
		if c.points != wantPoints[i] {
			t.Errorf("chunk %d points = %d, want %d", i, c.points, wantPoints[i])
		}
	}
	// Each chunk's address field must start where the previous one left off.
	wantOffsets := []uint32{0, 10, 20}
	for i, c := range chunks {
		offset := uint32(c.bytes[15]) | uint32(c.bytes[16])<<8 | uint32(c.bytes[17])<<16
		if offset != wantOffsets[i] {
			t.Errorf("chunk %d offset = %d, want %d", i, offset, wantOffsets[i])
		}
	}
}

func TestEncodeRequestChunksWritePayloadContiguously(t *testing.T) {
	old := PointLimit
	PointLimit = 2
	defer func() { PointLimit = old }()

	data := []byte{1, 0, 2, 0, 3, 0, 4, 0, 5, 0} // 5 words
	chunks, err := encodeRequest(Request{Kind: KindWriteWords, Address: "D0", Data: data}, DialectMitsubishi)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	wantPayloads := [][]byte{{1, 0, 2, 0}, {3, 0, 4, 0}, {5, 0}}
	for i, c := range chunks {
		got := c.bytes[len(c.bytes)-len(wantPayloads[i]):]
		if diff := cmp.Diff(wantPayloads[i], got); diff != "" {
			t.Errorf("chunk %d payload mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestDecodeResponseReassemblesAcrossChunkBoundaries(t *testing.T) {
	// Two chunks of bits, 3 points then 2 points, each with its own padding bit
	// at its own frame boundary - this is exactly the case a naive "unpack the
	// whole concatenated payload at once" implementation gets wrong.
	req := Request{Kind: KindReadBits}
	tail1 := append([]byte{0x00, 0x00}, packBits([]bool{true, false, true})...)
	tail2 := append([]byte{0x00, 0x00}, packBits([]bool{true, true})...)

	resp, err := decodeResponse(req, [][]byte{tail1, tail2}, []uint32{3, 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{true, false, true, true, true}
	if diff := cmp.Diff(want, resp.Bits); diff != "" {
		t.Errorf("bits mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeResponseSurfacesEndCodeError(t *testing.T) {
	req := Request{Kind: KindReadWords}
	tail := []byte{0x51, 0xC0} // 0xC051, the low end of the out-of-range band
	_, err := decodeResponse(req, [][]byte{tail}, []uint32{1})
	if err == nil {
		t.Fatal("expected an error for a non-zero end code")
	}
	mcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error is %T, want *Error", err)
	}
	if !mcErr.OutOfRange() {
		t.Errorf("expected OutOfRange() for end code 0xC051, got Kind=%v Code=0x%04X", mcErr.Kind, mcErr.Code)
	}
}

func TestEncodeRequestRejectsOddWritePayload(t *testing.T) {
	_, err := encodeRequest(Request{Kind: KindWriteWords, Address: "D0", Data: []byte{1, 2, 3}}, DialectMitsubishi)
	if err == nil {
		t.Fatal("expected an error for an odd-length write payload")
	}
}

func TestEncodeRequestResolvesKeyenceDialect(t *testing.T) {
	chunks, err := encodeRequest(Request{Kind: KindReadWords, Address: "DM100", Quantity: 1}, DialectKeyence)
	if err != nil {
		t.Fatal(err)
	}
	// DM100 rewrites to D100, device code 0xA8, offset 100 (0x64).
	frame := chunks[0].bytes
	if frame[18] != 0xA8 {
		t.Errorf("device code = 0x%02X, want 0xA8", frame[18])
	}
	offset := uint32(frame[15]) | uint32(frame[16])<<8 | uint32(frame[17])<<16
	if offset != 100 {
		t.Errorf("offset = %d, want 100", offset)
	}
}

func TestDecodeRequestTailWriteBitsRoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true, true}
	frame, err := buildRequestFrame(KindWriteBits, 0, 0x90, uint32(len(bits)), packBits(bits))
	if err != nil {
		t.Fatal(err)
	}
	req, err := decodeRequestTail(frame[outerHeaderLen:])
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(bits, req.Bits); diff != "" {
		t.Errorf("bits mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRequestTailRejectsTruncatedWriteBitsPayload(t *testing.T) {
	bits := []bool{true, false, true, true, true} // packs to 3 bytes
	frame, err := buildRequestFrame(KindWriteBits, 0, 0x90, uint32(len(bits)), packBits(bits))
	if err != nil {
		t.Fatal(err)
	}
	tail := frame[outerHeaderLen:]
	truncated := tail[:len(tail)-1] // drop the last payload byte; count still says 5 bits
	if _, err := decodeRequestTail(truncated); err == nil {
		t.Fatal("expected a framing error for a write-bits request shorter than its declared count")
	}
}
