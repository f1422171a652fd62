package mcp

// FunctionCode is the 4-byte command+subcommand pair that opens the variable part of
// every 3E request header (offsets 11-14 of the request frame, see header.go). It is
// kept as a value type - rather than inlining the four magic byte quads at every call
// site - so request construction and response interpretation share one source of truth.
type FunctionCode [4]byte

var (
	fcReadWords  = FunctionCode{0x01, 0x04, 0x00, 0x00}
	fcWriteWords = FunctionCode{0x01, 0x14, 0x00, 0x00}
	fcReadBits   = FunctionCode{0x01, 0x04, 0x01, 0x00}
	fcWriteBits  = FunctionCode{0x01, 0x14, 0x01, 0x00}
)

// Bytes returns the wire representation of fc.
func (fc FunctionCode) Bytes() []byte { return fc[:] }

// RequestKind names the four operations the 3E frame format supports.
type RequestKind int

const (
	KindReadWords RequestKind = iota
	KindWriteWords
	KindReadBits
	KindWriteBits
)

func (k RequestKind) functionCode() FunctionCode {
	switch k {
	case KindReadWords:
		return fcReadWords
	case KindWriteWords:
		return fcWriteWords
	case KindReadBits:
		return fcReadBits
	case KindWriteBits:
		return fcWriteBits
	default:
		return FunctionCode{}
	}
}

func (k RequestKind) isWrite() bool {
	return k == KindWriteWords || k == KindWriteBits
}

func (k RequestKind) isBit() bool {
	return k == KindReadBits || k == KindWriteBits
}

// parseFunctionCode maps a wire FunctionCode back to a RequestKind.
func parseFunctionCode(fc FunctionCode) (RequestKind, bool) {
	switch fc {
	case fcReadWords:
		return KindReadWords, true
	case fcWriteWords:
		return KindWriteWords, true
	case fcReadBits:
		return KindReadBits, true
	case fcWriteBits:
		return KindWriteBits, true
	default:
		return 0, false
	}
}

// Request is the value both the client (before encoding) and the server (after
// decoding) work with. Exactly one of the payload fields is meaningful, selected by
// Kind: Quantity for the two read kinds, Data for WriteWords, Bits for WriteBits.
type Request struct {
	Kind     RequestKind
	Address  string
	Quantity uint32
	Data     []byte
	Bits     []bool
}

// Response mirrors Request: Data is populated for ReadWords (and is empty, success-
// only, for the two write kinds), Bits is populated for ReadBits.
type Response struct {
	Kind RequestKind
	Data []byte
	Bits []bool
}

// Dialect selects how address text is interpreted before it is split and looked up.
type Dialect int

const (
	// DialectMitsubishi addresses native Mitsubishi device prefixes directly.
	DialectMitsubishi Dialect = iota
	// DialectKeyence rewrites Keyence KV prefixes to their Mitsubishi equivalent
	// before lookup (see keyence.go).
	DialectKeyence
)
