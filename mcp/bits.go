package mcp

// packBits packs two bits per byte, high-nibble first: the earlier bit goes in bit
// 4, the later bit in bit 0. An odd trailing bit leaves the low nibble zero. This is
// the MC-spec convention (spec.md §4.3/§8's worked example,
// [true,false,true,true,true] -> [0x10, 0x11, 0x10]); some real PLCs are documented
// to pack LSB-first instead, which would need a build flag to support, but nothing
// in scope here calls for it.
func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+1)/2)
	for i, b := range bits {
		if !b {
			continue
		}
		byteIdx := i / 2
		if i%2 == 0 {
			out[byteIdx] |= 0x10
		} else {
			out[byteIdx] |= 0x01
		}
	}
	return out
}

// unpackBits extracts exactly count bits from data, high-nibble first per byte,
// dropping any trailing padding bit once count is reached.
func unpackBits(data []byte, count int) []bool {
	out := make([]bool, 0, count)
	for _, b := range data {
		if len(out) < count {
			out = append(out, b&0x10 != 0)
		}
		if len(out) < count {
			out = append(out, b&0x01 != 0)
		}
		if len(out) >= count {
			break
		}
	}
	return out
}
