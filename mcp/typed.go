package mcp

import (
	"context"
	"encoding/binary"
	"math"
)

// ReadU16s reads n consecutive 16-bit words starting at address as unsigned
// values.
func (c *Client) ReadU16s(ctx context.Context, address string, n uint32) ([]uint16, error) {
	data, err := c.ReadWords(ctx, address, n)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return out, nil
}

// WriteU16s writes values as consecutive 16-bit words starting at address.
func (c *Client) WriteU16s(ctx context.Context, address string, values []uint16) error {
	data := make([]byte, len(values)*2)
	for i, v := range values {
		binary.LittleEndian.PutUint16(data[i*2:], v)
	}
	return c.WriteWords(ctx, address, data)
}

// ReadI16s reads n consecutive 16-bit words as signed values.
func (c *Client) ReadI16s(ctx context.Context, address string, n uint32) ([]int16, error) {
	u, err := c.ReadU16s(ctx, address, n)
	if err != nil {
		return nil, err
	}
	out := make([]int16, len(u))
	for i, v := range u {
		out[i] = int16(v)
	}
	return out, nil
}

// WriteI16s writes values as consecutive 16-bit words.
func (c *Client) WriteI16s(ctx context.Context, address string, values []int16) error {
	u := make([]uint16, len(values))
	for i, v := range values {
		u[i] = uint16(v)
	}
	return c.WriteU16s(ctx, address, u)
}

// ReadU32s reads n consecutive 32-bit (2-word) unsigned values, little-endian.
func (c *Client) ReadU32s(ctx context.Context, address string, n uint32) ([]uint32, error) {
	data, err := c.ReadWords(ctx, address, n*2)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return out, nil
}

// WriteU32s writes values as consecutive 32-bit (2-word) unsigned values.
func (c *Client) WriteU32s(ctx context.Context, address string, values []uint32) error {
	data := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], v)
	}
	return c.WriteWords(ctx, address, data)
}

// ReadI32s reads n consecutive 32-bit (2-word) signed values.
func (c *Client) ReadI32s(ctx context.Context, address string, n uint32) ([]int32, error) {
	u, err := c.ReadU32s(ctx, address, n)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(u))
	for i, v := range u {
		out[i] = int32(v)
	}
	return out, nil
}

// WriteI32s writes values as consecutive 32-bit (2-word) signed values.
func (c *Client) WriteI32s(ctx context.Context, address string, values []int32) error {
	u := make([]uint32, len(values))
	for i, v := range values {
		u[i] = uint32(v)
	}
	return c.WriteU32s(ctx, address, u)
}

// ReadU64s reads n consecutive 64-bit (4-word) unsigned values, little-endian.
func (c *Client) ReadU64s(ctx context.Context, address string, n uint32) ([]uint64, error) {
	data, err := c.ReadWords(ctx, address, n*4)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	return out, nil
}

// WriteU64s writes values as consecutive 64-bit (4-word) unsigned values.
func (c *Client) WriteU64s(ctx context.Context, address string, values []uint64) error {
	data := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[i*8:], v)
	}
	return c.WriteWords(ctx, address, data)
}

// ReadI64s reads n consecutive 64-bit (4-word) signed values.
func (c *Client) ReadI64s(ctx context.Context, address string, n uint32) ([]int64, error) {
	u, err := c.ReadU64s(ctx, address, n)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(u))
	for i, v := range u {
		out[i] = int64(v)
	}
	return out, nil
}

// WriteI64s writes values as consecutive 64-bit (4-word) signed values.
func (c *Client) WriteI64s(ctx context.Context, address string, values []int64) error {
	u := make([]uint64, len(values))
	for i, v := range values {
		u[i] = uint64(v)
	}
	return c.WriteU64s(ctx, address, u)
}

// ReadF32s reads n consecutive IEEE-754 single-precision values (2 words each).
func (c *Client) ReadF32s(ctx context.Context, address string, n uint32) ([]float32, error) {
	u, err := c.ReadU32s(ctx, address, n)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(u))
	for i, v := range u {
		out[i] = math.Float32frombits(v)
	}
	return out, nil
}

// WriteF32s writes values as consecutive IEEE-754 single-precision values.
func (c *Client) WriteF32s(ctx context.Context, address string, values []float32) error {
	u := make([]uint32, len(values))
	for i, v := range values {
		u[i] = math.Float32bits(v)
	}
	return c.WriteU32s(ctx, address, u)
}

// ReadF64s reads n consecutive IEEE-754 double-precision values (4 words each).
func (c *Client) ReadF64s(ctx context.Context, address string, n uint32) ([]float64, error) {
	u, err := c.ReadU64s(ctx, address, n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(u))
	for i, v := range u {
		out[i] = math.Float64frombits(v)
	}
	return out, nil
}

// WriteF64s writes values as consecutive IEEE-754 double-precision values.
func (c *Client) WriteF64s(ctx context.Context, address string, values []float64) error {
	u := make([]uint64, len(values))
	for i, v := range values {
		u[i] = math.Float64bits(v)
	}
	return c.WriteU64s(ctx, address, u)
}

// ReadBools reads n consecutive bit-addressed device points.
func (c *Client) ReadBools(ctx context.Context, address string, n uint32) ([]bool, error) {
	return c.ReadBits(ctx, address, n)
}

// WriteBools writes values as consecutive bit-addressed device points.
func (c *Client) WriteBools(ctx context.Context, address string, values []bool) error {
	return c.WriteBits(ctx, address, values)
}
