package refserver

import (
	"context"
	"testing"

	"github.com/mc3e/go-mcprotocol/mcp"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadWords(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Call(ctx, mcp.Request{Kind: mcp.KindWriteWords, Address: "D100", Data: []byte{0x2A, 0x00}})
	require.NoError(t, err)

	resp, err := s.Call(ctx, mcp.Request{Kind: mcp.KindReadWords, Address: "D100", Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, []byte{0x2A, 0x00}, resp.Data)
}

func TestWriteThenReadBits(t *testing.T) {
	s := New()
	ctx := context.Background()

	bits := []bool{true, false, true, true, true}
	_, err := s.Call(ctx, mcp.Request{Kind: mcp.KindWriteBits, Address: "M0", Bits: bits})
	require.NoError(t, err)

	resp, err := s.Call(ctx, mcp.Request{Kind: mcp.KindReadBits, Address: "M0", Quantity: uint32(len(bits))})
	require.NoError(t, err)
	require.Equal(t, bits, resp.Bits)
}

func TestZonesAreIndependent(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Call(ctx, mcp.Request{Kind: mcp.KindWriteWords, Address: "D0", Data: []byte{1, 0}})
	require.NoError(t, err)
	_, err = s.Call(ctx, mcp.Request{Kind: mcp.KindWriteWords, Address: "M0", Data: []byte{2, 0}})
	require.NoError(t, err)

	dResp, err := s.Call(ctx, mcp.Request{Kind: mcp.KindReadWords, Address: "D0", Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0}, dResp.Data)

	mResp, err := s.Call(ctx, mcp.Request{Kind: mcp.KindReadWords, Address: "M0", Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, []byte{2, 0}, mResp.Data)
}

func TestReadBeforeWriteReturnsZeroes(t *testing.T) {
	s := New()
	resp, err := s.Call(context.Background(), mcp.Request{Kind: mcp.KindReadWords, Address: "D999", Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0}, resp.Data)
}
