package mcp_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/mc3e/go-mcprotocol/mcp"
	"github.com/mc3e/go-mcprotocol/mcp/refserver"
	"github.com/stretchr/testify/require"
)

// dialPipe wires an mcp.Client to an in-process refserver.MemServer over a
// net.Pipe, so these tests exercise the real client encode -> transport ->
// framer -> server decode -> Service -> server encode -> transport -> framer ->
// client decode round trip without needing a real socket.
func dialPipe(t *testing.T, opts ...mcp.Option) (*mcp.Client, func()) {
	t.Helper()
	clientConn, serverConn := net.Pipe()

	svc := refserver.New()
	ctx, cancel := context.WithCancel(context.Background())
	go mcp.ServeConn(ctx, serverConn, svc, nil)

	client := mcp.NewClient(mcp.NewAsyncClient(clientConn, nil), opts...)
	return client, func() {
		cancel()
		client.Close()
	}
}

func TestClientServerReadWriteWords(t *testing.T) {
	client, stop := dialPipe(t)
	defer stop()
	ctx := context.Background()

	require.NoError(t, client.WriteU16s(ctx, "D100", []uint16{1, 2, 3}))
	got, err := client.ReadU16s(ctx, "D100", 3)
	require.NoError(t, err)
	require.Equal(t, []uint16{1, 2, 3}, got)
}

func TestClientServerReadWriteBits(t *testing.T) {
	client, stop := dialPipe(t)
	defer stop()
	ctx := context.Background()

	bits := []bool{true, false, true, true, true, false, true}
	require.NoError(t, client.WriteBools(ctx, "M0", bits))
	got, err := client.ReadBools(ctx, "M0", uint32(len(bits)))
	require.NoError(t, err)
	require.Equal(t, bits, got)
}

func TestClientServerTypedRoundTrips(t *testing.T) {
	client, stop := dialPipe(t)
	defer stop()
	ctx := context.Background()

	require.NoError(t, client.WriteU32s(ctx, "D0", []uint32{0xDEADBEEF}))
	u32, err := client.ReadU32s(ctx, "D0", 1)
	require.NoError(t, err)
	require.Equal(t, []uint32{0xDEADBEEF}, u32)

	require.NoError(t, client.WriteI32s(ctx, "D10", []int32{-12345}))
	i32, err := client.ReadI32s(ctx, "D10", 1)
	require.NoError(t, err)
	require.Equal(t, []int32{-12345}, i32)

	require.NoError(t, client.WriteF32s(ctx, "D20", []float32{3.5}))
	f32, err := client.ReadF32s(ctx, "D20", 1)
	require.NoError(t, err)
	require.Equal(t, []float32{3.5}, f32)

	require.NoError(t, client.WriteU64s(ctx, "D30", []uint64{0x0102030405060708}))
	u64, err := client.ReadU64s(ctx, "D30", 1)
	require.NoError(t, err)
	require.Equal(t, []uint64{0x0102030405060708}, u64)

	require.NoError(t, client.WriteF64s(ctx, "D40", []float64{2.25}))
	f64, err := client.ReadF64s(ctx, "D40", 1)
	require.NoError(t, err)
	require.Equal(t, []float64{2.25}, f64)
}

func TestClientServerChunksOverPointLimit(t *testing.T) {
	old := mcp.PointLimit
	mcp.PointLimit = 4
	defer func() { mcp.PointLimit = old }()

	client, stop := dialPipe(t)
	defer stop()
	ctx := context.Background()

	values := make([]uint16, 10)
	for i := range values {
		values[i] = uint16(i + 1)
	}
	require.NoError(t, client.WriteU16s(ctx, "D0", values))
	got, err := client.ReadU16s(ctx, "D0", 10)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestClientServerKeyenceDialect(t *testing.T) {
	client, stop := dialPipe(t, mcp.WithDialect(mcp.DialectKeyence))
	defer stop()
	ctx := context.Background()

	// DM100 (Keyence) rewrites to D100 (native); reading DM100 back through the
	// same Keyence-dialect client must see the value just written.
	require.NoError(t, client.WriteU16s(ctx, "DM100", []uint16{77}))

	got, err := client.ReadU16s(ctx, "DM100", 1)
	require.NoError(t, err)
	require.Equal(t, []uint16{77}, got)
}

func TestClientHealthCheck(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	go func() {
		buf := make([]byte, 64)
		n, err := serverConn.Read(buf)
		if err != nil {
			return
		}
		// Echo back a well-formed loopback response regardless of the exact
		// request bytes: this test only exercises the client's response
		// validation, not a real server's health-check handling.
		_ = n
		resp := []byte{0xD0, 0x00, 0x00, 0xFF, 0xFF, 0x03, 0x00, 0x09, 0x00, 0x00, 0x00, 0x05, 0x00, 'A', 'B', 'C', 'D', 'E'}
		serverConn.Write(resp)
	}()

	client := mcp.NewClient(mcp.NewAsyncClient(clientConn, nil))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, client.HealthCheck(ctx))
}
