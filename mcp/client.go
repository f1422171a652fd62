package mcp

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
)

// Client is the 3E-frame MC protocol client. It owns an AsyncClient transport and
// exposes the low-level byte/bit calls the typed layer (typed.go) builds on, plus
// the loopback HealthCheck probe. This generalizes the teacher's client3E
// (mcp/client.go), which issued a single un-chunked hex-string round trip per call
// against a bare *net.TCPConn, into the chunked, typed, dialect-aware pipeline
// spec.md §4.6 describes.
type Client struct {
	transport        Transport
	dialect          Dialect
	logger           *zap.Logger
	operationTimeout time.Duration
}

// Option configures a Client at construction time (Dial or NewClient). Servers
// take ServerOption instead (see server.go).
type Option func(*clientConfig)

type clientConfig struct {
	dialect          Dialect
	logger           *zap.Logger
	connectTimeout   time.Duration
	operationTimeout time.Duration
}

func defaultConfig() clientConfig {
	return clientConfig{
		dialect:        DialectMitsubishi,
		logger:         zap.NewNop(),
		connectTimeout: 3 * time.Second,
	}
}

// WithDialect selects the device address dialect (native Mitsubishi or Keyence KV).
func WithDialect(d Dialect) Option {
	return func(c *clientConfig) { c.dialect = d }
}

// WithLogger sets the *zap.Logger that Dial hands to the AsyncClient it creates,
// which logs frame writes (their size, not their bytes) and failed frame reads at
// Debug. NewClient does not pass it to the Transport it is given, and the Client
// itself logs nothing.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// WithConnectTimeout bounds how long Dial waits for the TCP handshake.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.connectTimeout = d }
}

// WithOperationTimeout bounds every call made through the returned Client
// (ReadWords, WriteWords, ReadBits, WriteBits, the typed helpers, and
// HealthCheck); it has no effect on a call whose passed-in context.Context
// already carries its own deadline.
func WithOperationTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.operationTimeout = d }
}

// Dial connects to a 3E-frame PLC (or compatible device) at addr and returns a
// ready-to-use Client.
func Dial(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	dialer := net.Dialer{Timeout: cfg.connectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, newTransportErr("dial failed", err)
	}

	async := NewAsyncClient(conn, cfg.logger)
	return &Client{transport: async, dialect: cfg.dialect, logger: cfg.logger, operationTimeout: cfg.operationTimeout}, nil
}

// NewClient wraps an already-connected Transport (most commonly an AsyncClient
// over a net.Conn obtained some other way). SyncClient is not a Transport: its
// Call takes no context.
func NewClient(transport Transport, opts ...Option) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{transport: transport, dialect: cfg.dialect, logger: cfg.logger, operationTimeout: cfg.operationTimeout}
}

// Close shuts down the underlying transport.
func (c *Client) Close() error {
	return c.transport.Close()
}

// ReadWords sends a word-read request for n points starting at address and
// returns the raw little-endian byte payload (2*n bytes).
func (c *Client) ReadWords(ctx context.Context, address string, n uint32) ([]byte, error) {
	resp, err := c.call(ctx, Request{Kind: KindReadWords, Address: address, Quantity: n})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// WriteWords sends a word-write request, writing data (an even number of bytes,
// 2 bytes per device point) starting at address.
func (c *Client) WriteWords(ctx context.Context, address string, data []byte) error {
	_, err := c.call(ctx, Request{Kind: KindWriteWords, Address: address, Data: data})
	return err
}

// ReadBits sends a bit-read request for n points starting at address.
func (c *Client) ReadBits(ctx context.Context, address string, n uint32) ([]bool, error) {
	resp, err := c.call(ctx, Request{Kind: KindReadBits, Address: address, Quantity: n})
	if err != nil {
		return nil, err
	}
	return resp.Bits, nil
}

// WriteBits sends a bit-write request, writing values starting at address.
func (c *Client) WriteBits(ctx context.Context, address string, values []bool) error {
	_, err := c.call(ctx, Request{Kind: KindWriteBits, Address: address, Bits: values})
	return err
}

// withOperationTimeout applies c.operationTimeout to ctx via context.WithTimeout,
// unless ctx already carries its own deadline (in which case that deadline wins)
// or no operation timeout was configured. The returned cancel func is always
// safe to defer-call.
func (c *Client) withOperationTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.operationTimeout <= 0 {
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.operationTimeout)
}

// call drives one (possibly chunked) request end to end: resolve dialect, encode,
// issue each frame over the transport in order, decode, and reassemble.
func (c *Client) call(ctx context.Context, req Request) (Response, error) {
	ctx, cancel := c.withOperationTimeout(ctx)
	defer cancel()

	chunks, err := encodeRequest(req, c.dialect)
	if err != nil {
		return Response{}, err
	}

	tails := make([][]byte, 0, len(chunks))
	points := make([]uint32, 0, len(chunks))
	for _, chunk := range chunks {
		tail, err := c.transport.Call(ctx, chunk.bytes)
		if err != nil {
			return Response{}, err
		}
		tails = append(tails, tail)
		points = append(points, chunk.points)
	}
	return decodeResponse(req, tails, points)
}

// HealthCheck exercises the MC reference's loopback test (11.4折返しテスト): it
// sends a fixed probe payload and verifies the PLC echoes it back unchanged. This
// generalizes the teacher's hardcoded HealthCheck (mcp/client.go) into a reusable
// op built on the same transport and framing as every other call.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := c.withOperationTimeout(ctx)
	defer cancel()

	tail, err := c.transport.Call(ctx, buildHealthCheckRequest())
	if err != nil {
		return err
	}
	return parseHealthCheckResponse(tail)
}
