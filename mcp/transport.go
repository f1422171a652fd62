package mcp

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"
)

// Conn is the minimal connection surface Transport needs; *net.TCPConn and
// net.Conn both satisfy it, and tests can satisfy it with net.Pipe or an in-memory
// pipe.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
}

// Transport sends one wire frame and returns the decoded frame tail (the bytes a
// Framer hands back after stripping the outer 9-byte prefix+length header) the peer
// sent in reply.
type Transport interface {
	Call(ctx context.Context, frame []byte) ([]byte, error)
	Close() error
}

type asyncCall struct {
	frame []byte
	resp  chan asyncResult
}

type asyncResult struct {
	tail []byte
	err  error
}

// AsyncClient is the asynchronous transport engine: a single goroutine owns the
// connection and serializes writes and reads through it, so at most one call is
// ever in flight on the wire at a time (spec.md §5's single-in-flight-call
// invariant). It is the Go translation of the original tokio-based client's
// async engine (original_source/src/client/{mod,tcp}.rs): Go has no tokio/
// async_trait analogue, so one dispatcher goroutine reading a channel plays the
// same role a single-threaded async task does there.
type AsyncClient struct {
	conn   Conn
	reqCh  chan asyncCall
	done   chan struct{}
	logger *zap.Logger
}

// NewAsyncClient starts the dispatcher goroutine for conn. If logger is nil, a
// no-op logger is used.
func NewAsyncClient(conn Conn, logger *zap.Logger) *AsyncClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &AsyncClient{
		conn:   conn,
		reqCh:  make(chan asyncCall),
		done:   make(chan struct{}),
		logger: logger,
	}
	go c.loop()
	return c
}

func (c *AsyncClient) loop() {
	framer := NewFramer(RoleClient)
	readBuf := make([]byte, 4096)
	for {
		select {
		case call, ok := <-c.reqCh:
			if !ok {
				return
			}
			c.logger.Debug("writing frame", zap.Int("bytes", len(call.frame)))
			if _, err := c.conn.Write(call.frame); err != nil {
				call.resp <- asyncResult{err: newTransportErr("write failed", err)}
				continue
			}
			tail, err := readOneFrame(c.conn, framer, readBuf)
			if err != nil {
				c.logger.Debug("frame read failed", zap.Error(err))
			}
			call.resp <- asyncResult{tail: tail, err: err}
		case <-c.done:
			return
		}
	}
}

func readOneFrame(conn Conn, framer *Framer, buf []byte) ([]byte, error) {
	for {
		if tail, ok, err := framer.Next(); err != nil {
			return nil, err
		} else if ok {
			return tail, nil
		}
		n, err := conn.Read(buf)
		if err != nil {
			return nil, newTransportErr("read failed", err)
		}
		framer.Feed(buf[:n])
	}
}

// Call sends frame and waits for the next reply frame, or for ctx to be done. A
// context cancellation while a call is in flight leaves the connection in an
// indeterminate state (the dispatcher goroutine may still be blocked mid-read);
// per spec.md §5, callers must treat such a connection as poisoned and reconnect
// rather than issue further calls on it.
func (c *AsyncClient) Call(ctx context.Context, frame []byte) ([]byte, error) {
	resp := make(chan asyncResult, 1)
	select {
	case c.reqCh <- asyncCall{frame: frame, resp: resp}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, newTransportErr("transport closed", nil)
	}
	select {
	case r := <-resp:
		return r.tail, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the dispatcher goroutine and closes the underlying connection.
func (c *AsyncClient) Close() error {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	return c.conn.Close()
}

// SyncClient is a thin blocking adapter over an AsyncClient: it applies a fixed
// per-call timeout and drives the async engine with context.Background derived
// from it, rather than reimplementing transport logic. This mirrors
// original_source/src/client/sync/mod.rs's block_on_with_timeout: "a thin
// adapter... not a parallel implementation."
type SyncClient struct {
	inner   Transport
	timeout time.Duration
}

// NewSyncClient wraps inner, applying timeout (if positive) to every Call.
func NewSyncClient(inner Transport, timeout time.Duration) *SyncClient {
	return &SyncClient{inner: inner, timeout: timeout}
}

// Call blocks until a reply arrives or the configured timeout elapses.
func (s *SyncClient) Call(frame []byte) ([]byte, error) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.inner.Call(ctx, frame)
}

// Close closes the wrapped transport.
func (s *SyncClient) Close() error { return s.inner.Close() }
