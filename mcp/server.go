package mcp

import (
	"context"
	"errors"
	"net"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// genericServiceFailureCode is the end code synthesized onto the wire when a
// Service returns an error that isn't itself an *Error carrying a specific wire
// end code. It is outside the documented end-code ranges so it's unambiguous in
// captures; the original tokio-mc server had no server-side decode path shown in
// the retrieved sources to ground an exact value against, so this is a reasonable
// reserved-looking value rather than a borrowed one.
const genericServiceFailureCode uint16 = 0x4031

// ServerOption configures a server's diagnostics.
type ServerOption func(*serverConfig)

type serverConfig struct {
	logger *zap.Logger
}

// WithServerLogger sets the *zap.Logger used for accept/decode/shutdown
// diagnostics.
func WithServerLogger(l *zap.Logger) ServerOption {
	return func(c *serverConfig) { c.logger = l }
}

// ListenAndServe accepts connections on l and serves each with svc until ctx is
// canceled. On cancellation, the accept loop stops and in-flight connections are
// given the chance to finish their current request/response pair before closing
// (spec.md §4.7/§5's graceful shutdown via abort signal). This mirrors
// original_source/src/server/tcp.rs's Server::serve_until racing the accept loop
// against an abort signal, translated from tokio::select! into an
// errgroup.Group plus context cancellation - the idiomatic Go shape for "one task
// per connection, all canceled together" used by this pack's other protocol
// servers (beacon, mini-rpc).
func ListenAndServe(ctx context.Context, l net.Listener, svc Service, opts ...ServerOption) error {
	cfg := serverConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		return l.Close()
	})

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return eg.Wait()
			default:
				return err
			}
		}
		cfg.logger.Debug("accepted connection", zap.String("remote", conn.RemoteAddr().String()))
		eg.Go(func() error {
			if err := ServeConn(egCtx, conn, svc, cfg.logger); err != nil {
				cfg.logger.Debug("connection handler exited", zap.Error(err))
			}
			return nil
		})
	}
}

// ServeConn serves one connection: it decodes request frames, calls svc, and
// encodes the response (or a synthesized exception response on failure), until
// ctx is canceled or the connection errors out. It is the fundamental per-
// connection primitive ListenAndServe builds on, and is also useful directly in
// tests against an in-memory Conn.
func ServeConn(ctx context.Context, conn Conn, svc Service, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	defer conn.Close()

	framer := NewFramer(RoleServer)
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		tail, err := readOneFrame(conn, framer, buf)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		req, err := decodeRequestTail(tail)
		if err != nil {
			logger.Debug("malformed request frame", zap.Error(err))
			return err
		}

		resp, err := svc.Call(ctx, req)
		var frame []byte
		if err != nil {
			frame = encodeExceptionResponse(serviceErrorCode(err))
			logger.Debug("service call failed", zap.Error(err))
		} else {
			frame = encodeResponse(resp)
		}
		if _, err := conn.Write(frame); err != nil {
			return newTransportErr("write failed", err)
		}
	}
}

func serviceErrorCode(err error) uint16 {
	var mcErr *Error
	if errors.As(err, &mcErr) && mcErr.Kind == KindEndCode {
		return mcErr.Code
	}
	return genericServiceFailureCode
}
