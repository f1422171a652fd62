package mcp

import "context"

// Service is implemented by servers to answer decoded requests. It collapses the
// original Rust implementation's async_trait Service (Request/Response/Exception/
// Future associated types, see original_source/src/server/service.rs) into a
// single blocking method with a context.Context, the idiomatic Go shape for a
// connection-scoped request handler.
type Service interface {
	Call(ctx context.Context, req Request) (Response, error)
}

// ServiceFunc adapts a plain function to the Service interface.
type ServiceFunc func(ctx context.Context, req Request) (Response, error)

// Call implements Service.
func (f ServiceFunc) Call(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}
