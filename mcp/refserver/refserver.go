// Package refserver is a reference in-memory Service implementation used by
// tests and the mc3eserver demo binary. It is explicitly not part of the core
// mcp package (spec.md §4.7): real servers back their device zones with actual
// I/O, not a map.
package refserver

import (
	"context"
	"sync"

	"github.com/mc3e/go-mcprotocol/mcp"
)

// zone is one device prefix's backing memory, guarded by its own mutex so
// concurrent calls against different zones (e.g. D and M) never contend (spec.md
// §5's per-zone shared-resource policy). Word and bit operations against the same
// zone share the same byte buffer: bit N is bit N%8 of byte N/8. This is a
// deliberate simplification of the real PLC's documented word/bit memory
// aliasing (see DESIGN.md) - a reference server only needs to round-trip what
// it's given, and spec.md does not specify an aliasing scheme of its own.
type zone struct {
	mu   sync.Mutex
	data []byte
}

func (z *zone) ensure(n int) {
	if len(z.data) >= n {
		return
	}
	grown := make([]byte, n)
	copy(grown, z.data)
	z.data = grown
}

// MemServer is a mutex-guarded, per-zone in-memory implementation of mcp.Service,
// generalized from original_source/src/server/service.rs's ExampleService (a
// single Mutex<HashMap<u16,u16>> over the D zone only) to cover word and bit
// operations over every native device zone.
type MemServer struct {
	mu    sync.Mutex
	zones map[string]*zone
}

// New returns an empty MemServer.
func New() *MemServer {
	return &MemServer{zones: make(map[string]*zone)}
}

func (s *MemServer) zoneFor(prefix string) *zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	z, ok := s.zones[prefix]
	if !ok {
		z = &zone{}
		s.zones[prefix] = z
	}
	return z
}

// Call implements mcp.Service.
func (s *MemServer) Call(_ context.Context, req mcp.Request) (mcp.Response, error) {
	prefix, offset, err := mcp.ParseAddress(req.Address)
	if err != nil {
		return mcp.Response{}, err
	}
	z := s.zoneFor(prefix)
	z.mu.Lock()
	defer z.mu.Unlock()

	switch req.Kind {
	case mcp.KindReadWords:
		end := (int(offset) + int(req.Quantity)) * 2
		z.ensure(end)
		data := make([]byte, int(req.Quantity)*2)
		copy(data, z.data[int(offset)*2:end])
		return mcp.Response{Kind: req.Kind, Data: data}, nil

	case mcp.KindWriteWords:
		end := int(offset)*2 + len(req.Data)
		z.ensure(end)
		copy(z.data[int(offset)*2:end], req.Data)
		return mcp.Response{Kind: req.Kind}, nil

	case mcp.KindReadBits:
		end := (int(offset) + int(req.Quantity) + 7) / 8
		z.ensure(end)
		bits := make([]bool, req.Quantity)
		for i := range bits {
			bitIdx := offset + uint32(i)
			bits[i] = z.data[bitIdx/8]&(1<<(bitIdx%8)) != 0
		}
		return mcp.Response{Kind: req.Kind, Bits: bits}, nil

	case mcp.KindWriteBits:
		end := (int(offset) + len(req.Bits) + 7) / 8
		z.ensure(end)
		for i, b := range req.Bits {
			bitIdx := offset + uint32(i)
			if b {
				z.data[bitIdx/8] |= 1 << (bitIdx % 8)
			} else {
				z.data[bitIdx/8] &^= 1 << (bitIdx % 8)
			}
		}
		return mcp.Response{Kind: req.Kind}, nil

	default:
		return mcp.Response{}, &mcp.Error{}
	}
}
