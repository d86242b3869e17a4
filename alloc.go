package str8

import (
	"fmt"
	"runtime"
)

// Allocator hands out byte buffers for String storage.
// AllocBytes must return at least n bytes or an error.
type Allocator interface {
	AllocBytes(n int) ([]byte, error)
}

// DefaultAllocator is used by New and by NewWithAllocator(nil, ...).
var DefaultAllocator Allocator = HeapAllocator{}

// HeapAllocator allocates each buffer with make.
// A positive Limit rejects single requests larger than Limit bytes.
type HeapAllocator struct {
	Limit int
}

// AllocBytes returns a fresh zeroed slice of n bytes.
func (h HeapAllocator) AllocBytes(n int) (b []byte, err error) {
	if n <= 0 {
		return nil, fmt.Errorf("str8: invalid allocation size %d", n)
	}
	if h.Limit > 0 && n > h.Limit {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrLimitExceeded, n, h.Limit)
	}
	return makeBuffer(n)
}

// makeBuffer is make([]byte, n) with the runtime's size panic turned into
// an error.
func makeBuffer(n int) (b []byte, err error) {
	defer func() {
		// makeslice panics with a runtime.Error when n exceeds what the
		// runtime can address; report it like any other failed request.
		if r := recover(); r != nil {
			re, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			b, err = nil, re
		}
	}()
	return make([]byte, n), nil
}
