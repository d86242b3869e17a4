package str8

import "fmt"

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte // backing memory
	offset int    // bump offset within buf
}

// Arena is a chunked bump allocator for String buffers. Many short-lived
// strings can share one arena and be dropped together with Reset or
// Release. Superseded buffers are not reclaimed until Reset.
// Not goroutine-safe; use SafeArena for concurrent access.
type Arena struct {
	chunks    []chunk
	chunkSize int
	limit     int // max total chunk bytes, 0 for unbounded
	current   *chunk
}

// NewArena creates an unbounded Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	a, err := NewArenaWithLimit(chunkSize, 0)
	if err != nil {
		// an unbounded first chunk only fails when chunkSize is unaddressable
		panic(err)
	}
	return a
}

// NewArenaWithLimit creates an Arena whose chunks may total at most limit
// bytes. A limit <= 0 means unbounded.
func NewArenaWithLimit(chunkSize, limit int) (*Arena, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 0 && chunkSize > limit {
		chunkSize = limit
	}
	a := &Arena{chunkSize: chunkSize, limit: limit}
	if err := a.grow(chunkSize); err != nil {
		return nil, err
	}
	return a, nil
}

// AllocBytes returns n bytes carved from the current chunk, opening a new
// chunk when it is full. The slice's capacity is clipped to n.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	a.panicIfReleased()
	if n <= 0 {
		return nil, fmt.Errorf("str8: invalid allocation size %d", n)
	}

	c := a.current
	if c == nil || c.offset+n > len(c.buf) {
		if err := a.grow(n); err != nil {
			return nil, err
		}
		c = a.current
	}
	start := c.offset
	c.offset += n
	return c.buf[start:c.offset:c.offset], nil
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
func (a *Arena) EnsureCapacity(n int) error {
	a.panicIfReleased()
	if c := a.current; c != nil && c.offset+n <= len(c.buf) {
		return nil
	}
	return a.grow(n)
}

// Reset rewinds every chunk for reuse. Strings allocated from the arena
// must not be used afterwards.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.current = &a.chunks[0]
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent allocation panics.
func (a *Arena) Release() {
	a.chunks = nil
	a.current = nil
}

// grow makes a chunk with at least min free bytes current, reusing a
// rewound chunk after Reset before allocating a new one.
func (a *Arena) grow(min int) error {
	if a.current != nil {
		for i := range a.chunks {
			c := &a.chunks[i]
			if c.offset == 0 && len(c.buf) >= min && c != a.current {
				a.current = c
				return nil
			}
		}
	}

	size := a.chunkSize
	if min > size {
		size = min
	}
	if a.limit > 0 && a.capacity()+size > a.limit {
		return fmt.Errorf("%w: arena needs %d more bytes, %d of %d in use",
			ErrLimitExceeded, size, a.capacity(), a.limit)
	}
	buf, err := makeBuffer(size)
	if err != nil {
		return fmt.Errorf("str8: arena chunk of %d bytes: %w", size, err)
	}
	a.chunks = append(a.chunks, chunk{buf: buf})
	a.current = &a.chunks[len(a.chunks)-1]
	return nil
}

func (a *Arena) capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.buf)
	}
	return sum
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic("str8: arena used after Release()")
	}
}
