package str8

import (
	"bytes"
	"fmt"
	"math/bits"
)

const (
	// MinCapacity is the smallest buffer a String ever holds.
	MinCapacity = 16

	// MaxCapacity is the largest capacity AlignedCapacity can return.
	// Requests above it fail with ErrAllocation before reaching an Allocator.
	MaxCapacity = 1 << (bits.UintSize - 2)

	// NotFound is returned by FindFirst and Find when the needle is absent.
	NotFound = -1
)

// String is a growable, zero-terminated byte string.
// The handle stays stable while its buffer is reallocated; a String is
// owned by one goroutine at a time.
type String struct {
	buf   []byte // len(buf) is the capacity; buf[n] == 0
	n     int
	alloc Allocator
	grows int
}

// AlignedCapacity returns the smallest power of two >= required,
// never less than MinCapacity. Requests above MaxCapacity are clamped to
// MaxCapacity, which is then smaller than required.
func AlignedCapacity(required int) int {
	if required <= MinCapacity {
		return MinCapacity
	}
	if required >= MaxCapacity {
		return MaxCapacity
	}
	return 1 << bits.Len(uint(required-1))
}

// New creates a String holding a copy of src up to its first zero byte.
// A nil src yields an empty String.
func New(src []byte) (*String, error) {
	return NewWithAllocator(DefaultAllocator, src)
}

// NewString is New for Go strings.
func NewString(s string) (*String, error) {
	return New([]byte(s))
}

// NewWithAllocator creates a String whose buffers come from a.
// A nil allocator falls back to DefaultAllocator.
func NewWithAllocator(a Allocator, src []byte) (*String, error) {
	if a == nil {
		a = DefaultAllocator
	}
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	s := &String{alloc: a}
	if err := s.ensureCapacity(capacityFor(len(src))); err != nil {
		return nil, err
	}
	s.grows = 0
	copy(s.buf, src)
	s.n = len(src)
	s.buf[s.n] = 0
	return s, nil
}

// capacityFor returns the aligned capacity for n content bytes plus the
// terminator, or -1 when it cannot be represented.
func capacityFor(n int) int {
	if n < 0 || n >= MaxCapacity {
		return -1
	}
	return AlignedCapacity(n + 1)
}

// ensureCapacity grows the buffer to exactly needed bytes. On failure the
// String is left as it was.
func (s *String) ensureCapacity(needed int) error {
	if needed < 0 {
		return fmt.Errorf("%w: capacity exceeds %d bytes", ErrAllocation, MaxCapacity)
	}
	if needed <= len(s.buf) {
		return nil
	}
	mem, err := s.alloc.AllocBytes(needed)
	if err != nil {
		return fmt.Errorf("%w: %d bytes: %w", ErrAllocation, needed, err)
	}
	if len(mem) < needed {
		return fmt.Errorf("%w: allocator returned %d of %d bytes", ErrAllocation, len(mem), needed)
	}
	if s.buf != nil {
		copy(mem, s.buf[:s.n+1])
	}
	s.buf = mem[:needed:needed]
	s.grows++
	return nil
}

// Assign overwrites dst with a copy of src and returns dst.
// Assigning a String to itself or from nil leaves dst unchanged.
// A nil dst panics.
func Assign(dst, src *String) (*String, error) {
	dst.panicIfInvalid()
	if src == nil || src == dst {
		return dst, nil
	}
	src.panicIfReleased()

	n := src.n
	if err := dst.ensureCapacity(capacityFor(n)); err != nil {
		return nil, err
	}
	copy(dst.buf, src.buf[:n+1])
	dst.n = n
	return dst, nil
}

// Append concatenates s2 onto s1 and returns s1. Append(x, x) doubles x.
// A nil s2 leaves s1 unchanged; a nil s1 panics.
func Append(s1, s2 *String) (*String, error) {
	s1.panicIfInvalid()
	if s2 == nil {
		return s1, nil
	}
	s2.panicIfReleased()

	// Snapshot before growth: when s1 == s2 the buffer below is replaced.
	offset := s1.n
	tail := s2.buf[:s2.n]
	if err := s1.ensureCapacity(capacityFor(offset + len(tail))); err != nil {
		return nil, err
	}
	copy(s1.buf[offset:], tail)
	s1.n = offset + len(tail)
	s1.buf[s1.n] = 0
	return s1, nil
}

// FindFirst returns the offset of the first occurrence of needle in
// haystack, or NotFound.
func FindFirst(haystack, needle *String) int {
	if !haystack.live() || !needle.live() {
		return NotFound
	}
	return bytes.Index(haystack.Bytes(), needle.Bytes())
}

// Find is FindFirst starting at offset. Searching at or beyond the end of
// haystack fails with NotFound.
func Find(haystack, needle *String, offset int) int {
	if !haystack.live() || !needle.live() {
		return NotFound
	}
	if offset < 0 || offset >= haystack.n {
		return NotFound
	}
	i := bytes.Index(haystack.buf[offset:haystack.n], needle.Bytes())
	if i < 0 {
		return NotFound
	}
	return offset + i
}

// Release drops the buffer. Releasing nil or an already released String is
// a no-op; any other use after Release panics.
func (s *String) Release() {
	if s == nil {
		return
	}
	s.buf = nil
	s.n = 0
}

// Len returns the number of content bytes.
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	return s.n
}

// Cap returns the allocated buffer size, terminator included.
func (s *String) Cap() int {
	if s == nil {
		return 0
	}
	return len(s.buf)
}

// View returns the content followed by its terminator. The slice aliases
// the buffer and must not be modified; it is invalidated by growth.
func (s *String) View() []byte {
	if !s.live() {
		return nil
	}
	return s.buf[: s.n+1 : s.n+1]
}

// Bytes returns the content without the terminator, aliasing the buffer.
func (s *String) Bytes() []byte {
	if !s.live() {
		return nil
	}
	return s.buf[:s.n:s.n]
}

// Dup returns an independent copy of the content and its terminator.
func (s *String) Dup() []byte {
	if !s.live() {
		return nil
	}
	return bytes.Clone(s.buf[:s.n+1])
}

// Clone returns a new String with the same content and allocator.
func (s *String) Clone() (*String, error) {
	if s == nil {
		return nil, nil
	}
	s.panicIfReleased()
	return NewWithAllocator(s.alloc, s.buf[:s.n])
}

func (s *String) String() string {
	if !s.live() {
		return ""
	}
	return string(s.buf[:s.n])
}

func (s *String) live() bool {
	return s != nil && s.buf != nil
}

func (s *String) panicIfInvalid() {
	if s == nil {
		panic("str8: nil destination")
	}
	s.panicIfReleased()
}

func (s *String) panicIfReleased() {
	if s.buf == nil {
		panic("str8: use after Release()")
	}
}
