// Package str8 implements growable, zero-terminated byte strings.
//
// # Overview
//
// A String owns a single buffer, tracks the length of its content and keeps
// one spare byte for a trailing zero terminator, so the buffer can always
// be handed to consumers that expect terminated text. The handle itself
// never moves; only its buffer is replaced when it grows.
//
// # Basic Usage
//
//	s, err := str8.NewString("Hello world!")
//	if err != nil {
//		return err
//	}
//	defer s.Release()
//
//	// Self-append is safe: s now holds "Hello world!Hello world!"
//	if _, err := str8.Append(s, s); err != nil {
//		return err
//	}
//
//	i := str8.FindFirst(s, needle) // offset or str8.NotFound
//
// # Growth
//
// Capacities are powers of two and never below MinCapacity (16 bytes).
// A buffer is only replaced when the new content plus terminator no longer
// fits, so N single-byte appends cost O(log N) reallocations. Capacity
// never shrinks.
//
// # Allocation Failure
//
// Buffers come from an Allocator. The default HeapAllocator uses make;
// Arena and SafeArena carve buffers from shared chunks and may be given a
// byte budget. Every mutating operation reports a failed allocation with
// an error wrapping ErrAllocation and leaves the String untouched.
//
// # Ownership
//
// A String is not safe for concurrent use. Views returned by View and
// Bytes alias the buffer and are invalidated by the next growth; Dup and
// Clone return independent copies. Strings allocated from an Arena are
// valid only until the arena is Reset.
package str8
