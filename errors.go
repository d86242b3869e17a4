package str8

import "errors"

var (
	// ErrAllocation reports that a buffer could not be acquired. The String
	// involved keeps its previous content and capacity.
	ErrAllocation = errors.New("str8: allocation failed")

	// ErrLimitExceeded is returned by allocators whose byte budget is spent.
	ErrLimitExceeded = errors.New("str8: allocator limit exceeded")
)
