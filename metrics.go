package str8

// Stats describes a single String.
type Stats struct {
	Len         int     // content bytes
	Cap         int     // buffer bytes, terminator included
	Grows       int     // reallocations since construction
	Utilization float64 // (Len+1)/Cap, 0 when released
}

// Grows returns how many times the buffer was reallocated after New.
func (s *String) Grows() int {
	if s == nil {
		return 0
	}
	return s.grows
}

// Stats returns a snapshot of the String's size accounting.
func (s *String) Stats() Stats {
	st := Stats{Len: s.Len(), Cap: s.Cap(), Grows: s.Grows()}
	if st.Cap > 0 {
		st.Utilization = float64(st.Len+1) / float64(st.Cap)
	}
	return st
}

// SizeInUse returns the total number of bytes handed out by the arena.
func (a *Arena) SizeInUse() int {
	if a.chunks == nil {
		return 0
	}
	sum := 0
	for _, c := range a.chunks {
		sum += c.offset
	}
	return sum
}

// NumChunks returns the number of chunks currently allocated by the arena.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks in the arena.
func (a *Arena) Capacity() int {
	return a.capacity()
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size used by this arena.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// Limit returns the arena's byte budget, 0 when unbounded.
func (a *Arena) Limit() int {
	return a.limit
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.ChunkSize(),
		Limit:       a.Limit(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes handed out
	Capacity    int     // Total capacity in bytes
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Default chunk size
	Limit       int     // Byte budget, 0 when unbounded
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}

// SizeInUse thread-safely returns the number of bytes handed out.
func (s *SafeArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}

// Capacity thread-safely returns the total capacity of all chunks.
func (s *SafeArena) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Capacity()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
