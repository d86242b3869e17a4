package str8

import (
	"testing"
)

func TestArenaMetrics(t *testing.T) {
	a := NewArena(1024)

	// Test initial state
	if a.SizeInUse() != 0 {
		t.Errorf("Initial SizeInUse = %d, want 0", a.SizeInUse())
	}
	if a.NumChunks() != 1 {
		t.Errorf("Initial NumChunks = %d, want 1", a.NumChunks())
	}
	if a.Capacity() != 1024 {
		t.Errorf("Initial Capacity = %d, want 1024", a.Capacity())
	}
	if a.Utilization() != 0 {
		t.Errorf("Initial Utilization = %f, want 0", a.Utilization())
	}

	// Strings take exactly their aligned capacity
	s, err := NewWithAllocator(a, []byte("0123456789abcdefghij")) // 21 bytes -> 32
	if err != nil {
		t.Fatal(err)
	}
	if a.SizeInUse() != 32 {
		t.Errorf("SizeInUse = %d, want 32", a.SizeInUse())
	}

	// Growth leaves the old buffer in place until Reset
	if _, err := Append(s, s); err != nil {
		t.Fatal(err)
	}
	if a.SizeInUse() != 32+64 {
		t.Errorf("SizeInUse after growth = %d, want 96", a.SizeInUse())
	}

	metrics := a.Metrics()
	want := ArenaMetrics{
		SizeInUse:   96,
		Capacity:    1024,
		NumChunks:   1,
		ChunkSize:   1024,
		Limit:       0,
		Utilization: 96.0 / 1024.0,
	}
	if metrics != want {
		t.Errorf("Metrics() = %+v, want %+v", metrics, want)
	}
}

func TestReleasedArenaMetrics(t *testing.T) {
	a := NewArena(1024)
	a.AllocBytes(100)
	a.Release()

	if m := a.Metrics(); m.SizeInUse != 0 || m.Capacity != 0 || m.NumChunks != 0 || m.Utilization != 0 {
		t.Errorf("Metrics after Release = %+v, want zero usage", m)
	}
}

func TestStringStatsTrackGrowth(t *testing.T) {
	s, _ := NewString("")
	one, _ := NewString("x")

	for i := 0; i < 100; i++ {
		Append(s, one)
	}

	st := s.Stats()
	if st.Len != 100 || st.Cap != 128 || st.Grows != 3 {
		t.Errorf("Stats() = %+v, want Len 100 Cap 128 Grows 3", st)
	}
	if st.Utilization <= 0 || st.Utilization > 1 {
		t.Errorf("Utilization = %f, want 0 < x <= 1", st.Utilization)
	}
}
