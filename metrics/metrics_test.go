package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/str8"
)

func TestAllocatorCountsTraffic(t *testing.T) {
	reg := prometheus.NewRegistry()
	alloc := NewAllocator("heap", str8.HeapAllocator{Limit: 64}, reg)

	s, err := str8.NewWithAllocator(alloc, []byte("0123456789")) // 16 bytes
	require.NoError(t, err)
	_, err = str8.Append(s, s) // 32 bytes
	require.NoError(t, err)
	_, err = str8.Append(s, s) // 64 bytes
	require.NoError(t, err)
	_, err = str8.Append(s, s) // 128 bytes, over the limit
	require.ErrorIs(t, err, str8.ErrAllocation)

	assert.Equal(t, 4.0, testutil.ToFloat64(alloc.requests))
	assert.Equal(t, 112.0, testutil.ToFloat64(alloc.bytes))
	assert.Equal(t, 1.0, testutil.ToFloat64(alloc.failures))
	assert.Equal(t, 40, s.Len())
}

func TestNewAllocatorDefaultsInner(t *testing.T) {
	alloc := NewAllocator("default", nil, prometheus.NewRegistry())
	b, err := alloc.AllocBytes(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)
}

func TestArenaCollector(t *testing.T) {
	a, err := str8.NewArenaWithLimit(1024, 4096)
	require.NoError(t, err)
	defer a.Release()

	_, err = str8.NewWithAllocator(a, []byte("scraped"))
	require.NoError(t, err)

	c := NewArenaCollector("request", a)
	expected := `
# HELP str8_arena_bytes_in_use Bytes carved from the arena
# TYPE str8_arena_bytes_in_use gauge
str8_arena_bytes_in_use{arena="request"} 16
# HELP str8_arena_capacity_bytes Total chunk bytes held by the arena
# TYPE str8_arena_capacity_bytes gauge
str8_arena_capacity_bytes{arena="request"} 1024
# HELP str8_arena_chunks Number of chunks held by the arena
# TYPE str8_arena_chunks gauge
str8_arena_chunks{arena="request"} 1
# HELP str8_arena_limit_bytes Arena byte budget, 0 when unbounded
# TYPE str8_arena_limit_bytes gauge
str8_arena_limit_bytes{arena="request"} 4096
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected)))
}

func TestArenaCollectorRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(NewArenaCollector("shared", str8.NewSafeArena(0))))

	n, err := testutil.GatherAndCount(reg, "str8_arena_capacity_bytes")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
