package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlockPoolGetReturnsZeroedBuffer(t *testing.T) {
	p := NewBlockPool()

	buf := p.Get(16)
	require.Len(t, buf, 16)
	for _, b := range buf {
		require.Zero(t, b)
	}
}

func TestBlockPoolReusesBuffer(t *testing.T) {
	p := NewBlockPool()

	buf := p.Get(64)
	buf[0] = 0xFF
	p.Put(buf)

	buf2 := p.Get(64)
	require.Len(t, buf2, 64)
	require.Zero(t, buf2[0], "reused buffer must be zeroed")
}

func TestBlockPoolDistinctSizeClasses(t *testing.T) {
	p := NewBlockPool()

	small := p.Get(8)
	large := p.Get(4096)
	require.Len(t, small, 8)
	require.Len(t, large, 4096)

	p.Put(small)
	p.Put(large)

	require.Len(t, p.Get(8), 8)
	require.Len(t, p.Get(4096), 4096)
}

func TestBlockPoolPutIgnoresEmptyBuffer(t *testing.T) {
	p := NewBlockPool()
	p.Put(nil)
	p.Put([]byte{})
}

func TestBlockPoolExceedingMaxClassesFallsBackToAllocation(t *testing.T) {
	p := NewBlockPool()

	for i := 1; i <= BlockPoolMaxClasses+8; i++ {
		buf := p.Get(i)
		require.Len(t, buf, i)
		p.Put(buf)
	}
}
