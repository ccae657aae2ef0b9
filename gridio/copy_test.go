package gridio

import (
	"testing"

	"github.com/scidx/idx/hz"
	"github.com/stretchr/testify/require"
)

func box(x0, y0, z0, x1, y1, z1 int64) hz.Box {
	return hz.Box{From: hz.Vec3{X: x0, Y: y0, Z: z0}, To: hz.Vec3{X: x1, Y: y1, Z: z1}}
}

func TestCopyIdenticalBoxes(t *testing.T) {
	b := box(0, 0, 0, 1, 1, 1)
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 8)

	require.NoError(t, Copy(b, dst, b, src, 1))
	require.Equal(t, src, dst)
}

func TestCopyPartialOverlap(t *testing.T) {
	// src is a 4x1x1 row of uint8 samples [10,11,12,13] at x in [0,3].
	src := box(0, 0, 0, 3, 0, 0)
	srcBuf := []byte{10, 11, 12, 13}

	// dst is a 2x1x1 buffer at x in [2,3], initialized to 0xFF sentinels.
	dst := box(2, 0, 0, 3, 0, 0)
	dstBuf := []byte{0xFF, 0xFF}

	require.NoError(t, Copy(dst, dstBuf, src, srcBuf, 1))
	require.Equal(t, []byte{12, 13}, dstBuf)
}

func TestCopyDisjointIsNoop(t *testing.T) {
	src := box(0, 0, 0, 0, 0, 0)
	dst := box(5, 5, 5, 5, 5, 5)
	srcBuf := []byte{42}
	dstBuf := []byte{0}

	require.NoError(t, Copy(dst, dstBuf, src, srcBuf, 1))
	require.Equal(t, []byte{0}, dstBuf)
}

func TestCopyMultiByteSamples(t *testing.T) {
	b := box(0, 0, 0, 1, 0, 0)
	src := []byte{0, 0, 0, 1, 0, 0, 0, 2} // two big-endian-ish uint32 samples
	dst := make([]byte, 8)

	require.NoError(t, Copy(b, dst, b, src, 4))
	require.Equal(t, src, dst)
}

func TestCopyRejectsBadWidth(t *testing.T) {
	b := box(0, 0, 0, 0, 0, 0)
	err := Copy(b, make([]byte, 1), b, make([]byte, 1), 3)
	require.Error(t, err)
}

func TestCopy2DPlaneRows(t *testing.T) {
	// src is 3x2x1 (x fastest): rows y=0: [0,1,2], y=1: [3,4,5]
	src := box(0, 0, 0, 2, 1, 0)
	srcBuf := []byte{0, 1, 2, 3, 4, 5}

	// dst covers x in [1,2], y in [0,1]
	dst := box(1, 0, 0, 2, 1, 0)
	dstBuf := make([]byte, 4)

	require.NoError(t, Copy(dst, dstBuf, src, srcBuf, 1))
	require.Equal(t, []byte{1, 2, 4, 5}, dstBuf)
}
