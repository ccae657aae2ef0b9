package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scidx/idx/descriptor"
	"github.com/scidx/idx/hz"
	"github.com/stretchr/testify/require"
)

func newTestDescriptor(t *testing.T, dims hz.Vec3, scalarType descriptor.ScalarType, opts descriptor.CreateOptions) *descriptor.IdxFile {
	t.Helper()

	dir := t.TempDir()
	desc, err := descriptor.Create(dims, 1, scalarType, 1, filepath.Join(dir, "dataset.idx"), opts)
	require.NoError(t, err)

	return desc
}

func fillSequential(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i)
	}

	return buf
}

// TestTinyWriteReadRoundTrip writes a tiny 4x4x1 int8 grid and reads it
// back inclusively at max resolution, expecting a byte-exact round trip.
func TestTinyWriteReadRoundTrip(t *testing.T) {
	desc := newTestDescriptor(t, hz.Vec3{X: 4, Y: 4, Z: 1}, descriptor.Int8, descriptor.CreateOptions{BitsPerBlock: 4, BlocksPerFile: 1})

	ctx, err := NewContext()
	require.NoError(t, err)

	src := fillSequential(16)
	require.NoError(t, ctx.WriteAll(desc, 0, 0, desc.Box, src))

	dst := make([]byte, 16)
	require.NoError(t, ctx.ReadInclusive(desc, 0, 0, desc.GetMaxHZLevel(), desc.Box, dst))
	require.Equal(t, src, dst)
}

// TestMultiFileWriteCreatesMultipleFiles writes a grid whose block size is
// smaller than the full volume, so blocks land in more than one physical
// file, and checks that reading it back is still byte-exact (see
// DESIGN.md's test coverage note).
func TestMultiFileWriteCreatesMultipleFiles(t *testing.T) {
	desc := newTestDescriptor(t, hz.Vec3{X: 4, Y: 4, Z: 4}, descriptor.Int32, descriptor.CreateOptions{BitsPerBlock: 2, BlocksPerFile: 1})

	ctx, err := NewContext()
	require.NoError(t, err)

	n := int(desc.GetLogicalExtent().X * desc.GetLogicalExtent().Y * desc.GetLogicalExtent().Z * 4)
	src := fillSequential(n)
	require.NoError(t, ctx.WriteAll(desc, 0, 0, desc.Box, src))

	dst := make([]byte, n)
	require.NoError(t, ctx.ReadInclusive(desc, 0, 0, desc.GetMaxHZLevel(), desc.Box, dst))
	require.Equal(t, src, dst)

	count := countDataFiles(t, filepath.Dir(desc.Path))
	require.Greater(t, count, 1)
}

func countDataFiles(t *testing.T, root string) int {
	t.Helper()

	count := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".bin" {
			count++
		}

		return nil
	})
	require.NoError(t, err)

	return count
}

// TestSlicedReadAtMaxLevel narrows a read's query box to a single x-plane
// at full resolution and checks that exactly that plane's samples come
// back.
func TestSlicedReadAtMaxLevel(t *testing.T) {
	desc := newTestDescriptor(t, hz.Vec3{X: 4, Y: 4, Z: 4}, descriptor.Int32, descriptor.CreateOptions{BitsPerBlock: 2, BlocksPerFile: 4})

	ctx, err := NewContext()
	require.NoError(t, err)

	full := int(desc.GetLogicalExtent().X * desc.GetLogicalExtent().Y * desc.GetLogicalExtent().Z * 4)
	src := fillSequential(full)
	require.NoError(t, ctx.WriteAll(desc, 0, 0, desc.Box, src))

	slice := hz.Box{From: hz.Vec3{X: 2, Y: 0, Z: 0}, To: hz.Vec3{X: 2, Y: 3, Z: 3}}
	dst := make([]byte, 1*4*4*4)
	require.NoError(t, ctx.ReadInclusive(desc, 0, 0, desc.GetMaxHZLevel(), slice, dst))

	full2 := make([]byte, full)
	require.NoError(t, ctx.ReadInclusive(desc, 0, 0, desc.GetMaxHZLevel(), desc.Box, full2))

	dims := desc.GetLogicalExtent()
	expected := make([]byte, 0, len(dst))
	for z := int64(0); z < dims.Z; z++ {
		for y := int64(0); y < dims.Y; y++ {
			idx := (z*dims.Y*dims.X + y*dims.X + 2) * 4
			expected = append(expected, full2[idx:idx+4]...)
		}
	}
	require.Equal(t, expected, dst)
}

// TestProgressiveInclusiveEqualsUnionOfLevels checks that an inclusive read
// at level L equals the union of exact reads at every level 0..L.
func TestProgressiveInclusiveEqualsUnionOfLevels(t *testing.T) {
	desc := newTestDescriptor(t, hz.Vec3{X: 4, Y: 4, Z: 1}, descriptor.Int8, descriptor.CreateOptions{BitsPerBlock: 4, BlocksPerFile: 1})

	ctx, err := NewContext()
	require.NoError(t, err)

	src := fillSequential(16)
	require.NoError(t, ctx.WriteAll(desc, 0, 0, desc.Box, src))

	viaInclusive := make([]byte, 16)
	require.NoError(t, ctx.ReadInclusive(desc, 0, 0, desc.GetMaxHZLevel(), desc.Box, viaInclusive))

	viaUnion := make([]byte, 16)
	for l := 0; l <= desc.GetMaxHZLevel(); l++ {
		require.NoError(t, ctx.Read(desc, 0, 0, l, desc.Box, viaUnion))
	}

	require.Equal(t, viaInclusive, viaUnion)
}

// TestAbsentBlockReadIsNoop checks that reading from a dataset with no
// data ever written succeeds and leaves the destination buffer untouched.
func TestAbsentBlockReadIsNoop(t *testing.T) {
	desc := newTestDescriptor(t, hz.Vec3{X: 4, Y: 4, Z: 1}, descriptor.Int8, descriptor.CreateOptions{BitsPerBlock: 4, BlocksPerFile: 1})

	ctx, err := NewContext()
	require.NoError(t, err)

	dst := make([]byte, 16)
	require.NoError(t, ctx.ReadInclusive(desc, 0, 0, desc.GetMaxHZLevel(), desc.Box, dst))
	require.Equal(t, make([]byte, 16), dst)
}

func TestReadRejectsOutOfRangeLevel(t *testing.T) {
	desc := newTestDescriptor(t, hz.Vec3{X: 4, Y: 4, Z: 1}, descriptor.Int8, descriptor.CreateOptions{BitsPerBlock: 4, BlocksPerFile: 1})

	ctx, err := NewContext()
	require.NoError(t, err)

	dst := make([]byte, 16)
	err = ctx.Read(desc, 0, 0, desc.GetMaxHZLevel()+1, desc.Box, dst)
	require.Error(t, err)
}

func TestReadRejectsBoxOutsideDataset(t *testing.T) {
	desc := newTestDescriptor(t, hz.Vec3{X: 4, Y: 4, Z: 1}, descriptor.Int8, descriptor.CreateOptions{BitsPerBlock: 4, BlocksPerFile: 1})

	ctx, err := NewContext()
	require.NoError(t, err)

	outside := hz.Box{From: hz.Vec3{X: 100}, To: hz.Vec3{X: 100, Y: 0, Z: 0}}
	dst := make([]byte, 1)
	err = ctx.Read(desc, 0, 0, 0, outside, dst)
	require.Error(t, err)
}
