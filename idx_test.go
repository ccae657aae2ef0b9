package idx_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scidx/idx"
	"github.com/scidx/idx/descriptor"
	"github.com/scidx/idx/hz"
)

func TestCreateWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.idx")

	desc, err := idx.Create(hz.Vec3{X: 4, Y: 4, Z: 1}, 1, descriptor.Int8, 1, path, descriptor.CreateOptions{BitsPerBlock: 4, BlocksPerFile: 1})
	require.NoError(t, err)

	src := make([]byte, 16)
	for i := range src {
		src[i] = byte(i)
	}
	require.NoError(t, idx.WriteGridAll(desc, 0, 0, desc.Box, src))

	dst := make([]byte, 16)
	require.NoError(t, idx.ReadGridInclusive(desc, 0, 0, idx.MaxHZLevel(desc), desc.Box, dst))
	require.Equal(t, src, dst)

	reloaded, err := idx.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, desc.Box, reloaded.Box)

	fieldIdx, err := idx.FieldIndex(reloaded, "a")
	require.NoError(t, err)
	require.Equal(t, 0, fieldIdx)

	require.Equal(t, hz.Vec3{X: 4, Y: 4, Z: 1}, idx.LogicalExtent(reloaded))
}
