package descriptor

import (
	"path/filepath"
	"testing"

	"github.com/scidx/idx/block"
	"github.com/scidx/idx/hz"
	"github.com/stretchr/testify/require"
)

func TestBuildBitStringAxisCounts(t *testing.T) {
	s, err := BuildBitString(hz.Vec3{X: 4, Y: 4, Z: 1})
	require.NoError(t, err)

	bs, err := hz.ParseBitString(s)
	require.NoError(t, err)
	require.Equal(t, 2, bs.AxisCount(hz.AxisX))
	require.Equal(t, 2, bs.AxisCount(hz.AxisY))
	require.Equal(t, 0, bs.AxisCount(hz.AxisZ))
	require.Equal(t, int64(4), bs.AxisExtent(hz.AxisX))
}

func TestBuildBitStringSingleSample(t *testing.T) {
	_, err := BuildBitString(hz.Vec3{X: 1, Y: 1, Z: 1})
	require.Error(t, err)
}

func TestCreateThenGetQueries(t *testing.T) {
	f, err := Create(hz.Vec3{X: 4, Y: 4, Z: 1}, 1, Int8, 1, "test.idx", DefaultCreateOptions())
	require.NoError(t, err)

	require.Equal(t, f.GetMaxHZLevel(), f.Bits.Len())

	idx, err := f.GetFieldIndex("a")
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	_, err = f.GetFieldIndex("missing")
	require.Error(t, err)

	extent := f.GetLogicalExtent()
	require.Equal(t, hz.Vec3{X: 4, Y: 4, Z: 1}, extent)
}

func TestWriteParseRoundTrip(t *testing.T) {
	f, err := Create(hz.Vec3{X: 4, Y: 4, Z: 4}, 2, Float32, 3, "dataset.idx", DefaultCreateOptions())
	require.NoError(t, err)
	f.Fields[1].Compression = block.CompressionZip
	f.Fields[1].Format = block.Hz

	path := filepath.Join(t.TempDir(), "dataset.idx")
	require.NoError(t, Write(path, f))

	reread, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, f.Version, reread.Version)
	require.Equal(t, f.Box, reread.Box)
	require.Equal(t, f.Bits.String(), reread.Bits.String())
	require.Equal(t, f.BitsPerBlock, reread.BitsPerBlock)
	require.Equal(t, f.BlocksPerFile, reread.BlocksPerFile)
	require.Equal(t, f.TimeBegin, reread.TimeBegin)
	require.Equal(t, f.TimeEnd, reread.TimeEnd)
	require.Len(t, reread.Fields, 2)
	require.Equal(t, block.CompressionZip, reread.Fields[1].Compression)
	require.Equal(t, block.Hz, reread.Fields[1].Format)

	_, err = reread.GetFieldIndex(f.Fields[0].Name)
	require.NoError(t, err)
}

func TestParseFilenameTemplate(t *testing.T) {
	nt, err := parseFilenameTemplate("./%02x/%01x/%01x.bin")
	require.NoError(t, err)
	require.Equal(t, ".", nt.Head)
	require.Equal(t, []int{2, 1, 1}, nt.HexGroups)
	require.Equal(t, ".bin", nt.Ext)
}

func TestGetSizeMatchesGridSampleCount(t *testing.T) {
	f, err := Create(hz.Vec3{X: 8, Y: 8, Z: 1}, 1, Int32, 1, "sized.idx", DefaultCreateOptions())
	require.NoError(t, err)

	maxLevel := f.GetMaxHZLevel()
	size, err := f.GetSizeInclusive(0, maxLevel)
	require.NoError(t, err)
	require.Equal(t, int64(8*8*1*4), size)
}
