package block

import (
	"testing"

	"github.com/scidx/idx/endian"
	"github.com/scidx/idx/hz"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	engine := endian.GetBigEndianEngine()
	h := Header{Offset: 4096, Bytes: 1024, Compression: CompressionZip, Format: RowMajor}

	data := h.Bytes28(engine)
	require.Len(t, data, HeaderSize)

	got, err := ParseHeader(data, engine)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestHeaderAbsentWhenOffsetZero(t *testing.T) {
	require.False(t, Header{}.Present())
	require.True(t, Header{Offset: 1}.Present())
}

func TestParseHeaderRejectsShortBuffer(t *testing.T) {
	_, err := ParseHeader(make([]byte, 10), endian.GetBigEndianEngine())
	require.Error(t, err)
}

func TestInFileAndFileIndex(t *testing.T) {
	const bitsPerBlock = 4
	const blocksPerFile = 3

	require.Equal(t, 0, InFile(0, bitsPerBlock, blocksPerFile))
	require.Equal(t, int64(0), FileIndex(0, bitsPerBlock, blocksPerFile))

	// block index 3 (address 3<<4) should wrap to file 1, slot 0.
	addr := uint64(3) << bitsPerBlock
	require.Equal(t, 0, InFile(addr, bitsPerBlock, blocksPerFile))
	require.Equal(t, int64(1), FileIndex(addr, bitsPerBlock, blocksPerFile))
}

func TestAddressesCoverFullBoxAtLevel(t *testing.T) {
	bits, err := hz.ParseBitString("012012V")
	require.NoError(t, err)

	const bitsPerBlock = 2
	full := hz.Box{From: hz.Vec3{}, To: hz.Vec3{X: 3, Y: 3, Z: 3}}

	addrs, err := Addresses(bits, bitsPerBlock, bits.Len(), full)
	require.NoError(t, err)
	require.NotEmpty(t, addrs)

	for i := 1; i < len(addrs); i++ {
		require.Less(t, addrs[i-1], addrs[i], "addresses must be ascending and deduplicated")
	}
}

func TestAddressesInclusiveCoversBlockZeroOnly(t *testing.T) {
	bits, err := hz.ParseBitString("012012V")
	require.NoError(t, err)

	full := hz.Box{From: hz.Vec3{}, To: hz.Vec3{X: 3, Y: 3, Z: 3}}
	addrs, err := AddressesInclusive(bits, 2, 2, full)
	require.NoError(t, err)
	require.Equal(t, []uint64{0}, addrs)
}

func TestAddressesEmptyWhenBoxOutsideLevel(t *testing.T) {
	bits, err := hz.ParseBitString("012012V")
	require.NoError(t, err)

	outside := hz.Box{From: hz.Vec3{X: 100}, To: hz.Vec3{X: 100, Y: 0, Z: 0}}
	addrs, err := Addresses(bits, 2, bits.Len(), outside)
	require.NoError(t, err)
	require.Empty(t, addrs)
}
