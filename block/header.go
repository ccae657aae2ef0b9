// Package block computes which blocks a query touches and defines the
// on-disk block header record, following the fixed-size binary record
// pattern used throughout this module's section layer (Parse/Bytes/
// WriteToSlice) but big-endian, as block headers must be regardless of host
// byte order.
package block

import (
	"fmt"

	"github.com/scidx/idx/endian"
	"github.com/scidx/idx/errs"
)

// HeaderSize is the on-disk size, in bytes, of a single block header record.
const HeaderSize = 28

// Format identifies how a block's samples are ordered on disk.
type Format int32

const (
	RowMajor Format = iota
	Hz
)

func (f Format) String() string {
	switch f {
	case RowMajor:
		return "RowMajor"
	case Hz:
		return "Hz"
	default:
		return fmt.Sprintf("Format(%d)", int32(f))
	}
}

// CompressionTag identifies the codec a block's payload was compressed with.
type CompressionTag int32

const (
	CompressionNone CompressionTag = iota
	CompressionZip
	CompressionJpg
	CompressionExr
	CompressionPng
	CompressionZfp
	CompressionLZ4
	CompressionZstd
)

var compressionNames = map[CompressionTag]string{
	CompressionNone: "None",
	CompressionZip:  "Zip",
	CompressionJpg:  "Jpg",
	CompressionExr:  "Exr",
	CompressionPng:  "Png",
	CompressionZfp:  "Zfp",
	CompressionLZ4:  "LZ4",
	CompressionZstd: "Zstd",
}

func (c CompressionTag) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}

	return fmt.Sprintf("CompressionTag(%d)", int32(c))
}

// Header is a single block's entry in its file's header table. Offset==0
// means the block is absent; everything else is undefined in that case.
type Header struct {
	Offset      int64
	Bytes       int32
	Compression CompressionTag
	Format      Format
}

// Present reports whether the header refers to a written block.
func (h Header) Present() bool { return h.Offset != 0 }

// Bytes28 serializes the header into a new HeaderSize-byte big-endian record.
// The last 8 bytes of the record are reserved and always written as zero.
func (h Header) Bytes28(engine endian.EndianEngine) []byte {
	b := make([]byte, HeaderSize)
	h.WriteToSlice(b, 0, engine)

	return b
}

// WriteToSlice writes the header record into data at offset and returns the
// next free offset (offset + HeaderSize). data must have at least
// offset+HeaderSize bytes.
func (h Header) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], uint64(h.Offset))
	engine.PutUint32(data[offset+8:offset+12], uint32(h.Bytes))
	engine.PutUint32(data[offset+12:offset+16], uint32(h.Compression))
	engine.PutUint32(data[offset+16:offset+20], uint32(h.Format))
	for i := offset + 20; i < offset+HeaderSize; i++ {
		data[i] = 0
	}

	return offset + HeaderSize
}

// ParseHeader parses a HeaderSize-byte big-endian record.
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.Newf(errs.InvalidFormat, "block header record too short: %d bytes", len(data))
	}

	return Header{
		Offset:      int64(engine.Uint64(data[0:8])),
		Bytes:       int32(engine.Uint32(data[8:12])), //nolint: gosec
		Compression: CompressionTag(engine.Uint32(data[12:16])),
		Format:      Format(engine.Uint32(data[16:20])),
	}, nil
}

// InFile returns the position of blockAddr's block within its file
// (block_in_file = (block_address >> bitsPerBlock) mod blocksPerFile).
func InFile(blockAddr uint64, bitsPerBlock, blocksPerFile int) int {
	return int((blockAddr >> uint(bitsPerBlock)) % uint64(blocksPerFile)) //nolint: gosec
}

// FileIndex returns the index of the physical file containing blockAddr's
// block (file_index = (block_address >> bitsPerBlock) / blocksPerFile).
func FileIndex(blockAddr uint64, bitsPerBlock, blocksPerFile int) int64 {
	return int64((blockAddr >> uint(bitsPerBlock)) / uint64(blocksPerFile)) //nolint: gosec
}
