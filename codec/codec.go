// Package codec implements the per-block compression layer: a small
// registry of Codec implementations keyed by block.CompressionTag, built
// as a factory/registry of interchangeable compressors.
package codec

import (
	"github.com/scidx/idx/block"
	"github.com/scidx/idx/errs"
)

// Compressor compresses a block payload.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a block payload. originalSize is the expected
// uncompressed length (sample count * sample width), known from the
// descriptor and grid geometry rather than stored on disk.
type Decompressor interface {
	Decompress(data []byte, originalSize int) ([]byte, error)
}

// Codec combines compression and decompression for one compression tag.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[block.CompressionTag]Codec{
	block.CompressionNone: NoOpCodec{},
	block.CompressionZip:  ZipCodec{},
	block.CompressionLZ4:  LZ4Codec{},
	block.CompressionZstd: ZstdCodec{},
	block.CompressionJpg:  unsupportedCodec{tag: block.CompressionJpg},
	block.CompressionPng:  unsupportedCodec{tag: block.CompressionPng},
	block.CompressionExr:  unsupportedCodec{tag: block.CompressionExr},
	block.CompressionZfp:  unsupportedCodec{tag: block.CompressionZfp},
}

// Get retrieves the Codec registered for tag.
func Get(tag block.CompressionTag) (Codec, error) {
	c, ok := builtinCodecs[tag]
	if !ok {
		return nil, errs.Newf(errs.InvalidCompression, "unknown compression tag %s", tag)
	}

	return c, nil
}

// unsupportedCodec backs compression tags the reference format declares but
// this module does not implement a real encoder/decoder for, registering
// the tag with a clear error rather than omitting it entirely.
type unsupportedCodec struct {
	tag block.CompressionTag
}

func (c unsupportedCodec) Compress(data []byte) ([]byte, error) {
	return nil, errs.Newf(errs.CompressionUnsupported, "%s compression is declared but not implemented", c.tag)
}

func (c unsupportedCodec) Decompress(data []byte, originalSize int) ([]byte, error) {
	return nil, errs.Newf(errs.CompressionUnsupported, "%s compression is declared but not implemented", c.tag)
}
