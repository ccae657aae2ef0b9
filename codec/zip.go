package codec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// ZipCodec implements block.CompressionZip: a raw DEFLATE stream. Uses
// klauspost/compress's flate, the same module ZstdCodec is built on, rather
// than the stdlib compress/flate, to keep the whole codec layer on one
// vetted, actively maintained compression module.
type ZipCodec struct{}

var _ Codec = ZipCodec{}

func (c ZipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (c ZipCodec) Decompress(data []byte, originalSize int) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()

	out := make([]byte, originalSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}

	return out, nil
}
