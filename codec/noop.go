package codec

// NoOpCodec passes block payloads through unchanged. It backs
// block.CompressionNone.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCodec) Decompress(data []byte, originalSize int) ([]byte, error) {
	return data, nil
}
