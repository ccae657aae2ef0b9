package engine

import "github.com/scidx/idx/hz"

// reorderHzToRowMajor reorders a block payload stored in HZ order (sample k
// at HZ address blockGrid's base + k) into the dense row-major order
// gridio.Copy expects (x fastest). This path has no production writer (the
// write engine only ever emits RowMajor) and exists so the read path can
// still serve an Hz-tagged block correctly if one is present on disk.
func reorderHzToRowMajor(bits hz.BitString, blockGrid hz.Grid, payload []byte, sampleWidth int) []byte {
	box := blockGrid.Box()
	dims := box.Dims()
	count := dims.X * dims.Y * dims.Z

	blockAddr := bits.CoordToHZ(box.From)
	out := make([]byte, count*int64(sampleWidth))

	for k := int64(0); k < count; k++ {
		coord := bits.HZToCoord(blockAddr + uint64(k))
		lx := coord.X - box.From.X
		ly := coord.Y - box.From.Y
		lz := coord.Z - box.From.Z
		rowMajorIdx := (lz*dims.Y*dims.X + ly*dims.X + lx) * int64(sampleWidth)

		srcOff := k * int64(sampleWidth)
		copy(out[rowMajorIdx:rowMajorIdx+int64(sampleWidth)], payload[srcOff:srcOff+int64(sampleWidth)])
	}

	return out
}
