// Package gridio copies samples between a block's bounding box and a
// caller's row-major grid buffer, both expressed in the same full-resolution
// coordinate space. It is the single scatter/gather primitive used by the
// engine package for both block reads (block buffer -> caller buffer) and
// block writes (caller buffer -> block buffer), since per-level grids always
// have stride 1 (hz.BitString.LevelGrid/LevelGridInclusive) and box-to-box
// copies are therefore symmetric in both directions.
package gridio

import (
	"github.com/scidx/idx/errs"
	"github.com/scidx/idx/hz"
)

// Copy copies every sample in the overlap of srcBox and dstBox from src into
// dst. src is laid out as a dense, row-major (x fastest, then y, then z)
// buffer of srcBox's dimensions; dst likewise for dstBox. Both buffers must
// be at least Dims().X*Y*Z*sampleWidth bytes. Samples outside the overlap
// are left untouched in dst. sampleWidth must be one of 1, 2, 4, 8, 16.
func Copy(dstBox hz.Box, dst []byte, srcBox hz.Box, src []byte, sampleWidth int) error {
	if _, ok := validWidths[sampleWidth]; !ok {
		return errs.Newf(errs.InvalidVolume, "unsupported sample width %d", sampleWidth)
	}

	overlap, ok := hz.IntersectBox(srcBox, dstBox)
	if !ok {
		return nil
	}

	srcDims := srcBox.Dims()
	dstDims := dstBox.Dims()
	rowSamples := overlap.To.X - overlap.From.X + 1
	rowBytes := rowSamples * int64(sampleWidth)

	for z := overlap.From.Z; z <= overlap.To.Z; z++ {
		for y := overlap.From.Y; y <= overlap.To.Y; y++ {
			srcOff := rowOffset(srcBox, srcDims, overlap.From.X, y, z, sampleWidth)
			dstOff := rowOffset(dstBox, dstDims, overlap.From.X, y, z, sampleWidth)

			copy(dst[dstOff:dstOff+rowBytes], src[srcOff:srcOff+rowBytes])
		}
	}

	return nil
}

var validWidths = map[int]struct{}{1: {}, 2: {}, 4: {}, 8: {}, 16: {}}

// rowOffset returns the byte offset of sample (x,y,z) within a dense
// row-major buffer covering box (with dims precomputed dims).
func rowOffset(box hz.Box, dims hz.Vec3, x, y, z int64, sampleWidth int) int64 {
	lx := x - box.From.X
	ly := y - box.From.Y
	lz := z - box.From.Z

	return (lz*dims.Y*dims.X + ly*dims.X + lx) * int64(sampleWidth)
}
