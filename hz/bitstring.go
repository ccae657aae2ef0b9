// Package hz implements the bit-string-derived HZ curve: the bijection
// between logical 3D coordinates and positions along IDX's hierarchical,
// progressively-refinable sample ordering, plus the per-level and per-block
// grid geometry derived from it.
package hz

import (
	"strings"

	"github.com/scidx/idx/errs"
)

// Axis identifies one of the (up to) three spatial axes a bit-string
// character can address.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	numAxes = 3
)

// axes is the fixed iteration order used throughout this package.
var axes = [numAxes]Axis{AxisX, AxisY, AxisZ}

func charToAxis(c byte) (Axis, bool) {
	switch c {
	case '0':
		return AxisX, true
	case '1':
		return AxisY, true
	case '2':
		return AxisZ, true
	default:
		return 0, false
	}
}

// BitString is the parsed, stripped form of an IDX descriptor's bit string:
// a non-empty sequence over {'0','1','2'} (the raw form's trailing 'V'
// terminator removed), read right-to-left to derive the HZ ordering.
type BitString struct {
	raw       string
	bitAxis   []Axis // bitAxis[p] is the axis owning HZ bit position p (0 = LSB)
	axisCount [numAxes]int
}

// ParseBitString strips a trailing 'V' terminator (if present) and validates
// the remaining characters are all in {'0','1','2'}, then builds the
// per-bit-position axis table used by HZToCoord/CoordToHZ.
func ParseBitString(s string) (BitString, error) {
	stripped := strings.TrimSuffix(s, "V")
	if stripped == "" {
		return BitString{}, errs.New(errs.ParseError, "bit string must not be empty")
	}
	if len(stripped) > 64 {
		return BitString{}, errs.Newf(errs.ParseError, "bit string length %d exceeds 64", len(stripped))
	}

	L := len(stripped)
	bitAxis := make([]Axis, L)
	var axisCount [numAxes]int
	for p := 0; p < L; p++ {
		c := stripped[L-1-p]
		a, ok := charToAxis(c)
		if !ok {
			return BitString{}, errs.Newf(errs.ParseError, "invalid bit string character %q", c)
		}
		bitAxis[p] = a
		axisCount[a]++
	}

	return BitString{raw: stripped, bitAxis: bitAxis, axisCount: axisCount}, nil
}

// String returns the stripped bit string, e.g. "012012012".
func (b BitString) String() string { return b.raw }

// Len returns L, the bit string length (and the maximum HZ level).
func (b BitString) Len() int { return len(b.bitAxis) }

// AxisCount returns the number of characters identifying axis a.
func (b BitString) AxisCount(a Axis) int { return b.axisCount[a] }

// AxisExtent returns the full-resolution sample count along axis a, i.e.
// 2^AxisCount(a).
func (b BitString) AxisExtent(a Axis) int64 {
	return int64(1) << uint(b.axisCount[a])
}

// MaxHZLevel returns L, the length of the stripped bit string.
func (b BitString) MaxHZLevel() int { return b.Len() }

// MinHZLevel returns the lowest HZ level not wholly contained in block 0,
// given the descriptor's bits_per_block.
func (b BitString) MinHZLevel(bitsPerBlock int) int { return bitsPerBlock + 1 }

// HZToCoord maps an HZ address to its 3D coordinate. For HZ bit position p
// (0 = LSB), the character at S[L-1-p] identifies the axis; that axis's next
// (least significant unfilled) coordinate bit takes the HZ bit's value.
func (b BitString) HZToCoord(hzAddr uint64) Vec3 {
	var coord Vec3
	var consumed [numAxes]int
	for p := 0; p < len(b.bitAxis); p++ {
		a := b.bitAxis[p]
		bit := (hzAddr >> uint(p)) & 1
		k := consumed[a]
		coord.Set(a, coord.Get(a)|(int64(bit)<<uint(k)))
		consumed[a]++
	}

	return coord
}

// CoordToHZ is the inverse of HZToCoord: it interleaves each axis's
// coordinate bits back into an HZ address following the same per-position
// axis assignment.
func (b BitString) CoordToHZ(coord Vec3) uint64 {
	var hzAddr uint64
	var consumed [numAxes]int
	for p := 0; p < len(b.bitAxis); p++ {
		a := b.bitAxis[p]
		k := consumed[a]
		bit := (coord.Get(a) >> uint(k)) & 1
		hzAddr |= uint64(bit) << uint(p)
		consumed[a]++
	}

	return hzAddr
}

// BlockAddress returns the HZ address of the first sample of the block
// containing hzAddr, given bits_per_block.
func BlockAddress(hzAddr uint64, bitsPerBlock int) uint64 {
	mask := (uint64(1) << uint(bitsPerBlock)) - 1
	return hzAddr &^ mask
}

// axisCountsForPrefix returns, for each axis, the number of bit-string
// characters among HZ bit positions [0, n), i.e. how many coordinate bits
// that axis has filled by the time n HZ bits have been consumed.
func (b BitString) axisCountsForPrefix(n int) [numAxes]int {
	var m [numAxes]int
	for p := 0; p < n; p++ {
		m[b.bitAxis[p]]++
	}

	return m
}

// LevelGrid computes the non-inclusive per-level grid: the exact set of
// full-resolution sample coordinates whose HZ address lies in level l
// ([2^(l-1), 2^l) for l>=1, the single point {0} for l=0).
//
// For l>=1, bit position p=l-1 is fixed to 1 (it is the level's defining
// bit) and all lower bit positions are free; bit positions >= l are fixed to
// 0. Projected onto axes, this means: the axis owning bit position l-1 (the
// "fixed axis") ranges over the upper half of its bit range, every other
// touched axis ranges over its whole bit range, and untouched axes are
// pinned to 0 — all with a stride of 1.
func (b BitString) LevelGrid(level int) (Grid, error) {
	if level < 0 || level > b.Len() {
		return Grid{}, errs.Newf(errs.InvalidHzLevel, "level %d out of range [0,%d]", level, b.Len())
	}
	if level == 0 {
		return Grid{Stride: Vec3{X: 1, Y: 1, Z: 1}}, nil
	}

	m := b.axisCountsForPrefix(level)
	fixedAxis := b.bitAxis[level-1]

	var g Grid
	for _, a := range axes {
		ma := m[a]
		g.Stride.Set(a, 1)
		switch {
		case ma == 0:
			g.From.Set(a, 0)
			g.To.Set(a, 0)
		case a == fixedAxis:
			g.From.Set(a, int64(1)<<uint(ma-1))
			g.To.Set(a, (int64(1)<<uint(ma))-1)
		default:
			g.From.Set(a, 0)
			g.To.Set(a, (int64(1)<<uint(ma))-1)
		}
	}

	return g, nil
}

// LevelGridInclusive computes the union of LevelGrid(0..level): the dense
// box using every coordinate bit any axis has filled within the first level
// HZ bit positions, which is exactly the sample set of HZ addresses
// [0, 2^level).
func (b BitString) LevelGridInclusive(level int) (Grid, error) {
	if level < 0 || level > b.Len() {
		return Grid{}, errs.Newf(errs.InvalidHzLevel, "level %d out of range [0,%d]", level, b.Len())
	}

	m := b.axisCountsForPrefix(level)

	var g Grid
	for _, a := range axes {
		ma := m[a]
		g.Stride.Set(a, 1)
		g.From.Set(a, 0)
		if ma == 0 {
			g.To.Set(a, 0)
		} else {
			g.To.Set(a, (int64(1)<<uint(ma))-1)
		}
	}

	return g, nil
}

// BlockGrid computes the bounding grid of the block starting at blockAddr:
// a dense, stride-1 box of 2^bitsPerBlock samples translated to the block's
// position in the full-resolution coordinate space.
func (b BitString) BlockGrid(blockAddr uint64, bitsPerBlock int) (Grid, error) {
	if bitsPerBlock < 0 || bitsPerBlock > b.Len() {
		return Grid{}, errs.Newf(errs.InvalidIdxFile, "bits_per_block %d out of range [0,%d]", bitsPerBlock, b.Len())
	}

	base := b.HZToCoord(blockAddr)
	m := b.axisCountsForPrefix(bitsPerBlock)

	var g Grid
	for _, a := range axes {
		extent := int64(1) << uint(m[a])
		from := base.Get(a)
		g.From.Set(a, from)
		g.To.Set(a, from+extent-1)
		g.Stride.Set(a, 1)
	}

	return g, nil
}
