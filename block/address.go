package block

import (
	"sort"

	"github.com/scidx/idx/hz"
)

// Addresses enumerates the ordered, deduplicated list of block addresses
// whose per-level sample grid intersects box: computes the level's
// dataset-wide grid, intersects it with the query box, and converts every
// remaining sample coordinate to its block address. The level grid's
// stride is always 1 (see hz.BitString.LevelGrid), so every integer point of
// the intersection is a genuine sample of the level — no further filtering
// is required.
func Addresses(bits hz.BitString, bitsPerBlock, level int, box hz.Box) ([]uint64, error) {
	levelGrid, err := bits.LevelGrid(level)
	if err != nil {
		return nil, err
	}

	return addressesInGrid(bits, bitsPerBlock, levelGrid, box)
}

// AddressesInclusive is Addresses' counterpart using the inclusive grid
// (union of levels 0..level): used for the write engine's first "all"
// iteration, which covers the whole of block 0 in a single pass rather than
// only the non-inclusive sliver of the coarsest level.
func AddressesInclusive(bits hz.BitString, bitsPerBlock, level int, box hz.Box) ([]uint64, error) {
	levelGrid, err := bits.LevelGridInclusive(level)
	if err != nil {
		return nil, err
	}

	return addressesInGrid(bits, bitsPerBlock, levelGrid, box)
}

func addressesInGrid(bits hz.BitString, bitsPerBlock int, levelGrid hz.Grid, box hz.Box) ([]uint64, error) {
	sub, ok := hz.IntersectBox(levelGrid.Box(), box)
	if !ok {
		return nil, nil
	}

	seen := make(map[uint64]struct{})
	for z := sub.From.Z; z <= sub.To.Z; z++ {
		for y := sub.From.Y; y <= sub.To.Y; y++ {
			for x := sub.From.X; x <= sub.To.X; x++ {
				hzAddr := bits.CoordToHZ(hz.Vec3{X: x, Y: y, Z: z})
				seen[hz.BlockAddress(hzAddr, bitsPerBlock)] = struct{}{}
			}
		}
	}

	addrs := make([]uint64, 0, len(seen))
	for a := range seen {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	return addrs, nil
}
