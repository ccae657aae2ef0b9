package engine

import (
	"golang.org/x/sync/errgroup"

	"github.com/scidx/idx/block"
	"github.com/scidx/idx/codec"
	"github.com/scidx/idx/descriptor"
	"github.com/scidx/idx/endian"
	"github.com/scidx/idx/errs"
	"github.com/scidx/idx/gridio"
	"github.com/scidx/idx/hz"
	"github.com/scidx/idx/layout"
)

// Write persists src, a row-major buffer covering box at full resolution,
// into field's blocks at the given HZ level, creating files as needed and
// updating (and, at the end of the call, unconditionally flushing) every
// touched file's header table.
func (c *Context) Write(desc *descriptor.IdxFile, fieldIdx, timeStep, level int, box hz.Box, src []byte) error {
	return c.writeLevel(desc, fieldIdx, timeStep, level, box, src)
}

// WriteAll persists src at every HZ level from GetMinHZLevel()-1 (the
// coarsest, block-0 level) through GetMaxHZLevel(), so the dataset becomes
// queryable at any resolution from one call. The coarsest level is written
// as a single call covering the whole of block 0, matching the read
// engine's inclusive handling of level 0; every level above it is written
// non-inclusively, since each only contributes the samples newly introduced
// at that level.
func (c *Context) WriteAll(desc *descriptor.IdxFile, fieldIdx, timeStep int, box hz.Box, src []byte) error {
	start := desc.GetMinHZLevel() - 1
	if start < 0 {
		start = 0
	}

	if err := c.writeLevelImpl(desc, fieldIdx, timeStep, start, box, src, true); err != nil {
		return err
	}

	for level := start + 1; level <= desc.GetMaxHZLevel(); level++ {
		if err := c.writeLevelImpl(desc, fieldIdx, timeStep, level, box, src, false); err != nil {
			return err
		}
	}

	return nil
}

func (c *Context) writeLevel(desc *descriptor.IdxFile, fieldIdx, timeStep, level int, box hz.Box, src []byte) error {
	return c.writeLevelImpl(desc, fieldIdx, timeStep, level, box, src, false)
}

func (c *Context) writeLevelImpl(desc *descriptor.IdxFile, fieldIdx, timeStep, level int, box hz.Box, src []byte, inclusive bool) error {
	field, err := desc.GetField(fieldIdx)
	if err != nil {
		return err
	}
	if err := desc.ValidateTimeStep(timeStep); err != nil {
		return err
	}
	if level < 0 || level > desc.GetMaxHZLevel() {
		return errs.Newf(errs.InvalidHzLevel, "level %d out of range [0,%d]", level, desc.GetMaxHZLevel())
	}
	if !desc.Box.Contains(box) {
		return errs.Newf(errs.InvalidVolume, "write box %+v is not contained in dataset box %+v", box, desc.Box)
	}

	var addrs []uint64
	if inclusive {
		addrs, err = block.AddressesInclusive(desc.Bits, desc.BitsPerBlock, level, box)
	} else {
		addrs, err = block.Addresses(desc.Bits, desc.BitsPerBlock, level, box)
	}
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		return nil
	}

	byFile := partitionByFile(addrs, desc.BitsPerBlock, desc.BlocksPerFile)

	engine := endian.GetBigEndianEngine()
	files := newFileCache()
	defer files.closeAll() //nolint: errcheck

	limit := c.workers
	if limit > len(byFile) {
		limit = len(byFile)
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)

	for fileIndex, fileAddrs := range byFile {
		fileIndex, fileAddrs := fileIndex, fileAddrs
		g.Go(func() error {
			err := c.writeFile(desc, field, fieldIdx, timeStep, fileIndex, fileAddrs, box, src, files, engine)
			if err != nil {
				c.logf("engine: write file %d of field %q: %v", fileIndex, field.Name, err)
			}

			return err
		})
	}

	return g.Wait()
}

// partitionByFile groups block addresses by destination file index, so
// each file can be owned by exactly one worker goroutine from open to
// header-flush.
func partitionByFile(addrs []uint64, bitsPerBlock, blocksPerFile int) map[int64][]uint64 {
	byFile := make(map[int64][]uint64)
	for _, addr := range addrs {
		fi := block.FileIndex(addr, bitsPerBlock, blocksPerFile)
		byFile[fi] = append(byFile[fi], addr)
	}

	return byFile
}

func (c *Context) writeFile(
	desc *descriptor.IdxFile,
	field descriptor.Field,
	fieldIdx, timeStep int,
	fileIndex int64,
	addrs []uint64,
	box hz.Box,
	src []byte,
	files *fileCache,
	engine endian.EndianEngine,
) error {
	path, err := filePath(desc, field, timeStep, fileIndex)
	if err != nil {
		return err
	}

	f, err := files.openForWrite(path, desc.BlocksPerFile, len(desc.Fields), engine)
	if err != nil {
		return err
	}

	sampleWidth := field.SampleBytes()

	for _, addr := range addrs {
		if err := c.writeBlock(desc, f, fieldIdx, addr, sampleWidth, box, src, path); err != nil {
			return err
		}
	}

	return f.FlushHeaders(engine)
}

func (c *Context) writeBlock(
	desc *descriptor.IdxFile,
	f *layout.File,
	fieldIdx int,
	addr uint64,
	sampleWidth int,
	box hz.Box,
	src []byte,
	path string,
) error {
	blockInFile := block.InFile(addr, desc.BitsPerBlock, desc.BlocksPerFile)

	blockGrid, err := desc.Bits.BlockGrid(addr, desc.BitsPerBlock)
	if err != nil {
		return err
	}
	blockBox := blockGrid.Box()
	blockBytes := int(blockGrid.SampleCount()) * sampleWidth

	hdr, err := f.Headers.Get(fieldIdx, blockInFile)
	if err != nil {
		return err
	}

	payload := c.blocks.Get(blockBytes)
	defer c.blocks.Put(payload)

	if hdr.Present() {
		raw, err := f.ReadBlockPayload(hdr)
		if err != nil {
			return errs.Wrap(errs.BlockReadFailed, path, err)
		}
		cdc, err := codec.Get(hdr.Compression)
		if err != nil {
			return err
		}
		existing, err := cdc.Decompress(raw, blockBytes)
		if err != nil {
			return errs.Wrap(errs.InvalidCompression, path, err)
		}
		copy(payload, existing)
	}

	if err := gridio.Copy(blockBox, payload, box, src, sampleWidth); err != nil {
		return err
	}

	offset := hdr.Offset
	if !hdr.Present() || int(hdr.Bytes) != blockBytes {
		offset, err = f.AppendOffset()
		if err != nil {
			return err
		}
	}

	if err := f.WriteBlockPayload(offset, payload); err != nil {
		return errs.Wrap(errs.BlockWriteFailed, path, err)
	}

	return f.Headers.Set(fieldIdx, blockInFile, blockHeader(offset, blockBytes))
}

func blockHeader(offset int64, size int) block.Header {
	return block.Header{Offset: offset, Bytes: int32(size), Compression: block.CompressionNone, Format: block.RowMajor}
}
