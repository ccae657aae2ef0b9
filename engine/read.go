package engine

import (
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/scidx/idx/block"
	"github.com/scidx/idx/codec"
	"github.com/scidx/idx/descriptor"
	"github.com/scidx/idx/endian"
	"github.com/scidx/idx/errs"
	"github.com/scidx/idx/gridio"
	"github.com/scidx/idx/hz"
)

// Read fills dst, a row-major buffer covering box, with the samples of
// field at timeStep held by the blocks that contain level's (non-inclusive)
// samples within box. Each such block is copied whole, clipped to box: for
// level > BitsPerBlock those are exactly the level's samples; for level <=
// BitsPerBlock the block is block 0, so every sample of block 0 inside box
// is written, not only those of level.
func (c *Context) Read(desc *descriptor.IdxFile, fieldIdx, timeStep, level int, box hz.Box, dst []byte) error {
	return c.read(desc, fieldIdx, timeStep, level, box, dst, false)
}

// ReadInclusive fills dst with the union of levels 0..level, implemented by
// invoking the exact path once per level into the same output buffer.
func (c *Context) ReadInclusive(desc *descriptor.IdxFile, fieldIdx, timeStep, level int, box hz.Box, dst []byte) error {
	return c.read(desc, fieldIdx, timeStep, level, box, dst, true)
}

func (c *Context) read(desc *descriptor.IdxFile, fieldIdx, timeStep, level int, box hz.Box, dst []byte, inclusive bool) error {
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
		return errs.Newf(errs.InvalidVolume, "query box %+v is not contained in dataset box %+v", box, desc.Box)
	}

	engine := endian.GetBigEndianEngine()
	files := newFileCache()
	defer files.closeAll() //nolint: errcheck

	if !inclusive {
		return c.readLevel(desc, field, fieldIdx, timeStep, level, box, dst, files, engine)
	}

	for l := 0; l <= level; l++ {
		if err := c.readLevel(desc, field, fieldIdx, timeStep, l, box, dst, files, engine); err != nil {
			return err
		}
	}

	return nil
}

func (c *Context) readLevel(
	desc *descriptor.IdxFile,
	field descriptor.Field,
	fieldIdx, timeStep, level int,
	box hz.Box,
	dst []byte,
	files *fileCache,
	engine endian.EndianEngine,
) error {
	addrs, err := block.Addresses(desc.Bits, desc.BitsPerBlock, level, box)
	if err != nil {
		return err
	}
	if len(addrs) == 0 {
		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(c.workers)

	for _, addr := range addrs {
		addr := addr
		g.Go(func() error {
			return c.readBlock(desc, field, fieldIdx, timeStep, addr, box, dst, files, engine)
		})
	}

	return g.Wait()
}

func (c *Context) readBlock(
	desc *descriptor.IdxFile,
	field descriptor.Field,
	fieldIdx, timeStep int,
	addr uint64,
	box hz.Box,
	dst []byte,
	files *fileCache,
	engine endian.EndianEngine,
) error {
	blockInFile := block.InFile(addr, desc.BitsPerBlock, desc.BlocksPerFile)
	fileIndex := block.FileIndex(addr, desc.BitsPerBlock, desc.BlocksPerFile)

	path, err := filePath(desc, field, timeStep, fileIndex)
	if err != nil {
		return err
	}

	f, err := files.openForRead(path, desc.BlocksPerFile, len(desc.Fields), engine)
	if err != nil {
		if errors.Is(err, errs.ErrFileNotFound) {
			return nil // absent file: logically all-absent blocks
		}

		return err
	}

	hdr, err := f.Headers.Get(fieldIdx, blockInFile)
	if err != nil {
		return err
	}
	if !hdr.Present() {
		return nil
	}

	raw, err := f.ReadBlockPayload(hdr)
	if err != nil {
		return err
	}

	sampleWidth := field.SampleBytes()
	blockGrid, err := desc.Bits.BlockGrid(addr, desc.BitsPerBlock)
	if err != nil {
		return err
	}
	wantBytes := int(blockGrid.SampleCount()) * sampleWidth

	cdc, err := codec.Get(hdr.Compression)
	if err != nil {
		return err
	}

	staging := c.staging.Get()
	defer c.staging.Put(staging)
	staging.MustWrite(raw)

	payload, err := cdc.Decompress(staging.Bytes(), wantBytes)
	if err != nil {
		return errs.Wrap(errs.InvalidCompression, path, err)
	}

	srcBox := blockGrid.Box()
	if hdr.Format == block.Hz {
		payload = reorderHzToRowMajor(desc.Bits, blockGrid, payload, sampleWidth)
	}

	return gridio.Copy(box, dst, srcBox, payload, sampleWidth)
}
