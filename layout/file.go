package layout

import (
	"fmt"
	"io"
	"os"

	"github.com/scidx/idx/block"
	"github.com/scidx/idx/endian"
	"github.com/scidx/idx/errs"
)

// File wraps one physical IDX binary file: its OS handle and its parsed
// header table, positioned after the FileHeaderSize-byte file header.
type File struct {
	f             *os.File
	Headers       *HeaderTable
	blocksPerFile int
	numFields     int
}

// headerTableOffset is where the header table begins on disk, following the
// fixed file header.
const headerTableOffset = int64(FileHeaderSize)

// Open opens an existing IDX binary file and parses its header table.
func Open(path string, blocksPerFile, numFields int, engine endian.EndianEngine) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, errs.Wrap(errs.FileNotFound, fmt.Sprintf("open %s", path), err)
	}

	size := NewHeaderTable(blocksPerFile, numFields).ByteSize()
	buf := make([]byte, size)
	if _, err := f.ReadAt(buf, headerTableOffset); err != nil && err != io.EOF {
		f.Close()
		return nil, errs.Wrap(errs.HeaderNotFound, fmt.Sprintf("read header table of %s", path), err)
	}

	table, err := ParseHeaderTable(buf, blocksPerFile, numFields, engine)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &File{f: f, Headers: table, blocksPerFile: blocksPerFile, numFields: numFields}, nil
}

// Create creates a new IDX binary file with a zeroed file header and an
// all-absent header table, and flushes both immediately.
func Create(path string, blocksPerFile, numFields int, engine endian.EndianEngine) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidIdxFile, fmt.Sprintf("create %s", path), err)
	}

	file := &File{f: f, Headers: NewHeaderTable(blocksPerFile, numFields), blocksPerFile: blocksPerFile, numFields: numFields}

	if _, err := f.WriteAt(NewFileHeader(), 0); err != nil {
		f.Close()
		return nil, errs.Wrap(errs.HeaderWriteFailed, fmt.Sprintf("write file header of %s", path), err)
	}
	if err := file.FlushHeaders(engine); err != nil {
		f.Close()
		return nil, err
	}

	return file, nil
}

// FlushHeaders writes the current in-memory header table back to its fixed
// on-disk region.
func (file *File) FlushHeaders(engine endian.EndianEngine) error {
	if _, err := file.f.WriteAt(file.Headers.Bytes(engine), headerTableOffset); err != nil {
		return errs.Wrap(errs.HeaderWriteFailed, "flush header table", err)
	}

	return nil
}

// Close closes the underlying file handle. It does not flush the header
// table; callers must call FlushHeaders first.
func (file *File) Close() error {
	return file.f.Close()
}

// ReadBlockPayload reads a block's raw (possibly compressed) payload bytes
// using its header's offset and length.
func (file *File) ReadBlockPayload(h block.Header) ([]byte, error) {
	if !h.Present() {
		return nil, errs.New(errs.BlockNotFound, "block is absent")
	}

	buf := make([]byte, h.Bytes)
	if _, err := file.f.ReadAt(buf, h.Offset); err != nil {
		return nil, errs.Wrap(errs.BlockReadFailed, fmt.Sprintf("read block payload at offset %d", h.Offset), err)
	}

	return buf, nil
}

// WriteBlockPayload writes a block's payload at the given offset.
func (file *File) WriteBlockPayload(offset int64, data []byte) error {
	if _, err := file.f.WriteAt(data, offset); err != nil {
		return errs.Wrap(errs.BlockWriteFailed, fmt.Sprintf("write block payload at offset %d", offset), err)
	}

	return nil
}

// AppendOffset returns the offset at which a new block payload should be
// written: the larger of the end of the header table region
// and the current end of the file, so that payloads never overlap the
// header table or each other.
func (file *File) AppendOffset() (int64, error) {
	headerEnd := headerTableOffset + int64(file.Headers.ByteSize())

	info, err := file.f.Stat()
	if err != nil {
		return 0, errs.Wrap(errs.InvalidIdxFile, "stat file", err)
	}

	if info.Size() > headerEnd {
		return info.Size(), nil
	}

	return headerEnd, nil
}
