package layout

import (
	"sync"

	"github.com/scidx/idx/block"
	"github.com/scidx/idx/endian"
	"github.com/scidx/idx/errs"
)

// HeaderTable is the in-memory, byte-order-normalized form of one physical
// file's block header table: blocksPerFile * numFields fixed-size records,
// field f's records occupying the contiguous run [blocksPerFile*f,
// blocksPerFile*(f+1)).
//
// The table is shared read-only across concurrent readers of a file; the
// write engine restricts each file to a single worker, so the mutex here
// only protects against the rare case of a caller sharing a *HeaderTable
// across goroutines against that recommendation.
type HeaderTable struct {
	mu            sync.RWMutex
	entries       []block.Header
	blocksPerFile int
	numFields     int
}

// NewHeaderTable creates an all-absent header table sized for blocksPerFile
// blocks across numFields fields, as used for a newly created file.
func NewHeaderTable(blocksPerFile, numFields int) *HeaderTable {
	return &HeaderTable{
		entries:       make([]block.Header, blocksPerFile*numFields),
		blocksPerFile: blocksPerFile,
		numFields:     numFields,
	}
}

// ByteSize returns the on-disk size of the header table region.
func (t *HeaderTable) ByteSize() int {
	return t.blocksPerFile * t.numFields * block.HeaderSize
}

func (t *HeaderTable) index(field, blockInFile int) (int, error) {
	if field < 0 || field >= t.numFields {
		return 0, errs.Newf(errs.FieldNotFound, "field index %d out of range [0,%d)", field, t.numFields)
	}
	if blockInFile < 0 || blockInFile >= t.blocksPerFile {
		return 0, errs.Newf(errs.BlockNotFound, "block-in-file %d out of range [0,%d)", blockInFile, t.blocksPerFile)
	}

	return field*t.blocksPerFile + blockInFile, nil
}

// Get returns the header for (field, blockInFile).
func (t *HeaderTable) Get(field, blockInFile int) (block.Header, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	idx, err := t.index(field, blockInFile)
	if err != nil {
		return block.Header{}, err
	}

	return t.entries[idx], nil
}

// Set updates the header for (field, blockInFile).
func (t *HeaderTable) Set(field, blockInFile int, h block.Header) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx, err := t.index(field, blockInFile)
	if err != nil {
		return err
	}
	t.entries[idx] = h

	return nil
}

// ParseHeaderTable parses a raw, big-endian header table region read from
// disk.
func ParseHeaderTable(data []byte, blocksPerFile, numFields int, engine endian.EndianEngine) (*HeaderTable, error) {
	t := NewHeaderTable(blocksPerFile, numFields)
	want := t.ByteSize()
	if len(data) < want {
		return nil, errs.Newf(errs.HeaderNotFound, "header table region too short: got %d want %d", len(data), want)
	}

	for i := range t.entries {
		h, err := block.ParseHeader(data[i*block.HeaderSize:], engine)
		if err != nil {
			return nil, err
		}
		t.entries[i] = h
	}

	return t, nil
}

// Bytes serializes the whole table back into its on-disk big-endian form.
func (t *HeaderTable) Bytes(engine endian.EndianEngine) []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]byte, t.ByteSize())
	offset := 0
	for _, h := range t.entries {
		offset = h.WriteToSlice(out, offset, engine)
	}

	return out
}
