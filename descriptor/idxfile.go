package descriptor

import (
	"github.com/scidx/idx/errs"
	"github.com/scidx/idx/hz"
	"github.com/scidx/idx/internal/xhash"
	"github.com/scidx/idx/layout"
)

// IdxFile is the in-memory form of a v6 IDX descriptor.
type IdxFile struct {
	Path           string
	Version        int
	LogicToPhysic  [16]float32
	Box            hz.Box
	Fields         []Field
	Bits           hz.BitString
	BitsPerBlock   int
	BlocksPerFile  int
	InterleaveBlock int // preserved through round-trip; no component consumes it yet
	TimeBegin      int
	TimeEnd        int
	TimeTemplate   layout.TimeTemplate
	FilenameTemplate layout.NameTemplate

	fieldIndex map[uint64]int
}

// New builds an IdxFile and its field-index accelerator. Callers normally
// obtain an IdxFile via Parse or Create rather than constructing one
// directly.
func New(f IdxFile) *IdxFile {
	f.buildFieldIndex()
	return &f
}

func (f *IdxFile) buildFieldIndex() {
	f.fieldIndex = make(map[uint64]int, len(f.Fields))
	for i, field := range f.Fields {
		f.fieldIndex[xhash.ID(field.Name)] = i
	}
}

// GetMaxHZLevel returns L, the stripped bit string's length.
func (f *IdxFile) GetMaxHZLevel() int { return f.Bits.MaxHZLevel() }

// GetMinHZLevel returns the lowest HZ level not wholly contained in block 0.
func (f *IdxFile) GetMinHZLevel() int { return f.Bits.MinHZLevel(f.BitsPerBlock) }

// GetFieldIndex returns the index of the named field, or an error if absent.
func (f *IdxFile) GetFieldIndex(name string) (int, error) {
	if idx, ok := f.fieldIndex[xhash.ID(name)]; ok {
		return idx, nil
	}

	return 0, errs.Newf(errs.FieldNotFound, "field %q not found", name)
}

// GetField returns the field at the given index.
func (f *IdxFile) GetField(index int) (Field, error) {
	if index < 0 || index >= len(f.Fields) {
		return Field{}, errs.Newf(errs.FieldNotFound, "field index %d out of range [0,%d)", index, len(f.Fields))
	}

	return f.Fields[index], nil
}

// GetLogicalExtent returns the dataset's per-axis sample counts.
func (f *IdxFile) GetLogicalExtent() hz.Vec3 {
	return f.Box.Dims()
}

// GetGrid returns the dataset-wide grid at the given HZ level (non-inclusive).
func (f *IdxFile) GetGrid(level int) (hz.Grid, error) {
	return f.Bits.LevelGrid(level)
}

// GetGridInBox returns the grid at the given HZ level intersected with box;
// ok is false if the intersection is empty.
func (f *IdxFile) GetGridInBox(box hz.Box, level int) (hz.Grid, bool, error) {
	g, err := f.Bits.LevelGrid(level)
	if err != nil {
		return hz.Grid{}, false, err
	}

	overlap, ok := hz.IntersectBox(g.Box(), box)
	if !ok {
		return hz.Grid{}, false, nil
	}

	return hz.Grid{From: overlap.From, To: overlap.To, Stride: g.Stride}, true, nil
}

// GetGridInclusive returns the dataset-wide inclusive grid through the given
// HZ level (union of levels 0..level).
func (f *IdxFile) GetGridInclusive(level int) (hz.Grid, error) {
	return f.Bits.LevelGridInclusive(level)
}

// GetGridInclusiveInBox returns the inclusive grid through the given HZ
// level intersected with box.
func (f *IdxFile) GetGridInclusiveInBox(box hz.Box, level int) (hz.Grid, bool, error) {
	g, err := f.Bits.LevelGridInclusive(level)
	if err != nil {
		return hz.Grid{}, false, err
	}

	overlap, ok := hz.IntersectBox(g.Box(), box)
	if !ok {
		return hz.Grid{}, false, nil
	}

	return hz.Grid{From: overlap.From, To: overlap.To, Stride: g.Stride}, true, nil
}

// GetSize returns the uncompressed byte size of field's samples at the given
// HZ level (non-inclusive).
func (f *IdxFile) GetSize(field int, level int) (int64, error) {
	ff, err := f.GetField(field)
	if err != nil {
		return 0, err
	}

	g, err := f.GetGrid(level)
	if err != nil {
		return 0, err
	}

	return g.SampleCount() * int64(ff.SampleBytes()), nil
}

// GetSizeInclusive returns the uncompressed byte size of field's samples
// through the given HZ level (inclusive).
func (f *IdxFile) GetSizeInclusive(field int, level int) (int64, error) {
	ff, err := f.GetField(field)
	if err != nil {
		return 0, err
	}

	g, err := f.GetGridInclusive(level)
	if err != nil {
		return 0, err
	}

	return g.SampleCount() * int64(ff.SampleBytes()), nil
}

// GetNumTimeSteps returns the number of time steps in [TimeBegin, TimeEnd].
func (f *IdxFile) GetNumTimeSteps() int { return f.TimeEnd - f.TimeBegin + 1 }

// ValidateTimeStep reports whether t falls within [TimeBegin, TimeEnd].
func (f *IdxFile) ValidateTimeStep(t int) error {
	if t < f.TimeBegin || t > f.TimeEnd {
		return errs.Newf(errs.TimeStepNotFound, "time step %d out of range [%d,%d]", t, f.TimeBegin, f.TimeEnd)
	}

	return nil
}
