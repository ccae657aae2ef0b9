package descriptor

import (
	"fmt"
	"math/bits"

	"github.com/scidx/idx/block"
	"github.com/scidx/idx/errs"
	"github.com/scidx/idx/hz"
	"github.com/scidx/idx/layout"
)

// CreateOptions configures Create.
type CreateOptions struct {
	BitsPerBlock  int
	BlocksPerFile int
}

// DefaultCreateOptions mirrors the reference implementation's defaults for a
// freshly created descriptor.
func DefaultCreateOptions() CreateOptions {
	return CreateOptions{BitsPerBlock: 16, BlocksPerFile: 256}
}

// Create builds a descriptor for a dataset of the given dims, with
// numFields identically-typed scalar fields and numTimeSteps time steps,
// targeting path for its eventual binary files.
func Create(dims hz.Vec3, numFields int, scalarType ScalarType, numTimeSteps int, path string, opts CreateOptions) (*IdxFile, error) {
	if dims.X < 1 || dims.Y < 1 || dims.Z < 1 {
		return nil, errs.Newf(errs.InvalidVolume, "dims must be positive, got %+v", dims)
	}
	if numFields < 1 {
		return nil, errs.Newf(errs.InvalidIdxFile, "numFields must be positive, got %d", numFields)
	}
	if numTimeSteps < 1 {
		return nil, errs.Newf(errs.InvalidIdxFile, "numTimeSteps must be positive, got %d", numTimeSteps)
	}

	bitString, err := BuildBitString(dims)
	if err != nil {
		return nil, err
	}
	bs, err := hz.ParseBitString(bitString)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, numFields)
	for i := range fields {
		fields[i] = Field{Name: fieldName(i), Type: scalarType, Components: 1, Format: block.RowMajor, Compression: block.CompressionNone}
	}

	f := New(IdxFile{
		Path:    path,
		Version: 6,
		LogicToPhysic: [16]float32{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		},
		Box:              hz.Box{From: hz.Vec3{}, To: hz.Vec3{X: dims.X - 1, Y: dims.Y - 1, Z: dims.Z - 1}},
		Fields:           fields,
		Bits:             bs,
		BitsPerBlock:     opts.BitsPerBlock,
		BlocksPerFile:    opts.BlocksPerFile,
		TimeBegin:        0,
		TimeEnd:          numTimeSteps - 1,
		TimeTemplate:     layout.TimeTemplate{Pattern: "time%06d"},
		FilenameTemplate: layout.NameTemplate{Head: ".", HexGroups: []int{2, 2, 2}, Ext: ".bin"},
	})

	return f, nil
}

func fieldName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return string(letters[i])
	}

	return fmt.Sprintf("field%d", i)
}

// BuildBitString constructs a balanced, round-robin x/y/z bit string whose
// per-axis character counts are exactly the bits needed to address each
// axis of dims (ceil(log2(dim)), 0 for a size-1 axis).
func BuildBitString(dims hz.Vec3) (string, error) {
	need := [3]int{bitsFor(dims.X), bitsFor(dims.Y), bitsFor(dims.Z)}
	total := need[0] + need[1] + need[2]
	if total == 0 {
		return "", errs.New(errs.InvalidVolume, "dims require zero bits; volume must have at least one axis with size > 1")
	}
	if total > 64 {
		return "", errs.Newf(errs.VolumeTooBig, "dims require %d bits, exceeding the 64-bit HZ address limit", total)
	}

	axisChar := [3]byte{'0', '1', '2'}
	bitAxis := make([]byte, total)
	remaining := need
	axis := 0
	for p := 0; p < total; p++ {
		for remaining[axis%3] == 0 {
			axis++
		}
		a := axis % 3
		bitAxis[p] = axisChar[a]
		remaining[a]--
		axis++
	}

	// bitAxis[p] is the axis for HZ bit position p (0 = LSB); the string
	// itself is read right-to-left, so S[L-1-p] = bitAxis[p].
	s := make([]byte, total)
	for p := 0; p < total; p++ {
		s[total-1-p] = bitAxis[p]
	}

	return string(s), nil
}

func bitsFor(n int64) int {
	if n <= 1 {
		return 0
	}

	return bits.Len64(uint64(n - 1))
}
