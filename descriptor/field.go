// Package descriptor implements the IDX v6 text descriptor: parsing and
// writing the line-based ".idx" file, and the IdxFile query API (field
// lookup, size accounting, per-level grid derivation) built on top of the
// hz and block packages. The text format is bespoke to this file family,
// so this package is deliberately stdlib-only (bufio/strings/strconv-based)
// rather than forced through a general-purpose structured-text library.
package descriptor

import (
	"fmt"

	"github.com/scidx/idx/block"
	"github.com/scidx/idx/errs"
)

// ScalarType identifies a field's underlying scalar element type.
type ScalarType int

const (
	Int8 ScalarType = iota
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float32
	Float64
)

var scalarNames = map[ScalarType]string{
	Int8: "int8", UInt8: "uint8",
	Int16: "int16", UInt16: "uint16",
	Int32: "int32", UInt32: "uint32",
	Int64: "int64", UInt64: "uint64",
	Float32: "float32", Float64: "float64",
}

var scalarWidths = map[ScalarType]int{
	Int8: 1, UInt8: 1,
	Int16: 2, UInt16: 2,
	Int32: 4, UInt32: 4,
	Int64: 8, UInt64: 8,
	Float32: 4, Float64: 8,
}

var scalarByName = func() map[string]ScalarType {
	m := make(map[string]ScalarType, len(scalarNames))
	for t, name := range scalarNames {
		m[name] = t
	}

	return m
}()

func (t ScalarType) String() string {
	if name, ok := scalarNames[t]; ok {
		return name
	}

	return fmt.Sprintf("ScalarType(%d)", int(t))
}

// ParseScalarType parses a field type token such as "int8" or "float64".
func ParseScalarType(s string) (ScalarType, error) {
	if t, ok := scalarByName[s]; ok {
		return t, nil
	}

	return 0, errs.Newf(errs.ParseError, "unknown scalar type %q", s)
}

// Bytes returns the scalar type's width in bytes.
func (t ScalarType) Bytes() int { return scalarWidths[t] }

// Field describes one dataset field (e.g. "pressure", "velocity"): its
// scalar type, vector component count, on-disk layout, and compression.
type Field struct {
	Name        string
	Type        ScalarType
	Components  int // number of scalar components per sample, e.g. 3 for a vector field ("float32*3")
	Format      block.Format
	Compression block.CompressionTag
}

// SampleBytes returns the byte width of one full (possibly multi-component)
// sample of this field.
func (f Field) SampleBytes() int {
	c := f.Components
	if c < 1 {
		c = 1
	}

	return f.Type.Bytes() * c
}
