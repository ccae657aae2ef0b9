// Package idx provides a high-performance, multi-resolution binary format
// for storing large regular-grid volumetric datasets.
//
// idx is optimized for scenarios where a dataset is written once (or
// incrementally, level by level) and queried many times at varying
// resolution — e.g. a simulation checkpoint explored interactively at
// coarse resolution before a full-detail region-of-interest read. Samples
// are addressed through a bit-interleaved (HZ) curve that makes "give me
// everything up through level L" a prefix of "give me everything", so a
// viewer can progressively refine a view without re-reading data it
// already has.
//
// # Core Features
//
//   - Hierarchical Z (HZ) order sample addressing with progressive,
//     resolution-bounded reads
//   - Blocked storage sharded across multiple physical files
//   - Per-block compression codecs (None, Zip, LZ4, Zstd) on read; the write
//     engine stores every block uncompressed
//   - Bounded-concurrency read and write engines
//   - A bespoke, human-readable v6 descriptor text format
//
// # Basic Usage
//
// Creating a dataset and writing a field at full resolution:
//
//	import "github.com/scidx/idx"
//
//	desc, err := idx.Create(hz.Vec3{X: 256, Y: 256, Z: 256}, 1, descriptor.Float32, 1, "/data/run1.idx", descriptor.DefaultCreateOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = idx.WriteGridAll(desc, 0, 0, desc.Box, samples)
//
// Reading a coarse overview, then refining:
//
//	dst := make([]byte, n)
//	err = idx.ReadGridInclusive(desc, 0, 0, 6, desc.Box, dst)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the
// descriptor and engine packages. For advanced usage — custom worker
// budgets, shared Context reuse across many calls, direct descriptor
// manipulation — use the descriptor and engine packages directly.
package idx

import (
	"github.com/scidx/idx/descriptor"
	"github.com/scidx/idx/engine"
	"github.com/scidx/idx/hz"
)

// Create builds a new descriptor for a dataset of the given dims with
// numFields identically-typed scalar fields and numTimeSteps time steps,
// and writes its v6 text form to path. It does not allocate any block data
// files; those are created lazily by the first write that touches them.
func Create(dims hz.Vec3, numFields int, scalarType descriptor.ScalarType, numTimeSteps int, path string, opts descriptor.CreateOptions) (*descriptor.IdxFile, error) {
	desc, err := descriptor.Create(dims, numFields, scalarType, numTimeSteps, path, opts)
	if err != nil {
		return nil, err
	}

	if err := descriptor.Write(path, desc); err != nil {
		return nil, err
	}

	return desc, nil
}

// ReadFile parses the v6 descriptor text file at path.
func ReadFile(path string) (*descriptor.IdxFile, error) {
	return descriptor.Parse(path)
}

// WriteFile writes desc's v6 text form to path.
func WriteFile(path string, desc *descriptor.IdxFile) error {
	return descriptor.Write(path, desc)
}

// defaultEngine is a package-level Context used by the convenience
// functions below, built with the engine's default worker budget. Callers
// needing a custom worker count or a shared Context across many calls
// should construct one with engine.NewContext directly.
var defaultEngine = func() *engine.Context {
	c, err := engine.NewContext()
	if err != nil {
		panic(err)
	}

	return c
}()

// ReadGrid fills dst, a row-major buffer covering box, with field's samples
// at timeStep from the blocks that hold level's samples; see
// engine.Context.Read for which samples that covers.
func ReadGrid(desc *descriptor.IdxFile, fieldIdx, timeStep, level int, box hz.Box, dst []byte) error {
	return defaultEngine.Read(desc, fieldIdx, timeStep, level, box, dst)
}

// ReadGridInclusive fills dst with the union of every HZ level from 0
// through level.
func ReadGridInclusive(desc *descriptor.IdxFile, fieldIdx, timeStep, level int, box hz.Box, dst []byte) error {
	return defaultEngine.ReadInclusive(desc, fieldIdx, timeStep, level, box, dst)
}

// WriteGrid persists src, a row-major buffer covering box at full
// resolution, into field's blocks at the given HZ level.
func WriteGrid(desc *descriptor.IdxFile, fieldIdx, timeStep, level int, box hz.Box, src []byte) error {
	return defaultEngine.Write(desc, fieldIdx, timeStep, level, box, src)
}

// WriteGridAll persists src at every HZ level from the coarsest (block-0)
// level through the finest, so that the dataset becomes queryable at any
// resolution from a single call.
func WriteGridAll(desc *descriptor.IdxFile, fieldIdx, timeStep int, box hz.Box, src []byte) error {
	return defaultEngine.WriteAll(desc, fieldIdx, timeStep, box, src)
}

// MaxHZLevel returns the finest HZ level desc supports.
func MaxHZLevel(desc *descriptor.IdxFile) int { return desc.GetMaxHZLevel() }

// MinHZLevel returns the lowest HZ level not wholly contained in block 0.
func MinHZLevel(desc *descriptor.IdxFile) int { return desc.GetMinHZLevel() }

// FieldIndex returns the index of the named field in desc.
func FieldIndex(desc *descriptor.IdxFile, name string) (int, error) {
	return desc.GetFieldIndex(name)
}

// LogicalExtent returns desc's per-axis sample counts.
func LogicalExtent(desc *descriptor.IdxFile) hz.Vec3 {
	return desc.GetLogicalExtent()
}
