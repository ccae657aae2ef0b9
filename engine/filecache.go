package engine

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/scidx/idx/endian"
	"github.com/scidx/idx/errs"
	"github.com/scidx/idx/layout"
)

// fileCache holds per-worker-visible, already-opened *layout.File handles
// for the duration of a single engine call, keyed by path. Each file on the
// write path is partitioned to exactly one worker, so *layout.File handles
// are never shared across goroutines there; on the read path concurrent
// os.File.ReadAt calls on a shared handle are safe, so read callers may
// share entries.
type fileCache struct {
	mu      sync.Mutex
	entries map[string]*layout.File
}

func newFileCache() *fileCache {
	return &fileCache{entries: make(map[string]*layout.File)}
}

// openForRead returns the cached handle for path, opening it on first use.
// A missing file is reported via errs.ErrFileNotFound, which the read path
// treats as "all blocks in this file are absent" rather than a hard error.
func (fc *fileCache) openForRead(path string, blocksPerFile, numFields int, engine endian.EndianEngine) (*layout.File, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if f, ok := fc.entries[path]; ok {
		return f, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errs.Wrap(errs.FileNotFound, path, err)
	}

	f, err := layout.Open(path, blocksPerFile, numFields, engine)
	if err != nil {
		return nil, err
	}
	fc.entries[path] = f

	return f, nil
}

// openForWrite returns the cached handle for path, creating the file (with
// a zeroed header region) if it does not yet exist.
func (fc *fileCache) openForWrite(path string, blocksPerFile, numFields int, engine endian.EndianEngine) (*layout.File, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if f, ok := fc.entries[path]; ok {
		return f, nil
	}

	f, err := openOrCreate(path, blocksPerFile, numFields, engine)
	if err != nil {
		return nil, err
	}
	fc.entries[path] = f

	return f, nil
}

func openOrCreate(path string, blocksPerFile, numFields int, engine endian.EndianEngine) (*layout.File, error) {
	if _, err := os.Stat(path); err == nil {
		return layout.Open(path, blocksPerFile, numFields, engine)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errs.Wrap(errs.InvalidIdxFile, path, err)
	}

	return layout.Create(path, blocksPerFile, numFields, engine)
}

// closeAll closes every cached file handle. Errors are collected but do not
// stop the sweep; the first error is returned.
func (fc *fileCache) closeAll() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var first error
	for _, f := range fc.entries {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
