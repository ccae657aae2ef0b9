// Package engine drives the read and write paths described by the hz,
// block, layout, codec, and gridio packages: discovering which blocks a
// query touches, locating their physical files, decoding payloads, and
// scattering/gathering samples into the caller's row-major grid. Callers
// configure each Context via functional options rather than package-level
// globals.
package engine

import (
	"runtime"

	"github.com/scidx/idx/internal/options"
	"github.com/scidx/idx/internal/pool"
)

// maxWorkers bounds the fan-out width regardless of host CPU count.
const maxWorkers = 1024

// Context is the per-call configuration and shared resource set for the
// read and write engines: a size-segregated block buffer pool, a staging
// byte buffer pool for compressed payloads, a worker budget, and an
// optional diagnostic logging sink.
type Context struct {
	blocks  *pool.BlockPool
	staging *pool.ByteBufferPool
	workers int
	logger  func(format string, args ...any)
}

// Option configures a Context via the functional-options pattern.
type Option = options.Option[*Context]

// WithWorkers overrides the default bounded fan-out width
// (min(2*runtime.NumCPU(), 1024)).
func WithWorkers(n int) Option {
	return options.NoError[*Context](func(c *Context) {
		if n > 0 {
			c.workers = n
		}
	})
}

// WithLogger sets an optional diagnostic sink, following the optional-
// dependency style of compress.CreateCodec's target parameter: the engine
// never requires a logging library, but accepts a caller-supplied sink for
// diagnosing partial failures across many files.
func WithLogger(fn func(format string, args ...any)) Option {
	return options.NoError[*Context](func(c *Context) { c.logger = fn })
}

// NewContext builds a Context with its default worker budget and fresh
// pools, applying any options in order.
func NewContext(opts ...Option) (*Context, error) {
	c := &Context{
		blocks:  pool.NewBlockPool(),
		staging: pool.NewByteBufferPool(pool.BlobBufferDefaultSize, pool.BlobBufferMaxThreshold),
		workers: defaultWorkers(),
	}

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

func defaultWorkers() int {
	w := 2 * runtime.NumCPU()
	if w > maxWorkers {
		w = maxWorkers
	}
	if w < 1 {
		w = 1
	}

	return w
}

func (c *Context) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger(format, args...)
	}
}
