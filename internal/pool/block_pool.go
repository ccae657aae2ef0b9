package pool

import "sync"

// BlockPoolMaxClasses bounds the number of distinct buffer sizes a BlockPool
// will retain pools for. Block byte size is derived from bits_per_block and a
// field's sample width, so in practice a descriptor only ever produces a
// handful of distinct sizes (one per field); this is a safety backstop against
// a pathological caller cycling through many sizes and leaking sync.Pool
// instances.
const BlockPoolMaxClasses = 64

// BlockPool is a size-segregated free list of byte buffers used to stage
// block sample payloads during read and write engine calls.
//
// Unlike ByteBufferPool, which pools a single growable buffer size, BlockPool
// keys a distinct sync.Pool per exact byte length, because block buffers are
// always allocated at one of a small number of fixed sizes
// (2^bits_per_block * sample_width). Requesting a size that has never been
// seen grows the free list with a new class, up to BlockPoolMaxClasses; beyond
// that, Get falls through to a plain allocation and Put silently drops the
// buffer, letting it fall to the garbage collector.
type BlockPool struct {
	mu      sync.Mutex
	classes map[int]*sync.Pool
}

// NewBlockPool creates an empty size-segregated block buffer pool.
func NewBlockPool() *BlockPool {
	return &BlockPool{
		classes: make(map[int]*sync.Pool),
	}
}

// Get returns a buffer of exactly size bytes, zero-filled. Buffers returned by
// Get come from the free list when available, avoiding an allocation.
func (p *BlockPool) Get(size int) []byte {
	pl := p.poolFor(size, false)
	if pl == nil {
		return make([]byte, size)
	}

	b, _ := pl.Get().([]byte)
	if b == nil {
		return make([]byte, size)
	}

	for i := range b {
		b[i] = 0
	}

	return b
}

// Put returns a buffer to the free list for its size class. Buffers whose
// size never established a class (because BlockPoolMaxClasses was already
// reached) are dropped.
func (p *BlockPool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}

	pl := p.poolFor(len(buf), true)
	if pl == nil {
		return
	}

	pl.Put(buf) //nolint: staticcheck
}

func (p *BlockPool) poolFor(size int, createIfMissing bool) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pl, ok := p.classes[size]; ok {
		return pl
	}

	if !createIfMissing && len(p.classes) >= BlockPoolMaxClasses {
		return nil
	}
	if createIfMissing && len(p.classes) >= BlockPoolMaxClasses {
		return nil
	}

	pl := &sync.Pool{
		New: func() any {
			return make([]byte, size)
		},
	}
	p.classes[size] = pl

	return pl
}
