package pool

import (
	"bytes"
	"sync"
	"sync/atomic"
)

// Pool represents a generic object pool with type safety.
// It wraps sync.Pool with statistics tracking and automatic reset. The pool
// is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
		gets      int64
	}
}

// New creates a new typed pool. The new function is called when the pool is
// empty; reset, if non-nil, runs before an object goes back into the pool.
//
// Example:
//
//	p := New(
//	    func() *Scratch { return &Scratch{data: make([]byte, 0, 1024)} },
//	    func(s *Scratch) { s.data = s.data[:0] },
//	)
func New[T any](new func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return new()
	}
	return p
}

// Get retrieves an object from the pool, creating one if it is empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.inUse, 1)
	atomic.AddInt64(&p.stats.gets, 1)
	return p.pool.Get().(T)
}

// Put resets obj and returns it to the pool.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats returns current pool statistics.
//
// Returns:
//   - allocated: Total number of objects created by the pool
//   - inUse: Number of objects currently checked out from the pool
//   - hits: Number of Get calls served by a recycled object
//   - misses: Number of Get calls that had to allocate
func (p *Pool[T]) Stats() (allocated, inUse, hits, misses int64) {
	allocated = atomic.LoadInt64(&p.stats.allocated)
	inUse = atomic.LoadInt64(&p.stats.inUse)
	misses = allocated
	hits = atomic.LoadInt64(&p.stats.gets) - misses
	if hits < 0 {
		hits = 0
	}
	return allocated, inUse, hits, misses
}

// maxRetainedBuffer is the largest buffer capacity kept for reuse.
const maxRetainedBuffer = 4 << 20

// Buffers pools bytes.Buffer values for payload serialization.
var Buffers = New(
	func() *bytes.Buffer { return bytes.NewBuffer(make([]byte, 0, 64*1024)) },
	func(b *bytes.Buffer) { b.Reset() },
)

// GetBuffer returns an empty buffer from Buffers.
func GetBuffer() *bytes.Buffer {
	return Buffers.Get()
}

// PutBuffer returns buf to Buffers unless it grew beyond the retention limit.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil {
		return
	}
	if buf.Cap() > maxRetainedBuffer {
		atomic.AddInt64(&Buffers.stats.inUse, -1)
		return
	}
	Buffers.Put(buf)
}
