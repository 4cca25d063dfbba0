// Package pool provides reusable buffer pools for the hot title
// normalization path, where an analysis run touches every record in a
// corpus.
package pool

import "sync"

// BufferPool implements a pool of byte slices for efficient memory
// reuse.
type BufferPool struct {
	pool sync.Pool
}

// NewBufferPool creates a new buffer pool with buffers of the specified
// initial capacity.
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are
// available.
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse.
func (bp *BufferPool) Put(buffer *[]byte) {
	// Reset buffer length but keep capacity.
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}
