// Package pool implements type-safe object pooling on top of sync.Pool.
//
// Core Types:
//
//   - Pool[T]: generic pool with an optional reset hook and usage statistics
//   - Buffers: the global bytes.Buffer pool used by compression and encoding
//
// Objects obtained with Get must be returned with Put once the caller no
// longer references them:
//
//	buf := pool.GetBuffer()
//	defer pool.PutBuffer(buf)
package pool
