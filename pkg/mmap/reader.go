// Package mmap maps recording files into memory so they can be decoded
// without copying them through a read buffer.
package mmap

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
)

// Reader is a read-only memory mapping of a whole file.
type Reader struct {
	file     *os.File
	data     []byte
	pageSize int

	bytesRead int64
	pagesRead int64

	mu sync.RWMutex
}

// NewReader maps the file at path. An empty file maps to an empty Reader.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFileOpenFailure, "failed to open file").WithDetail("path", path)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFileOpenFailure, "failed to stat file").WithDetail("path", path)
	}

	r := &Reader{file: file, pageSize: os.Getpagesize()}
	if stat.Size() == 0 {
		return r, nil
	}
	if stat.Size() > int64(int(^uint(0)>>1)) {
		file.Close()
		return nil, errors.Newf(errors.ErrorTypeFileOpenFailure, "file of %d bytes cannot be mapped", stat.Size()).
			WithDetail("path", path)
	}

	r.data, err = mmap(file, int(stat.Size()))
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFileOpenFailure, "failed to mmap file").WithDetail("path", path)
	}
	// Advice is a hint; the mapping works without it.
	_ = adviseSequential(r.data)
	return r, nil
}

// Len returns the size of the mapping.
func (r *Reader) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Bytes returns the whole mapping. The slice is invalid after Close.
func (r *Reader) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.account(0, int64(len(r.data)))
	return r.data
}

// NewStream returns an io.Reader over the mapping, positioned at the start.
func (r *Reader) NewStream() io.Reader {
	return bytes.NewReader(r.Bytes())
}

// account records a read of [start, end) and asks the kernel to fault in
// its pages.
func (r *Reader) account(start, end int64) {
	if end <= start {
		return
	}
	page := int64(r.pageSize)
	first := (start / page) * page
	last := ((end + page - 1) / page) * page
	if last > int64(len(r.data)) {
		last = int64(len(r.data))
	}
	_ = adviseWillNeed(r.data[first:last])

	r.bytesRead += end - start
	r.pagesRead += (last - first + page - 1) / page
}

// Stats returns the bytes and pages handed out so far.
func (r *Reader) Stats() (bytesRead, pagesRead int64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bytesRead, r.pagesRead
}

// Close unmaps and closes the file. It is safe to call twice.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.data != nil {
		err = munmap(r.data)
		r.data = nil
	}
	if r.file != nil {
		if closeErr := r.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.file = nil
	}
	return err
}
