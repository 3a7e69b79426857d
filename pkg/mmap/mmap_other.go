//go:build !linux && !darwin

package mmap

import (
	"io"
	"os"
)

// mmap falls back to reading the file into memory.
func mmap(f *os.File, length int) ([]byte, error) {
	b := make([]byte, length)
	_, err := io.ReadFull(io.NewSectionReader(f, 0, int64(length)), b)
	return b, err
}

func munmap([]byte) error { return nil }

func adviseSequential([]byte) error { return nil }

func adviseWillNeed([]byte) error { return nil }
