//go:build darwin

package mmap

import (
	"os"
	"syscall"
	"unsafe"
)

// madvise values from <sys/mman.h>; syscall does not export them on darwin.
const (
	madvSequential = 2
	madvWillNeed   = 3
)

func mmap(f *os.File, length int) ([]byte, error) {
	return syscall.Mmap(int(f.Fd()), 0, length, syscall.PROT_READ, syscall.MAP_SHARED)
}

func munmap(b []byte) error {
	return syscall.Munmap(b)
}

func madvise(b []byte, advice int) error {
	_, _, errno := syscall.Syscall(syscall.SYS_MADVISE, uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), uintptr(advice))
	if errno != 0 {
		return errno
	}
	return nil
}

func adviseSequential(b []byte) error { return madvise(b, madvSequential) }

func adviseWillNeed(b []byte) error { return madvise(b, madvWillNeed) }
