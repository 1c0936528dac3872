//go:build unix

package execbind

import (
	"golang.org/x/sys/unix"
)

// doExec performs the image-replacement call. unix.Exec owns the pointer
// marshaling and keeps the argument and environment buffers alive across
// the syscall; on success the process is gone before it could return.
func doExec(path string, argvec, envv []string, op string) error {
	err := unix.Exec(path, argvec, envv)
	// Reached only on failure; the process image is unchanged.
	return &Error{Op: op, Path: path, Err: err}
}
