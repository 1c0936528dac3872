//go:build windows

package execbind

// Windows has no exec family; process image replacement cannot be
// expressed there and is explicitly out of scope.
func doExec(path string, argvec, envv []string, op string) error {
	return &Error{Op: op, Path: path, Err: ErrUnsupported}
}
