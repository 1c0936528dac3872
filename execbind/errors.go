package execbind

import (
	"errors"
	"fmt"
)

// Sentinel errors for pre-syscall marshaling rejection.
var (
	// ErrNulByte indicates an embedded NUL byte in a path, argument, or
	// environment entry. Such a string cannot cross the syscall boundary
	// without truncation, so the exec call is never attempted.
	ErrNulByte = errors.New("embedded NUL byte")

	// ErrBadEnvEntry indicates an environment entry without a '=' or
	// with an empty key.
	ErrBadEnvEntry = errors.New("malformed environment entry")

	// ErrUnsupported indicates the platform has no POSIX exec family.
	ErrUnsupported = errors.New("process image replacement not supported on this platform")
)

// MarshalError reports an input rejected before the system call.
type MarshalError struct {
	// Field names the offending input: "path", "argv", or "envp".
	Field string

	// Index is the position within the vector, or -1 for path.
	Index int

	// Err is ErrNulByte or ErrBadEnvEntry.
	Err error
}

// Error returns the error message.
func (e *MarshalError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("exec marshal: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("exec marshal: %s[%d]: %v", e.Field, e.Index, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *MarshalError) Unwrap() error {
	return e.Err
}

// Error reports a failed exec call. Err wraps the errno reported by the
// kernel (or the PATH lookup failure for ExecLookup), taken immediately
// after the call returned and before any other operation could disturb it.
type Error struct {
	// Op is the underlying call: "execve" or "execvp".
	Op string

	// Path is the program path or lookup name.
	Path string

	// Err is the underlying failure.
	Err error
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
