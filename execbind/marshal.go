package execbind

import "strings"

// Marshaling validation. The kernel contract requires argv and envp as
// null-terminated byte strings in null-terminated pointer arrays; a NUL
// inside a Go string would silently truncate at the boundary, so every
// string is checked here and rejected before the syscall is attempted.

func checkString(field, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return &MarshalError{Field: field, Index: -1, Err: ErrNulByte}
	}
	return nil
}

func checkVector(field string, vec []string) error {
	for i, s := range vec {
		if strings.IndexByte(s, 0) >= 0 {
			return &MarshalError{Field: field, Index: i, Err: ErrNulByte}
		}
	}
	return nil
}

func checkEnviron(env []string) error {
	for i, e := range env {
		if strings.IndexByte(e, 0) >= 0 {
			return &MarshalError{Field: "envp", Index: i, Err: ErrNulByte}
		}
		idx := strings.IndexByte(e, '=')
		if idx <= 0 {
			return &MarshalError{Field: "envp", Index: i, Err: ErrBadEnvEntry}
		}
	}
	return nil
}
