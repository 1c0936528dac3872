//go:build unix

package execbind

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"golang.org/x/sys/unix"
)

func TestExecEnv_NonexistentPath(t *testing.T) {
	// Snapshot the environment so we can verify the failed replacement
	// left it exactly as it was.
	before := os.Environ()

	err := ExecEnv("/nonexistent/interpreter", []string{"-e", "1"}, []string{"PATH=/usr/bin"})
	if err == nil {
		t.Fatal("expected error for nonexistent executable")
	}

	if !errors.Is(err, unix.ENOENT) {
		t.Errorf("expected ENOENT, got %v", err)
	}

	var xerr *Error
	if !errors.As(err, &xerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if xerr.Op != "execve" {
		t.Errorf("expected op 'execve', got %q", xerr.Op)
	}
	if xerr.Path != "/nonexistent/interpreter" {
		t.Errorf("unexpected path %q", xerr.Path)
	}

	after := os.Environ()
	if !reflect.DeepEqual(before, after) {
		t.Error("environment changed after failed exec")
	}
}

func TestExec_PermissionDenied(t *testing.T) {
	dir := t.TempDir()

	err := Exec(dir, nil)
	if err == nil {
		t.Fatal("expected error when exec'ing a directory")
	}
	// Directories fail with EACCES on most systems; any errno is
	// acceptable as long as it is surfaced through the wrapper.
	var xerr *Error
	if !errors.As(err, &xerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if xerr.Err == nil {
		t.Error("underlying errno missing")
	}
}
