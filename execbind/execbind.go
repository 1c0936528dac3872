// Package execbind wraps the POSIX exec family of process-image
// replacement calls.
//
// Each entry point marshals its path, argument vector, and environment
// into the null-terminated form the kernel expects and performs the
// replacement call. On success the call never returns: the calling
// process, including the goroutine stack the call was made from, is
// replaced wholesale by the new image. A returned error therefore always
// means the call failed and the current process is unchanged.
//
// Replacement failure is not modeled as a panic. "Never returns" is the
// success path, so these functions return a plain error that wraps the
// errno reported by the kernel; callers render the detail ("no such
// file", "permission denied") via errors.Is or the error message.
package execbind

import (
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/hostruntime/relaunch/argv"
)

// Exec replaces the current process image with the program at path,
// inheriting the caller's environment. args is normalized so that path
// occupies position 0, mirroring the execv convention for argv[0].
//
// On success Exec does not return. A non-nil return value always
// indicates failure with the process intact.
func Exec(path string, args []string) error {
	return execve(path, args, os.Environ())
}

// ExecEnv replaces the current process image with the program at path
// under exactly the environment given as "key=value" entries. None of
// the caller's environment is inherited; this is the only way an
// environment mutation becomes visible to the dynamic linker in the new
// image, since the linker reads the environment only at process start.
//
// On success ExecEnv does not return.
func ExecEnv(path string, args []string, env []string) error {
	return execve(path, args, env)
}

// ExecLookup behaves like Exec but resolves name against the PATH search
// variable instead of treating it as a literal filesystem path. argv[0]
// is the name as given, not the resolved path, matching execvp.
//
// On success ExecLookup does not return.
func ExecLookup(name string, args []string) error {
	resolved, err := exec.LookPath(name)
	if err != nil {
		return &Error{Op: "execvp", Path: name, Err: err}
	}

	vec := argv.NormalizeLeading(args, name)
	if err := checkVector("argv", vec); err != nil {
		return err
	}
	return doExec(resolved, vec, os.Environ(), "execvp")
}

func execve(path string, args, env []string) error {
	vec := argv.NormalizeLeading(args, path)
	if err := checkString("path", path); err != nil {
		return err
	}
	if err := checkVector("argv", vec); err != nil {
		return err
	}
	if err := checkEnviron(env); err != nil {
		return err
	}
	return doExec(path, vec, env, "execve")
}

// EnvList converts a name→value mapping into the ordered "key=value"
// list form ExecEnv consumes. Entries are sorted by key so the resulting
// vector is deterministic.
func EnvList(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}
