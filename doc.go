// Package relaunch provides process-lifecycle utilities for a host
// language runtime: running external commands with captured output,
// editing colon-delimited search-path environment variables (including
// save/restore of the dynamic-linker preload variable), and replacing
// the running process image in place via the POSIX exec family.
//
// # Why replace the process image
//
// The dynamic linker reads preload and library-path variables exactly
// once, at process start. A runtime that mutates them afterwards must
// re-exec itself for the change to matter. RestartInPlace reconstructs
// the interpreter's original command line from a launch snapshot and
// performs the replacement under the mutated environment.
//
// # Basic Usage
//
//	table := relaunch.SystemTable()
//	relaunch.PrependPath(table, "LD_LIBRARY_PATH", "/opt/tool/lib", true)
//
//	snap := reexec.Snapshot{
//	    Interpreter: "/usr/local/bin/interp",
//	    SystemImage: "/usr/local/lib/sys.img",
//	    Project:     "/home/user/project",
//	}
//	err := relaunch.RestartInPlace(table, snap, reexec.DefaultOptions())
//	// only reached when the replacement failed
//
// # Exec semantics
//
// The exec wrappers succeed by never returning: the calling process is
// replaced wholesale. A returned error always means failure with the
// current process intact, carrying the kernel's errno for rendering.
//
// # Package Structure
//
//   - relaunch: facade and convenience functions
//   - envedit: path-list variable editing and preload save/restore
//   - argv: argument vector normalization
//   - execbind: execv/execve/execvp wrappers
//   - reexec: launch snapshot and in-place restart orchestration
//   - runner: external command execution with captured output
//   - cleanup: result file removal by pattern
//   - observability: OpenTelemetry metrics and audit logging
//   - config: YAML configuration
package relaunch
