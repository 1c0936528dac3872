// Package reexec reconstructs the command line of the running
// interpreter process and replaces it in place, so environment mutations
// made at runtime become visible to the dynamic linker without an
// external restart.
package reexec

import (
	"fmt"
	"os"
)

// TriState mirrors a launch flag that may be unset, enabled, or disabled.
type TriState int

const (
	// TriDefault leaves the flag off the reconstructed command line.
	TriDefault TriState = iota
	// TriYes emits the flag in its enabled form.
	TriYes
	// TriNo emits the flag in its disabled form.
	TriNo
)

// String returns the string representation of the tri-state.
func (s TriState) String() string {
	switch s {
	case TriYes:
		return "yes"
	case TriNo:
		return "no"
	default:
		return "default"
	}
}

// LogLevelDebug is the verbosity at which RestartInPlace carries logger
// reconfiguration into the new image.
const LogLevelDebug = "debug"

// Snapshot captures how the current interpreter process was launched.
// It is immutable once captured; RestartInPlace consults it to build an
// equivalent command line under the mutated environment.
type Snapshot struct {
	// Interpreter is the path to the interpreter binary.
	Interpreter string

	// SystemImage is the path of the precompiled image loaded at startup.
	SystemImage string

	// Project is the active project or workspace path.
	Project string

	// FastMath mirrors the fast-math launch flag.
	FastMath TriState

	// CheckBounds mirrors the bounds-check launch flag.
	CheckBounds TriState

	// Script is the path of the script the process was started with.
	// Empty means the process is interactive.
	Script string

	// Args are the remaining original invocation arguments, after the
	// script path in script mode.
	Args []string

	// LogLevel is the current global logging verbosity.
	LogLevel string
}

// Interactive reports whether the snapshot describes an interactive
// session rather than a script run.
func (s *Snapshot) Interactive() bool {
	return s.Script == ""
}

// CurrentProcess captures a Snapshot describing the running Go process
// itself, for self-restart use: the own executable as interpreter and
// the original command-line arguments. Host runtimes embedding this
// package fill in the remaining fields from their launch metadata.
func CurrentProcess() (Snapshot, error) {
	exe, err := os.Executable()
	if err != nil {
		return Snapshot{}, fmt.Errorf("resolving own executable: %w", err)
	}

	args := make([]string, len(os.Args)-1)
	copy(args, os.Args[1:])

	return Snapshot{
		Interpreter: exe,
		Args:        args,
	}, nil
}
