package relaunch

import (
	"github.com/hostruntime/relaunch/envedit"
	"github.com/hostruntime/relaunch/execbind"
	"github.com/hostruntime/relaunch/reexec"
)

// =============================================================================
// Core Types
// =============================================================================

// Table is a mutable environment variable table. The process
// environment and in-memory fakes both satisfy it.
type Table = envedit.Table

// Snapshot captures how the current interpreter process was launched.
type Snapshot = reexec.Snapshot

// Options configures RestartInPlace.
type Options = reexec.Options

// TriState mirrors a launch flag that may be unset, enabled, or disabled.
type TriState = reexec.TriState

// TriState values.
const (
	TriDefault = reexec.TriDefault
	TriYes     = reexec.TriYes
	TriNo      = reexec.TriNo
)

// =============================================================================
// Environment Editing
// =============================================================================

// SystemTable returns the Table backed by the process environment.
func SystemTable() Table {
	return envedit.System()
}

// PrependPath adds path to the front of the colon-delimited variable
// name in table. See envedit.PrependPath.
func PrependPath(table Table, name, path string, avoidDuplicates bool) {
	envedit.PrependPath(table, name, path, avoidDuplicates)
}

// RestorePreload reinstates the preload variable from its default
// backup counterpart. See envedit.RestorePreload.
func RestorePreload(table Table) {
	envedit.RestorePreload(table, envedit.DefaultPreloadVar, envedit.DefaultPreloadBackupVar)
}

// DiffForDisplay renders a human-readable "what changed" line for an
// environment variable. See envedit.DiffForDisplay.
func DiffForDisplay(name, before, after string) string {
	return envedit.DiffForDisplay(name, before, after)
}

// =============================================================================
// Process Image Replacement
// =============================================================================

// Exec replaces the current process image, inheriting the environment.
// On success it does not return.
func Exec(path string, args []string) error {
	return execbind.Exec(path, args)
}

// ExecEnv replaces the current process image under exactly the given
// environment. On success it does not return.
func ExecEnv(path string, args []string, env []string) error {
	return execbind.ExecEnv(path, args, env)
}

// ExecLookup replaces the current process image with a program resolved
// against PATH. On success it does not return.
func ExecLookup(name string, args []string) error {
	return execbind.ExecLookup(name, args)
}

// RestartInPlace relaunches the interpreter described by snap under the
// current contents of table. On success it does not return. See
// reexec.RestartInPlace.
func RestartInPlace(table Table, snap Snapshot, opts Options) error {
	return reexec.RestartInPlace(table, snap, opts)
}

// =============================================================================
// Version Information
// =============================================================================

// Version returns the library version.
func Version() string {
	return "1.0.0"
}
