package reexec

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hostruntime/relaunch/envedit"
	"github.com/hostruntime/relaunch/execbind"
	"github.com/hostruntime/relaunch/observability"
)

// Options configures RestartInPlace.
type Options struct {
	// LoadExtension includes ExtensionExpr in the interactive startup
	// expression so the extension's entry point runs in the new image.
	LoadExtension bool

	// InheritLogLevel carries the current debug verbosity into the new
	// image by including DebugLoggerExpr in the startup expression. It
	// has no effect unless the snapshot's log level is debug.
	InheritLogLevel bool

	// ExtensionExpr is the interpreter expression invoking the
	// extension's main entry point. Empty skips it.
	ExtensionExpr string

	// DebugLoggerExpr is the interpreter expression reconfiguring
	// logging to a debug-level console logger. Empty skips it.
	DebugLoggerExpr string

	// Audit receives diagnostic events. Nil disables auditing.
	Audit observability.AuditLogger

	// Telemetry records restart metrics. Nil disables them.
	Telemetry observability.Telemetry
}

// DefaultOptions returns the options used by a plain restart.
func DefaultOptions() Options {
	return Options{
		LoadExtension:   true,
		InheritLogLevel: true,
	}
}

// BuildArgs assembles the argument list for relaunching the interpreter
// described by snap, excluding argv[0].
//
// The fixed flags come first: project path, precompiled image, quiet.
// The fast-math and bounds-check flags follow when the snapshot pins
// them. Script mode then appends the script path and the original
// arguments verbatim; interactive mode appends the startup expression
// (when non-empty), the interactive flag, and the original arguments.
//
// BuildArgs panics when the snapshot's script path contradicts its
// mode; that is a caller bug, not a runtime condition to recover from.
func BuildArgs(snap Snapshot, opts Options) []string {
	args := []string{
		"--project=" + snap.Project,
		"-J" + snap.SystemImage,
		"--quiet",
	}

	switch snap.FastMath {
	case TriYes:
		args = append(args, "--math-mode=fast")
	case TriNo:
		args = append(args, "--math-mode=ieee")
	}

	switch snap.CheckBounds {
	case TriYes:
		args = append(args, "--check-bounds=yes")
	case TriNo:
		args = append(args, "--check-bounds=no")
	}

	if snap.Interactive() {
		return appendInteractiveArgs(args, snap, opts)
	}
	return appendScriptArgs(args, snap)
}

func appendScriptArgs(args []string, snap Snapshot) []string {
	if snap.Script == "" {
		panic("reexec: script mode without a script path")
	}
	args = append(args, snap.Script)
	return append(args, snap.Args...)
}

func appendInteractiveArgs(args []string, snap Snapshot, opts Options) []string {
	if snap.Script != "" {
		panic("reexec: interactive mode with a script path")
	}

	if expr := startupExpr(snap, opts); expr != "" {
		args = append(args, "-e", expr)
	}
	args = append(args, "-i")
	return append(args, snap.Args...)
}

// startupExpr builds the expression evaluated before the interactive
// prompt in the new image.
func startupExpr(snap Snapshot, opts Options) string {
	var parts []string
	if opts.LoadExtension && opts.ExtensionExpr != "" {
		parts = append(parts, opts.ExtensionExpr)
	}
	if opts.InheritLogLevel && snap.LogLevel == LogLevelDebug && opts.DebugLoggerExpr != "" {
		parts = append(parts, opts.DebugLoggerExpr)
	}
	return strings.Join(parts, "; ")
}

// RestartInPlace replaces the current process with a fresh instance of
// the interpreter described by snap, running under the current contents
// of table. Mutations made to the table before the call, such as a
// changed preload variable, are exactly what the new image observes.
//
// On success RestartInPlace does not return: the process image,
// including this call stack, is gone. On failure it logs diagnostics
// and returns an error; the original process continues running with its
// environment unchanged, including any mutations made before the call.
//
// Only the launch options reconstructed by BuildArgs are forwarded;
// other original options are not carried over. This is a known
// limitation of the reconstruction.
func RestartInPlace(table envedit.Table, snap Snapshot, opts Options) error {
	args := BuildArgs(snap, opts)
	env := table.Environ()

	id := uuid.New().String()
	ctx := context.Background()

	if opts.Telemetry != nil {
		opts.Telemetry.RecordCounter(observability.MetricRestarts, map[string]string{
			"interpreter": snap.Interpreter,
		})
	}
	if opts.Audit != nil {
		//nolint:errcheck
		_ = opts.Audit.Log(ctx, &observability.AuditEvent{
			ID:     id,
			Type:   observability.AuditEventRestart,
			Binary: snap.Interpreter,
			Args:   args,
		})
	}

	err := execbind.ExecEnv(snap.Interpreter, args, env)

	// Reached only when the replacement failed; the old image is intact.
	if opts.Telemetry != nil {
		opts.Telemetry.RecordCounter(observability.MetricExecFailures, map[string]string{
			"interpreter": snap.Interpreter,
		})
	}
	if opts.Audit != nil {
		//nolint:errcheck
		_ = opts.Audit.Log(ctx, &observability.AuditEvent{
			ID:     id,
			Type:   observability.AuditEventError,
			Level:  observability.AuditLevelError,
			Binary: snap.Interpreter,
			Error:  err.Error(),
		})
	}

	return fmt.Errorf("relaunching %s: %w", snap.Interpreter, err)
}
