// Package runner executes external commands and captures their output.
//
// Unlike package execbind, which replaces the current process image, the
// runner spawns a child process, waits for it, and reports its exit
// code together with captured stdout and stderr.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/hostruntime/relaunch/observability"
)

// Command describes one external command invocation.
type Command struct {
	// Binary is the path or lookup name of the executable.
	Binary string

	// Args are the command arguments, excluding the binary name.
	Args []string

	// Env is the environment as "key=value" entries. Nil inherits the
	// runner process's environment.
	Env []string

	// Dir is the working directory. Empty uses the current directory.
	Dir string

	// Timeout bounds execution. Zero uses the runner default.
	Timeout time.Duration
}

// Result contains the outcome of one command execution.
type Result struct {
	// CommandID identifies the execution in audit logs.
	CommandID string

	// ExitCode is the child's exit code; -1 when it did not run.
	ExitCode int

	// Stdout and Stderr hold the captured output streams.
	Stdout []byte
	Stderr []byte

	// Duration is the wall clock time of the execution.
	Duration time.Duration
}

// Success reports whether the command exited zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes commands synchronously.
type Runner struct {
	limiter        *rate.Limiter
	telemetry      observability.Telemetry
	audit          observability.AuditLogger
	defaultTimeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the default execution timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.defaultTimeout = d
	}
}

// WithRateLimit bounds how often commands may be started.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(r *Runner) {
		r.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithTelemetry sets the telemetry sink.
func WithTelemetry(t observability.Telemetry) Option {
	return func(r *Runner) {
		r.telemetry = t
	}
}

// WithAudit sets the audit logger.
func WithAudit(a observability.AuditLogger) Option {
	return func(r *Runner) {
		r.audit = a
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		telemetry:      observability.NoopTelemetry(),
		audit:          observability.NoopAuditLogger(),
		defaultTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd and returns its result. A non-zero exit code is not
// an error: it is reported through Result.ExitCode so callers can
// decide. Run returns an error only when the command could not be
// started, timed out, or was canceled.
func (r *Runner) Run(ctx context.Context, cmd *Command) (*Result, error) {
	if cmd == nil || cmd.Binary == "" {
		return nil, fmt.Errorf("runner: empty command")
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("runner: rate limit: %w", err)
		}
	}

	ctx, endSpan := r.telemetry.StartSpan(ctx, "runner.Run",
		observability.WithAttribute("binary", cmd.Binary))
	defer endSpan()

	timeout := cmd.Timeout
	if timeout == 0 {
		timeout = r.defaultTimeout
	}
	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result := &Result{
		CommandID: uuid.New().String(),
		ExitCode:  -1,
	}

	c := exec.CommandContext(execCtx, cmd.Binary, cmd.Args...)
	if cmd.Env != nil {
		c.Env = cmd.Env
	}
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.SysProcAttr = defaultSysProcAttr()

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	runErr := c.Run()
	result.Duration = time.Since(start)
	result.Stdout = stdout.Bytes()
	result.Stderr = stderr.Bytes()

	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	r.record(ctx, cmd, result, runErr)

	// Non-zero exit is carried in the result, not the error.
	if runErr != nil {
		if ctxErr := execCtx.Err(); ctxErr != nil {
			return result, fmt.Errorf("runner: %s: %w", cmd.Binary, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return result, nil
		}
		return result, fmt.Errorf("runner: %s: %w", cmd.Binary, runErr)
	}
	return result, nil
}

func (r *Runner) record(ctx context.Context, cmd *Command, result *Result, runErr error) {
	r.telemetry.RecordDuration(observability.MetricCommandDuration,
		result.Duration.Seconds(), map[string]string{
			"binary":   cmd.Binary,
			"exitcode": strconv.Itoa(result.ExitCode),
		})

	event := &observability.AuditEvent{
		ID:       result.CommandID,
		Type:     observability.AuditEventCommand,
		Binary:   cmd.Binary,
		Args:     cmd.Args,
		Duration: result.Duration,
		ExitCode: result.ExitCode,
	}
	if runErr != nil {
		event.Level = observability.AuditLevelError
		event.Error = runErr.Error()
	}
	//nolint:errcheck
	_ = r.audit.Log(ctx, event)
}
