package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// AuditLogger records leveled diagnostic events as JSON lines.
type AuditLogger interface {
	// Log logs an audit event.
	Log(ctx context.Context, event *AuditEvent) error

	// Close closes the audit logger.
	Close() error
}

// AuditEvent represents an audit log entry.
type AuditEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	ID        string            `json:"id"`
	Level     AuditLevel        `json:"level"`
	Type      AuditEventType    `json:"type"`
	Binary    string            `json:"binary,omitempty"`
	Error     string            `json:"error,omitempty"`
	Args      []string          `json:"args,omitempty"`
	Duration  time.Duration     `json:"duration,omitempty"`
	ExitCode  int               `json:"exit_code,omitempty"`
}

// AuditEventType represents the type of audit event.
type AuditEventType string

const (
	// AuditEventCommand is an external command execution event.
	AuditEventCommand AuditEventType = "command"

	// AuditEventExec is a process image replacement attempt.
	AuditEventExec AuditEventType = "exec"

	// AuditEventRestart is an in-place restart request.
	AuditEventRestart AuditEventType = "restart"

	// AuditEventEnvEdit is an environment table mutation.
	AuditEventEnvEdit AuditEventType = "env_edit"

	// AuditEventCleanup is a result file cleanup event.
	AuditEventCleanup AuditEventType = "cleanup"

	// AuditEventError is a generic error event.
	AuditEventError AuditEventType = "error"
)

// AuditLevel is the severity of an audit event.
type AuditLevel string

const (
	// AuditLevelDebug is verbose diagnostic detail.
	AuditLevelDebug AuditLevel = "debug"

	// AuditLevelInfo is routine operation.
	AuditLevelInfo AuditLevel = "info"

	// AuditLevelError is a failure.
	AuditLevelError AuditLevel = "error"
)

// AuditConfig configures the audit logger.
type AuditConfig struct {
	FilePath string `yaml:"file_path"`
	Enabled  bool   `yaml:"enabled"`
}

// DefaultAuditConfig returns default configuration.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		Enabled: false,
	}
}

// writerAuditLogger writes JSON lines to an io.Writer.
type writerAuditLogger struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// NewWriterAuditLogger creates an audit logger writing JSON lines to w.
func NewWriterAuditLogger(w io.Writer) AuditLogger {
	return &writerAuditLogger{w: w}
}

// NewFileAuditLogger creates an audit logger appending JSON lines to the
// file at path, creating it if absent.
func NewFileAuditLogger(path string) (AuditLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	return &writerAuditLogger{w: f, closer: f}, nil
}

// Log implements AuditLogger.
func (l *writerAuditLogger) Log(ctx context.Context, event *AuditEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Level == "" {
		event.Level = AuditLevelInfo
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding audit event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing audit event: %w", err)
	}
	return nil
}

// Close implements AuditLogger.
func (l *writerAuditLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// NoopAuditLogger returns a no-op audit logger.
func NoopAuditLogger() AuditLogger {
	return &noopAuditLogger{}
}

type noopAuditLogger struct{}

func (l *noopAuditLogger) Log(ctx context.Context, event *AuditEvent) error { return nil }
func (l *noopAuditLogger) Close() error                                     { return nil }
