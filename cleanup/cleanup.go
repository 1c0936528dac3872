// Package cleanup removes temporary result files by filename pattern.
package cleanup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hostruntime/relaunch/observability"
)

// Sweeper removes directory entries whose names match fixed patterns.
type Sweeper struct {
	patterns  []string
	audit     observability.AuditLogger
	telemetry observability.Telemetry
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithAudit sets the audit logger.
func WithAudit(a observability.AuditLogger) Option {
	return func(s *Sweeper) {
		s.audit = a
	}
}

// WithTelemetry sets the telemetry sink.
func WithTelemetry(t observability.Telemetry) Option {
	return func(s *Sweeper) {
		s.telemetry = t
	}
}

// NewSweeper creates a Sweeper matching entry names against the given
// filepath.Match patterns.
func NewSweeper(patterns []string, opts ...Option) (*Sweeper, error) {
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("cleanup: bad pattern %q: %w", p, err)
		}
	}

	s := &Sweeper{
		patterns:  patterns,
		audit:     observability.NoopAuditLogger(),
		telemetry: observability.NoopTelemetry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sweep removes matching entries directly under dir and returns the
// paths it removed. Directories matching a pattern are removed with
// their contents. Entries that fail to delete are skipped and reported
// through the returned error after the sweep finishes.
func (s *Sweeper) Sweep(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cleanup: reading %s: %w", dir, err)
	}

	var removed []string
	var firstErr error
	for _, entry := range entries {
		if !s.matches(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("cleanup: removing %s: %w", path, err)
			}
			continue
		}
		removed = append(removed, path)

		s.telemetry.RecordCounter(observability.MetricCleanupRemoved, map[string]string{
			"dir": dir,
		})
		//nolint:errcheck
		_ = s.audit.Log(ctx, &observability.AuditEvent{
			Type:     observability.AuditEventCleanup,
			Level:    observability.AuditLevelDebug,
			Metadata: map[string]string{"dir": dir, "path": path},
		})
	}

	return removed, firstErr
}

func (s *Sweeper) matches(name string) bool {
	for _, p := range s.patterns {
		// Patterns are validated in NewSweeper.
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
