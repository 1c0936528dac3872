//go:build unix

package relaunch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hostruntime/relaunch"
	"github.com/hostruntime/relaunch/cleanup"
	"github.com/hostruntime/relaunch/config"
	"github.com/hostruntime/relaunch/envedit"
	"github.com/hostruntime/relaunch/execbind"
	"github.com/hostruntime/relaunch/reexec"
	"github.com/hostruntime/relaunch/runner"
)

// The full sequence a host runtime performs: edit the environment,
// build a snapshot, attempt the in-place restart, and observe that a
// failed restart leaves everything intact.
func TestIntegration_EditThenFailedRestart(t *testing.T) {
	table := envedit.NewMapTable(map[string]string{
		"PATH":       "/usr/bin",
		"LD_PRELOAD": "",
	})

	relaunch.PrependPath(table, "LD_LIBRARY_PATH", "/opt/tool/lib", true)
	table.Set(envedit.DefaultPreloadVar, "/opt/tool/lib/inject.so")

	snap := relaunch.Snapshot{
		Interpreter: "/nonexistent/interp",
		SystemImage: "/opt/interp/sys.img",
		Project:     "/home/user/project",
		Script:      "/home/user/run.src",
		Args:        []string{"--flag"},
	}

	err := relaunch.RestartInPlace(table, snap, reexec.DefaultOptions())
	if err == nil {
		t.Fatal("expected restart failure")
	}

	// The mutations survive in the still-running process.
	if got, _ := table.Lookup("LD_LIBRARY_PATH"); got != "/opt/tool/lib" {
		t.Errorf("LD_LIBRARY_PATH lost: %q", got)
	}
	if got, _ := table.Lookup(envedit.DefaultPreloadVar); got != "/opt/tool/lib/inject.so" {
		t.Errorf("preload variable lost: %q", got)
	}
}

func TestIntegration_ConfigDrivenPreloadRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relaunch.yaml")
	content := `
preload:
  var: LD_PRELOAD
  backup_var: TOOL_LD_PRELOAD_BACKUP
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := config.NewLoader(path).Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	table := envedit.NewMapTable(map[string]string{
		"LD_PRELOAD":             "/opt/tool/inject.so",
		"TOOL_LD_PRELOAD_BACKUP": "",
	})

	envedit.RestorePreload(table, cfg.Preload.Var, cfg.Preload.BackupVar)

	if _, ok := table.Lookup("LD_PRELOAD"); ok {
		t.Error("empty backup should unset the preload variable entirely")
	}
}

func TestIntegration_RunnerAndCleanup(t *testing.T) {
	dir := t.TempDir()

	r := runner.New()
	result, err := r.Run(context.Background(), &runner.Command{
		Binary: "/bin/sh",
		Args:   []string{"-c", "echo data > " + dir + "/result-1.tmp"},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Success() {
		t.Fatalf("command failed with exit code %d: %s", result.ExitCode, result.Stderr)
	}

	s, err := cleanup.NewSweeper([]string{"result-*.tmp"})
	if err != nil {
		t.Fatalf("NewSweeper failed: %v", err)
	}
	removed, err := s.Sweep(context.Background(), dir)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(removed) != 1 {
		t.Errorf("expected 1 file removed, got %v", removed)
	}
}

func TestIntegration_ExecFacadeSurfacesErrno(t *testing.T) {
	err := relaunch.ExecEnv("/nonexistent/interp", nil, []string{"PATH=/usr/bin"})
	if err == nil {
		t.Fatal("expected error")
	}

	var xerr *execbind.Error
	if !errors.As(err, &xerr) {
		t.Fatalf("expected *execbind.Error, got %T", err)
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("expected errno detail in %q", err.Error())
	}
}
