package envedit

import (
	"reflect"
	"testing"
)

func TestPrependPath_UnsetVariable(t *testing.T) {
	table := NewMapTable(nil)

	PrependPath(table, "TEST_PATH", "/a", false)

	got, ok := table.Lookup("TEST_PATH")
	if !ok {
		t.Fatal("variable not set")
	}
	if got != "/a" {
		t.Errorf("Expected '/a', got '%s'", got)
	}
}

func TestPrependPath_EmptyVariable(t *testing.T) {
	table := NewMapTable(map[string]string{"TEST_PATH": ""})

	PrependPath(table, "TEST_PATH", "/a", false)

	got, _ := table.Lookup("TEST_PATH")
	if got != "/a" {
		t.Errorf("Expected '/a', got '%s'", got)
	}
}

func TestPrependPath_PrependsToFront(t *testing.T) {
	table := NewMapTable(nil)

	PrependPath(table, "TEST_PATH", "/a", false)
	PrependPath(table, "TEST_PATH", "/b", false)

	got, _ := table.Lookup("TEST_PATH")
	if got != "/b:/a" {
		t.Errorf("Expected '/b:/a', got '%s'", got)
	}
}

func TestPrependPath_DuplicatesAllowed(t *testing.T) {
	table := NewMapTable(map[string]string{"TEST_PATH": "/a"})

	PrependPath(table, "TEST_PATH", "/a", false)

	got, _ := table.Lookup("TEST_PATH")
	if got != "/a:/a" {
		t.Errorf("Expected '/a:/a', got '%s'", got)
	}
}

func TestPrependPath_AvoidDuplicates(t *testing.T) {
	table := NewMapTable(nil)

	PrependPath(table, "TEST_PATH", "/a", true)
	PrependPath(table, "TEST_PATH", "/a", true)

	got, _ := table.Lookup("TEST_PATH")
	if got != "/a" {
		t.Errorf("Expected '/a' unchanged after second call, got '%s'", got)
	}
}

func TestPrependPath_AvoidDuplicates_MiddleElement(t *testing.T) {
	table := NewMapTable(map[string]string{"TEST_PATH": "/x:/a:/y"})

	PrependPath(table, "TEST_PATH", "/a", true)

	got, _ := table.Lookup("TEST_PATH")
	if got != "/x:/a:/y" {
		t.Errorf("Expected '/x:/a:/y' unchanged, got '%s'", got)
	}
}

func TestPrependPath_TrailingSeparator(t *testing.T) {
	table := NewMapTable(map[string]string{"TEST_PATH": "/a:"})

	PrependPath(table, "TEST_PATH", "/b", false)

	got, _ := table.Lookup("TEST_PATH")
	if got != "/b:/a:" {
		t.Errorf("Expected '/b:/a:', got '%s'", got)
	}
}

func TestRestorePreload_NonEmptyBackup(t *testing.T) {
	table := NewMapTable(map[string]string{
		DefaultPreloadVar:       "/tmp/injected.so",
		DefaultPreloadBackupVar: "/usr/lib/original.so",
	})

	RestorePreload(table, DefaultPreloadVar, DefaultPreloadBackupVar)

	got, ok := table.Lookup(DefaultPreloadVar)
	if !ok {
		t.Fatal("preload variable should be set")
	}
	if got != "/usr/lib/original.so" {
		t.Errorf("Expected '/usr/lib/original.so', got '%s'", got)
	}
}

func TestRestorePreload_EmptyBackupUnsets(t *testing.T) {
	table := NewMapTable(map[string]string{
		DefaultPreloadVar:       "/tmp/injected.so",
		DefaultPreloadBackupVar: "",
	})

	RestorePreload(table, DefaultPreloadVar, DefaultPreloadBackupVar)

	if _, ok := table.Lookup(DefaultPreloadVar); ok {
		t.Error("preload variable should be absent, not present-and-empty")
	}
}

func TestRestorePreload_NoBackupIsNoop(t *testing.T) {
	table := NewMapTable(map[string]string{
		DefaultPreloadVar: "/tmp/injected.so",
	})

	RestorePreload(table, DefaultPreloadVar, DefaultPreloadBackupVar)

	got, ok := table.Lookup(DefaultPreloadVar)
	if !ok || got != "/tmp/injected.so" {
		t.Errorf("preload variable should be untouched, got '%s' (set=%v)", got, ok)
	}
}

func TestDiffForDisplay(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   string
	}{
		{"PATH", "/usr/bin", "/opt/tool/bin:/usr/bin", "PATH=/opt/tool/bin:$PATH"},
		{"PATH", "", "/opt/tool/bin", "PATH=/opt/tool/bin"},
		{"LD_LIBRARY_PATH", "/lib", "/lib", "LD_LIBRARY_PATH=$LD_LIBRARY_PATH"},
		{"X", "/a", "/b", "X=/b"},
	}

	for _, tt := range tests {
		got := DiffForDisplay(tt.name, tt.before, tt.after)
		if got != tt.want {
			t.Errorf("DiffForDisplay(%q, %q, %q) = %q, want %q",
				tt.name, tt.before, tt.after, got, tt.want)
		}
	}
}

func TestMapTable_EnvironSorted(t *testing.T) {
	table := NewMapTable(map[string]string{"B": "2", "A": "1"})

	got := table.Environ()
	want := []string{"A=1", "B=2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Environ() = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	environ := []string{"A=1", "B=x=y", "malformed", "=novalue"}

	got := Parse(environ)

	if got["A"] != "1" {
		t.Errorf("Expected A=1, got %q", got["A"])
	}
	if got["B"] != "x=y" {
		t.Errorf("Expected B='x=y', got %q", got["B"])
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 entries, got %d: %v", len(got), got)
	}
}

func TestSystemTable_RoundTrip(t *testing.T) {
	table := System()

	t.Setenv("RELAUNCH_TEST_VAR", "before")

	table.Set("RELAUNCH_TEST_VAR", "after")
	got, ok := table.Lookup("RELAUNCH_TEST_VAR")
	if !ok || got != "after" {
		t.Errorf("Expected 'after', got '%s' (set=%v)", got, ok)
	}

	table.Unset("RELAUNCH_TEST_VAR")
	if _, ok := table.Lookup("RELAUNCH_TEST_VAR"); ok {
		t.Error("variable should be unset")
	}
}
