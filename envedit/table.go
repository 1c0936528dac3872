package envedit

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Table is a mutable environment variable table.
//
// The process environment is unavoidable shared state; modeling it as an
// injected handle lets callers substitute an isolated table in tests
// instead of mutating the real process environment.
type Table interface {
	// Lookup returns the value of name and whether it is set.
	// An empty value with ok=true is distinct from an unset variable.
	Lookup(name string) (value string, ok bool)

	// Set sets name to value, creating it if absent.
	Set(name, value string)

	// Unset removes name entirely. Removing and setting-to-empty are
	// observably different to a dynamic linker.
	Unset(name string)

	// Environ returns the table contents as "key=value" entries in the
	// form expected by execve.
	Environ() []string
}

// osTable is backed by the real process environment.
type osTable struct{}

// System returns the Table backed by the process environment.
func System() Table {
	return osTable{}
}

func (osTable) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (osTable) Set(name, value string) {
	// Setenv only fails on invalid names; callers here use fixed names.
	//nolint:errcheck
	_ = os.Setenv(name, value)
}

func (osTable) Unset(name string) {
	//nolint:errcheck
	_ = os.Unsetenv(name)
}

func (osTable) Environ() []string {
	return os.Environ()
}

// MapTable is an in-memory Table for tests and dry runs.
// The zero value is not usable; create one with NewMapTable.
type MapTable struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapTable creates a MapTable seeded with the given entries.
func NewMapTable(seed map[string]string) *MapTable {
	vars := make(map[string]string, len(seed))
	for k, v := range seed {
		vars[k] = v
	}
	return &MapTable{vars: vars}
}

// Lookup implements Table.
func (t *MapTable) Lookup(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.vars[name]
	return v, ok
}

// Set implements Table.
func (t *MapTable) Set(name, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vars[name] = value
}

// Unset implements Table.
func (t *MapTable) Unset(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.vars, name)
}

// Environ implements Table. Entries are sorted so output is deterministic.
func (t *MapTable) Environ() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := make([]string, 0, len(t.vars))
	for k, v := range t.vars {
		entries = append(entries, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(entries)
	return entries
}

// Parse converts "key=value" entries into a map, skipping malformed
// entries without an '=' or with an empty key.
func Parse(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, e := range environ {
		if idx := strings.IndexByte(e, '='); idx > 0 {
			vars[e[:idx]] = e[idx+1:]
		}
	}
	return vars
}
