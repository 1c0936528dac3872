// Package envedit edits colon-delimited search-path environment variables
// and saves/restores the dynamic-linker preload variable.
//
// All functions operate on an injected Table rather than the ambient
// process environment; pass System() to edit the real environment.
package envedit

import (
	"strings"
)

// Default variable names for the dynamic-linker preload mechanism.
// The backup variable holds the value the preload variable had before it
// was taken over, so the original can be reinstated later.
const (
	DefaultPreloadVar       = "LD_PRELOAD"
	DefaultPreloadBackupVar = "RELAUNCH_LD_PRELOAD_BACKUP"
)

// PathSeparator joins elements of a path-list variable.
const PathSeparator = ":"

// PrependPath adds path to the front of the colon-delimited variable name.
//
// If name is unset or empty the variable is set to path alone. With
// avoidDuplicates, the call is a no-op when path already occurs as one of
// the existing colon-delimited elements. Values that start or end with a
// separator are handled like any other value; no normalization is applied.
func PrependPath(t Table, name, path string, avoidDuplicates bool) {
	current, ok := t.Lookup(name)
	if !ok || current == "" {
		t.Set(name, path)
		return
	}

	if avoidDuplicates {
		for _, elem := range strings.Split(current, PathSeparator) {
			if elem == path {
				return
			}
		}
	}

	t.Set(name, path+PathSeparator+current)
}

// RestorePreload reinstates the preload variable from its backup.
//
// When the backup variable holds the empty string the preload variable is
// unset entirely, not set to empty; the dynamic linker distinguishes the
// two. When the backup is absent nothing happens: no backup simply means
// the preload variable was never taken over.
func RestorePreload(t Table, name, backupName string) {
	saved, ok := t.Lookup(backupName)
	if !ok {
		return
	}
	if saved == "" {
		t.Unset(name)
		return
	}
	t.Set(name, saved)
}

// TODO: add SetPreload with conflict detection once the policy for an
// already-set preload variable (overwrite vs. error) is settled.

// DiffForDisplay renders "name=value" for diagnostics, substituting a
// symbolic $name reference for the prior value so a changed path-list
// variable reads like the shell expression that produced it.
//
// before is the value name had when the snapshot was taken; after is its
// current value. With before="/usr/lib" and after="/opt/lib:/usr/lib" the
// result is "name=/opt/lib:$name".
func DiffForDisplay(name, before, after string) string {
	shown := after
	if before != "" {
		shown = strings.ReplaceAll(after, before, "$"+name)
	}
	return name + "=" + shown
}
