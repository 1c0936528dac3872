// Package argv builds argument vectors for the exec family of calls.
package argv

// NormalizeLeading returns args with path guaranteed at position 0.
//
// When args is empty or its first element differs from path, a new vector
// is returned with path inserted ahead of a copy of args; the caller's
// slice is never mutated. Comparison is plain string equality of the
// leading element: no path canonicalization is performed, so a symlink
// and its target count as different programs.
//
// The function is idempotent: normalizing an already-normalized vector
// returns it unchanged.
func NormalizeLeading(args []string, path string) []string {
	if len(args) > 0 && args[0] == path {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, path)
	out = append(out, args...)
	return out
}
