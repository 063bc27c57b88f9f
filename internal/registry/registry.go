// Package registry holds the ordered list of installed interpreter versions.
// It is built once at startup from an install prefix scan or a TOML manifest
// and is read-only for the rest of the process lifetime.
package registry

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spanrun/spanrun/internal/version"
)

// Error is a fatal registry construction failure: missing or unreadable
// install layout, or a duplicate version id.
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registry: %s: %v", e.Msg, e.Err)
	}
	return "registry: " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// InterpreterEntry is one installed interpreter: a version id paired with its
// executable location. Never mutated after registry construction.
type InterpreterEntry struct {
	Version version.Version
	BinPath string
	BinDir  string

	// Workarounds lists the build workaround ids recorded for this
	// version. Informational only; the core never branches on them.
	Workarounds []string
}

// Registry owns the ordered collection of all known interpreter entries.
type Registry struct {
	entries []InterpreterEntry
}

// New sorts the entries into release order and rejects duplicate version ids.
func New(entries []InterpreterEntry) (*Registry, error) {
	seen := mapset.NewSet[string]()
	for _, e := range entries {
		if !seen.Add(e.Version.String()) {
			return nil, &Error{Msg: fmt.Sprintf("duplicate version %s", e.Version)}
		}
	}
	sorted := make([]InterpreterEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Version.Less(sorted[j].Version)
	})
	return &Registry{entries: sorted}, nil
}

// ListAll returns every entry in release order. Callers must not modify the
// returned slice.
func (r *Registry) ListAll() []InterpreterEntry {
	return r.entries
}

// Len returns the number of registered versions.
func (r *Registry) Len() int { return len(r.entries) }

// Contains reports whether a version id is present in the registry.
func (r *Registry) Contains(v version.Version) bool {
	for _, e := range r.entries {
		if e.Version.Equal(v) {
			return true
		}
	}
	return false
}
