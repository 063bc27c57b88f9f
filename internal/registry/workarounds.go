package registry

import (
	"github.com/spanrun/spanrun/internal/version"
)

// WorkaroundTable maps version patterns to build workaround ids. It is pure
// data describing which historical build fixes applied to which releases;
// nothing in the execution path branches on it.
type WorkaroundTable struct {
	rules []workaroundRule
}

type workaroundRule struct {
	matcher version.Matcher
	id      string
}

// NewWorkaroundTable compiles pattern/id pairs into a lookup table.
// Patterns use the same syntax as version selection ("2.7.x", "3.0.1").
func NewWorkaroundTable(pairs []WorkaroundSpec) (*WorkaroundTable, error) {
	t := &WorkaroundTable{}
	for _, p := range pairs {
		m, err := version.NewPattern(p.Pattern)
		if err != nil {
			return nil, &Error{Msg: "workaround pattern", Err: err}
		}
		t.rules = append(t.rules, workaroundRule{matcher: m, id: p.ID})
	}
	return t, nil
}

// WorkaroundSpec is one declared pattern -> workaround id pair.
type WorkaroundSpec struct {
	Pattern string `toml:"pattern"`
	ID      string `toml:"id"`
}

// Lookup returns the ids of every workaround whose pattern matches v, in
// declaration order. A nil table returns nil.
func (t *WorkaroundTable) Lookup(v version.Version) []string {
	if t == nil {
		return nil
	}
	var ids []string
	for _, r := range t.rules {
		if r.matcher.Match(v) {
			ids = append(ids, r.id)
		}
	}
	return ids
}
