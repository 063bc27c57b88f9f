// Package selector filters the version registry down to the ordered subset
// of versions a session should run against. Selection is a pure function of
// the registry contents and the user-supplied pattern.
package selector

import (
	"fmt"
	"strings"

	"github.com/spanrun/spanrun/internal/registry"
	"github.com/spanrun/spanrun/internal/version"
)

// ErrorKind distinguishes selection failure modes.
type ErrorKind int

const (
	// NotFound means the pattern matched no registry entry.
	NotFound ErrorKind = iota
	// InvalidRange means a range bound is absent from the registry.
	InvalidRange
	// BadPattern means the pattern expression could not be parsed.
	BadPattern
)

// Error is a fatal selection failure, reported before any run starts.
type Error struct {
	Kind    ErrorKind
	Pattern string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("no version matches %q", e.Pattern)
	case InvalidRange:
		return fmt.Sprintf("range %q: %v", e.Pattern, e.Err)
	default:
		return fmt.Sprintf("pattern %q: %v", e.Pattern, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Query holds the user's selection expression: a pattern plus optional
// min/max bounds. All fields may be empty, which selects everything.
type Query struct {
	// Pattern is an exact id, wildcard, comma list, or range "lo ~ hi".
	Pattern string
	// MinVersion is an inclusive lower bound.
	MinVersion string
	// MaxVersion is an exclusive upper bound.
	MaxVersion string
}

func (q Query) isAll() bool {
	return strings.TrimSpace(q.Pattern) == "" && q.MinVersion == "" && q.MaxVersion == ""
}

// Select returns the registry entries matched by the query, preserving
// registry order. A query that would exercise no version is an error.
func Select(reg *registry.Registry, q Query) ([]registry.InterpreterEntry, error) {
	if q.isAll() {
		return reg.ListAll(), nil
	}

	matcher, err := buildMatcher(reg, q)
	if err != nil {
		return nil, err
	}

	var selected []registry.InterpreterEntry
	for _, e := range reg.ListAll() {
		if matcher.Match(e.Version) {
			selected = append(selected, e)
		}
	}
	if len(selected) == 0 {
		return nil, &Error{Kind: NotFound, Pattern: describeQuery(q)}
	}
	return selected, nil
}

func buildMatcher(reg *registry.Registry, q Query) (version.Matcher, error) {
	var ms []version.Matcher

	pattern := strings.TrimSpace(q.Pattern)
	switch {
	case pattern == "":
		// bounds only; nothing to add here.
	case version.IsRange(pattern):
		m, err := rangeMatcher(reg, pattern)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	default:
		m, err := version.NewPattern(pattern)
		if err != nil {
			return nil, &Error{Kind: BadPattern, Pattern: pattern, Err: err}
		}
		ms = append(ms, m)
	}

	if q.MinVersion != "" {
		ms = append(ms, version.Min{Bound: version.Parse(q.MinVersion)})
	}
	if q.MaxVersion != "" {
		ms = append(ms, version.Max{Bound: version.Parse(q.MaxVersion)})
	}
	return version.AndMatcher{Matchers: ms}, nil
}

// rangeMatcher resolves a "lo ~ hi" pattern. Both bounds are inclusive and
// must name versions present in the registry.
func rangeMatcher(reg *registry.Registry, pattern string) (version.Matcher, error) {
	loStr, hiStr, err := version.SplitRange(pattern)
	if err != nil {
		return nil, &Error{Kind: InvalidRange, Pattern: pattern, Err: err}
	}
	lo := version.Parse(loStr)
	hi := version.Parse(hiStr)
	if !reg.Contains(lo) {
		return nil, &Error{Kind: InvalidRange, Pattern: pattern,
			Err: fmt.Errorf("lower bound %s is not a registered version", loStr)}
	}
	if !reg.Contains(hi) {
		return nil, &Error{Kind: InvalidRange, Pattern: pattern,
			Err: fmt.Errorf("upper bound %s is not a registered version", hiStr)}
	}
	return version.AndMatcher{Matchers: []version.Matcher{
		version.Min{Bound: lo},
		inclusiveMax{bound: hi},
	}}, nil
}

// inclusiveMax is the <= counterpart of version.Max for range patterns.
type inclusiveMax struct{ bound version.Version }

func (m inclusiveMax) Match(v version.Version) bool { return !m.bound.Less(v) }

func describeQuery(q Query) string {
	parts := []string{}
	if p := strings.TrimSpace(q.Pattern); p != "" {
		parts = append(parts, p)
	}
	if q.MinVersion != "" {
		parts = append(parts, ">= "+q.MinVersion)
	}
	if q.MaxVersion != "" {
		parts = append(parts, "< "+q.MaxVersion)
	}
	return strings.Join(parts, " ")
}
