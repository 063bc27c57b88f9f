package version

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher decides whether a version is selected by a user-supplied pattern.
type Matcher interface {
	Match(v Version) bool
}

// All matches every version. It is the default when no pattern is given.
type All struct{}

func (All) Match(Version) bool { return true }

// Min matches versions at or above a bound (inclusive).
type Min struct{ Bound Version }

func (m Min) Match(v Version) bool { return !v.Less(m.Bound) }

// Max matches versions strictly below a bound (exclusive).
type Max struct{ Bound Version }

func (m Max) Match(v Version) bool { return v.Less(m.Bound) }

// AndMatcher requires every inner matcher to accept the version.
type AndMatcher struct{ Matchers []Matcher }

func (a AndMatcher) Match(v Version) bool {
	for _, m := range a.Matchers {
		if !m.Match(v) {
			return false
		}
	}
	return true
}

// patternMatcher handles an exact id or a dotted wildcard such as "2.7.x",
// or a comma-separated list of those. Exact ids compare component-wise so
// "3.07" matches "3.7". A wildcard "x" stands for one or more characters.
type patternMatcher struct {
	raw      string
	exacts   []Version
	wildcard []*regexp.Regexp
}

// NewPattern compiles a version pattern expression. An empty expression
// yields a matcher accepting everything.
func NewPattern(expr string) (Matcher, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return All{}, nil
	}
	pm := &patternMatcher{raw: expr}
	for _, p := range strings.Split(expr, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("empty pattern in expression %q", expr)
		}
		if !strings.ContainsRune(p, 'x') {
			pm.exacts = append(pm.exacts, Parse(p))
			continue
		}
		re, err := compileWildcard(p)
		if err != nil {
			return nil, err
		}
		pm.wildcard = append(pm.wildcard, re)
	}
	return pm, nil
}

// compileWildcard translates "2.7.x" into an anchored regexp where each "x"
// matches one or more characters.
func compileWildcard(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`\A`)
	for _, r := range pattern {
		if r == 'x' {
			b.WriteString(`.+`)
		} else {
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`\z`)
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("invalid version pattern %q: %w", pattern, err)
	}
	return re, nil
}

func (pm *patternMatcher) Match(v Version) bool {
	for _, e := range pm.exacts {
		if v.Equal(e) {
			return true
		}
	}
	for _, re := range pm.wildcard {
		if re.MatchString(v.String()) {
			return true
		}
	}
	return false
}

// IsRange reports whether the expression is a range pattern "X.Y ~ A.B".
func IsRange(expr string) bool {
	return strings.Contains(expr, "~")
}

// SplitRange splits "X.Y ~ A.B" into its inclusive bounds.
func SplitRange(expr string) (lo string, hi string, err error) {
	parts := strings.SplitN(expr, "~", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid range pattern %q", expr)
	}
	lo = strings.TrimSpace(parts[0])
	hi = strings.TrimSpace(parts[1])
	if lo == "" || hi == "" {
		return "", "", fmt.Errorf("range pattern %q is missing a bound", expr)
	}
	return lo, hi, nil
}
