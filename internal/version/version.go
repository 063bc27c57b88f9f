package version

import (
	"regexp"
	"strconv"
	"strings"
)

// Version is an interpreter release identifier such as "2.7.16" or "3.8-rc1".
// Ordering follows release chronology, not lexical string order, so "2.7.9"
// precedes "2.7.10". Immutable once constructed.
type Version struct {
	raw   string
	comps []component
}

// component is one dot-separated part split into its numeric prefix and the
// remaining suffix: "2" -> {2, ""}, "3-rc1" -> {3, "-rc1"}, "beta" -> {0, "beta"}.
type component struct {
	num    int
	suffix string
}

var componentRe = regexp.MustCompile(`^(\d*)(.*)$`)

// Parse splits a dotted version string into ordered components.
func Parse(s string) Version {
	parts := strings.Split(s, ".")
	comps := make([]component, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			comps = append(comps, component{num: n})
			continue
		}
		m := componentRe.FindStringSubmatch(p)
		num := 0
		if m[1] != "" {
			num, _ = strconv.Atoi(m[1])
		}
		comps = append(comps, component{num: num, suffix: m[2]})
	}
	return Version{raw: s, comps: comps}
}

func (v Version) String() string {
	return v.raw
}

// Compare returns -1, 0 or 1 ordering v against other component-wise.
// Numeric parts compare as integers, suffixes as strings, and a version that
// is a strict prefix of another sorts first ("3.8" < "3.8.1").
func (v Version) Compare(other Version) int {
	n := len(v.comps)
	if len(other.comps) < n {
		n = len(other.comps)
	}
	for i := 0; i < n; i++ {
		a, b := v.comps[i], other.comps[i]
		if a.num != b.num {
			if a.num < b.num {
				return -1
			}
			return 1
		}
		if a.suffix != b.suffix {
			if a.suffix < b.suffix {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(v.comps) < len(other.comps):
		return -1
	case len(v.comps) > len(other.comps):
		return 1
	}
	return 0
}

// Less reports whether v precedes other in release order.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports component equality, so "1.2" equals "01.02".
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}
