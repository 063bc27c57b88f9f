// Package aggregate compresses an ordered sequence of per-version results
// into the smallest number of contiguous groups whose outputs are
// byte-identical. Grouping is strictly by adjacency in registry order; two
// non-adjacent versions with equal output are never merged, because the
// displayed version ranges must be contiguous.
package aggregate

import (
	"bytes"

	"github.com/spanrun/spanrun/api"
)

// Group is a maximal contiguous run of versions sharing byte-identical
// output, the same status and the same exit code.
type Group struct {
	// Versions in registry order; always non-empty.
	Versions []string

	// First and Last bound the displayed range. Equal for a single
	// version group.
	First string
	Last  string

	Output   []byte
	Status   api.RunStatus
	ExitCode int64
}

// Single reports whether the group spans exactly one version.
func (g Group) Single() bool { return g.First == g.Last }

// Aggregate merges adjacent results in a single linear pass. Results must
// already be in registry order. A result joins the open group only when its
// output bytes, status and exit code all match the group's representative;
// results with differing status categories never merge even when both
// outputs are empty.
func Aggregate(results []api.RunResult) []Group {
	var groups []Group
	for _, res := range results {
		if len(groups) > 0 && mergeable(&groups[len(groups)-1], res) {
			g := &groups[len(groups)-1]
			g.Versions = append(g.Versions, res.Version)
			g.Last = res.Version
			continue
		}
		groups = append(groups, Group{
			Versions: []string{res.Version},
			First:    res.Version,
			Last:     res.Version,
			Output:   res.Output,
			Status:   res.Status,
			ExitCode: res.ExitCode,
		})
	}
	return groups
}

func mergeable(g *Group, res api.RunResult) bool {
	return g.Status == res.Status &&
		g.ExitCode == res.ExitCode &&
		bytes.Equal(g.Output, res.Output)
}
