// Package report renders aggregated output groups to a text stream and folds
// per-run statuses into the process exit code. The rendered report is the
// single source of truth for what happened on every version; failing runs
// are never logged out-of-band instead.
package report

import (
	"fmt"
	"io"

	"github.com/spanrun/spanrun/api"
	"github.com/spanrun/spanrun/internal/aggregate"
)

// Render writes one section per group. The header names the group's version
// span ("2.7.1 ~ 2.7.16", or just "3.0.0" for a single version); the body is
// the captured output verbatim, followed by a failure trailer when the group
// did not complete with exit 0.
func Render(w io.Writer, groups []aggregate.Group) {
	RenderGroups(&SectionPrinter{Out: w}, groups)
}

// RenderGroups writes group sections through an existing printer so they
// share section-gap state with hook sections printed around them.
func RenderGroups(p *SectionPrinter, groups []aggregate.Group) {
	for _, g := range groups {
		p.Print(spanHeader(g), renderBody(g))
	}
}

func spanHeader(g aggregate.Group) string {
	if g.Single() {
		return g.First
	}
	return fmt.Sprintf("%s ~ %s", g.First, g.Last)
}

func renderBody(g aggregate.Group) string {
	body := string(g.Output)
	switch g.Status {
	case api.StatusLaunchFailed:
		body += "failed to launch interpreter binary\n"
	case api.StatusSetupFailed:
		body += "setup command failed; main command not attempted\n"
	case api.StatusCompleted:
		if g.ExitCode != 0 {
			if body != "" && body[len(body)-1] != '\n' {
				body += "\n"
			}
			body += fmt.Sprintf("command exited with status %d\n", g.ExitCode)
		}
	}
	return body
}

// Exit code severity: the worst run decides. Launch failures outrank setup
// failures, which outrank a plain non-zero exit.
const (
	ExitOk          = 0
	ExitNonZeroRun  = 1
	ExitSetupFailed = 2
	ExitLaunchFail  = 3
)

// ExitCode returns 0 only if every run completed with exit status 0.
func ExitCode(groups []aggregate.Group) int {
	code := ExitOk
	for _, g := range groups {
		var c int
		switch g.Status {
		case api.StatusLaunchFailed:
			c = ExitLaunchFail
		case api.StatusSetupFailed:
			c = ExitSetupFailed
		default:
			if g.ExitCode != 0 {
				c = ExitNonZeroRun
			}
		}
		if c > code {
			code = c
		}
	}
	return code
}
