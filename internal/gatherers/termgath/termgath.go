// Package termgath prints human-readable session progress to stderr. The
// rendered report owns stdout; nothing here may write to it.
package termgath

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spanrun/spanrun/api"
)

type TerminalGatherer struct {
	Out       io.Writer
	StartedAt time.Time
}

func New() *TerminalGatherer {
	return &TerminalGatherer{Out: os.Stderr, StartedAt: time.Now()}
}

func (t *TerminalGatherer) StartSession(req api.RunReq, numVersions int) {
	fmt.Fprintf(t.Out, "== running on %d versions ==\n", numVersions)
}

func (t *TerminalGatherer) StartRun(version string) {
	fmt.Fprintf(t.Out, "-> %s\n", version)
}

func (t *TerminalGatherer) FinishRun(res api.RunResult) {
	switch res.Status {
	case api.StatusLaunchFailed:
		fmt.Fprintf(t.Out, "<- %s %s\n", res.Version, color.RedString("launch failed"))
	case api.StatusSetupFailed:
		fmt.Fprintf(t.Out, "<- %s %s\n", res.Version, color.RedString("setup failed"))
	default:
		if res.ExitCode != 0 {
			fmt.Fprintf(t.Out, "<- %s exit=%d wall=%dms\n", res.Version, res.ExitCode, res.WallMillis)
			return
		}
		fmt.Fprintf(t.Out, "<- %s ok wall=%dms\n", res.Version, res.WallMillis)
	}
}

func (t *TerminalGatherer) FinishSession(exitCode int) {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	fmt.Fprintf(t.Out, "== session finished in %s, exit %d ==\n", dur, exitCode)
}
