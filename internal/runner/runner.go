// Package runner wires the pipeline together: registry, selection, per
// version execution, range aggregation and the rendered report. Data flows
// strictly left to right; the runner owns no mutable state between sessions.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/spanrun/spanrun/api"
	"github.com/spanrun/spanrun/internal/aggregate"
	"github.com/spanrun/spanrun/internal/executor"
	"github.com/spanrun/spanrun/internal/registry"
	"github.com/spanrun/spanrun/internal/report"
	"github.com/spanrun/spanrun/internal/selector"
)

// Runner executes sessions against one immutable registry.
type Runner struct {
	reg       *registry.Registry
	out       io.Writer
	gatherers *fanout
}

// New creates a runner writing the report to out. Nothing else may write to
// out while a session runs.
func New(reg *registry.Registry, out io.Writer, gatherers ...ResultGatherer) *Runner {
	return &Runner{
		reg:       reg,
		out:       out,
		gatherers: &fanout{gatherers: gatherers},
	}
}

// Run executes one session and returns the report's exit code. Fatal errors
// (selection failures, a failing before hook) abort before any version runs.
// Per-version failures are folded into the exit code, never returned here.
func (r *Runner) Run(ctx context.Context, req api.RunReq) (int, error) {
	if !req.HasMainCmd() {
		return 0, fmt.Errorf("nothing to execute: request has neither exec command nor interpreter arguments")
	}

	selected, err := selector.Select(r.reg, selector.Query{
		Pattern:    req.Pattern,
		MinVersion: req.MinVersion,
		MaxVersion: req.MaxVersion,
	})
	if err != nil {
		return 0, err
	}
	slog.Debug("selected versions", "count", len(selected))

	// Hook sections suppress empty bodies; run sections always print.
	hooks := &report.SectionPrinter{Out: r.out, SuppressEmpty: true}

	if req.BeforeCmd != "" {
		out, err := runHook(ctx, req.BeforeCmd)
		if err != nil {
			return 0, fmt.Errorf("before hook failed: %w", err)
		}
		hooks.Print("before", out)
	}

	r.gatherers.StartSession(req, len(selected))

	results, runErr := executor.RunAll(ctx, selected, req, r.gatherers)

	// Flush whatever completed even when the session was cancelled.
	groups := aggregate.Aggregate(results)
	report.Render(r.out, groups)

	if runErr != nil {
		r.gatherers.FinishSession(report.ExitCode(groups))
		return 0, fmt.Errorf("session aborted: %w", runErr)
	}

	if req.AfterCmd != "" {
		out, err := runHook(ctx, req.AfterCmd)
		if err != nil {
			return 0, fmt.Errorf("after hook failed: %w", err)
		}
		hooks.Print("after", out)
	}

	code := report.ExitCode(groups)
	r.gatherers.FinishSession(code)
	return code, nil
}

// runHook executes a session-level before/after command with the parent
// environment and returns its combined output. Hooks run outside any version
// workspace; a failing hook is fatal to the session.
func runHook(ctx context.Context, command string) (string, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return buf.String(), err
	}
	return buf.String(), nil
}
