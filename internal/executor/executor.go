// Package executor runs the session's command against individual interpreter
// versions, each inside its own isolated workspace, and records one immutable
// result per version. A failing run is recorded, never retried.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/spanrun/spanrun/api"
	"github.com/spanrun/spanrun/internal/registry"
	"golang.org/x/sync/errgroup"
)

// RunObserver receives per-run lifecycle events. Implementations must be
// safe for concurrent StartRun calls when parallelism is enabled.
type RunObserver interface {
	StartRun(version string)
	FinishRun(res api.RunResult)
}

// Run executes the request against one interpreter entry and returns its
// result. It never returns an error for run-level failures; those are
// encoded in the result status.
func Run(ctx context.Context, entry registry.InterpreterEntry, req api.RunReq) api.RunResult {
	started := time.Now()
	res := api.RunResult{
		Version:  entry.Version.String(),
		ExitCode: -1,
	}
	done := func(r api.RunResult) api.RunResult {
		r.WallMillis = time.Since(started).Milliseconds()
		return r
	}

	if err := checkExecutable(entry.BinPath); err != nil {
		slog.Debug("interpreter binary unavailable",
			"version", entry.Version.String(), "bin", entry.BinPath, "err", err)
		res.Status = api.StatusLaunchFailed
		return done(res)
	}

	ws, err := NewWorkspace(entry.BinDir)
	if err != nil {
		res.Status = api.StatusLaunchFailed
		return done(res)
	}
	defer func() {
		if err := ws.Close(); err != nil {
			slog.Warn("failed to remove workspace", "dir", ws.Dir(), "err", err)
		}
	}()

	if req.SetupCmd != "" {
		// Setup output is discarded; only its success matters. When it
		// fails the main command is not attempted for this version.
		setup := newShellProcess(ctx, ws, req.SetupCmd)
		if err := setup.Start(); err != nil {
			res.Status = api.StatusSetupFailed
			return done(res)
		}
		code, err := setup.Wait()
		if err != nil || code != 0 {
			res.Status = api.StatusSetupFailed
			return done(res)
		}
	}

	var proc *process
	if req.ExecCmd != "" {
		proc = newShellProcess(ctx, ws, req.ExecCmd)
	} else {
		proc = newBinaryProcess(ctx, ws, entry.BinPath, req.InterpArgs)
	}
	if err := proc.Start(); err != nil {
		res.Status = api.StatusLaunchFailed
		return done(res)
	}
	code, err := proc.Wait()
	if err != nil {
		res.Status = api.StatusLaunchFailed
		return done(res)
	}

	res.Status = api.StatusCompleted
	res.ExitCode = code
	res.Output = proc.Output()
	return done(res)
}

// checkExecutable verifies the interpreter binary exists and carries an
// execute bit. Absence is a per-run condition, not a fatal one.
func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("%s is not an executable file", path)
	}
	return nil
}

// RunAll executes the request against every entry. Results always come back
// in the entries' order, which the aggregator depends on. With Parallel < 2
// versions run strictly one at a time; otherwise up to Parallel versions run
// concurrently, each in its own workspace, and results are reordered before
// returning. Cancellation abandons unstarted versions and returns the
// results completed so far along with ctx.Err().
func RunAll(ctx context.Context, entries []registry.InterpreterEntry, req api.RunReq, obs RunObserver) ([]api.RunResult, error) {
	if req.Parallel > 1 {
		return runParallel(ctx, entries, req, obs)
	}
	return runSequential(ctx, entries, req, obs)
}

func runSequential(ctx context.Context, entries []registry.InterpreterEntry, req api.RunReq, obs RunObserver) ([]api.RunResult, error) {
	results := make([]api.RunResult, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		obs.StartRun(entry.Version.String())
		res := Run(ctx, entry, req)
		if err := ctx.Err(); err != nil {
			// The in-flight child was killed by cancellation; its
			// result does not reflect real behavior, so drop it.
			return results, err
		}
		obs.FinishRun(res)
		results = append(results, res)
	}
	return results, nil
}

func runParallel(ctx context.Context, entries []registry.InterpreterEntry, req api.RunReq, obs RunObserver) ([]api.RunResult, error) {
	byIndex := xsync.NewMapOf[int, api.RunResult]()

	errs, ctx := errgroup.WithContext(ctx)
	errs.SetLimit(req.Parallel)
	for i, entry := range entries {
		errs.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			obs.StartRun(entry.Version.String())
			res := Run(ctx, entry, req)
			if err := ctx.Err(); err != nil {
				return err
			}
			byIndex.Store(i, res)
			return nil
		})
	}
	waitErr := errs.Wait()

	// Reassemble into registry order; grouping correctness depends on it.
	// FinishRun fires here so observers see results in order too.
	results := make([]api.RunResult, 0, len(entries))
	for i := range entries {
		res, ok := byIndex.Load(i)
		if !ok {
			break
		}
		obs.FinishRun(res)
		results = append(results, res)
	}
	return results, waitErr
}
