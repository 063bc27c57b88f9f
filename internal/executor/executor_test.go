package executor_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spanrun/spanrun/api"
	"github.com/spanrun/spanrun/internal/executor"
	"github.com/spanrun/spanrun/internal/registry"
	"github.com/spanrun/spanrun/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopObserver struct {
	starts   atomic.Int64
	finishes atomic.Int64
}

func (o *nopObserver) StartRun(string)         { o.starts.Add(1) }
func (o *nopObserver) FinishRun(api.RunResult) { o.finishes.Add(1) }

// fakeInterpreter installs a shell script posing as an interpreter binary
// that echoes a fixed line and exits with the given code.
func fakeInterpreter(t *testing.T, ver string, line string, exitCode int) registry.InterpreterEntry {
	t.Helper()
	binDir := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.MkdirAll(binDir, 0755))
	script := "#!/bin/sh\necho \"" + line + "\"\nexit " + itoa(exitCode) + "\n"
	bin := filepath.Join(binDir, "python")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))
	return registry.InterpreterEntry{
		Version: version.Parse(ver),
		BinPath: bin,
		BinDir:  binDir,
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	s := ""
	for n > 0 {
		s = string(rune('0'+n%10)) + s
		n /= 10
	}
	return s
}

func TestRunInterpreterArgs(t *testing.T) {
	entry := fakeInterpreter(t, "3.0.0", "hello from 3.0.0", 0)
	res := executor.Run(context.Background(), entry, api.RunReq{
		InterpArgs: []string{"-c", "ignored"},
	})
	assert.Equal(t, api.StatusCompleted, res.Status)
	assert.Equal(t, int64(0), res.ExitCode)
	assert.Equal(t, "hello from 3.0.0\n", string(res.Output))
}

func TestRunExecCmdUsesVersionPath(t *testing.T) {
	entry := fakeInterpreter(t, "3.0.0", "from the fake binary", 0)
	res := executor.Run(context.Background(), entry, api.RunReq{
		ExecCmd: "python",
	})
	assert.Equal(t, api.StatusCompleted, res.Status)
	assert.Equal(t, "from the fake binary\n", string(res.Output))
}

func TestRunCapturesStderrInterleaved(t *testing.T) {
	entry := fakeInterpreter(t, "3.0.0", "unused", 0)
	res := executor.Run(context.Background(), entry, api.RunReq{
		ExecCmd: "echo out1; echo err1 >&2; echo out2",
	})
	assert.Equal(t, api.StatusCompleted, res.Status)
	assert.Equal(t, "out1\nerr1\nout2\n", string(res.Output))
}

func TestRunNonZeroExitIsCompleted(t *testing.T) {
	entry := fakeInterpreter(t, "3.0.0", "boom", 3)
	res := executor.Run(context.Background(), entry, api.RunReq{
		InterpArgs: []string{"x"},
	})
	assert.Equal(t, api.StatusCompleted, res.Status)
	assert.Equal(t, int64(3), res.ExitCode)
	assert.Equal(t, "boom\n", string(res.Output))
}

func TestRunMissingBinaryIsLaunchFailed(t *testing.T) {
	entry := registry.InterpreterEntry{
		Version: version.Parse("2.0.0"),
		BinPath: filepath.Join(t.TempDir(), "bin", "python"),
		BinDir:  filepath.Join(t.TempDir(), "bin"),
	}
	res := executor.Run(context.Background(), entry, api.RunReq{
		InterpArgs: []string{"x"},
	})
	assert.Equal(t, api.StatusLaunchFailed, res.Status)
	assert.Empty(t, res.Output)
}

func TestRunSetupFailure(t *testing.T) {
	entry := fakeInterpreter(t, "3.0.0", "should not run", 0)
	res := executor.Run(context.Background(), entry, api.RunReq{
		SetupCmd:   "echo setup noise; exit 1",
		InterpArgs: []string{"x"},
	})
	assert.Equal(t, api.StatusSetupFailed, res.Status)
	// Setup output is discarded and the main command never ran.
	assert.Empty(t, res.Output)
}

func TestRunSetupSuccessThenMain(t *testing.T) {
	entry := fakeInterpreter(t, "3.0.0", "main output", 0)
	res := executor.Run(context.Background(), entry, api.RunReq{
		SetupCmd:   "echo setup noise",
		InterpArgs: []string{"x"},
	})
	assert.Equal(t, api.StatusCompleted, res.Status)
	assert.Equal(t, "main output\n", string(res.Output))
}

func TestRunSetupSideEffectsStayInWorkspace(t *testing.T) {
	entry := fakeInterpreter(t, "3.0.0", "unused", 0)
	res := executor.Run(context.Background(), entry, api.RunReq{
		SetupCmd: "echo state > marker.txt",
		ExecCmd:  "cat marker.txt",
	})
	assert.Equal(t, api.StatusCompleted, res.Status)
	assert.Equal(t, "state\n", string(res.Output))

	// A second run gets a fresh workspace without the marker.
	res2 := executor.Run(context.Background(), entry, api.RunReq{
		ExecCmd: "cat marker.txt",
	})
	assert.Equal(t, api.StatusCompleted, res2.Status)
	assert.NotEqual(t, int64(0), res2.ExitCode)
}

func TestRunAllSequentialOrder(t *testing.T) {
	entries := []registry.InterpreterEntry{
		fakeInterpreter(t, "2.7.1", "A", 0),
		fakeInterpreter(t, "2.7.2", "A", 0),
		fakeInterpreter(t, "3.0.0", "B", 0),
	}
	obs := &nopObserver{}
	results, err := executor.RunAll(context.Background(), entries, api.RunReq{
		InterpArgs: []string{"x"},
	}, obs)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "2.7.1", results[0].Version)
	assert.Equal(t, "2.7.2", results[1].Version)
	assert.Equal(t, "3.0.0", results[2].Version)
	assert.Equal(t, int64(3), obs.starts.Load())
	assert.Equal(t, int64(3), obs.finishes.Load())
}

func TestRunAllParallelPreservesOrder(t *testing.T) {
	entries := []registry.InterpreterEntry{
		fakeInterpreter(t, "2.7.1", "A", 0),
		fakeInterpreter(t, "2.7.2", "B", 0),
		fakeInterpreter(t, "3.0.0", "C", 0),
		fakeInterpreter(t, "3.1.0", "D", 0),
	}
	obs := &nopObserver{}
	results, err := executor.RunAll(context.Background(), entries, api.RunReq{
		InterpArgs: []string{"x"},
		Parallel:   3,
	}, obs)
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, "A\n", string(results[0].Output))
	assert.Equal(t, "B\n", string(results[1].Output))
	assert.Equal(t, "C\n", string(results[2].Output))
	assert.Equal(t, "D\n", string(results[3].Output))
}

func TestRunAllCancelledBeforeStart(t *testing.T) {
	entries := []registry.InterpreterEntry{
		fakeInterpreter(t, "2.7.1", "A", 0),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := executor.RunAll(ctx, entries, api.RunReq{
		InterpArgs: []string{"x"},
	}, &nopObserver{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
