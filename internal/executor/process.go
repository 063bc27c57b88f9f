package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// process wraps one child process with stdout and stderr captured into a
// single buffer so the bytes stay in generation order.
type process struct {
	cmd     *exec.Cmd
	out     bytes.Buffer
	started bool
}

// newShellProcess builds a `sh -c` invocation of a shell command string
// inside the workspace.
func newShellProcess(ctx context.Context, ws *Workspace, command string) *process {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Dir = ws.Dir()
	cmd.Env = ws.Env()
	return wrap(cmd)
}

// newBinaryProcess builds a direct invocation of the interpreter binary with
// verbatim arguments inside the workspace.
func newBinaryProcess(ctx context.Context, ws *Workspace, bin string, args []string) *process {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = ws.Dir()
	cmd.Env = ws.Env()
	return wrap(cmd)
}

func wrap(cmd *exec.Cmd) *process {
	p := &process{cmd: cmd}
	cmd.Stdout = &p.out
	cmd.Stderr = &p.out
	return p
}

func (p *process) Start() error {
	if p.started {
		panic("process should not be started twice")
	}
	p.started = true
	return p.cmd.Start()
}

// Wait blocks until the child exits and returns its exit code. A non-zero
// exit is not an error here; only failures to observe the process are.
func (p *process) Wait() (int64, error) {
	if !p.started {
		panic("process should be started before waiting")
	}
	err := p.cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return -1, err
		}
	}
	return int64(p.cmd.ProcessState.ExitCode()), nil
}

// Output returns everything the child wrote, interleaved in generation order.
func (p *process) Output() []byte {
	return p.out.Bytes()
}
