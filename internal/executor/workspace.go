package executor

import (
	"fmt"
	"os"
)

// Workspace is the isolated working context for one version's run: a fresh
// working directory and an explicit environment. Side effects from one
// version's setup step stay inside its workspace and cannot leak into a
// sibling run.
type Workspace struct {
	dir string
	env []string
}

// NewWorkspace creates a temp working directory and derives the run
// environment from the parent process environment, with the interpreter's
// bin directory prepended to PATH and HOME pointed into the workspace.
func NewWorkspace(binDir string) (*Workspace, error) {
	dir, err := os.MkdirTemp("", "spanrun-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	env := make([]string, 0, len(os.Environ())+2)
	pathSet := false
	for _, kv := range os.Environ() {
		switch {
		case hasKey(kv, "PATH"):
			env = append(env, "PATH="+binDir+":"+kv[len("PATH="):])
			pathSet = true
		case hasKey(kv, "HOME"):
			// replaced below
		default:
			env = append(env, kv)
		}
	}
	if !pathSet {
		env = append(env, "PATH="+binDir)
	}
	env = append(env, "HOME="+dir)

	return &Workspace{dir: dir, env: env}, nil
}

func hasKey(kv string, key string) bool {
	return len(kv) > len(key) && kv[len(key)] == '=' && kv[:len(key)] == key
}

// Dir returns the workspace's working directory.
func (w *Workspace) Dir() string { return w.dir }

// Env returns the run environment. Callers must not modify it.
func (w *Workspace) Env() []string { return w.env }

// Close removes the working directory and everything the run left in it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}
