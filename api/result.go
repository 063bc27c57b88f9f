package api

// RunStatus classifies how a per-version run ended.
type RunStatus string

const (
	// StatusCompleted means the main command ran to completion; its exit
	// code (zero or not) is in RunResult.ExitCode.
	StatusCompleted RunStatus = "completed"
	// StatusLaunchFailed means the interpreter binary could not be started
	// at all (missing or non-executable). Output is empty.
	StatusLaunchFailed RunStatus = "launch_failed"
	// StatusSetupFailed means the per-version setup step failed; the main
	// command was not attempted.
	StatusSetupFailed RunStatus = "setup_failed"
)

// RunResult is the immutable record of one version's execution.
type RunResult struct {
	Version string    `json:"version"`
	Output  []byte    `json:"output"`
	Status  RunStatus `json:"status"`

	// ExitCode is the main command's exit code when Status is
	// StatusCompleted, otherwise -1.
	ExitCode int64 `json:"exit_code"`

	WallMillis int64 `json:"wall_ms"`
}

// Ok reports whether the run completed normally with a zero exit code.
func (r RunResult) Ok() bool {
	return r.Status == StatusCompleted && r.ExitCode == 0
}
