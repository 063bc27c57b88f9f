package api

// MsgType is a message type for streaming responses
type MsgType string

// Streaming message type constants
const (
	StartSessionMsg  MsgType = "session_start"
	StartRunMsg      MsgType = "run_start"
	FinishRunMsg     MsgType = "run_finish"
	FinishSessionMsg MsgType = "session_finish"
)

// Output size constraints for streaming
const (
	MaxStreamOutputHeight = 40
	MaxStreamOutputWidth  = 80
)

// Header is the common header for all streaming response messages
type Header struct {
	SessionUuid string  `json:"session_uuid"`
	MsgType     MsgType `json:"msg_type"`
}

// StartedSession is sent once before the first version runs
type StartedSession struct {
	Header
	Pattern     string `json:"pattern"`
	NumVersions int    `json:"num_versions"`
	StartedTime string `json:"started_time"`
}

// StartedRun is sent when a version's execution begins
type StartedRun struct {
	Header
	Version string `json:"version"`
}

// FinishedRun carries one version's result with trimmed output
type FinishedRun struct {
	Header
	Version    string    `json:"version"`
	Status     RunStatus `json:"status"`
	ExitCode   int64     `json:"exit_code"`
	Output     string    `json:"output"`
	WallMillis int64     `json:"wall_ms"`
}

// FinishedSession is the terminal message of a session
type FinishedSession struct {
	Header
	ExitCode int `json:"exit_code"`
}

func NewStartedSession(uuid string, pattern string, numVersions int, startedTime string) StartedSession {
	return StartedSession{
		Header:      Header{SessionUuid: uuid, MsgType: StartSessionMsg},
		Pattern:     pattern,
		NumVersions: numVersions,
		StartedTime: startedTime,
	}
}

func NewStartedRun(uuid string, version string) StartedRun {
	return StartedRun{
		Header:  Header{SessionUuid: uuid, MsgType: StartRunMsg},
		Version: version,
	}
}

func NewFinishedRun(uuid string, res RunResult, output string) FinishedRun {
	return FinishedRun{
		Header:     Header{SessionUuid: uuid, MsgType: FinishRunMsg},
		Version:    res.Version,
		Status:     res.Status,
		ExitCode:   res.ExitCode,
		Output:     output,
		WallMillis: res.WallMillis,
	}
}

func NewFinishedSession(uuid string, exitCode int) FinishedSession {
	return FinishedSession{
		Header:   Header{SessionUuid: uuid, MsgType: FinishSessionMsg},
		ExitCode: exitCode,
	}
}
