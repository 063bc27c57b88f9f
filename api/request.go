package api

// RunReq describes one spanrun session: which versions to target and what to
// execute on each of them. It is shared read-only across all per-version runs.
type RunReq struct {
	// Uuid identifies the session in streamed responses.
	Uuid string `json:"uuid"`

	// Pattern selects the versions to run against. Empty means all.
	// Accepts an exact id ("3.7.3"), a dotted-prefix wildcard ("2.7.x"),
	// a comma-separated list of patterns, or a range ("3.5 ~ 3.8").
	Pattern string `json:"pattern"`

	// MinVersion / MaxVersion are optional inclusive bounds combined with
	// Pattern. Empty means unbounded.
	MinVersion string `json:"min_version,omitempty"`
	MaxVersion string `json:"max_version,omitempty"`

	// ExecCmd is a shell command executed once per version with the
	// version's bin directory prepended to PATH. Mutually exclusive with
	// InterpArgs.
	ExecCmd string `json:"exec_cmd,omitempty"`

	// InterpArgs are passed verbatim to the version's interpreter binary.
	InterpArgs []string `json:"interp_args,omitempty"`

	// SetupCmd is an optional per-version setup step. Its output is
	// discarded; if it fails the version is recorded as setup_failed and
	// the main command is not attempted.
	SetupCmd string `json:"setup_cmd,omitempty"`

	// BeforeCmd / AfterCmd run once per session, outside any version
	// context. Their output renders as dedicated report sections.
	BeforeCmd string `json:"before_cmd,omitempty"`
	AfterCmd  string `json:"after_cmd,omitempty"`

	// Parallel caps how many versions may execute concurrently.
	// Values below 2 mean strictly sequential execution.
	Parallel int `json:"parallel,omitempty"`
}

// HasMainCmd reports whether the request carries something to execute.
func (r RunReq) HasMainCmd() bool {
	return r.ExecCmd != "" || len(r.InterpArgs) > 0
}
