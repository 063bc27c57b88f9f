// Package natsgath streams session messages to a NATS subject. Payloads are
// snappy-compressed JSON.
package natsgath

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spanrun/spanrun/api"
)

type natsGatherer struct {
	nc          *nats.Conn
	subject     string
	sessionUuid string
}

// New creates a NATS gatherer publishing to the given subject.
func New(nc *nats.Conn, sessionUuid string, subject string) *natsGatherer {
	return &natsGatherer{
		nc:          nc,
		subject:     subject,
		sessionUuid: sessionUuid,
	}
}

func (s *natsGatherer) StartSession(req api.RunReq, numVersions int) {
	s.send(api.NewStartedSession(s.sessionUuid, req.Pattern, numVersions,
		time.Now().Format(time.RFC3339)))
}

func (s *natsGatherer) StartRun(version string) {
	s.send(api.NewStartedRun(s.sessionUuid, version))
}

func (s *natsGatherer) FinishRun(res api.RunResult) {
	out := trimStrToRect(string(res.Output),
		api.MaxStreamOutputHeight, api.MaxStreamOutputWidth)
	s.send(api.NewFinishedRun(s.sessionUuid, res, out))
}

func (s *natsGatherer) FinishSession(exitCode int) {
	s.send(api.NewFinishedSession(s.sessionUuid, exitCode))
}
