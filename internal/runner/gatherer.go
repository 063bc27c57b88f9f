package runner

import (
	"github.com/spanrun/spanrun/api"
)

// ResultGatherer observes a session's lifecycle. The terminal gatherer turns
// these into progress lines; the NATS and SQS gatherers stream them to a
// queue. FinishRun is always invoked in registry order, even when runs
// execute in parallel.
type ResultGatherer interface {
	StartSession(req api.RunReq, numVersions int)
	StartRun(version string)
	FinishRun(res api.RunResult)
	FinishSession(exitCode int)
}

// fanout relays events to every attached gatherer.
type fanout struct {
	gatherers []ResultGatherer
}

func (f *fanout) StartSession(req api.RunReq, numVersions int) {
	for _, g := range f.gatherers {
		g.StartSession(req, numVersions)
	}
}

func (f *fanout) StartRun(version string) {
	for _, g := range f.gatherers {
		g.StartRun(version)
	}
}

func (f *fanout) FinishRun(res api.RunResult) {
	for _, g := range f.gatherers {
		g.FinishRun(res)
	}
}

func (f *fanout) FinishSession(exitCode int) {
	for _, g := range f.gatherers {
		g.FinishSession(exitCode)
	}
}
