// Package sqsgath streams session messages to an SQS response queue as JSON.
package sqsgath

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/spanrun/spanrun/api"
)

type sqsQueueGatherer struct {
	sqsClient   *sqs.Client
	queueUrl    string
	sessionUuid string
}

// New creates an SQS gatherer sending to the given response queue.
func New(ctx context.Context, sessionUuid string, region string, queueUrl string) (*sqsQueueGatherer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &sqsQueueGatherer{
		sqsClient:   sqs.NewFromConfig(cfg),
		queueUrl:    queueUrl,
		sessionUuid: sessionUuid,
	}, nil
}

func (s *sqsQueueGatherer) StartSession(req api.RunReq, numVersions int) {
	s.send(api.NewStartedSession(s.sessionUuid, req.Pattern, numVersions,
		time.Now().Format(time.RFC3339)))
}

func (s *sqsQueueGatherer) StartRun(version string) {
	s.send(api.NewStartedRun(s.sessionUuid, version))
}

func (s *sqsQueueGatherer) FinishRun(res api.RunResult) {
	out := trimStrToRect(string(res.Output),
		api.MaxStreamOutputHeight, api.MaxStreamOutputWidth)
	s.send(api.NewFinishedRun(s.sessionUuid, res, out))
}

func (s *sqsQueueGatherer) FinishSession(exitCode int) {
	s.send(api.NewFinishedSession(s.sessionUuid, exitCode))
}
