package environment

import (
	"os"

	"github.com/joho/godotenv"
)

// EnvConfig holds endpoints for the optional streaming gatherers. Values
// come from the process environment, optionally seeded from a .env file.
type EnvConfig struct {
	NatsURL     string
	NatsSubject string

	SqsQueueUrl string
	AwsRegion   string
}

// ReadEnvConfig loads .env if present and reads the streaming endpoints.
// Missing keys stay empty; callers decide whether a gatherer is required.
func ReadEnvConfig() *EnvConfig {
	// Absence of a .env file is fine; the real environment still applies.
	_ = godotenv.Load()

	result := &EnvConfig{}

	result.NatsURL = os.Getenv("SPANRUN_NATS_URL")
	result.NatsSubject = os.Getenv("SPANRUN_NATS_SUBJECT")
	if result.NatsSubject == "" {
		result.NatsSubject = "spanrun.results"
	}

	result.SqsQueueUrl = os.Getenv("SPANRUN_SQS_QUEUE_URL")
	result.AwsRegion = os.Getenv("AWS_REGION")
	if result.AwsRegion == "" {
		result.AwsRegion = "eu-central-1"
	}

	return result
}
