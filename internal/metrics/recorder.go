// Package metrics records GraphQL request outcomes.
package metrics

import "time"

// Result classifies the outcome of a single GraphQL request.
type Result string

const (
	ResultSuccess      Result = "success"
	ResultGraphQLError Result = "graphql_error"
	ResultFailed       Result = "failed"
)

// Recorder receives one observation per GraphQL request.
type Recorder interface {
	ObserveRequest(operation string, d time.Duration, result Result)
}

// NoopRecorder discards observations (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRequest(string, time.Duration, Result) {}
