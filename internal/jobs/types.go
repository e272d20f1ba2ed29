// Package jobs defines the background-work contracts for the maturity
// sweep: the job record, the publisher/consumer pair, and the job store
// used for status inspection over the API.
package jobs

import (
	"context"
	"time"
)

// JobStatus represents the current state of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// SweepJob is one maturity-sweep run: scan active deposits maturing on or
// before Date, notify each owner, flip the records to matured.
type SweepJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// Date is the ISO cutoff date for the sweep, normally today.
	Date string `json:"date"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// Matured is the number of deposits flipped by a completed sweep.
	Matured int `json:"matured"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains failure details for a failed job.
	Error string `json:"error,omitempty"`

	// RetryCount and MaxRetries drive the at-least-once retry loop.
	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`
}

// Publisher publishes sweep jobs to a queue. The abstraction keeps the
// in-memory queue swappable for Cloud Tasks or Pub/Sub later.
type Publisher interface {
	PublishSweep(ctx context.Context, job *SweepJob) error
	Close() error
}

// Consumer consumes sweep jobs from a queue.
type Consumer interface {
	// Start begins consuming; handler runs once per job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming and waits for the in-flight job to finish.
	Stop(ctx context.Context) error
}

// JobHandler processes one job. A returned error marks the job failed and
// eligible for retry.
type JobHandler func(ctx context.Context, job *SweepJob) error

// JobStore tracks job state for inspection over the API.
type JobStore interface {
	SaveJob(ctx context.Context, job *SweepJob) error
	GetJob(ctx context.Context, jobID string) (*SweepJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*SweepJob, error)
}

// JobFilter narrows ListJobs results.
type JobFilter struct {
	Status JobStatus
	Limit  int
	Offset int
}
