package domain

import "time"

// IndexJob is the ephemeral unit of work for one document extraction.
// Jobs exist only inside the coordinator's queue and are destroyed on
// completion or shutdown. At most one live job exists per document id.
type IndexJob struct {
	// DocumentID identifies the document to extract.
	DocumentID string

	// EnqueuedAt is when the job entered the queue.
	EnqueuedAt time.Time

	// Attempt counts explicit retries, starting at 1.
	Attempt int
}

// ProgressSnapshot is an immutable point-in-time summary of pipeline
// progress, published to subscribers after every job completion.
type ProgressSnapshot struct {
	// Total is the number of jobs accepted for the current run.
	Total int `json:"total"`

	// Completed is the number of finished jobs, successes and
	// failures alike.
	Completed int `json:"completed"`

	// Errors is the number of jobs that finished in failure.
	Errors int `json:"errors"`

	// Active lists the document ids currently being extracted.
	Active []string `json:"active,omitempty"`
}

// Done reports whether the run has drained: every accepted job has
// completed and no extraction is in flight.
func (p ProgressSnapshot) Done() bool {
	return p.Completed >= p.Total && len(p.Active) == 0
}
