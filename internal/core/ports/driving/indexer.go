package driving

import (
	"context"
	"time"

	"github.com/folio-labs/folio-cli/internal/core/domain"
)

// Indexer owns the background extraction pipeline: a fixed worker pool
// draining a FIFO queue of index jobs.
type Indexer interface {
	// Start launches the worker pool. Non-blocking; idempotent.
	Start(ctx context.Context)

	// Enqueue queues one document for extraction. Idempotent: a
	// document already queued or running is a no-op and returns
	// false. Returns domain.ErrQueueFull when the queue is at
	// capacity.
	Enqueue(ctx context.Context, documentID string) (bool, error)

	// ResumePending enqueues every pending document and lifts a
	// previous cancellation. Returns the number of jobs enqueued.
	ResumePending(ctx context.Context) (int, error)

	// Cancel stops processing immediately. Queued jobs are discarded
	// and their documents revert to pending; in-flight extractions
	// finish and commit naturally.
	Cancel(ctx context.Context)

	// Resume lifts a storage-failure pause once the store responds
	// to a health check again.
	Resume(ctx context.Context) error

	// Subscribe registers a progress listener. Delivery never blocks
	// the pipeline: when a subscriber lags, older snapshots are
	// dropped in favour of newer ones. The final all-done snapshot is
	// always retained.
	Subscribe() <-chan domain.ProgressSnapshot

	// Unsubscribe removes a listener and closes its channel.
	Unsubscribe(ch <-chan domain.ProgressSnapshot)

	// Progress returns the current snapshot.
	Progress() domain.ProgressSnapshot

	// Shutdown stops dequeuing and waits up to timeout for in-flight
	// jobs. The remaining queue is discarded without touching those
	// documents; they stay pending for the next session.
	Shutdown(timeout time.Duration) error
}
