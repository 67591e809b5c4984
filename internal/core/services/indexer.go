package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driven"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Ensure Coordinator implements the interface.
var _ driving.Indexer = (*Coordinator)(nil)

// subscriberBuffer is the snapshot backlog kept per subscriber. When a
// subscriber lags, the oldest buffered snapshot is dropped so the
// newest (including the final all-done snapshot) always lands.
const subscriberBuffer = 16

// IndexerConfig configures the Coordinator.
type IndexerConfig struct {
	// Workers is the pool size. Defaults to runtime.NumCPU().
	Workers int

	// QueueSize bounds the job queue. Defaults to 1024.
	QueueSize int

	// ExtractTimeout aborts a single extraction after this duration
	// and records the document as failed with reason Timeout.
	// Zero disables the timeout.
	ExtractTimeout time.Duration
}

func (c IndexerConfig) withDefaults() IndexerConfig {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 1024
	}
	return c
}

// Coordinator owns the indexing pipeline: a fixed worker pool pulling
// jobs from a FIFO queue, invoking the extractor, committing results
// to the store, and publishing progress to subscribers.
//
// Per document, extraction strictly precedes persistence; across
// documents no ordering is guaranteed. At most one live job exists per
// document id.
type Coordinator struct {
	docs      driven.DocumentStore
	extractor driven.Extractor
	cfg       IndexerConfig

	queue chan domain.IndexJob

	mu        sync.Mutex
	live      map[string]struct{} // queued or running document ids
	active    map[string]struct{} // currently extracting
	attempts  map[string]int
	total     int
	completed int
	errored   int
	cancelled bool
	paused    bool
	resumeCh  chan struct{}
	subs      map[chan domain.ProgressSnapshot]struct{}
	started   bool

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewCoordinator creates an indexing coordinator. Start must be called
// before enqueued jobs are processed.
func NewCoordinator(docs driven.DocumentStore, extractor driven.Extractor, cfg IndexerConfig) *Coordinator {
	return &Coordinator{
		docs:      docs,
		extractor: extractor,
		cfg:       cfg.withDefaults(),
		queue:     make(chan domain.IndexJob, cfg.withDefaults().QueueSize),
		live:      make(map[string]struct{}),
		active:    make(map[string]struct{}),
		attempts:  make(map[string]int),
		subs:      make(map[chan domain.ProgressSnapshot]struct{}),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the worker pool. Non-blocking; idempotent.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return
	}
	c.started = true

	for i := 0; i < c.cfg.Workers; i++ {
		c.wg.Add(1)
		go c.worker(ctx)
	}
	logger.Info("Indexing pipeline started with %d workers", c.cfg.Workers)
}

// Enqueue queues one document for extraction. Idempotent: an id that
// is already queued or running is a no-op and returns false. While the
// pipeline is cancelled no new jobs are accepted; the document stays
// pending and ResumePending will pick it up.
func (c *Coordinator) Enqueue(_ context.Context, documentID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelled {
		return false, nil
	}
	if _, ok := c.live[documentID]; ok {
		return false, nil
	}

	job := domain.IndexJob{
		DocumentID: documentID,
		EnqueuedAt: time.Now(),
		Attempt:    c.attempts[documentID] + 1,
	}

	select {
	case c.queue <- job:
	default:
		return false, domain.ErrQueueFull
	}

	c.attempts[documentID] = job.Attempt
	c.live[documentID] = struct{}{}
	c.total++
	return true, nil
}

// ResumePending lifts a previous cancellation and enqueues every
// pending document. Returns the number of jobs enqueued.
func (c *Coordinator) ResumePending(ctx context.Context) (int, error) {
	c.mu.Lock()
	c.cancelled = false
	c.mu.Unlock()

	pending, err := c.docs.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("listing pending documents: %w", err)
	}

	enqueued := 0
	for i := range pending {
		ok, err := c.Enqueue(ctx, pending[i].ID)
		if err != nil {
			return enqueued, err
		}
		if ok {
			enqueued++
		}
	}
	return enqueued, nil
}

// Cancel stops processing immediately. The queue is drained and each
// queued document reverts to pending; in-flight extractions finish and
// commit naturally.
func (c *Coordinator) Cancel(ctx context.Context) {
	c.mu.Lock()
	c.cancelled = true
	c.mu.Unlock()

	for {
		select {
		case job := <-c.queue:
			c.revert(ctx, job)
		default:
			logger.Info("Indexing cancelled")
			c.publish()
			return
		}
	}
}

// Resume lifts a storage-failure pause after confirming the store is
// healthy again.
func (c *Coordinator) Resume(ctx context.Context) error {
	if err := c.docs.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		c.paused = false
		close(c.resumeCh)
		logger.Info("Indexing pipeline resumed")
	}
	return nil
}

// Subscribe registers a progress listener.
func (c *Coordinator) Subscribe() <-chan domain.ProgressSnapshot {
	ch := make(chan domain.ProgressSnapshot, subscriberBuffer)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (c *Coordinator) Unsubscribe(target <-chan domain.ProgressSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.subs {
		if (<-chan domain.ProgressSnapshot)(ch) == target {
			delete(c.subs, ch)
			close(ch)
			return
		}
	}
}

// Progress returns the current snapshot.
func (c *Coordinator) Progress() domain.ProgressSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Shutdown stops dequeuing and waits up to timeout for in-flight jobs.
// The remaining queue is discarded without touching those documents.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.stopOnce.Do(func() { close(c.stopCh) })

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		return errors.New("shutdown timed out waiting for in-flight jobs")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
	return nil
}

// worker is the pool loop: dequeue, admit, process.
func (c *Coordinator) worker(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopCh:
			return
		case job := <-c.queue:
			select {
			case <-c.stopCh:
				// Raced with Shutdown; the document stays pending
				// for the next session.
				return
			default:
			}
			c.mu.Lock()
			cancelled := c.cancelled
			c.mu.Unlock()
			if cancelled {
				// Raced with Cancel's drain; treat as never dequeued.
				c.revert(ctx, job)
				continue
			}
			c.process(ctx, job)
		}
	}
}

// process runs one job end to end: mark indexing, extract, persist,
// publish progress. Extraction failures become a failed document
// state; storage failures pause the pipeline and requeue the job.
func (c *Coordinator) process(ctx context.Context, job domain.IndexJob) {
	if !c.awaitResume(ctx) {
		c.revert(ctx, job)
		return
	}

	doc, err := c.docs.Get(ctx, job.DocumentID)
	if errors.Is(err, domain.ErrNotFound) {
		// Removed while queued; nothing to do.
		c.finish(job, false)
		return
	}
	if err != nil {
		c.pauseAndRequeue(ctx, job, err)
		return
	}

	c.setActive(job.DocumentID, true)
	defer c.setActive(job.DocumentID, false)

	if err := c.docs.SetStatus(ctx, job.DocumentID, domain.StatusIndexing); err != nil {
		c.pauseAndRequeue(ctx, job, err)
		return
	}

	res, extractErr := c.extract(ctx, doc.Path)

	if extractErr != nil {
		if errors.Is(extractErr, context.Canceled) || ctx.Err() != nil {
			// Interrupted, not a bad document: leave it pending so
			// the next run picks it up.
			c.revert(ctx, job)
			return
		}
		reason := domain.FailureReason(extractErr)
		logger.Warn("Extraction failed for %s: %s", doc.Path, reason)
		if err := c.docs.SetFailure(ctx, job.DocumentID, reason); err != nil {
			c.pauseAndRequeue(ctx, job, err)
			return
		}
		c.finish(job, true)
		return
	}

	if err := c.docs.SetIndexResult(ctx, job.DocumentID, *res); err != nil {
		c.pauseAndRequeue(ctx, job, err)
		return
	}
	logger.Debug("Indexed %s (%d pages)", doc.Path, res.PageCount)
	c.finish(job, false)
}

// extract runs the extractor, applying the per-document timeout. The
// extractor observes context cancellation between pages, so a timed
// out extraction releases its file handle shortly after.
func (c *Coordinator) extract(ctx context.Context, path string) (*domain.Extraction, error) {
	if c.cfg.ExtractTimeout <= 0 {
		return c.extractor.Extract(ctx, path)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ExtractTimeout)
	defer cancel()

	type result struct {
		res *domain.Extraction
		err error
	}
	ch := make(chan result, 1)
	go func() {
		res, err := c.extractor.Extract(ctx, path)
		ch <- result{res, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && ctx.Err() == context.DeadlineExceeded {
			return nil, domain.ErrExtractionTimeout
		}
		return r.res, r.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, domain.ErrExtractionTimeout
		}
		return nil, ctx.Err()
	}
}

// awaitResume blocks while the pipeline is paused after a storage
// failure. Returns false if the context or pipeline stopped first.
func (c *Coordinator) awaitResume(ctx context.Context) bool {
	for {
		c.mu.Lock()
		if !c.paused {
			c.mu.Unlock()
			return true
		}
		resume := c.resumeCh
		c.mu.Unlock()

		select {
		case <-resume:
		case <-ctx.Done():
			return false
		case <-c.stopCh:
			return false
		}
	}
}

// pauseAndRequeue reacts to a storage failure: the pipeline stops
// processing (jobs stay queued) until Resume confirms store health.
func (c *Coordinator) pauseAndRequeue(ctx context.Context, job domain.IndexJob, cause error) {
	if ctx.Err() != nil {
		// The command context was cancelled, not the store: the
		// failed write is a side effect of shutting down.
		c.revert(ctx, job)
		return
	}

	logger.Warn("Storage failure, pausing pipeline: %v", cause)

	c.mu.Lock()
	if !c.paused {
		c.paused = true
		c.resumeCh = make(chan struct{})
	}
	c.mu.Unlock()

	select {
	case c.queue <- job:
	default:
		// Queue full; drop the job rather than block a worker. The
		// document keeps its current status and is recovered by
		// ResumePending.
		c.revert(ctx, job)
	}
}

// revert returns an unprocessed or interrupted job's document to
// pending and forgets the job. The status write outlives the caller's
// context so a cancelled run still leaves the document resumable.
func (c *Coordinator) revert(ctx context.Context, job domain.IndexJob) {
	if err := c.docs.SetStatus(context.WithoutCancel(ctx), job.DocumentID, domain.StatusPending); err != nil {
		logger.Warn("Could not revert %s to pending: %v", job.DocumentID, err)
	}

	c.mu.Lock()
	delete(c.live, job.DocumentID)
	delete(c.attempts, job.DocumentID)
	if c.total > 0 {
		c.total--
	}
	c.mu.Unlock()
}

// finish completes a job attempt and publishes progress.
func (c *Coordinator) finish(job domain.IndexJob, failed bool) {
	c.mu.Lock()
	delete(c.live, job.DocumentID)
	delete(c.attempts, job.DocumentID)
	c.completed++
	if failed {
		c.errored++
	}
	c.mu.Unlock()

	c.publish()
}

func (c *Coordinator) setActive(id string, on bool) {
	c.mu.Lock()
	if on {
		c.active[id] = struct{}{}
	} else {
		delete(c.active, id)
	}
	c.mu.Unlock()
}

func (c *Coordinator) snapshotLocked() domain.ProgressSnapshot {
	snap := domain.ProgressSnapshot{
		Total:     c.total,
		Completed: c.completed,
		Errors:    c.errored,
	}
	for id := range c.active {
		snap.Active = append(snap.Active, id)
	}
	return snap
}

// publish delivers the current snapshot to every subscriber without
// blocking: a full buffer sheds its oldest entry first, so the newest
// snapshot is always retained. Sends happen under the mutex so they
// never race with Unsubscribe closing a channel; every send is
// non-blocking, so the lock is held only briefly.
func (c *Coordinator) publish() {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.snapshotLocked()
	for ch := range c.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
