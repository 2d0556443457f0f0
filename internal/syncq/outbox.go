package syncq

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/sakanapp/sakan/internal/logging"
	"github.com/sakanapp/sakan/internal/models"
)

// Result reports how a mutation left the building. Exactly one of
// Delivered, Queued, Rejected or Local is true.
type Result struct {
	// Delivered: the proxy confirmed the operation; Response holds its reply.
	Delivered bool
	// Queued: the proxy was unreachable and the operation is parked for
	// retry under QueueID. The caller should still apply the optimistic
	// local change.
	Queued  bool
	QueueID string
	// Rejected: the proxy answered but refused the operation; Response.Error
	// carries its reason. Rejections are definitive and never retried.
	Rejected bool
	// Local: no proxy is configured; the caller applies the change locally
	// and nothing is queued.
	Local bool

	Response *Response
}

// drain backoff: fibonacci starting at 500ms, at most 3 attempts per entry
// per pass. Entries that still fail keep their place for the next cycle.
const (
	drainBaseBackoff     = 500 * time.Millisecond
	drainAttemptsPerPass = 3
)

// Outbox couples a Remote with the durable queue. One Outbox instance per
// process; the drain guard is process-local.
type Outbox struct {
	remote Remote
	queue  QueueRepository
	log    logging.Logger

	drainMu sync.Mutex
	online  chan struct{}

	// backoffBase is shrunk in tests; the policy itself stays fixed.
	backoffBase     time.Duration
	attemptsPerPass uint64
}

func NewOutbox(remote Remote, queue QueueRepository, log logging.Logger) *Outbox {
	return &Outbox{
		remote:          remote,
		queue:           queue,
		log:             log,
		online:          make(chan struct{}, 1),
		backoffBase:     drainBaseBackoff,
		attemptsPerPass: drainAttemptsPerPass,
	}
}

// EnqueueOrSend attempts immediate delivery and falls back to the queue.
// Transport failures never surface to the caller as errors: the returned
// Result says whether the operation was delivered, queued, rejected by the
// proxy, or should be applied locally because no proxy is configured. The
// only error returns are queue persistence failures, where losing the
// mutation silently would be worse.
func (o *Outbox) EnqueueOrSend(ctx context.Context, resource, method string, body []byte) (*Result, error) {
	resp, err := o.remote.Send(ctx, resource, method, body)
	if err == nil {
		if !resp.Success {
			return &Result{Rejected: true, Response: resp}, nil
		}
		return &Result{Delivered: true, Response: resp}, nil
	}
	if errors.Is(err, ErrNotConfigured) {
		return &Result{Local: true}, nil
	}

	op := &models.QueuedOperation{
		QueueID:    uuid.NewString(),
		Resource:   resource,
		Method:     method,
		Body:       body,
		EnqueuedAt: time.Now().UTC(),
		LastError:  err.Error(),
	}
	if qErr := o.queue.Append(ctx, op); qErr != nil {
		return nil, qErr
	}

	o.log.Warn(ctx, "operation queued for retry",
		"resource", resource, "method", method, "queue_id", op.QueueID, "cause", err.Error())
	return &Result{Queued: true, QueueID: op.QueueID}, nil
}

// Drain attempts delivery of every queued operation, sequentially and in
// enqueue order. Only one pass runs at a time: a trigger that arrives while
// a pass is in flight gets ErrDrainBusy and is dropped, which is the guard
// against a retry timer firing over a slow pass.
//
// Once an operation for a resource root fails, later operations on the same
// root are skipped for this pass so edits stay causally ordered. An
// operation the proxy definitively rejects is removed rather than retried.
func (o *Outbox) Drain(ctx context.Context) (delivered, remaining int, err error) {
	if !o.drainMu.TryLock() {
		return 0, 0, ErrDrainBusy
	}
	defer o.drainMu.Unlock()

	ops, err := o.queue.All(ctx)
	if err != nil {
		return 0, 0, err
	}

	failedRoots := map[string]bool{}
	for _, op := range ops {
		root := resourceRoot(op.Resource)
		if failedRoots[root] {
			remaining++
			continue
		}

		resp, sendErr := o.sendWithBackoff(ctx, op)
		if sendErr != nil {
			if markErr := o.queue.MarkAttempt(ctx, op.QueueID, sendErr.Error()); markErr != nil {
				return delivered, remaining, markErr
			}
			o.log.Warn(ctx, "queued operation still failing",
				"queue_id", op.QueueID, "resource", op.Resource, "cause", sendErr.Error())
			failedRoots[root] = true
			remaining++
			continue
		}

		if rmErr := o.queue.Remove(ctx, op.QueueID); rmErr != nil {
			return delivered, remaining, rmErr
		}
		if !resp.Success {
			o.log.Warn(ctx, "queued operation rejected by proxy",
				"queue_id", op.QueueID, "resource", op.Resource, "reason", resp.Error)
			continue
		}
		delivered++
		o.log.Info(ctx, "queued operation delivered",
			"queue_id", op.QueueID, "resource", op.Resource)
	}
	return delivered, remaining, nil
}

func (o *Outbox) sendWithBackoff(ctx context.Context, op *models.QueuedOperation) (*Response, error) {
	var resp *Response
	backoff := retry.WithMaxRetries(o.attemptsPerPass-1, retry.NewFibonacci(o.backoffBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var sendErr error
		resp, sendErr = o.remote.Send(ctx, op.Resource, op.Method, op.Body)
		if sendErr != nil {
			if errors.Is(sendErr, ErrNotConfigured) {
				return sendErr
			}
			return retry.RetryableError(sendErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Pending returns the queued operations in enqueue order, for display.
func (o *Outbox) Pending(ctx context.Context) ([]*models.QueuedOperation, error) {
	return o.queue.All(ctx)
}

// NotifyOnline signals restored connectivity; whoever consumes Online picks
// it up immediately. Safe to call from any goroutine, never blocks.
func (o *Outbox) NotifyOnline() {
	select {
	case o.online <- struct{}{}:
	default:
	}
}

// Online is the connectivity signal channel fed by NotifyOnline. The
// service-level sync loop selects on it alongside its drain ticker.
func (o *Outbox) Online() <-chan struct{} { return o.online }
