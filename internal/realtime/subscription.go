package realtime

import (
	"context"
	"sync/atomic"

	"jobstream/internal/domain/job"
)

// Handler receives each new listing dispatched by the Listener.
type Handler func(ctx context.Context, j job.Job)

// Subscription is a cancellable registration on the Listener. Closing it
// is idempotent and guarantees the handler is never invoked afterwards.
type Subscription struct {
	listener *Listener
	fn       Handler
	closed   atomic.Bool
}

func (s *Subscription) Active() bool {
	return s != nil && !s.closed.Load()
}

func (s *Subscription) Close() {
	if s == nil {
		return
	}
	if s.closed.CompareAndSwap(false, true) {
		s.listener.remove(s)
	}
}

// dispatch re-checks liveness right before invoking the handler so a
// Close racing with an in-flight notification wins.
func (s *Subscription) dispatch(ctx context.Context, j job.Job) {
	if !s.Active() {
		return
	}
	s.fn(ctx, j)
}
