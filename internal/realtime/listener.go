package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"jobstream/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const channelNewJob = "new_job"

const reconnectDelay = 3 * time.Second

// JobFetcher loads the full listing for a notification payload.
type JobFetcher interface {
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
}

type newJobPayload struct {
	ID string `json:"id"`
}

// Listener holds a dedicated Postgres connection on LISTEN new_job and
// fans each fresh listing out to its subscriptions.
type Listener struct {
	dsn    string
	jobs   JobFetcher
	logger *log.Logger

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewListener(dsn string, jobs JobFetcher, logger *log.Logger) *Listener {
	return &Listener{
		dsn:    dsn,
		jobs:   jobs,
		logger: logger,
		subs:   make(map[*Subscription]struct{}),
	}
}

func (l *Listener) Subscribe(fn Handler) *Subscription {
	sub := &Subscription{listener: l, fn: fn}
	l.mu.Lock()
	l.subs[sub] = struct{}{}
	l.mu.Unlock()
	return sub
}

func (l *Listener) remove(sub *Subscription) {
	l.mu.Lock()
	delete(l.subs, sub)
	l.mu.Unlock()
}

// Run blocks until ctx is cancelled, reconnecting after transient
// connection failures.
func (l *Listener) Run(ctx context.Context) error {
	for {
		if err := l.listen(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if l.logger != nil {
				l.logger.Printf("Realtime listener error | error=%v retry_in=%s", err, reconnectDelay)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = conn.Close(closeCtx)
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+channelNewJob); err != nil {
		return err
	}
	if l.logger != nil {
		l.logger.Printf("Realtime listener started | channel=%s", channelNewJob)
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		l.handle(ctx, notification.Payload)
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	id, err := parsePayload(payload)
	if err != nil {
		if l.logger != nil {
			l.logger.Printf("Realtime payload rejected | payload=%q error=%v", payload, err)
		}
		return
	}

	j, err := l.jobs.GetByID(ctx, id)
	if err != nil {
		if l.logger != nil {
			l.logger.Printf("Realtime job fetch failed | job_id=%s error=%v", id, err)
		}
		return
	}

	l.mu.Lock()
	snapshot := make([]*Subscription, 0, len(l.subs))
	for sub := range l.subs {
		snapshot = append(snapshot, sub)
	}
	l.mu.Unlock()

	for _, sub := range snapshot {
		sub.dispatch(ctx, j)
	}
}

// parsePayload accepts either a bare job id or a JSON object with an
// "id" field, which is what the insert trigger emits.
func parsePayload(payload string) (uuid.UUID, error) {
	if payload == "" {
		return uuid.Nil, errors.New("empty payload")
	}
	if payload[0] == '{' {
		var p newJobPayload
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return uuid.Nil, err
		}
		return uuid.Parse(p.ID)
	}
	return uuid.Parse(payload)
}
