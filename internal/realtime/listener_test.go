package realtime

import (
	"context"
	"testing"

	"jobstream/internal/domain/job"

	"github.com/google/uuid"
)

type stubFetcher struct {
	jobs map[uuid.UUID]job.Job
}

func (s stubFetcher) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	return s.jobs[id], nil
}

func TestParsePayload(t *testing.T) {
	id := uuid.New()

	got, err := parsePayload(id.String())
	if err != nil || got != id {
		t.Fatalf("bare id payload: got %v, %v", got, err)
	}

	got, err = parsePayload(`{"id":"` + id.String() + `"}`)
	if err != nil || got != id {
		t.Fatalf("json payload: got %v, %v", got, err)
	}

	if _, err := parsePayload(""); err == nil {
		t.Fatalf("empty payload must be rejected")
	}
	if _, err := parsePayload("{not json"); err == nil {
		t.Fatalf("malformed json must be rejected")
	}
	if _, err := parsePayload("not-a-uuid"); err == nil {
		t.Fatalf("non-uuid payload must be rejected")
	}
}

func TestSubscription_CloseStopsDelivery(t *testing.T) {
	jobID := uuid.New()
	l := NewListener("", stubFetcher{jobs: map[uuid.UUID]job.Job{jobID: {ID: jobID}}}, nil)

	var got []uuid.UUID
	sub := l.Subscribe(func(_ context.Context, j job.Job) {
		got = append(got, j.ID)
	})

	l.handle(context.Background(), jobID.String())
	if len(got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(got))
	}

	sub.Close()
	if sub.Active() {
		t.Fatalf("closed subscription must not be active")
	}
	l.handle(context.Background(), jobID.String())
	if len(got) != 1 {
		t.Fatalf("closed subscription must not receive events")
	}

	// Closing twice is safe.
	sub.Close()
}

func TestSubscription_IndependentHandlers(t *testing.T) {
	jobID := uuid.New()
	l := NewListener("", stubFetcher{jobs: map[uuid.UUID]job.Job{jobID: {ID: jobID}}}, nil)

	a, b := 0, 0
	subA := l.Subscribe(func(context.Context, job.Job) { a++ })
	l.Subscribe(func(context.Context, job.Job) { b++ })

	l.handle(context.Background(), jobID.String())
	subA.Close()
	l.handle(context.Background(), jobID.String())

	if a != 1 || b != 2 {
		t.Fatalf("expected a=1 b=2, got a=%d b=%d", a, b)
	}
}
