package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobstream/internal/domain/filtering"
	"jobstream/internal/domain/job"

	"github.com/google/uuid"
)

type stubJobReader struct {
	rows  []job.Job
	err   error
	calls int
}

func (s *stubJobReader) ListActive(context.Context) ([]job.Job, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

func testClock(start time.Time) (func() time.Time, func(time.Duration)) {
	current := start
	now := func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }
	return now, advance
}

func TestListingCache_FreshWithinTTL(t *testing.T) {
	now, advance := testClock(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	c := NewListingCache(5 * time.Minute)
	c.now = now

	c.Put([]job.View{{ID: uuid.New()}})

	advance(4 * time.Minute)
	if _, ok := c.Get(); !ok {
		t.Fatalf("cache should be fresh at 4 minutes")
	}

	advance(2 * time.Minute)
	if _, ok := c.Get(); ok {
		t.Fatalf("cache should be expired at 6 minutes")
	}
	if _, ok := c.Stale(); !ok {
		t.Fatalf("expired data must still be reachable via Stale")
	}
}

func TestListingCache_InvalidateDropsStale(t *testing.T) {
	c := NewListingCache(5 * time.Minute)
	c.Put([]job.View{{ID: uuid.New()}})
	c.Invalidate()

	if _, ok := c.Get(); ok {
		t.Fatalf("invalidated cache should miss")
	}
	if _, ok := c.Stale(); ok {
		t.Fatalf("invalidated cache should have no stale data either")
	}
}

func TestFeedUsecase_ServesFromCache(t *testing.T) {
	reader := &stubJobReader{rows: []job.Job{{ID: uuid.New(), Title: "Go Developer", PostedAt: time.Now()}}}
	uc := NewFeedUsecase(reader, NewListingCache(5*time.Minute), nil)

	if _, err := uc.Listing(context.Background(), false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.Listing(context.Background(), false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reader.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", reader.calls)
	}

	if _, err := uc.Listing(context.Background(), true); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reader.calls != 2 {
		t.Fatalf("force must bypass the cache, got %d fetches", reader.calls)
	}
}

func TestFeedUsecase_StaleOnFetchError(t *testing.T) {
	jobID := uuid.New()
	reader := &stubJobReader{rows: []job.Job{{ID: jobID, Title: "Go Developer", PostedAt: time.Now()}}}
	uc := NewFeedUsecase(reader, NewListingCache(5*time.Minute), nil)

	if _, err := uc.Listing(context.Background(), false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	reader.err = errors.New("connection refused")
	views, err := uc.Listing(context.Background(), true)
	if !errors.Is(err, ErrFeedUnavailable) {
		t.Fatalf("expected ErrFeedUnavailable, got %v", err)
	}
	if len(views) != 1 || views[0].ID != jobID {
		t.Fatalf("stale listing must be served alongside the error")
	}
}

func TestFeedUsecase_SearchFiltersStaleData(t *testing.T) {
	reader := &stubJobReader{rows: []job.Job{
		{ID: uuid.New(), Title: "Go Developer", PostedAt: time.Now()},
		{ID: uuid.New(), Title: "Product Designer", PostedAt: time.Now()},
	}}
	uc := NewFeedUsecase(reader, NewListingCache(5*time.Minute), nil)

	if _, err := uc.Listing(context.Background(), false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	reader.err = errors.New("down")
	views, err := uc.Search(context.Background(), "designer", "all", filtering.DefaultSpec(), true)
	if !errors.Is(err, ErrFeedUnavailable) {
		t.Fatalf("expected ErrFeedUnavailable, got %v", err)
	}
	if len(views) != 1 || views[0].Title != "Product Designer" {
		t.Fatalf("stale data must still filter, got %d views", len(views))
	}
}

func TestFeedUsecase_FirstLoadFiresOnce(t *testing.T) {
	reader := &stubJobReader{rows: []job.Job{{ID: uuid.New(), PostedAt: time.Now()}}}
	uc := NewFeedUsecase(reader, NewListingCache(5*time.Minute), nil)

	fired := 0
	uc.OnFirstLoad(func() { fired++ })

	// A failed fetch is not readiness.
	reader.err = errors.New("down")
	_, _ = uc.Listing(context.Background(), false)
	if fired != 0 {
		t.Fatalf("callback must not fire on a failed fetch")
	}

	reader.err = nil
	_, _ = uc.Listing(context.Background(), true)
	_, _ = uc.Listing(context.Background(), true)
	if fired != 1 {
		t.Fatalf("callback must fire exactly once, fired %d times", fired)
	}
}
